package routine

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"
)

type fakeRepo struct {
	cfg      Config
	log      []LogEntry
	subjects []Subject

	logSaves     int
	subjectSaves int
	failSave     error
}

func (f *fakeRepo) LoadConfig() (Config, error)      { return f.cfg, nil }
func (f *fakeRepo) LoadLog() ([]LogEntry, error)     { return f.log, nil }
func (f *fakeRepo) LoadSubjects() ([]Subject, error) { return f.subjects, nil }

func (f *fakeRepo) SaveConfig(c Config) error {
	if f.failSave != nil {
		return f.failSave
	}
	f.cfg = c
	return nil
}

func (f *fakeRepo) SaveLog(l []LogEntry) error {
	if f.failSave != nil {
		return f.failSave
	}
	f.logSaves++
	f.log = l
	return nil
}

func (f *fakeRepo) SaveSubjects(s []Subject) error {
	if f.failSave != nil {
		return f.failSave
	}
	f.subjectSaves++
	f.subjects = s
	return nil
}

func newTestState(t *testing.T, repo *fakeRepo) *State {
	t.Helper()
	now := func() time.Time { return time.Date(2026, 10, 16, 21, 0, 0, 0, time.UTC) }
	s, err := LoadAt(repo, now)
	if err != nil {
		t.Fatalf("LoadAt: %v", err)
	}
	return s
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		cfg:      Config{StartDate: date("2026-09-21"), AutoPhase: true, ManualPhase: 1, TargetExam: date("2027-01-01")},
		subjects: DefaultSubjects(),
	}
}

// ============================================================
// Load
// ============================================================

func TestLoadSyncsSubjects(t *testing.T) {
	repo := newFakeRepo()
	repo.log = []LogEntry{
		{Date: date("2026-10-10"), Block: "📚 오전 인강 2강", Done: true, Subject: "민법"},
	}
	s := newTestState(t, repo)
	if s.Subjects[0].CompletedLectures != 2 {
		t.Fatalf("completed = %d, want 2", s.Subjects[0].CompletedLectures)
	}
	if repo.subjectSaves != 1 {
		t.Fatalf("subject saves = %d, want 1", repo.subjectSaves)
	}
}

func TestLoadNoSyncWrite(t *testing.T) {
	repo := newFakeRepo()
	newTestState(t, repo)
	if repo.subjectSaves != 0 {
		t.Fatalf("unchanged subjects were saved %d times", repo.subjectSaves)
	}
}

func TestStateToday(t *testing.T) {
	s := newTestState(t, newFakeRepo())
	if !s.Today().Equal(date("2026-10-16")) {
		t.Fatalf("Today = %s", s.Today())
	}
}

// ============================================================
// Submit
// ============================================================

func TestSubmitPersistsAndSyncs(t *testing.T) {
	repo := newFakeRepo()
	s := newTestState(t, repo)

	ctx := s.Context(s.Today(), true)
	if ctx.Phase != 3 {
		t.Fatalf("phase = %d, want 3", ctx.Phase)
	}
	in := CheckIn{
		Date:        ctx.Date,
		Phase:       ctx.Phase,
		DayType:     ctx.DayType,
		Mode:        ctx.Mode,
		Completions: CompletionsFor(ctx.Phase, ctx.DayType, ctx.Mode, []string{"📚 인강 1강", "📚 인강 2강"}),
		Subject:     "민법",
	}
	if err := s.Submit(in); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if repo.logSaves != 1 || len(repo.log) != 10 {
		t.Fatalf("log saves/len = %d/%d", repo.logSaves, len(repo.log))
	}
	if s.Subjects[0].CompletedLectures != 2 {
		t.Fatalf("completed = %d, want 2", s.Subjects[0].CompletedLectures)
	}

	st := s.Stats(s.Context(s.Today(), true))
	if st.Streak != 1 || st.Day.Minutes != 90 {
		t.Fatalf("stats = streak %d minutes %d", st.Streak, st.Day.Minutes)
	}
	if !st.Context.FromLog {
		t.Fatal("context should come from the log after check-in")
	}

	// Resubmission does not grow the count.
	if err := s.Submit(in); err != nil {
		t.Fatalf("Submit again: %v", err)
	}
	if s.Subjects[0].CompletedLectures != 2 || len(s.Log) != 10 {
		t.Fatalf("resubmission changed state: %d lectures, %d entries",
			s.Subjects[0].CompletedLectures, len(s.Log))
	}
}

func TestSubmitInvalid(t *testing.T) {
	repo := newFakeRepo()
	s := newTestState(t, repo)
	err := s.Submit(CheckIn{Date: s.Today(), Phase: 9, DayType: Weekday, Mode: ModeNormal})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if repo.logSaves != 0 {
		t.Fatal("invalid check-in reached storage")
	}
}

func TestSubmitSaveFailureKeepsMemory(t *testing.T) {
	repo := newFakeRepo()
	s := newTestState(t, repo)
	repo.failSave = errors.New("disk full")

	err := s.Submit(CheckIn{Date: s.Today(), Phase: 1, DayType: Weekday, Mode: ModeOff})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("err = %v, want wrapped disk full", err)
	}
	if len(s.Log) != 0 {
		t.Fatal("in-memory log changed despite failed save")
	}
}

// ============================================================
// Config / subjects
// ============================================================

func TestSaveConfig(t *testing.T) {
	repo := newFakeRepo()
	s := newTestState(t, repo)

	cfg := s.Config
	cfg.AutoPhase = false
	cfg.ManualPhase = 2
	cfg.StartDate = time.Date(2026, 9, 1, 15, 4, 0, 0, time.UTC)
	if err := s.SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	if !repo.cfg.StartDate.Equal(date("2026-09-01")) {
		t.Fatalf("start date not truncated: %s", repo.cfg.StartDate)
	}
	if s.Context(s.Today(), true).Phase != 2 {
		t.Fatal("manual phase not applied")
	}

	cfg.ManualPhase = 0
	if err := s.SaveConfig(cfg); err == nil {
		t.Fatal("expected validation error for phase 0")
	}
	if s.Config.ManualPhase != 2 {
		t.Fatal("invalid config replaced the current one")
	}
}

func TestSubjectCRUD(t *testing.T) {
	repo := newFakeRepo()
	s := newTestState(t, repo)

	if err := s.AddSubject("형법", 100); err != nil {
		t.Fatalf("AddSubject: %v", err)
	}
	if err := s.AddSubject("형법", 100); !errors.Is(err, ErrSubjectExists) {
		t.Fatalf("duplicate add err = %v", err)
	}
	if err := s.AddSubject("", 100); err == nil {
		t.Fatal("empty name accepted")
	}
	if err := s.AddSubject("헌법", 0); err == nil {
		t.Fatal("zero total accepted")
	}

	if err := s.UpdateSubject("형법", Subject{Name: "형법", TotalLectures: 80, CompletedLectures: 5, Active: false}); err != nil {
		t.Fatalf("UpdateSubject: %v", err)
	}
	if got := s.ActiveSubjects(); len(got) != 1 || got[0].Name != "민법" {
		t.Fatalf("active = %+v", got)
	}
	if sub, ok := s.Subject("형법"); !ok || sub.TotalLectures != 80 || sub.CompletedLectures != 5 {
		t.Fatalf("Subject(형법) = %+v, %v", sub, ok)
	}
	if _, ok := s.Subject("nope"); ok {
		t.Fatal("Subject(nope) found")
	}
	if err := s.UpdateSubject("형법", Subject{Name: "민법", TotalLectures: 80}); !errors.Is(err, ErrSubjectExists) {
		t.Fatalf("rename collision err = %v", err)
	}
	if err := s.UpdateSubject("nope", Subject{Name: "nope", TotalLectures: 1}); !errors.Is(err, ErrSubjectNotFound) {
		t.Fatalf("missing update err = %v", err)
	}

	if err := s.DeleteSubject("형법"); err != nil {
		t.Fatalf("DeleteSubject: %v", err)
	}
	if err := s.DeleteSubject("형법"); !errors.Is(err, ErrSubjectNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
	if len(repo.subjects) != 1 {
		t.Fatalf("persisted %d subjects, want 1", len(repo.subjects))
	}
}

func TestManualLowerThenSyncRaises(t *testing.T) {
	repo := newFakeRepo()
	repo.log = []LogEntry{{Date: date("2026-10-10"), Block: "📚 인강 3강", Done: true, Subject: "민법"}}
	s := newTestState(t, repo)

	sub := s.Subjects[0]
	sub.CompletedLectures = 0
	if err := s.UpdateSubject("민법", sub); err != nil {
		t.Fatalf("UpdateSubject: %v", err)
	}
	if s.Subjects[0].CompletedLectures != 0 {
		t.Fatal("direct edit should be able to lower the count")
	}

	in := CheckIn{Date: date("2026-10-16"), Phase: 1, DayType: Weekday, Mode: ModeOff}
	if err := s.Submit(in); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if s.Subjects[0].CompletedLectures != 1 {
		t.Fatalf("completed = %d, want 1 after next sync", s.Subjects[0].CompletedLectures)
	}
}

// ============================================================
// Motivation
// ============================================================

func TestMotivation(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	for i := 0; i < 20; i++ {
		msg := Motivation(10, ModeLow, r)
		if !contains(motivationLowMode, msg) {
			t.Fatalf("low mode message %q not from low pool", msg)
		}
	}
	for i := 0; i < 20; i++ {
		msg := Motivation(0, ModeNormal, r)
		if !contains(motivationDefault, msg) {
			t.Fatalf("default message %q not from default pool", msg)
		}
	}
	for i := 0; i < 20; i++ {
		msg := Motivation(8, ModeNormal, r)
		if strings.Contains(msg, "%d") {
			t.Fatalf("unformatted message %q", msg)
		}
		if !strings.Contains(msg, "8") {
			t.Fatalf("streak not interpolated in %q", msg)
		}
	}
}

func contains(pool []string, s string) bool {
	for _, p := range pool {
		if p == s {
			return true
		}
	}
	return false
}
