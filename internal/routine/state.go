package routine

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrSubjectExists   = errors.New("subject already exists")
	ErrSubjectNotFound = errors.New("subject not found")
)

// Repository is the tabular storage collaborator. Every Save rewrites the
// whole table.
type Repository interface {
	LoadConfig() (Config, error)
	SaveConfig(Config) error
	LoadLog() ([]LogEntry, error)
	SaveLog([]LogEntry) error
	LoadSubjects() ([]Subject, error)
	SaveSubjects([]Subject) error
}

// State is the in-memory session: loaded once at start, persisted on every
// mutation. It is not safe for concurrent use.
type State struct {
	repo Repository
	now  func() time.Time

	Config   Config
	Log      []LogEntry
	Subjects []Subject
}

// Load reads config, log and subjects from repo and brings subject progress
// up to date with the log.
func Load(repo Repository) (*State, error) {
	return LoadAt(repo, time.Now)
}

func LoadAt(repo Repository, now func() time.Time) (*State, error) {
	cfg, err := repo.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := repo.LoadLog()
	if err != nil {
		return nil, fmt.Errorf("load log: %w", err)
	}
	subjects, err := repo.LoadSubjects()
	if err != nil {
		return nil, fmt.Errorf("load subjects: %w", err)
	}

	s := &State{repo: repo, now: now, Config: cfg, Log: log, Subjects: subjects}
	if err := s.syncSubjects(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *State) Today() time.Time { return Day(s.now()) }

// Context resolves the effective day context for date.
func (s *State) Context(date time.Time, preferLogged bool) DayContext {
	return ResolveContext(s.Config, s.Log, date, preferLogged)
}

func (s *State) Stats(ctx DayContext) Stats {
	return Aggregate(s.Log, s.Subjects, ctx, s.Today())
}

func (s *State) Entries(date time.Time) []LogEntry {
	return EntriesOn(s.Log, date)
}

// ActiveSubjects returns the subjects shown on the dashboard and offered at check-in.
func (s *State) ActiveSubjects() []Subject {
	var out []Subject
	for _, sub := range s.Subjects {
		if sub.Active {
			out = append(out, sub)
		}
	}
	return out
}

// Submit reconciles a check-in into the log, persists the log, then syncs
// subject progress.
func (s *State) Submit(in CheckIn) error {
	if err := in.Validate(); err != nil {
		return fmt.Errorf("validate check-in: %w", err)
	}
	log := Reconcile(s.Log, in)
	if err := s.repo.SaveLog(log); err != nil {
		return fmt.Errorf("save log: %w", err)
	}
	s.Log = log
	return s.syncSubjects()
}

func (s *State) syncSubjects() error {
	subjects, changed := SyncSubjects(s.Log, s.Subjects)
	if !changed {
		return nil
	}
	if err := s.repo.SaveSubjects(subjects); err != nil {
		return fmt.Errorf("save subjects: %w", err)
	}
	s.Subjects = subjects
	return nil
}

func (s *State) SaveConfig(cfg Config) error {
	cfg.StartDate = Day(cfg.StartDate)
	cfg.TargetExam = Day(cfg.TargetExam)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	if err := s.repo.SaveConfig(cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	s.Config = cfg
	return nil
}

func (s *State) AddSubject(name string, total int) error {
	sub := Subject{Name: name, TotalLectures: total, Active: true}
	if err := sub.Validate(); err != nil {
		return fmt.Errorf("validate subject: %w", err)
	}
	if s.subjectIndex(name) >= 0 {
		return fmt.Errorf("add subject %q: %w", name, ErrSubjectExists)
	}
	return s.saveSubjects(append(cloneSubjects(s.Subjects), sub))
}

// UpdateSubject replaces the subject currently named name. Direct edits may
// set any completed count, including lowering it.
func (s *State) UpdateSubject(name string, sub Subject) error {
	i := s.subjectIndex(name)
	if i < 0 {
		return fmt.Errorf("update subject %q: %w", name, ErrSubjectNotFound)
	}
	if err := sub.Validate(); err != nil {
		return fmt.Errorf("validate subject: %w", err)
	}
	if sub.Name != name && s.subjectIndex(sub.Name) >= 0 {
		return fmt.Errorf("rename subject to %q: %w", sub.Name, ErrSubjectExists)
	}
	subjects := cloneSubjects(s.Subjects)
	subjects[i] = sub
	return s.saveSubjects(subjects)
}

func (s *State) DeleteSubject(name string) error {
	i := s.subjectIndex(name)
	if i < 0 {
		return fmt.Errorf("delete subject %q: %w", name, ErrSubjectNotFound)
	}
	subjects := cloneSubjects(s.Subjects)
	subjects = append(subjects[:i], subjects[i+1:]...)
	return s.saveSubjects(subjects)
}

func (s *State) saveSubjects(subjects []Subject) error {
	if err := s.repo.SaveSubjects(subjects); err != nil {
		return fmt.Errorf("save subjects: %w", err)
	}
	s.Subjects = subjects
	return nil
}

// Subject returns the named subject.
func (s *State) Subject(name string) (Subject, bool) {
	i := s.subjectIndex(name)
	if i < 0 {
		return Subject{}, false
	}
	return s.Subjects[i], true
}

func (s *State) subjectIndex(name string) int {
	for i, sub := range s.Subjects {
		if sub.Name == name {
			return i
		}
	}
	return -1
}

func cloneSubjects(in []Subject) []Subject {
	out := make([]Subject, len(in))
	copy(out, in)
	return out
}
