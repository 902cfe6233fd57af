package routine

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the on-disk and display format for calendar dates.
const DateLayout = "2006-01-02"

type DayType string

const (
	Weekday  DayType = "weekday"
	Saturday DayType = "sat"
	Sunday   DayType = "sun"
)

var DayTypes = []DayType{Weekday, Saturday, Sunday}

func (d DayType) Label() string {
	switch d {
	case Saturday:
		return "Saturday"
	case Sunday:
		return "Sunday"
	}
	return "Weekday"
}

type Mode string

const (
	ModeNormal Mode = "normal"
	ModeLow    Mode = "low"
	ModeOff    Mode = "off"
)

var Modes = []Mode{ModeNormal, ModeLow, ModeOff}

func (m Mode) Label() string {
	switch m {
	case ModeLow:
		return "Low-stimulus (10%)"
	case ModeOff:
		return "OFF"
	}
	return "Normal"
}

type Category string

const (
	CategoryMorning  Category = "morning"
	CategoryStudy    Category = "study"
	CategoryExercise Category = "exercise"
	CategoryWork     Category = "work"
	CategoryRest     Category = "rest"
)

// Checkable reports whether blocks of this category carry completion tracking.
func (c Category) Checkable() bool {
	return c == CategoryStudy || c == CategoryExercise
}

var PhaseLabels = map[int]string{
	1: "Phase 1 – show up + look like studying",
	2: "Phase 2 – get a feel for 0.5~1 sessions",
	3: "Phase 3 – grow study time",
	4: "Phase 4 – full routine",
}

// Config is the singleton routine configuration.
type Config struct {
	StartDate   time.Time
	AutoPhase   bool
	ManualPhase int `validate:"min=1,max=4"`
	TargetExam  time.Time
}

// DefaultConfig returns the configuration used when the config table is empty.
func DefaultConfig(today time.Time) Config {
	return Config{
		StartDate:   Day(today),
		AutoPhase:   true,
		ManualPhase: 1,
		TargetExam:  time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (c Config) Validate() error {
	return validate.Struct(c)
}

type Subject struct {
	Name              string `validate:"required"`
	TotalLectures     int    `validate:"min=1"`
	CompletedLectures int    `validate:"min=0"`
	Active            bool
}

// DefaultSubjects seeds an empty subjects table.
func DefaultSubjects() []Subject {
	return []Subject{{Name: "민법", TotalLectures: 220, CompletedLectures: 0, Active: true}}
}

func (s Subject) Validate() error {
	return validate.Struct(s)
}

// Percent is the displayed progress, clamped to 0..100. Storage is not clamped.
func (s Subject) Percent() int {
	if s.TotalLectures <= 0 {
		return 0
	}
	p := s.CompletedLectures * 100 / s.TotalLectures
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

// LogEntry is one (date, block) row of the routine log.
type LogEntry struct {
	Date             time.Time
	Phase            int
	DayType          DayType
	Mode             Mode
	Block            string
	Done             bool
	EstimatedMinutes int
	Energy           *int
	Focus            *int
	Note             string
	Subject          string
}

// OffBlock is the block name of the synthetic entry recorded for an OFF day.
const OffBlock = "OFF"

var validate = validator.New()

// Day truncates t to its calendar date at UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }
