package model

import (
	"strings"
	"time"
)

// Technique names a break-scheduling policy.
type Technique string

const (
	TechniqueUnset         Technique = ""
	TechniqueFixedInterval Technique = "20-20-20 Rule"
	TechniquePomodoro      Technique = "Pomodoro Technique"
	TechniqueCustom        Technique = "Custom"
)

// Techniques lists the selectable techniques in menu order.
var Techniques = []Technique{TechniqueFixedInterval, TechniquePomodoro, TechniqueCustom}

// ParseTechnique resolves a display name or short alias to a Technique.
func ParseTechnique(name string) (Technique, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "20-20-20", "20-20-20 rule", "fixed":
		return TechniqueFixedInterval, true
	case "pomodoro", "pomodoro technique":
		return TechniquePomodoro, true
	case "custom":
		return TechniqueCustom, true
	default:
		return TechniqueUnset, false
	}
}

// String returns the display name.
func (technique Technique) String() string {
	if technique == TechniqueUnset {
		return "Unset"
	}
	return string(technique)
}

// ScheduleConfig is an immutable snapshot of technique parameters.
type ScheduleConfig struct {
	Technique Technique

	WorkInterval       time.Duration
	ShortBreakDuration time.Duration
	LongBreakDuration  time.Duration
	LongBreakEvery     int

	CustomWorkInterval  time.Duration
	CustomBreakDuration time.Duration
}

// Defaults holds the built-in durations for each technique.
type Defaults struct {
	FixedWorkInterval  time.Duration
	FixedBreakDuration time.Duration

	PomodoroWorkInterval time.Duration
	PomodoroShortBreak   time.Duration
	PomodoroLongBreak    time.Duration
	PomodoroCycle        int
}

// DefaultDurations returns the stock technique durations.
func DefaultDurations() Defaults {
	return Defaults{
		FixedWorkInterval:    20 * time.Minute,
		FixedBreakDuration:   20 * time.Second,
		PomodoroWorkInterval: 25 * time.Minute,
		PomodoroShortBreak:   5 * time.Minute,
		PomodoroLongBreak:    30 * time.Minute,
		PomodoroCycle:        4,
	}
}
