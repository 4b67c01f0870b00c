package scheduler

import (
	"time"

	"restbreak/internal/core/model"
)

// Phase represents the current scheduler mode.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseRunning  Phase = "running"
	PhasePaused   Phase = "paused"
	PhaseBreakDue Phase = "break_due"
)

// EventType defines the type of scheduler event.
type EventType string

const (
	EventPhaseChange EventType = "phase_change"
	EventProgress    EventType = "progress"
)

// BreakDue is emitted when a work interval elapses.
type BreakDue struct {
	Technique     model.Technique
	Duration      time.Duration
	PomodoroCount int
	// Long is set on the break that closes a Pomodoro cycle.
	Long bool
	At   time.Time
}

// Event represents a scheduler update for display observers.
type Event struct {
	Type          EventType
	Phase         Phase
	Technique     model.Technique
	Remaining     time.Duration
	PomodoroCount int
	Break         *BreakDue
	At            time.Time
}

// State is a read-only projection of the scheduler.
type State struct {
	Technique     model.Technique
	Phase         Phase
	NextBreakAt   time.Time
	Remaining     time.Duration
	PomodoroCount int
	Config        model.ScheduleConfig
	LastUsed      *model.ScheduleConfig
	Break         *BreakDue
}
