package scheduler

import "errors"

var (
	// ErrInvalidTechnique indicates the technique name is unknown and no previous configuration exists.
	ErrInvalidTechnique = errors.New("invalid technique")
	// ErrCustomRuleNotConfigured indicates the custom interval or break duration is not positive.
	ErrCustomRuleNotConfigured = errors.New("custom rule not configured")
	// ErrTimerInitializationFailed indicates the resolved work interval cannot drive a countdown.
	ErrTimerInitializationFailed = errors.New("timer initialization failed")

	ErrNotIdle       = errors.New("scheduler is not idle")
	ErrNotRunning    = errors.New("scheduler is not running")
	ErrNotPaused     = errors.New("scheduler is not paused")
	ErrNothingToSkip = errors.New("nothing to skip")
	ErrNoBreakDue    = errors.New("no break is due")
)
