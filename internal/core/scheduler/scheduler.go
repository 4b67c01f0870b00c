package scheduler

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"restbreak/internal/core/model"
)

// DefaultTickInterval matches two countdown refreshes per second.
const DefaultTickInterval = 500 * time.Millisecond

// SettingsReader exposes the persisted values the scheduler consults.
type SettingsReader interface {
	Int(key string) int
}

// Config contains runtime options for Scheduler.
type Config struct {
	TickInterval time.Duration
	Clock        func() time.Time
	Defaults     model.Defaults

	// ManualTick disables the internal ticker; the host calls Tick itself.
	ManualTick bool
}

// Scheduler is the break-scheduling state machine.
type Scheduler struct {
	mu       sync.Mutex
	options  Config
	defaults model.Defaults
	settings SettingsReader

	technique     model.Technique
	config        model.ScheduleConfig
	phase         Phase
	nextBreakAt   time.Time
	remaining     time.Duration
	pomodoroCount int
	lastUsed      *model.ScheduleConfig
	current       *BreakDue

	sinks  []func(BreakDue)
	events []chan Event
	stopCh chan struct{}
	closed bool
}

// New creates an idle Scheduler.
func New(settings SettingsReader, options Config) *Scheduler {
	if options.TickInterval <= 0 {
		options.TickInterval = DefaultTickInterval
	}
	if options.Clock == nil {
		options.Clock = time.Now
	}

	return &Scheduler{
		options:  options,
		defaults: fillDefaults(options.Defaults),
		settings: settings,
		phase:    PhaseIdle,
	}
}

// OnBreakDue registers a callback fired whenever a break becomes due.
func (s *Scheduler) OnBreakDue(handler func(BreakDue)) {
	if handler == nil {
		return
	}
	s.mu.Lock()
	s.sinks = append(s.sinks, handler)
	s.mu.Unlock()
}

// Subscribe registers a new display observer channel.
func (s *Scheduler) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	s.mu.Lock()
	if s.closed {
		close(ch)
	} else {
		s.events = append(s.events, ch)
	}
	s.mu.Unlock()
	return ch
}

// SetDefaults replaces the built-in technique durations. The active countdown keeps its snapshot.
func (s *Scheduler) SetDefaults(defaults model.Defaults) {
	s.mu.Lock()
	s.defaults = fillDefaults(defaults)
	s.mu.Unlock()
}

// SelectTechnique resolves name and makes it the current technique.
// An active countdown is replaced by a fresh one for the new technique.
func (s *Scheduler) SelectTechnique(name string) (model.Technique, error) {
	technique, known := model.ParseTechnique(name)
	now := s.now()

	s.mu.Lock()
	var config model.ScheduleConfig
	if known {
		resolved, err := s.resolveLocked(technique)
		if err != nil {
			s.mu.Unlock()
			return model.TechniqueUnset, err
		}
		config = resolved
	} else {
		if s.lastUsed == nil {
			s.mu.Unlock()
			return model.TechniqueUnset, fmt.Errorf("%w: %q", ErrInvalidTechnique, name)
		}
		config = *s.lastUsed
	}

	if s.phase == PhaseIdle {
		s.technique = config.Technique
		s.config = config
		s.rememberLocked(config)
		s.mu.Unlock()
		return config.Technique, nil
	}

	s.haltLocked()
	if err := s.startLocked(config, now); err != nil {
		s.emitLocked(s.phaseEventLocked(now))
		s.mu.Unlock()
		return model.TechniqueUnset, err
	}
	s.emitLocked(s.phaseEventLocked(now))
	s.mu.Unlock()
	return config.Technique, nil
}

// Start begins the work countdown for technique. TechniqueUnset reuses the last valid configuration.
func (s *Scheduler) Start(technique model.Technique) error {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseIdle {
		return ErrNotIdle
	}

	config, err := s.resolveLocked(technique)
	if err != nil {
		return err
	}
	if err := s.startLocked(config, now); err != nil {
		return err
	}
	s.emitLocked(s.phaseEventLocked(now))
	return nil
}

// Tick advances the countdown to now. It returns the remaining work time and,
// on the tick that elapses the countdown, the break that became due.
func (s *Scheduler) Tick(now time.Time) (time.Duration, *BreakDue) {
	s.mu.Lock()
	if s.phase != PhaseRunning {
		remaining := s.remaining
		s.mu.Unlock()
		return remaining, nil
	}

	remaining := s.nextBreakAt.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	s.remaining = remaining
	if remaining > 0 {
		s.emitLocked(Event{
			Type:          EventProgress,
			Phase:         s.phase,
			Technique:     s.technique,
			Remaining:     remaining,
			PomodoroCount: s.pomodoroCount,
			At:            now,
		})
		s.mu.Unlock()
		return remaining, nil
	}

	due := s.enterBreakLocked(now)
	s.emitLocked(s.phaseEventLocked(now))
	sinks := slices.Clone(s.sinks)
	s.mu.Unlock()

	for _, sink := range sinks {
		sink(due)
	}
	return 0, &due
}

// Pause freezes the countdown.
func (s *Scheduler) Pause() error {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseRunning {
		return ErrNotRunning
	}

	remaining := s.nextBreakAt.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	s.remaining = remaining
	s.nextBreakAt = time.Time{}
	s.phase = PhasePaused
	s.stopTickerLocked()
	s.emitLocked(s.phaseEventLocked(now))
	return nil
}

// Resume continues a paused countdown from the frozen remaining time.
func (s *Scheduler) Resume() error {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhasePaused {
		return ErrNotPaused
	}

	s.nextBreakAt = now.Add(s.remaining)
	s.phase = PhaseRunning
	s.startTickerLocked()
	s.emitLocked(s.phaseEventLocked(now))
	return nil
}

// Skip ends any break in progress and restarts the full work interval.
func (s *Scheduler) Skip() error {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseRunning && s.phase != PhaseBreakDue {
		return ErrNothingToSkip
	}
	s.armLocked(now)
	s.emitLocked(s.phaseEventLocked(now))
	return nil
}

// BreakFinished reports that the host finished presenting the due break.
func (s *Scheduler) BreakFinished() error {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseBreakDue {
		return ErrNoBreakDue
	}
	s.armLocked(now)
	s.emitLocked(s.phaseEventLocked(now))
	return nil
}

// Stop returns the scheduler to idle from any phase.
func (s *Scheduler) Stop() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseIdle {
		return
	}
	s.haltLocked()
	s.emitLocked(s.phaseEventLocked(now))
}

// Close stops the ticker and closes every observer channel.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.stopTickerLocked()
	events := s.events
	s.events = nil
	s.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// BreakDuration returns the break length for technique after pomodoroCount completed sessions.
func (s *Scheduler) BreakDuration(technique model.Technique, pomodoroCount int) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if technique == model.TechniqueUnset {
		return 0, ErrInvalidTechnique
	}
	config, err := s.resolveLocked(technique)
	if err != nil {
		return 0, err
	}
	duration, _ := breakDurationFor(config, pomodoroCount)
	return duration, nil
}

// Snapshot returns a copy of the current state.
func (s *Scheduler) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := State{
		Technique:     s.technique,
		Phase:         s.phase,
		NextBreakAt:   s.nextBreakAt,
		Remaining:     s.remaining,
		PomodoroCount: s.pomodoroCount,
		Config:        s.config,
	}
	if s.lastUsed != nil {
		lastUsed := *s.lastUsed
		state.LastUsed = &lastUsed
	}
	if s.current != nil {
		current := *s.current
		state.Break = &current
	}
	return state
}

// IsActive reports whether technique is the one currently counting down or on break.
func (s *Scheduler) IsActive(technique model.Technique) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase != PhaseIdle && s.technique == technique
}

// Phase returns the current phase.
func (s *Scheduler) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Remaining returns the cached remaining work time.
func (s *Scheduler) Remaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

func (s *Scheduler) resolveLocked(technique model.Technique) (model.ScheduleConfig, error) {
	switch technique {
	case model.TechniqueFixedInterval:
		return model.ScheduleConfig{
			Technique:          technique,
			WorkInterval:       s.defaults.FixedWorkInterval,
			ShortBreakDuration: s.defaults.FixedBreakDuration,
			LongBreakDuration:  s.defaults.FixedBreakDuration,
		}, nil
	case model.TechniquePomodoro:
		return model.ScheduleConfig{
			Technique:          technique,
			WorkInterval:       s.defaults.PomodoroWorkInterval,
			ShortBreakDuration: s.defaults.PomodoroShortBreak,
			LongBreakDuration:  s.defaults.PomodoroLongBreak,
			LongBreakEvery:     s.defaults.PomodoroCycle,
		}, nil
	case model.TechniqueCustom:
		if s.settings == nil {
			return model.ScheduleConfig{}, ErrCustomRuleNotConfigured
		}
		work := time.Duration(s.settings.Int(model.KeyReminderInterval)) * time.Second
		rest := time.Duration(s.settings.Int(model.KeyBreakDuration)) * time.Second
		if work <= 0 || rest <= 0 {
			return model.ScheduleConfig{}, fmt.Errorf("%w: interval %s, break %s", ErrCustomRuleNotConfigured, work, rest)
		}
		return model.ScheduleConfig{
			Technique:           technique,
			WorkInterval:        work,
			ShortBreakDuration:  rest,
			LongBreakDuration:   rest,
			CustomWorkInterval:  work,
			CustomBreakDuration: rest,
		}, nil
	case model.TechniqueUnset:
		if s.lastUsed != nil {
			return *s.lastUsed, nil
		}
		return model.ScheduleConfig{}, ErrInvalidTechnique
	default:
		return model.ScheduleConfig{}, fmt.Errorf("%w: %q", ErrInvalidTechnique, string(technique))
	}
}

func (s *Scheduler) startLocked(config model.ScheduleConfig, now time.Time) error {
	if config.WorkInterval <= 0 {
		return fmt.Errorf("%w: work interval %s", ErrTimerInitializationFailed, config.WorkInterval)
	}
	if config.Technique == model.TechniquePomodoro && s.phase == PhaseIdle {
		s.pomodoroCount = 0
	}
	s.technique = config.Technique
	s.config = config
	s.rememberLocked(config)
	s.armLocked(now)
	return nil
}

func (s *Scheduler) armLocked(now time.Time) {
	s.phase = PhaseRunning
	s.nextBreakAt = now.Add(s.config.WorkInterval)
	s.remaining = s.config.WorkInterval
	s.current = nil
	s.startTickerLocked()
}

func (s *Scheduler) haltLocked() {
	if s.technique != model.TechniqueUnset {
		s.rememberLocked(s.config)
	}
	s.stopTickerLocked()
	s.phase = PhaseIdle
	s.nextBreakAt = time.Time{}
	s.remaining = 0
	s.current = nil
}

func (s *Scheduler) enterBreakLocked(now time.Time) BreakDue {
	if s.technique == model.TechniquePomodoro {
		s.pomodoroCount++
	}
	duration, long := breakDurationFor(s.config, s.pomodoroCount)
	due := BreakDue{
		Technique:     s.technique,
		Duration:      duration,
		PomodoroCount: s.pomodoroCount,
		Long:          long,
		At:            now,
	}
	if long {
		s.pomodoroCount = 0
	}

	s.phase = PhaseBreakDue
	s.nextBreakAt = time.Time{}
	s.remaining = 0
	s.current = &due
	s.stopTickerLocked()
	return due
}

func (s *Scheduler) rememberLocked(config model.ScheduleConfig) {
	if config.Technique == model.TechniqueUnset {
		return
	}
	s.lastUsed = &config
}

func (s *Scheduler) phaseEventLocked(now time.Time) Event {
	event := Event{
		Type:          EventPhaseChange,
		Phase:         s.phase,
		Technique:     s.technique,
		Remaining:     s.remaining,
		PomodoroCount: s.pomodoroCount,
		At:            now,
	}
	if s.current != nil {
		current := *s.current
		event.Break = &current
	}
	return event
}

func (s *Scheduler) startTickerLocked() {
	if s.options.ManualTick || s.closed || s.stopCh != nil {
		return
	}
	stopCh := make(chan struct{})
	s.stopCh = stopCh
	go s.run(stopCh)
}

func (s *Scheduler) stopTickerLocked() {
	if s.stopCh == nil {
		return
	}
	close(s.stopCh)
	s.stopCh = nil
}

func (s *Scheduler) run(stopCh chan struct{}) {
	ticker := time.NewTicker(s.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			select {
			case <-stopCh:
				return
			default:
			}
			s.Tick(s.now())
		}
	}
}

func (s *Scheduler) now() time.Time {
	return s.options.Clock()
}

func (s *Scheduler) emitLocked(event Event) {
	for _, ch := range s.events {
		select {
		case ch <- event:
		default:
		}
	}
}

// breakDurationFor picks the break length and whether it is the long one.
func breakDurationFor(config model.ScheduleConfig, pomodoroCount int) (time.Duration, bool) {
	switch config.Technique {
	case model.TechniquePomodoro:
		every := config.LongBreakEvery
		if every <= 0 {
			every = 4
		}
		if pomodoroCount > 0 && pomodoroCount%every == 0 {
			return config.LongBreakDuration, true
		}
		return config.ShortBreakDuration, false
	case model.TechniqueCustom:
		return config.CustomBreakDuration, false
	default:
		return config.ShortBreakDuration, false
	}
}

func fillDefaults(defaults model.Defaults) model.Defaults {
	if defaults == (model.Defaults{}) {
		return model.DefaultDurations()
	}
	return defaults
}
