package platform

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultIdleThreshold is how long without input counts as being away.
	DefaultIdleThreshold = 5 * time.Minute

	idleCheckInterval = 5 * time.Second
)

// ErrIdleUnsupported reports that idle time cannot be read on this system.
var ErrIdleUnsupported = errors.New("idle detection unsupported")

// IdleProvider returns the duration since last user input.
type IdleProvider interface {
	IdleDuration() (time.Duration, error)
}

// NewIdleProvider returns a platform-specific idle provider.
func NewIdleProvider() IdleProvider {
	return newIdleProvider()
}

// IdleMonitor decides when a countdown should restart because the user was away.
type IdleMonitor struct {
	mu          sync.Mutex
	provider    IdleProvider
	threshold   time.Duration
	interval    time.Duration
	lastCheck   time.Time
	enabled     bool
	unsupported bool
	away        bool
}

// NewIdleMonitor polls provider at most every few seconds.
func NewIdleMonitor(provider IdleProvider, threshold time.Duration) *IdleMonitor {
	if threshold <= 0 {
		threshold = DefaultIdleThreshold
	}
	return &IdleMonitor{
		provider:  provider,
		threshold: threshold,
		interval:  idleCheckInterval,
		enabled:   true,
	}
}

// SetEnabled turns idle checks on or off.
func (monitor *IdleMonitor) SetEnabled(enabled bool) {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	monitor.enabled = enabled
	monitor.away = false
	monitor.lastCheck = time.Time{}
}

// Check reports whether the user has just crossed the idle threshold. It
// fires once per absence. ErrIdleUnsupported is returned once, after which
// the monitor stays silent.
func (monitor *IdleMonitor) Check(now time.Time) (bool, error) {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()

	if !monitor.enabled || monitor.unsupported || monitor.provider == nil {
		return false, nil
	}
	if !monitor.lastCheck.IsZero() && now.Sub(monitor.lastCheck) < monitor.interval {
		return false, nil
	}
	monitor.lastCheck = now

	idle, err := monitor.provider.IdleDuration()
	if err != nil {
		if errors.Is(err, ErrIdleUnsupported) {
			monitor.unsupported = true
		}
		return false, err
	}

	if idle < monitor.threshold {
		monitor.away = false
		return false, nil
	}
	if monitor.away {
		return false, nil
	}
	monitor.away = true
	return true, nil
}

func parseIdleMillis(output string) (time.Duration, error) {
	value := strings.TrimSpace(output)
	idleMillis, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle milliseconds: %w", err)
	}
	if idleMillis < 0 {
		idleMillis = 0
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}

var hidIdleTime = regexp.MustCompile(`"HIDIdleTime"\s*=\s*(\d+)`)

// parseHIDIdleTime reads the nanosecond counter from ioreg output.
func parseHIDIdleTime(output string) (time.Duration, error) {
	match := hidIdleTime.FindStringSubmatch(output)
	if match == nil {
		return 0, errors.New("parse HIDIdleTime: not found")
	}
	nanos, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse HIDIdleTime: %w", err)
	}
	return time.Duration(nanos), nil
}
