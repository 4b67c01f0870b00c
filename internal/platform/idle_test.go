package platform

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdleProvider struct {
	idle  time.Duration
	err   error
	calls int
}

func (provider *fakeIdleProvider) IdleDuration() (time.Duration, error) {
	provider.calls++
	return provider.idle, provider.err
}

func TestIdleMonitorFiresOncePerAbsence(t *testing.T) {
	provider := &fakeIdleProvider{idle: time.Minute}
	monitor := NewIdleMonitor(provider, 5*time.Minute)
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	reset, err := monitor.Check(now)
	require.NoError(t, err)
	assert.False(t, reset)

	provider.idle = 5 * time.Minute
	now = now.Add(idleCheckInterval)
	reset, err = monitor.Check(now)
	require.NoError(t, err)
	assert.True(t, reset)

	provider.idle = 6 * time.Minute
	now = now.Add(idleCheckInterval)
	reset, _ = monitor.Check(now)
	assert.False(t, reset, "still the same absence")

	provider.idle = time.Second
	now = now.Add(idleCheckInterval)
	reset, _ = monitor.Check(now)
	assert.False(t, reset)

	provider.idle = 10 * time.Minute
	now = now.Add(idleCheckInterval)
	reset, _ = monitor.Check(now)
	assert.True(t, reset, "a new absence fires again")
}

func TestIdleMonitorThrottlesChecks(t *testing.T) {
	provider := &fakeIdleProvider{}
	monitor := NewIdleMonitor(provider, 0)
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i <= 5; i++ {
		_, err := monitor.Check(now.Add(time.Duration(i) * time.Second))
		require.NoError(t, err)
	}
	assert.Equal(t, 2, provider.calls)
}

func TestIdleMonitorDisabled(t *testing.T) {
	provider := &fakeIdleProvider{idle: time.Hour}
	monitor := NewIdleMonitor(provider, time.Minute)
	monitor.SetEnabled(false)

	reset, err := monitor.Check(time.Now())
	require.NoError(t, err)
	assert.False(t, reset)
	assert.Zero(t, provider.calls)

	monitor.SetEnabled(true)
	reset, err = monitor.Check(time.Now())
	require.NoError(t, err)
	assert.True(t, reset)
}

func TestIdleMonitorReportsUnsupportedOnce(t *testing.T) {
	provider := &fakeIdleProvider{err: ErrIdleUnsupported}
	monitor := NewIdleMonitor(provider, time.Minute)
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	_, err := monitor.Check(now)
	assert.ErrorIs(t, err, ErrIdleUnsupported)

	_, err = monitor.Check(now.Add(time.Minute))
	assert.NoError(t, err)
	assert.Equal(t, 1, provider.calls)
}

func TestIdleMonitorKeepsPollingAfterTransientError(t *testing.T) {
	provider := &fakeIdleProvider{err: errors.New("xprintidle: exit status 1")}
	monitor := NewIdleMonitor(provider, time.Minute)
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	_, err := monitor.Check(now)
	assert.Error(t, err)

	provider.err = nil
	provider.idle = time.Hour
	reset, err := monitor.Check(now.Add(idleCheckInterval))
	require.NoError(t, err)
	assert.True(t, reset)
}

func TestParseIdleMillis(t *testing.T) {
	idle, err := parseIdleMillis("1500\n")
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, idle)

	idle, err = parseIdleMillis("-3")
	require.NoError(t, err)
	assert.Zero(t, idle)

	_, err = parseIdleMillis("")
	assert.Error(t, err)
}

func TestParseHIDIdleTime(t *testing.T) {
	output := `+-o IOHIDSystem  <class IOHIDSystem, id 0x100000123>
    {
      "HIDIdleTime" = 312000000000
      "HIDParameters" = {"HIDClickTime"=500000000}
    }`
	idle, err := parseHIDIdleTime(output)
	require.NoError(t, err)
	assert.Equal(t, 312*time.Second, idle)

	_, err = parseHIDIdleTime("no idle here")
	assert.Error(t, err)
}
