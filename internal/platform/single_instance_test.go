package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockPortIsStableAndInRange(t *testing.T) {
	port := lockPort("RestBreak")
	assert.Equal(t, port, lockPort(" restbreak "))
	assert.GreaterOrEqual(t, port, minLockPort)
	assert.LessOrEqual(t, port, maxLockPort)
}

func TestAcquireSingleInstance(t *testing.T) {
	appName := "restbreak-test-" + t.Name()

	guard, err := AcquireSingleInstance(appName)
	if err != nil {
		t.Skipf("lock port unavailable: %v", err)
	}
	require.NotNil(t, guard)

	_, err = AcquireSingleInstance(appName)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, guard.Release())
	require.NoError(t, guard.Release())

	again, err := AcquireSingleInstance(appName)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}
