//go:build linux

package platform

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckNotificationsWithoutSessionBus(t *testing.T) {
	t.Setenv("DBUS_SESSION_BUS_ADDRESS", "")
	require.ErrorIs(t, CheckNotifications(), ErrNotificationPermissionDenied)
}

func TestCheckNotificationsWithSessionBus(t *testing.T) {
	t.Setenv("DBUS_SESSION_BUS_ADDRESS", "unix:path=/run/user/1000/bus")
	require.NoError(t, CheckNotifications())
}
