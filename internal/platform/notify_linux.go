//go:build linux

package platform

import "os"

// CheckNotifications reports whether the session can deliver desktop notifications.
func CheckNotifications() error {
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		return ErrNotificationPermissionDenied
	}
	return nil
}
