//go:build !linux

package platform

// CheckNotifications reports whether the session can deliver desktop notifications.
func CheckNotifications() error {
	return nil
}
