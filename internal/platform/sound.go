package platform

import (
	"errors"
	"fmt"
	"os/exec"
)

var (
	// ErrSoundInitializationFailed indicates no audio player is available.
	ErrSoundInitializationFailed = errors.New("sound initialization failed")
	// ErrNotificationPermissionDenied indicates the desktop cannot deliver notifications.
	ErrNotificationPermissionDenied = errors.New("notification permission denied")
)

// Chime plays the break sound through a system audio player.
type Chime struct {
	command []string
}

// NewChime locates a player for the current platform.
func NewChime() (*Chime, error) {
	for _, candidate := range chimeCommands() {
		if _, err := exec.LookPath(candidate[0]); err == nil {
			return &Chime{command: candidate}, nil
		}
	}
	return nil, ErrSoundInitializationFailed
}

// Play starts the sound without waiting for it to finish.
func (chime *Chime) Play() error {
	if chime == nil || len(chime.command) == 0 {
		return ErrSoundInitializationFailed
	}
	command := exec.Command(chime.command[0], chime.command[1:]...)
	if err := command.Start(); err != nil {
		return fmt.Errorf("play sound: %w", err)
	}
	go func() {
		_ = command.Wait()
	}()
	return nil
}
