package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyExecPath indicates the launcher has nothing to start.
var ErrEmptyExecPath = errors.New("exec path is empty")

// LoginItem registers the application to start with the user session.
type LoginItem interface {
	Enable(execPath string) error
	Disable() error
	Enabled() (bool, error)
}

// ApplyLaunchAtLogin registers or removes the running executable as a login item.
func ApplyLaunchAtLogin(item LoginItem, enabled bool) error {
	if !enabled {
		return item.Disable()
	}

	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("launch at login: resolve executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}
	return item.Enable(execPath)
}

// fileLoginItem is a launcher file the session manager picks up at login.
type fileLoginItem struct {
	path   string
	render func(execPath string) string
}

func (item *fileLoginItem) Enable(execPath string) error {
	if execPath == "" {
		return fmt.Errorf("enable login item: %w", ErrEmptyExecPath)
	}
	if err := os.MkdirAll(filepath.Dir(item.path), 0o755); err != nil {
		return fmt.Errorf("enable login item: create dir: %w", err)
	}
	if err := os.WriteFile(item.path, []byte(item.render(execPath)), 0o644); err != nil {
		return fmt.Errorf("enable login item: write %s: %w", filepath.Base(item.path), err)
	}
	return nil
}

func (item *fileLoginItem) Disable() error {
	if err := os.Remove(item.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable login item: %w", err)
	}
	return nil
}

func (item *fileLoginItem) Enabled() (bool, error) {
	_, err := os.Stat(item.path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("inspect login item: %w", err)
}

// slug lowercases appName and replaces spaces for use in file names and labels.
func slug(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "restbreak"
	}
	name = strings.ToLower(name)
	return strings.ReplaceAll(name, " ", "-")
}
