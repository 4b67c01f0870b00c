//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// NewLoginItem returns the XDG autostart entry for appName.
func NewLoginItem(appName string) (LoginItem, error) {
	configDir, err := os.UserConfigDir()
	if err != nil || configDir == "" {
		homeDir, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("locate autostart dir: %w", homeErr)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return &fileLoginItem{
		path: filepath.Join(configDir, "autostart", desktopFileName(appName)),
		render: func(execPath string) string {
			return buildDesktopEntry(appName, execPath)
		},
	}, nil
}

func desktopFileName(appName string) string {
	return slug(appName) + ".desktop"
}

func buildDesktopEntry(appName, execPath string) string {
	if strings.Contains(execPath, " ") && !strings.HasPrefix(execPath, `"`) {
		execPath = `"` + execPath + `"`
	}

	var entry strings.Builder
	entry.WriteString("[Desktop Entry]\n")
	entry.WriteString("Type=Application\n")
	fmt.Fprintf(&entry, "Name=%s\n", strings.TrimSpace(appName))
	entry.WriteString("Comment=Screen break reminder\n")
	fmt.Fprintf(&entry, "Exec=%s\n", execPath)
	entry.WriteString("X-GNOME-Autostart-enabled=true\n")
	entry.WriteString("Terminal=false\n")
	return entry.String()
}
