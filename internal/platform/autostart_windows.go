//go:build windows

package platform

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

// registryLoginItem is a value under the current user's Run key.
type registryLoginItem struct {
	name string
}

// NewLoginItem returns the Run key entry for appName.
func NewLoginItem(appName string) (LoginItem, error) {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "RestBreak"
	}
	return &registryLoginItem{name: name}, nil
}

func (item *registryLoginItem) Enable(execPath string) error {
	if execPath == "" {
		return fmt.Errorf("enable login item: %w", ErrEmptyExecPath)
	}
	quoted := `"` + strings.Trim(execPath, `"`) + `"`
	return runReg("enable login item", "add", registryRunKey, "/v", item.name, "/t", "REG_SZ", "/d", quoted, "/f")
}

func (item *registryLoginItem) Disable() error {
	enabled, err := item.Enabled()
	if err != nil || !enabled {
		return err
	}
	return runReg("disable login item", "delete", registryRunKey, "/v", item.name, "/f")
}

func (item *registryLoginItem) Enabled() (bool, error) {
	err := exec.Command("reg", "query", registryRunKey, "/v", item.name).Run()
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, fmt.Errorf("inspect login item: %w", err)
}

func runReg(action string, args ...string) error {
	output, err := exec.Command("reg", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: reg %s: %w: %s", action, args[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}
