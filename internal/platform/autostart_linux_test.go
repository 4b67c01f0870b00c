//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesktopEntry(t *testing.T) {
	assert.Equal(t, "rest-break.desktop", desktopFileName(" Rest Break "))
	assert.Equal(t, "restbreak.desktop", desktopFileName(""))

	entry := buildDesktopEntry("RestBreak", "/opt/Rest Break/restbreak")
	assert.Contains(t, entry, "Name=RestBreak\n")
	assert.Contains(t, entry, "Exec=\"/opt/Rest Break/restbreak\"\n")
}

func TestLoginItemLifecycle(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	item, err := NewLoginItem("RestBreak")
	require.NoError(t, err)

	enabled, err := item.Enabled()
	require.NoError(t, err)
	assert.False(t, enabled)

	require.NoError(t, item.Enable("/usr/bin/restbreak"))
	entryPath := filepath.Join(configHome, "autostart", "restbreak.desktop")
	content, err := os.ReadFile(entryPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Exec=/usr/bin/restbreak\n")

	enabled, err = item.Enabled()
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, item.Disable())
	_, err = os.Stat(entryPath)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, item.Disable(), "disabling twice is a no-op")
	assert.ErrorIs(t, item.Enable(""), ErrEmptyExecPath)
}

func TestApplyLaunchAtLogin(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	item, err := NewLoginItem("RestBreak")
	require.NoError(t, err)

	require.NoError(t, ApplyLaunchAtLogin(item, true))
	enabled, err := item.Enabled()
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, ApplyLaunchAtLogin(item, false))
	enabled, err = item.Enabled()
	require.NoError(t, err)
	assert.False(t, enabled)
}
