//go:build windows

package platform

func chimeCommands() [][]string {
	return [][]string{
		{"powershell", "-NoProfile", "-Command", "[System.Media.SystemSounds]::Asterisk.Play()"},
	}
}
