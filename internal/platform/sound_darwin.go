//go:build darwin

package platform

func chimeCommands() [][]string {
	return [][]string{
		{"afplay", "/System/Library/Sounds/Glass.aiff"},
	}
}
