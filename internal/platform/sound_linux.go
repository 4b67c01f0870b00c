//go:build linux

package platform

func chimeCommands() [][]string {
	return [][]string{
		{"canberra-gtk-play", "--id", "complete"},
		{"paplay", "/usr/share/sounds/freedesktop/stereo/complete.oga"},
		{"aplay", "-q", "/usr/share/sounds/alsa/Front_Center.wav"},
	}
}
