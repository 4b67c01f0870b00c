package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		name      string
		remaining time.Duration
		want      string
	}{
		{name: "negative clamps", remaining: -5 * time.Second, want: "0s"},
		{name: "zero", remaining: 0, want: "0s"},
		{name: "sub second", remaining: 900 * time.Millisecond, want: "0s"},
		{name: "seconds", remaining: 42 * time.Second, want: "42s"},
		{name: "just under a minute", remaining: 59*time.Second + 999*time.Millisecond, want: "59s"},
		{name: "one minute", remaining: time.Minute, want: "1:00"},
		{name: "minutes and seconds", remaining: 19*time.Minute + 5*time.Second, want: "19:05"},
		{name: "past an hour", remaining: 90 * time.Minute, want: "90:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCountdown(tt.remaining))
		})
	}
}
