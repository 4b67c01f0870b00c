package preferences

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restbreak/internal/core/model"
	"restbreak/internal/storage"
)

func customSettings(interval, duration time.Duration) storage.Settings {
	return storage.Settings{
		Technique:         model.TechniqueCustom,
		ReminderInterval:  interval,
		BreakDuration:     duration,
		PlaySound:         true,
		ShowNotifications: true,
		IdleReset:         true,
	}
}

func TestSaveKeepsUntouchedCustomValues(t *testing.T) {
	app := test.NewTempApp(t)

	for _, interval := range []time.Duration{90 * time.Second, 30 * time.Second, 25 * time.Minute} {
		settings := customSettings(interval, 20*time.Second)
		var saved []storage.Settings
		prefs := New(app, settings, func(settings storage.Settings) {
			saved = append(saved, settings)
		})

		prefs.handleSave()

		require.Len(t, saved, 1)
		assert.Equal(t, settings, saved[0], "interval %s", interval)
	}
}

func TestSaveParsesEditedInterval(t *testing.T) {
	app := test.NewTempApp(t)

	var saved storage.Settings
	prefs := New(app, customSettings(90*time.Second, 20*time.Second), func(settings storage.Settings) {
		saved = settings
	})
	assert.Equal(t, "1:30", prefs.customInt.Text)

	prefs.customInt.SetText("2:30")
	prefs.customDur.SetText("45")
	prefs.idleReset.SetChecked(false)
	prefs.handleSave()

	assert.Equal(t, 150*time.Second, saved.ReminderInterval)
	assert.Equal(t, 45*time.Second, saved.BreakDuration)
	assert.False(t, saved.IdleReset)

	// A second save without edits keeps the new values.
	prefs.handleSave()
	assert.Equal(t, 150*time.Second, saved.ReminderInterval)
}

func TestSaveIgnoresInvalidInterval(t *testing.T) {
	app := test.NewTempApp(t)

	var saved storage.Settings
	prefs := New(app, customSettings(90*time.Second, 20*time.Second), func(settings storage.Settings) {
		saved = settings
	})

	prefs.customInt.SetText("1:75")
	prefs.handleSave()

	assert.Equal(t, 90*time.Second, saved.ReminderInterval)
	assert.Equal(t, "1:30", prefs.customInt.Text)
}

func TestIntervalFormatting(t *testing.T) {
	tests := []struct {
		value time.Duration
		want  string
	}{
		{0, ""},
		{-time.Minute, ""},
		{30 * time.Second, "0:30"},
		{90 * time.Second, "1:30"},
		{25 * time.Minute, "25"},
		{61*time.Minute + 5*time.Second, "61:05"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatInterval(tt.value), "%s", tt.value)
	}
}

func TestIntervalParsing(t *testing.T) {
	tests := []struct {
		text string
		want time.Duration
		ok   bool
	}{
		{"", 0, true},
		{"25", 25 * time.Minute, true},
		{" 1:30 ", 90 * time.Second, true},
		{"0:30", 30 * time.Second, true},
		{"1:5", 0, false},
		{"1:60", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
		{"1:xx", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseInterval(tt.text)
		assert.Equal(t, tt.ok, ok, "%q", tt.text)
		assert.Equal(t, tt.want, got, "%q", tt.text)
	}
}
