package storage

import (
	"errors"
	"time"

	"restbreak/internal/core/model"
)

// Settings is the user-editable view of the store.
type Settings struct {
	Technique         model.Technique
	ReminderInterval  time.Duration
	BreakDuration     time.Duration
	PlaySound         bool
	ShowNotifications bool
	LaunchAtLogin     bool
	IdleReset         bool
}

// LoadSettings reads user preferences from store.
func LoadSettings(store *Store) Settings {
	technique, ok := model.ParseTechnique(store.String(model.KeyTechnique))
	if !ok {
		technique = model.TechniqueFixedInterval
	}
	return Settings{
		Technique:         technique,
		ReminderInterval:  secondsToDuration(store.Int(model.KeyReminderInterval)),
		BreakDuration:     secondsToDuration(store.Int(model.KeyBreakDuration)),
		PlaySound:         store.Bool(model.KeyPlaySound),
		ShowNotifications: store.Bool(model.KeyShowNotifications),
		LaunchAtLogin:     store.Bool(model.KeyLaunchAtLogin),
		IdleReset:         store.Bool(model.KeyIdleReset),
	}
}

// SaveSettings writes user preferences to store. Every key is attempted.
func SaveSettings(store *Store, settings Settings) error {
	return errors.Join(
		store.SetString(model.KeyTechnique, string(settings.Technique)),
		store.SetInt(model.KeyReminderInterval, int(settings.ReminderInterval/time.Second)),
		store.SetInt(model.KeyBreakDuration, int(settings.BreakDuration/time.Second)),
		store.SetBool(model.KeyPlaySound, settings.PlaySound),
		store.SetBool(model.KeyShowNotifications, settings.ShowNotifications),
		store.SetBool(model.KeyLaunchAtLogin, settings.LaunchAtLogin),
		store.SetBool(model.KeyIdleReset, settings.IdleReset),
	)
}

// ScheduleChanged reports whether moving from previous to settings needs a
// fresh countdown: another technique, or new values for the active custom rule.
func (settings Settings) ScheduleChanged(previous Settings) bool {
	if settings.Technique != previous.Technique {
		return true
	}
	if settings.Technique != model.TechniqueCustom {
		return false
	}
	return settings.ReminderInterval != previous.ReminderInterval || settings.BreakDuration != previous.BreakDuration
}
