package model

// Settings store keys.
const (
	KeyTechnique         = "technique"
	KeyReminderInterval  = "reminderInterval"
	KeyBreakDuration     = "breakDuration"
	KeyPlaySound         = "playSound"
	KeyShowNotifications = "showNotifications"
	KeyLaunchAtLogin     = "launchAtLogin"
	KeyIdleReset         = "idleReset"

	KeyPomodoroWorkInterval = "pomodoroWorkInterval"
	KeyPomodoroShortBreak   = "pomodoroShortBreak"
	KeyPomodoroLongBreak    = "pomodoroLongBreak"
)
