package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"restbreak/internal/core/model"
	"restbreak/internal/storage"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      storage.Settings
	onSave        func(storage.Settings)
	technique     *widget.Select
	customInt     *widget.Entry
	customDur     *widget.Entry
	customHint    *widget.Label
	playSound     *widget.Check
	notifications *widget.Check
	launchAtLogin *widget.Check
	idleReset     *widget.Check

	// Entry texts as last rendered; unchanged text keeps the stored value.
	shownInt string
	shownDur string
}

// New creates a preferences window.
func New(app fyne.App, settings storage.Settings, onSave func(storage.Settings)) *Window {
	window := app.NewWindow("RestBreak Preferences")

	names := make([]string, 0, len(model.Techniques))
	for _, technique := range model.Techniques {
		names = append(names, technique.String())
	}

	customInt := widget.NewEntry()
	customDur := widget.NewEntry()
	customHint := widget.NewLabel("")
	customHint.Wrapping = fyne.TextWrapWord

	technique := widget.NewSelect(names, nil)

	playSound := widget.NewCheck("Play a sound when a break starts", nil)
	notifications := widget.NewCheck("Show a notification when a break starts", nil)
	launchAtLogin := widget.NewCheck("Launch at login", nil)
	idleReset := widget.NewCheck("Restart the countdown after 5 minutes away", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Technique", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		technique,
		widget.NewLabelWithStyle("Custom rule", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Break every"), customInt, widget.NewLabel("min or M:SS")),
		container.NewHBox(widget.NewLabel("Break duration"), customDur, widget.NewLabel("sec")),
		customHint,
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		playSound,
		notifications,
		launchAtLogin,
		idleReset,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 420))

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		technique:     technique,
		customInt:     customInt,
		customDur:     customDur,
		customHint:    customHint,
		playSound:     playSound,
		notifications: notifications,
		launchAtLogin: launchAtLogin,
		idleReset:     idleReset,
	}

	technique.OnChanged = func(string) {
		prefs.refreshHint()
	}
	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		window.Hide()
	}
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Window exposes the underlying fyne window, e.g. as a dialog parent.
func (prefs *Window) Window() fyne.Window {
	return prefs.window
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings storage.Settings) {
	prefs.settings = settings
	prefs.technique.SetSelected(settings.Technique.String())
	prefs.shownInt = formatInterval(settings.ReminderInterval)
	prefs.shownDur = formatSeconds(settings.BreakDuration)
	prefs.customInt.SetText(prefs.shownInt)
	prefs.customDur.SetText(prefs.shownDur)
	prefs.playSound.SetChecked(settings.PlaySound)
	prefs.notifications.SetChecked(settings.ShowNotifications)
	prefs.launchAtLogin.SetChecked(settings.LaunchAtLogin)
	prefs.idleReset.SetChecked(settings.IdleReset)
	prefs.refreshHint()
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if technique, ok := model.ParseTechnique(prefs.technique.Selected); ok {
		settings.Technique = technique
	}
	if prefs.customInt.Text != prefs.shownInt {
		if interval, ok := parseInterval(prefs.customInt.Text); ok {
			settings.ReminderInterval = interval
		}
	}
	if prefs.customDur.Text != prefs.shownDur {
		if duration, ok := parseSeconds(prefs.customDur.Text); ok {
			settings.BreakDuration = duration
		}
	}

	settings.PlaySound = prefs.playSound.Checked
	settings.ShowNotifications = prefs.notifications.Checked
	settings.LaunchAtLogin = prefs.launchAtLogin.Checked
	settings.IdleReset = prefs.idleReset.Checked

	prefs.UpdateSettings(settings)
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func (prefs *Window) refreshHint() {
	if prefs.technique.Selected != model.TechniqueCustom.String() {
		prefs.customHint.SetText("")
		return
	}
	prefs.customHint.SetText("Both custom values must be greater than zero.")
}
