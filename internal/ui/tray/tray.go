package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/systray"

	"restbreak/internal/core/model"
	"restbreak/internal/core/scheduler"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnSelectTechnique func(model.Technique)
	OnStartStop       func()
	OnTogglePause     func()
	OnSkipBreak       func()
	OnPreferences     func()
	OnQuit            func()
}

// Manager handles system tray state. All methods must run on the fyne goroutine.
type Manager struct {
	app       desktop.App
	callbacks Callbacks

	statusItem     *fyne.MenuItem
	historyItem    *fyne.MenuItem
	recentItem     *fyne.MenuItem
	techniqueItems map[model.Technique]*fyne.MenuItem
	startStopItem  *fyne.MenuItem
	pauseItem      *fyne.MenuItem
	skipItem       *fyne.MenuItem

	phase     scheduler.Phase
	technique model.Technique
	title     string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:            app,
		callbacks:      callbacks,
		techniqueItems: make(map[model.Technique]*fyne.MenuItem),
		phase:          scheduler.PhaseIdle,
	}

	manager.statusItem = fyne.NewMenuItem("Status: idle", nil)
	manager.statusItem.Disabled = true

	manager.historyItem = fyne.NewMenuItem("Breaks today: 0", nil)
	manager.historyItem.Disabled = true

	manager.recentItem = fyne.NewMenuItem("Recent breaks", nil)
	manager.recentItem.ChildMenu = fyne.NewMenu("")
	manager.recentItem.Disabled = true

	for _, technique := range model.Techniques {
		technique := technique
		manager.techniqueItems[technique] = fyne.NewMenuItem(technique.String(), func() {
			if manager.callbacks.OnSelectTechnique != nil {
				manager.callbacks.OnSelectTechnique(technique)
			}
		})
	}

	manager.startStopItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnStartStop != nil {
			manager.callbacks.OnStartStop()
		}
	})

	manager.pauseItem = fyne.NewMenuItem("Pause", func() {
		if manager.callbacks.OnTogglePause != nil {
			manager.callbacks.OnTogglePause()
		}
	})

	manager.skipItem = fyne.NewMenuItem("Skip break", func() {
		if manager.callbacks.OnSkipBreak != nil {
			manager.callbacks.OnSkipBreak()
		}
	})

	manager.applyPhase()
	manager.refreshMenu()
	return manager
}

// Update reflects a scheduler event in the menu and the menu-bar title.
func (manager *Manager) Update(event scheduler.Event) {
	phaseChanged := event.Phase != manager.phase || event.Technique != manager.technique
	manager.phase = event.Phase
	manager.technique = event.Technique

	manager.statusItem.Label = "Status: " + statusText(event)
	manager.setTitle(titleText(event))

	if phaseChanged {
		manager.applyPhase()
	}
	manager.refreshMenu()
}

// SetTechnique marks the selected technique while idle.
func (manager *Manager) SetTechnique(technique model.Technique) {
	manager.technique = technique
	manager.applyPhase()
	manager.refreshMenu()
}

// SetHistory updates the breaks-today line and the recent breaks submenu.
func (manager *Manager) SetHistory(label string, recent []string) {
	manager.historyItem.Label = label

	items := make([]*fyne.MenuItem, 0, len(recent))
	for _, line := range recent {
		item := fyne.NewMenuItem(line, nil)
		item.Disabled = true
		items = append(items, item)
	}
	manager.recentItem.ChildMenu = fyne.NewMenu("", items...)
	manager.recentItem.Disabled = len(items) == 0
	manager.refreshMenu()
}

func (manager *Manager) applyPhase() {
	for technique, item := range manager.techniqueItems {
		item.Checked = technique == manager.technique
	}

	manager.startStopItem.Label = "Stop"
	if manager.phase == scheduler.PhaseIdle {
		manager.startStopItem.Label = "Start"
	}

	manager.pauseItem.Label = "Pause"
	if manager.phase == scheduler.PhasePaused {
		manager.pauseItem.Label = "Resume"
	}
	manager.pauseItem.Disabled = manager.phase != scheduler.PhaseRunning && manager.phase != scheduler.PhasePaused
	manager.skipItem.Disabled = manager.phase != scheduler.PhaseRunning && manager.phase != scheduler.PhaseBreakDue

	if manager.app != nil {
		if manager.phase == scheduler.PhaseRunning || manager.phase == scheduler.PhaseBreakDue {
			manager.app.SetSystemTrayIcon(theme.VisibilityIcon())
		} else {
			manager.app.SetSystemTrayIcon(theme.VisibilityOffIcon())
		}
	}
}

func (manager *Manager) setTitle(title string) {
	if title == manager.title {
		return
	}
	manager.title = title
	systray.SetTitle(title)
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}

	items := []*fyne.MenuItem{manager.statusItem, manager.historyItem, manager.recentItem, fyne.NewMenuItemSeparator()}
	for _, technique := range model.Techniques {
		items = append(items, manager.techniqueItems[technique])
	}
	items = append(items,
		fyne.NewMenuItemSeparator(),
		manager.startStopItem,
		manager.pauseItem,
		manager.skipItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	)
	manager.app.SetSystemTrayMenu(fyne.NewMenu("RestBreak", items...))
}

func statusText(event scheduler.Event) string {
	switch event.Phase {
	case scheduler.PhaseRunning:
		return fmt.Sprintf("next break in %s", scheduler.FormatCountdown(event.Remaining))
	case scheduler.PhasePaused:
		return fmt.Sprintf("paused (%s left)", scheduler.FormatCountdown(event.Remaining))
	case scheduler.PhaseBreakDue:
		return "on break"
	default:
		return "idle"
	}
}

func titleText(event scheduler.Event) string {
	switch event.Phase {
	case scheduler.PhaseRunning:
		return scheduler.FormatCountdown(event.Remaining)
	case scheduler.PhasePaused:
		return "Paused"
	case scheduler.PhaseBreakDue:
		return "Break"
	default:
		return ""
	}
}
