package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"restbreak/internal/core/model"
	"restbreak/internal/core/scheduler"
	"restbreak/internal/history"
	"restbreak/internal/platform"
	"restbreak/internal/storage"
	"restbreak/internal/ui/overlay"
	"restbreak/internal/ui/preferences"
	"restbreak/internal/ui/tray"
)

const (
	overlayAlpha = 230
	dbTimeout    = 2 * time.Second
	recentBreaks = 5
)

// host owns the fyne collaborators. Its fields are only touched on the fyne
// goroutine; scheduler and idle are safe to call from anywhere.
type host struct {
	fyneApp   fyne.App
	store     *storage.Store
	history   *history.Store
	scheduler *scheduler.Scheduler
	idle      *platform.IdleMonitor
	chime     *platform.Chime
	loginItem platform.LoginItem

	overlay *overlay.Window
	prefs   *preferences.Window
	tray    *tray.Manager

	settings   storage.Settings
	current    *scheduler.BreakDue
	breakStart time.Time
	stopWatch  context.CancelFunc
}

func newHost(store *storage.Store, breaks *history.Store, tick time.Duration) (*host, error) {
	fyneApp := app.NewWithID(appID)
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return nil, errors.New("system tray unsupported on this platform")
	}

	h := &host{
		fyneApp:  fyneApp,
		store:    store,
		history:  breaks,
		settings: storage.LoadSettings(store),
		idle:     platform.NewIdleMonitor(platform.NewIdleProvider(), platform.DefaultIdleThreshold),
	}
	h.idle.SetEnabled(h.settings.IdleReset)

	loginItem, err := platform.NewLoginItem(appName)
	if err != nil {
		logrus.WithError(err).Warn("launch at login unavailable")
	}
	h.loginItem = loginItem

	chime, err := platform.NewChime()
	if err != nil {
		logrus.WithError(err).Warn("break sound unavailable")
	}
	h.chime = chime

	h.scheduler = scheduler.New(store, scheduler.Config{
		TickInterval: tick,
		Defaults:     store.Defaults(),
	})

	overlayWindow, err := overlay.New(fyneApp, overlay.Config{Opacity: overlayAlpha, Fullscreen: true})
	if err != nil {
		return nil, fmt.Errorf("create overlay: %w", err)
	}
	h.overlay = overlayWindow
	h.overlay.SetOnSkip(func() {
		h.endBreak(history.OutcomeSkipped)
	})
	h.overlay.SetOnFinished(func() {
		fyne.Do(func() {
			h.endBreak(history.OutcomeCompleted)
		})
	})

	h.prefs = preferences.New(fyneApp, h.settings, h.applySettings)

	trayWindow := fyneApp.NewWindow(appName)
	trayWindow.SetContent(widget.NewLabel("RestBreak is running in the system tray."))
	trayWindow.SetCloseIntercept(func() {
		trayWindow.Hide()
	})
	trayWindow.Hide()
	desktopApp.SetSystemTrayWindow(trayWindow)

	h.tray = tray.New(desktopApp, tray.Callbacks{
		OnSelectTechnique: h.selectTechnique,
		OnStartStop:       h.toggleStartStop,
		OnTogglePause:     h.togglePause,
		OnSkipBreak:       h.skip,
		OnPreferences:     h.prefs.Show,
		OnQuit:            h.quit,
	})

	h.scheduler.OnBreakDue(func(due scheduler.BreakDue) {
		fyne.Do(func() {
			h.presentBreak(due)
		})
	})

	return h, nil
}

func (h *host) run(initial string) {
	events := h.scheduler.Subscribe(8)
	go func() {
		for event := range events {
			event := event
			h.checkIdle(event)
			fyne.Do(func() {
				h.handleEvent(event)
			})
		}
	}()

	h.applyLaunchAtLogin()

	ctx, cancel := context.WithCancel(context.Background())
	h.stopWatch = cancel
	err := h.store.Watch(ctx, func() {
		fyne.Do(h.reloadSettings)
	}, func(err error) {
		logrus.WithError(err).Warn("settings watcher")
	})
	if err != nil {
		logrus.WithError(err).Warn("settings file will not be watched")
	}

	name := string(h.settings.Technique)
	if initial != "" {
		name = initial
	}
	h.refreshHistory()
	h.fyneApp.Lifecycle().SetOnStarted(func() {
		h.selectAndStart(name)
	})

	h.fyneApp.Run()
}

func (h *host) selectTechnique(technique model.Technique) {
	if h.scheduler.IsActive(technique) {
		h.tray.SetTechnique(technique)
		return
	}
	h.selectAndStart(string(technique))
}

func (h *host) selectAndStart(name string) {
	technique, err := h.scheduler.SelectTechnique(name)
	if err != nil {
		h.reportTechniqueError(name, err)
		return
	}
	h.tray.SetTechnique(technique)
	if technique != h.settings.Technique {
		h.settings.Technique = technique
		if err := h.store.SetString(model.KeyTechnique, string(technique)); err != nil {
			logrus.WithError(err).Warn("persist technique")
		}
		h.prefs.UpdateSettings(h.settings)
	}

	if h.scheduler.Phase() != scheduler.PhaseIdle {
		logrus.WithField("technique", technique).Info("technique switched")
		return
	}
	if err := h.scheduler.Start(model.TechniqueUnset); err != nil {
		h.reportTechniqueError(name, err)
		return
	}
	logrus.WithField("technique", technique).Info("countdown started")
}

func (h *host) reportTechniqueError(name string, err error) {
	logrus.WithError(err).WithField("technique", name).Warn("select technique")
	if errors.Is(err, scheduler.ErrCustomRuleNotConfigured) {
		h.prefs.Show()
		dialog.ShowError(err, h.prefs.Window())
	}
}

func (h *host) toggleStartStop() {
	if h.scheduler.Phase() == scheduler.PhaseIdle {
		h.selectAndStart(string(h.settings.Technique))
		return
	}
	h.scheduler.Stop()
	h.current = nil
	h.overlay.Hide()
	logrus.Info("countdown stopped")
}

func (h *host) togglePause() {
	switch h.scheduler.Phase() {
	case scheduler.PhaseRunning:
		if err := h.scheduler.Pause(); err != nil {
			logrus.WithError(err).Debug("pause")
		}
	case scheduler.PhasePaused:
		if err := h.scheduler.Resume(); err != nil {
			logrus.WithError(err).Debug("resume")
		}
	}
}

func (h *host) skip() {
	if h.current != nil {
		h.endBreak(history.OutcomeSkipped)
		return
	}
	if err := h.scheduler.Skip(); err != nil {
		logrus.WithError(err).Debug("skip")
	}
}

func (h *host) presentBreak(due scheduler.BreakDue) {
	h.current = &due
	h.breakStart = time.Now()
	logrus.WithFields(logrus.Fields{
		"technique": due.Technique,
		"duration":  due.Duration,
		"count":     due.PomodoroCount,
	}).Info("break due")

	h.overlay.Show(due)

	if h.settings.PlaySound {
		if err := h.chime.Play(); err != nil {
			logrus.WithError(err).Debug("play break sound")
		}
	}
	if h.settings.ShowNotifications {
		if err := platform.CheckNotifications(); err != nil {
			logrus.WithError(err).Debug("send notification")
		} else {
			h.fyneApp.SendNotification(fyne.NewNotification("Time for a break", breakNotice(due)))
		}
	}
}

func (h *host) endBreak(outcome history.Outcome) {
	due := h.current
	if due == nil {
		return
	}
	h.current = nil
	h.overlay.Hide()

	var err error
	if outcome == history.OutcomeSkipped {
		err = h.scheduler.Skip()
	} else {
		err = h.scheduler.BreakFinished()
	}
	if err != nil {
		logrus.WithError(err).WithField("outcome", outcome).Debug("end break")
		return
	}

	h.recordBreak(*due, outcome)
	h.refreshHistory()
}

func (h *host) recordBreak(due scheduler.BreakDue, outcome history.Outcome) {
	if h.history == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	err := h.history.Record(ctx, history.Entry{
		Technique:     string(due.Technique),
		Duration:      due.Duration,
		PomodoroCount: due.PomodoroCount,
		Outcome:       outcome,
		StartedAt:     h.breakStart,
		EndedAt:       time.Now(),
	})
	if err != nil {
		logrus.WithError(err).Warn("record break")
	}
}

func (h *host) refreshHistory() {
	if h.history == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	summary, err := h.history.SummarySince(ctx, history.StartOfDay(time.Now()))
	if err != nil {
		logrus.WithError(err).Warn("load break summary")
		return
	}
	recent, err := h.history.Recent(ctx, recentBreaks)
	if err != nil {
		logrus.WithError(err).Warn("load recent breaks")
	}
	lines := make([]string, 0, len(recent))
	for _, entry := range recent {
		lines = append(lines, entry.Label())
	}
	h.tray.SetHistory(summary.Label(), lines)
}

// checkIdle restarts a running countdown once the user has been away long
// enough. It runs on the event goroutine so the idle query never blocks the UI.
func (h *host) checkIdle(event scheduler.Event) {
	if event.Type != scheduler.EventProgress || event.Phase != scheduler.PhaseRunning {
		return
	}
	reset, err := h.idle.Check(event.At)
	if errors.Is(err, platform.ErrIdleUnsupported) {
		logrus.WithError(err).Info("idle reset disabled")
		return
	}
	if err != nil {
		logrus.WithError(err).Debug("read idle time")
		return
	}
	if !reset {
		return
	}
	if err := h.scheduler.Skip(); err != nil {
		logrus.WithError(err).Debug("idle reset")
		return
	}
	logrus.WithField("technique", event.Technique).Info("user away, countdown restarted")
}

func (h *host) handleEvent(event scheduler.Event) {
	h.tray.Update(event)
	// Events can trail the break sink, so the live phase decides.
	if h.current != nil && h.scheduler.Phase() != scheduler.PhaseBreakDue {
		h.current = nil
		h.overlay.Hide()
	}
}

func (h *host) applySettings(settings storage.Settings) {
	if err := storage.SaveSettings(h.store, settings); err != nil {
		logrus.WithError(err).Warn("save settings")
	}
	h.adoptSettings(settings)
}

func (h *host) reloadSettings() {
	settings := storage.LoadSettings(h.store)
	logrus.WithField("path", h.store.Path()).Info("settings file changed")
	h.prefs.UpdateSettings(settings)
	h.adoptSettings(settings)
}

func (h *host) adoptSettings(settings storage.Settings) {
	previous := h.settings
	h.settings = settings
	if settings.LaunchAtLogin != previous.LaunchAtLogin {
		h.applyLaunchAtLogin()
	}
	if settings.IdleReset != previous.IdleReset {
		h.idle.SetEnabled(settings.IdleReset)
	}
	h.scheduler.SetDefaults(h.store.Defaults())

	if settings.ScheduleChanged(previous) {
		h.selectAndStart(string(settings.Technique))
	}
}

func (h *host) applyLaunchAtLogin() {
	if h.loginItem == nil {
		return
	}
	enabled, err := h.loginItem.Enabled()
	if err == nil && enabled == h.settings.LaunchAtLogin {
		return
	}
	if err := platform.ApplyLaunchAtLogin(h.loginItem, h.settings.LaunchAtLogin); err != nil {
		logrus.WithError(err).WithField("enabled", h.settings.LaunchAtLogin).Warn("apply launch at login")
	}
}

func (h *host) quit() {
	if h.stopWatch != nil {
		h.stopWatch()
	}
	h.scheduler.Close()
	if h.history != nil {
		if err := h.history.Close(); err != nil {
			logrus.WithError(err).Warn("close break history")
		}
	}
	h.fyneApp.Quit()
}

func breakNotice(due scheduler.BreakDue) string {
	notice := fmt.Sprintf("Rest for %s.", scheduler.FormatCountdown(due.Duration))
	if due.Technique == model.TechniquePomodoro {
		notice = fmt.Sprintf("Pomodoro #%d done. %s", due.PomodoroCount, notice)
	}
	return notice
}
