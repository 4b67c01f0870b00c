package overlay

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"restbreak/internal/core/model"
	"restbreak/internal/core/scheduler"
)

// ErrWindowCreationFailed indicates the driver could not provide an overlay window.
var ErrWindowCreationFailed = errors.New("window creation failed")

const refreshInterval = 250 * time.Millisecond

// Config defines overlay visuals.
type Config struct {
	Opacity    uint8
	Fullscreen bool
}

// Window manages the break overlay UI.
type Window struct {
	window       fyne.Window
	config       Config
	timerLabel   *canvas.Text
	titleLabel   *canvas.Text
	messageLabel *canvas.Text
	cycleLabel   *canvas.Text
	skipButton   *widget.Button
	cancelCtx    context.CancelFunc
	onSkip       func()
	onFinished   func()
	visible      bool
}

const (
	overlayWidthFraction  = float32(0.3)
	overlayHeightFraction = float32(0.25)
	defaultScreenWidth    = float32(1920)
	defaultScreenHeight   = float32(1080)
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the overlay window. It stays hidden until Show.
func New(app fyne.App, config Config) (*Window, error) {
	if app == nil {
		return nil, ErrWindowCreationFailed
	}
	window := app.NewWindow("RestBreak")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if window == nil {
		return nil, ErrWindowCreationFailed
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	textColor := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	accentColor := color.NRGBA{R: 232, G: 190, B: 66, A: 255}

	background := canvas.NewRectangle(color.NRGBA{R: 0, G: 0, B: 0, A: config.Opacity})

	titleLabel := canvas.NewText("Time for a break", textColor)
	titleLabel.Alignment = fyne.TextAlignCenter
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 32

	messageLabel := canvas.NewText("", textColor)
	messageLabel.Alignment = fyne.TextAlignCenter
	messageLabel.TextSize = 18

	cycleLabel := canvas.NewText("", textColor)
	cycleLabel.Alignment = fyne.TextAlignCenter
	cycleLabel.TextSize = 14

	timerLabel := canvas.NewText("0s", accentColor)
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 48

	skipButton := widget.NewButton("Skip", nil)

	content := container.NewCenter(container.NewVBox(
		titleLabel,
		messageLabel,
		cycleLabel,
		timerLabel,
		container.NewCenter(skipButton),
	))
	window.SetContent(container.NewStack(background, content))

	overlay := &Window{
		window:       window,
		config:       config,
		timerLabel:   timerLabel,
		titleLabel:   titleLabel,
		messageLabel: messageLabel,
		cycleLabel:   cycleLabel,
		skipButton:   skipButton,
	}
	skipButton.OnTapped = func() {
		if overlay.onSkip != nil {
			overlay.onSkip()
		}
	}
	window.SetCloseIntercept(func() {
		skipButton.OnTapped()
	})

	return overlay, nil
}

// SetOnSkip sets the handler for the skip button.
func (overlay *Window) SetOnSkip(handler func()) {
	overlay.onSkip = handler
}

// SetOnFinished sets the handler fired when the break countdown elapses.
func (overlay *Window) SetOnFinished(handler func()) {
	overlay.onFinished = handler
}

// Show presents a due break and starts timing it. Must run on the fyne goroutine.
func (overlay *Window) Show(due scheduler.BreakDue) {
	overlay.stopCountdown()
	ctx, cancel := context.WithCancel(context.Background())
	overlay.cancelCtx = cancel

	overlay.titleLabel.Text = breakTitle(due)
	overlay.titleLabel.Refresh()
	overlay.messageLabel.Text = breakMessage(due)
	overlay.messageLabel.Refresh()
	overlay.cycleLabel.Text = cycleDescription(due)
	overlay.cycleLabel.Refresh()
	overlay.setRemainingUnsafe(due.Duration)

	overlay.applyWindowMode()
	overlay.window.Show()
	overlay.window.RequestFocus()
	overlay.visible = true

	go overlay.countdown(ctx, time.Now().Add(due.Duration))
}

// Hide closes the overlay and stops its countdown. Must run on the fyne goroutine.
func (overlay *Window) Hide() {
	overlay.stopCountdown()
	if !overlay.visible {
		return
	}
	overlay.visible = false
	if overlay.config.Fullscreen {
		overlay.window.SetFullScreen(false)
	}
	overlay.window.Hide()
}

func (overlay *Window) countdown(ctx context.Context, deadline time.Time) {
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			remaining := deadline.Sub(now)
			if remaining <= 0 {
				if overlay.onFinished != nil {
					overlay.onFinished()
				}
				return
			}
			fyne.Do(func() {
				if ctx.Err() == nil {
					overlay.setRemainingUnsafe(remaining)
				}
			})
		}
	}
}

func (overlay *Window) setRemainingUnsafe(remaining time.Duration) {
	// Round up so the label never shows 0s while the break is still running.
	overlay.timerLabel.Text = scheduler.FormatCountdown(remaining + time.Second - time.Nanosecond)
	overlay.timerLabel.Refresh()
}

func (overlay *Window) stopCountdown() {
	if overlay.cancelCtx != nil {
		overlay.cancelCtx()
		overlay.cancelCtx = nil
	}
}

func (overlay *Window) applyWindowMode() {
	overlay.applyNativeOpacity(overlay.config.Opacity)
	if overlay.config.Fullscreen {
		overlay.window.SetFullScreen(true)
		return
	}
	overlay.window.SetFullScreen(false)
	overlay.resizeToScreenFraction()
}

func (overlay *Window) resizeToScreenFraction() {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	canvasSize := overlay.window.Canvas().Size()
	// Canvas size can be reused as a proxy for monitor size when it is clearly screen-like.
	if canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}

	width := screenSize.Width * overlayWidthFraction
	height := screenSize.Height * overlayHeightFraction
	minSize := overlay.window.Content().MinSize()
	if width < minSize.Width {
		width = minSize.Width
	}
	if height < minSize.Height {
		height = minSize.Height
	}

	overlay.window.Resize(fyne.NewSize(width, height))
	overlay.window.CenterOnScreen()
}

func breakTitle(due scheduler.BreakDue) string {
	if due.Long {
		return "Time for a long break"
	}
	return "Time for a break"
}

func breakMessage(due scheduler.BreakDue) string {
	switch due.Technique {
	case model.TechniqueFixedInterval:
		return "Look at something 20 feet away until the timer runs out."
	case model.TechniquePomodoro:
		if due.Long {
			return "Cycle complete. Step away from the screen."
		}
		return "Stand up, stretch and rest your eyes."
	default:
		return "Step away from the screen for a moment."
	}
}

func cycleDescription(due scheduler.BreakDue) string {
	if due.Technique != model.TechniquePomodoro {
		return ""
	}
	return fmt.Sprintf("Pomodoro #%d", due.PomodoroCount)
}
