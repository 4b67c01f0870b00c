package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"restbreak/internal/core/scheduler"
	"restbreak/internal/history"
	"restbreak/internal/platform"
	"restbreak/internal/storage"
)

const (
	appName = "RestBreak"
	appID   = "io.restbreak.app"
)

var (
	logLevel     = "info"
	configPath   = ""
	historyPath  = ""
	tickInterval = scheduler.DefaultTickInterval
	techniqueArg = ""
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}
	return nil
}

func main() {
	if err := NewCommand().Execute(); err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			fmt.Fprintln(os.Stderr, "RestBreak is already running")
		}
		os.Exit(1)
	}
}

// NewCommand builds the root command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restbreak",
		Short: "restbreak reminds you to take screen breaks from the system tray",
		Long: `restbreak lives in the system tray and interrupts you with a break overlay.

Techniques: 20-20-20 rule, Pomodoro, or a custom interval and duration.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return run()
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", logLevel, "log level (trace, debug, info, warn, error, fatal, panic)")
	cmd.Flags().StringVar(&configPath, "config", configPath, "settings file (default <user config dir>/RestBreak/settings.yaml)")
	cmd.Flags().StringVar(&historyPath, "history", historyPath, "break history database (default <user config dir>/RestBreak/history.db)")
	cmd.Flags().DurationVar(&tickInterval, "tick", tickInterval, "countdown refresh interval")
	cmd.Flags().StringVar(&techniqueArg, "technique", techniqueArg, "technique to start with: 20-20-20, pomodoro or custom")

	return cmd
}

func run() error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		logrus.WithError(err).Error("single instance")
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	if configPath == "" {
		if configPath, err = storage.DefaultPath(appName); err != nil {
			return err
		}
	}
	store, err := storage.Open(configPath)
	if err != nil {
		// A broken file still yields a usable store holding defaults.
		logrus.WithError(err).WithField("path", configPath).Warn("settings file unreadable, using defaults")
	}
	logrus.WithField("path", store.Path()).Debug("settings loaded")

	if historyPath == "" {
		if historyPath, err = history.DefaultPath(appName); err != nil {
			return err
		}
	}
	breaks, err := history.Open(historyPath)
	if err != nil {
		logrus.WithError(err).WithField("path", historyPath).Warn("break history disabled")
	}

	host, err := newHost(store, breaks, tickInterval)
	if err != nil {
		if breaks != nil {
			_ = breaks.Close()
		}
		return err
	}
	host.run(techniqueArg)
	return nil
}
