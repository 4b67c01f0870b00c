package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"restbreak/internal/core/model"
)

const settingsFileName = "settings.yaml"

// Store is a persisted key-value settings store backed by a YAML file.
// An empty path keeps values in memory only.
type Store struct {
	mu     sync.RWMutex
	path   string
	values map[string]any

	// written is the last content read from or saved to path.
	written []byte
}

// DefaultValues returns the values used when a key was never written.
func DefaultValues() map[string]any {
	return map[string]any{
		model.KeyTechnique:         string(model.TechniqueFixedInterval),
		model.KeyReminderInterval:  0,
		model.KeyBreakDuration:     0,
		model.KeyPlaySound:         true,
		model.KeyShowNotifications: true,
		model.KeyLaunchAtLogin:     false,
		model.KeyIdleReset:         true,
	}
}

// Open reads settings from path. A missing file yields defaults.
func Open(path string) (*Store, error) {
	store := &Store{
		path:   path,
		values: DefaultValues(),
	}
	if path == "" {
		return store, nil
	}

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return store, nil
		}
		return store, fmt.Errorf("read settings file: %w", err)
	}

	values, err := decodeSettings(rawData)
	if err != nil {
		return store, err
	}
	store.values = values
	store.written = rawData
	return store, nil
}

// Reload re-reads the file after an external edit. It reports false when the
// content is what the store last read or wrote.
func (store *Store) Reload() (bool, error) {
	if store.path == "" {
		return false, nil
	}
	rawData, err := os.ReadFile(store.path)
	if err != nil {
		return false, fmt.Errorf("read settings file: %w", err)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if bytes.Equal(rawData, store.written) {
		return false, nil
	}
	values, err := decodeSettings(rawData)
	if err != nil {
		return false, err
	}
	store.values = values
	store.written = rawData
	return true, nil
}

func decodeSettings(rawData []byte) (map[string]any, error) {
	var fileData map[string]any
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return nil, fmt.Errorf("parse settings yaml: %w", err)
	}
	values := DefaultValues()
	for key, value := range fileData {
		values[key] = value
	}
	return values, nil
}

// NewMemory returns a store that is never written to disk.
func NewMemory() *Store {
	store, _ := Open("")
	return store
}

// DefaultPath returns the settings file location under the user config directory.
func DefaultPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// Path returns the backing file path.
func (store *Store) Path() string {
	return store.path
}

// Int returns the integer stored under key, or 0.
func (store *Store) Int(key string) int {
	store.mu.RLock()
	defer store.mu.RUnlock()

	switch value := store.values[key].(type) {
	case int:
		return value
	case int64:
		return int(value)
	case uint64:
		return int(value)
	case float64:
		return int(value)
	default:
		return 0
	}
}

// Bool returns the boolean stored under key, or false.
func (store *Store) Bool(key string) bool {
	store.mu.RLock()
	defer store.mu.RUnlock()

	value, _ := store.values[key].(bool)
	return value
}

// String returns the string stored under key, or "".
func (store *Store) String(key string) string {
	store.mu.RLock()
	defer store.mu.RUnlock()

	value, _ := store.values[key].(string)
	return value
}

// SetInt stores value under key and persists.
func (store *Store) SetInt(key string, value int) error {
	return store.set(key, value)
}

// SetBool stores value under key and persists.
func (store *Store) SetBool(key string, value bool) error {
	return store.set(key, value)
}

// SetString stores value under key and persists.
func (store *Store) SetString(key string, value string) error {
	return store.set(key, value)
}

// Defaults builds technique durations from the stock values and any positive overrides.
func (store *Store) Defaults() model.Defaults {
	defaults := model.DefaultDurations()
	if seconds := store.Int(model.KeyPomodoroWorkInterval); seconds > 0 {
		defaults.PomodoroWorkInterval = secondsToDuration(seconds)
	}
	if seconds := store.Int(model.KeyPomodoroShortBreak); seconds > 0 {
		defaults.PomodoroShortBreak = secondsToDuration(seconds)
	}
	if seconds := store.Int(model.KeyPomodoroLongBreak); seconds > 0 {
		defaults.PomodoroLongBreak = secondsToDuration(seconds)
	}
	return defaults
}

func (store *Store) set(key string, value any) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.values[key] = value
	return store.saveLocked()
}

func (store *Store) saveLocked() error {
	if store.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := yaml.Marshal(store.values)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	store.written = serialized
	return nil
}

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
