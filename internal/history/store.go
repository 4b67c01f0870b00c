// Package history records presented breaks in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

const (
	historyFileName = "history.db"
	// Fixed width keeps lexical order equal to time order.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Outcome describes how a break ended.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeSkipped   Outcome = "skipped"
)

// Entry is a single presented break.
type Entry struct {
	Technique     string
	Duration      time.Duration
	PomodoroCount int
	Outcome       Outcome
	StartedAt     time.Time
	EndedAt       time.Time
}

// Summary aggregates breaks over a period.
type Summary struct {
	Completed int
	Skipped   int
	Rested    time.Duration
}

// Total returns the number of recorded breaks.
func (summary Summary) Total() int {
	return summary.Completed + summary.Skipped
}

// Label renders the summary as the tray's breaks-today line.
func (summary Summary) Label() string {
	return fmt.Sprintf("Breaks today: %d/%d rested (%s)", summary.Completed, summary.Total(), summary.Rested.Round(time.Second))
}

// Label renders the entry as a single menu line in local time.
func (entry Entry) Label() string {
	label := fmt.Sprintf("%s %s, %s %s", entry.StartedAt.Local().Format("15:04"), entry.Technique, entry.Duration.Round(time.Second), entry.Outcome)
	if entry.PomodoroCount > 0 {
		label += fmt.Sprintf(" (#%d)", entry.PomodoroCount)
	}
	return label
}

// Store wraps SQLite access for break history.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the history database location under the user config directory.
func DefaultPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, historyFileName), nil
}

// Open opens or creates the database and applies migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS breaks (
			id INTEGER PRIMARY KEY,
			technique TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			pomodoro_count INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_breaks_started_at ON breaks(started_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate history db: %w", err)
		}
	}
	return nil
}

// Record inserts a presented break.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	if entry.Outcome != OutcomeCompleted && entry.Outcome != OutcomeSkipped {
		return fmt.Errorf("record break: unknown outcome %q", entry.Outcome)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO breaks (technique, duration_ms, pomodoro_count, outcome, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.Technique,
		entry.Duration.Milliseconds(),
		entry.PomodoroCount,
		string(entry.Outcome),
		formatTime(entry.StartedAt),
		formatTime(entry.EndedAt),
	)
	if err != nil {
		return fmt.Errorf("record break: %w", err)
	}
	return nil
}

// SummarySince aggregates breaks that started at or after since.
func (s *Store) SummarySince(ctx context.Context, since time.Time) (Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT outcome, started_at, ended_at FROM breaks WHERE started_at >= ?`,
		formatTime(since),
	)
	if err != nil {
		return Summary{}, fmt.Errorf("query break summary: %w", err)
	}
	defer rows.Close()

	var summary Summary
	for rows.Next() {
		var outcome, startedRaw, endedRaw string
		if err := rows.Scan(&outcome, &startedRaw, &endedRaw); err != nil {
			return Summary{}, fmt.Errorf("scan break summary: %w", err)
		}
		switch Outcome(outcome) {
		case OutcomeCompleted:
			summary.Completed++
		case OutcomeSkipped:
			summary.Skipped++
		}
		startedAt, err := parseTime(startedRaw)
		if err != nil {
			return Summary{}, err
		}
		endedAt, err := parseTime(endedRaw)
		if err != nil {
			return Summary{}, err
		}
		if endedAt.After(startedAt) {
			summary.Rested += endedAt.Sub(startedAt)
		}
	}
	if err := rows.Err(); err != nil {
		return Summary{}, fmt.Errorf("iterate break summary: %w", err)
	}
	return summary, nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT technique, duration_ms, pomodoro_count, outcome, started_at, ended_at
		FROM breaks ORDER BY started_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent breaks: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry      Entry
			durationMs int64
			outcome    string
			startedRaw string
			endedRaw   string
		)
		if err := rows.Scan(&entry.Technique, &durationMs, &entry.PomodoroCount, &outcome, &startedRaw, &endedRaw); err != nil {
			return nil, fmt.Errorf("scan recent breaks: %w", err)
		}
		entry.Duration = time.Duration(durationMs) * time.Millisecond
		entry.Outcome = Outcome(outcome)
		if entry.StartedAt, err = parseTime(startedRaw); err != nil {
			return nil, err
		}
		if entry.EndedAt, err = parseTime(endedRaw); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recent breaks: %w", err)
	}
	return entries, nil
}

// StartOfDay returns local midnight for t.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(raw string) (time.Time, error) {
	parsed, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse break time %q: %w", raw, err)
	}
	return parsed, nil
}
