package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"focusflow/internal/core/timer"
)

// SessionRecord is one finished countdown phase.
type SessionRecord struct {
	ID        int64
	Phase     timer.Phase
	StartedAt time.Time
	EndedAt   time.Time
	Duration  int // seconds
	Completed bool
}

// SessionStats summarizes completed focus sessions.
type SessionStats struct {
	TotalSessions  int
	TotalSeconds   int64
	AverageSeconds int64
}

// History persists finished sessions in SQLite.
type History struct {
	db *sql.DB
}

// DefaultHistoryPath returns the history database location under the
// user config directory.
func DefaultHistoryPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	dir := filepath.Join(configDir, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	return filepath.Join(dir, "history.db"), nil
}

// OpenHistory opens (and if needed creates) the history database.
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping history db: %w", err)
	}

	history := &History{db: db}
	if err := history.initTables(); err != nil {
		db.Close()
		return nil, err
	}
	return history, nil
}

func (history *History) initTables() error {
	_, err := history.db.Exec(`
        CREATE TABLE IF NOT EXISTS focus_sessions (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            phase TEXT NOT NULL,
            started_at DATETIME NOT NULL,
            ended_at DATETIME NOT NULL,
            duration_seconds INTEGER NOT NULL,
            completed INTEGER NOT NULL DEFAULT 1
        )
    `)
	if err != nil {
		return fmt.Errorf("create focus_sessions table: %w", err)
	}
	return nil
}

// Record stores one finished session.
func (history *History) Record(record SessionRecord) error {
	_, err := history.db.Exec(
		"INSERT INTO focus_sessions (phase, started_at, ended_at, duration_seconds, completed) VALUES (?, ?, ?, ?, ?)",
		record.Phase.String(), record.StartedAt, record.EndedAt, record.Duration, record.Completed,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// Stats returns totals over completed focus sessions.
func (history *History) Stats() (SessionStats, error) {
	var stats SessionStats
	err := history.db.QueryRow(`
        SELECT COUNT(*), COALESCE(SUM(duration_seconds), 0)
        FROM focus_sessions
        WHERE phase = 'focus' AND completed = 1
    `).Scan(&stats.TotalSessions, &stats.TotalSeconds)
	if err != nil {
		return stats, fmt.Errorf("query session stats: %w", err)
	}
	if stats.TotalSessions > 0 {
		stats.AverageSeconds = stats.TotalSeconds / int64(stats.TotalSessions)
	}
	return stats, nil
}

// RecentDurations returns durations of the most recent completed focus
// sessions, newest first.
func (history *History) RecentDurations(limit int) ([]int, error) {
	rows, err := history.db.Query(`
        SELECT duration_seconds FROM focus_sessions
        WHERE phase = 'focus' AND completed = 1
        ORDER BY ended_at DESC LIMIT ?
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent sessions: %w", err)
	}
	defer rows.Close()

	var durations []int
	for rows.Next() {
		var duration int
		if err := rows.Scan(&duration); err != nil {
			return nil, fmt.Errorf("scan session duration: %w", err)
		}
		durations = append(durations, duration)
	}
	return durations, rows.Err()
}

// Prune trims the oldest rows so the table stays within the retention
// budget derived from its current size.
func (history *History) Prune() error {
	var count int
	if err := history.db.QueryRow("SELECT COUNT(*) FROM focus_sessions").Scan(&count); err != nil {
		return fmt.Errorf("count sessions: %w", err)
	}

	budget := timer.EstimateMemoryBudget(count)
	if budget >= count {
		return nil
	}

	_, err := history.db.Exec(`
        DELETE FROM focus_sessions WHERE id IN (
            SELECT id FROM focus_sessions ORDER BY id ASC LIMIT ?
        )
    `, count-budget)
	if err != nil {
		return fmt.Errorf("prune sessions: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (history *History) Close() error {
	return history.db.Close()
}
