package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusflow/internal/core/timer"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	history, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = history.Close()
	})
	return history
}

func TestHistoryRecordAndStats(t *testing.T) {
	history := openTestHistory(t)

	started := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, history.Record(SessionRecord{
		Phase:     timer.PhaseFocus,
		StartedAt: started,
		EndedAt:   started.Add(25 * time.Minute),
		Duration:  1500,
		Completed: true,
	}))
	require.NoError(t, history.Record(SessionRecord{
		Phase:     timer.PhaseFocus,
		StartedAt: started.Add(30 * time.Minute),
		EndedAt:   started.Add(40 * time.Minute),
		Duration:  600,
		Completed: true,
	}))
	// Breaks and abandoned sessions stay out of the stats.
	require.NoError(t, history.Record(SessionRecord{
		Phase:     timer.PhaseBreak,
		StartedAt: started,
		EndedAt:   started.Add(5 * time.Minute),
		Duration:  300,
		Completed: true,
	}))
	require.NoError(t, history.Record(SessionRecord{
		Phase:     timer.PhaseFocus,
		StartedAt: started,
		EndedAt:   started.Add(time.Minute),
		Duration:  60,
		Completed: false,
	}))

	stats, err := history.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalSessions)
	assert.Equal(t, int64(2100), stats.TotalSeconds)
	assert.Equal(t, int64(1050), stats.AverageSeconds)
}

func TestHistoryRecentDurations(t *testing.T) {
	history := openTestHistory(t)

	started := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, duration := range []int{600, 900, 1500} {
		require.NoError(t, history.Record(SessionRecord{
			Phase:     timer.PhaseFocus,
			StartedAt: started.Add(time.Duration(i) * time.Hour),
			EndedAt:   started.Add(time.Duration(i)*time.Hour + time.Duration(duration)*time.Second),
			Duration:  duration,
			Completed: true,
		}))
	}

	durations, err := history.RecentDurations(2)
	require.NoError(t, err)
	assert.Equal(t, []int{1500, 900}, durations)
}

func TestHistoryPrune(t *testing.T) {
	history := openTestHistory(t)

	started := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	const rows = 1200
	for i := 0; i < rows; i++ {
		require.NoError(t, history.Record(SessionRecord{
			Phase:     timer.PhaseFocus,
			StartedAt: started.Add(time.Duration(i) * time.Minute),
			EndedAt:   started.Add(time.Duration(i)*time.Minute + 30*time.Second),
			Duration:  30,
			Completed: true,
		}))
	}

	require.NoError(t, history.Prune())

	stats, err := history.Stats()
	require.NoError(t, err)
	assert.Equal(t, timer.EstimateMemoryBudget(rows), stats.TotalSessions)

	// Oldest rows go first.
	var minID int64
	require.NoError(t, history.db.QueryRow("SELECT MIN(id) FROM focus_sessions").Scan(&minID))
	assert.Equal(t, int64(rows-timer.EstimateMemoryBudget(rows)+1), minID)
}

func TestHistoryPruneWithinBudgetIsNoop(t *testing.T) {
	history := openTestHistory(t)

	started := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, history.Record(SessionRecord{
			Phase:     timer.PhaseFocus,
			StartedAt: started,
			EndedAt:   started.Add(time.Minute),
			Duration:  60,
			Completed: true,
		}))
	}

	require.NoError(t, history.Prune())
	stats, err := history.Stats()
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalSessions)
}
