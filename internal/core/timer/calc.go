package timer

import "fmt"

// FormatDuration renders seconds as zero-padded MM:SS. There is no
// hour component; durations of 100 minutes or more widen the minutes
// field instead of overflowing.
func FormatDuration(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Progress returns current/total as a percentage. Total of zero yields
// zero. Values above 100 are passed through when current exceeds total.
func Progress(current, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(current) / float64(total) * 100
}

// ComputeMultipleTimers previews several countdowns at once without
// instantiating an engine per timer. The i-th duration is treated as
// having started i seconds before now, a deterministic stagger for
// simulation, and every snapshot reports the focus phase.
func ComputeMultipleTimers(durations []int) []Snapshot {
	snapshots := make([]Snapshot, len(durations))
	for i, duration := range durations {
		elapsed := i
		remaining := saturatingSub(duration, elapsed)
		snapshots[i] = Snapshot{
			Remaining:     remaining,
			FormattedTime: FormatDuration(remaining),
			Progress:      Progress(elapsed, duration),
			Phase:         PhaseFocus,
		}
	}
	return snapshots
}

// EstimateMemoryBudget is a coarse retention heuristic for callers
// managing historical session data: small amounts pass through, larger
// ones are cut to 80% and then 70%. It measures nothing real; it is a
// policy knob, not an allocator signal.
func EstimateMemoryBudget(current int) int {
	switch {
	case current <= 1000:
		return current
	case current <= 10000:
		return current * 8 / 10
	default:
		return current * 7 / 10
	}
}
