package filter

import (
	"math"
	"time"

	"taskManager/internal/models/task"
)

// Stats are the dashboard aggregates over the full task collection.
type Stats struct {
	Total          int
	Completed      int
	Pending        int
	InProgress     int
	HighPriority   int
	Overdue        int
	CompletionRate int // percent, rounded; 0 for an empty collection
}

// ComputeStats derives the aggregates in a single pass. now anchors the
// overdue comparison so callers (and tests) control the clock.
func ComputeStats(tasks []task.Task, now time.Time) Stats {
	s := Stats{Total: len(tasks)}

	for i := range tasks {
		t := &tasks[i]
		switch t.Status {
		case task.StatusCompleted:
			s.Completed++
		case task.StatusPending:
			s.Pending++
		case task.StatusInProgress:
			s.InProgress++
		}
		if t.Priority == task.PriorityHigh {
			s.HighPriority++
		}
		if t.IsOverdue(now) {
			s.Overdue++
		}
	}

	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}
