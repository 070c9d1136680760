package filter_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"taskManager/internal/filter"
	"taskManager/internal/models/task"
)

func TestComputeStats(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	tests := []struct {
		name  string
		tasks []task.Task
		want  filter.Stats
	}{
		{
			name:  "empty collection has zero completion rate",
			tasks: nil,
			want:  filter.Stats{},
		},
		{
			name: "one of each status",
			tasks: []task.Task{
				{ID: "t1", Status: task.StatusPending},
				{ID: "t2", Status: task.StatusInProgress},
				{ID: "t3", Status: task.StatusCompleted},
			},
			want: filter.Stats{Total: 3, Completed: 1, Pending: 1, InProgress: 1, CompletionRate: 33},
		},
		{
			name: "overdue needs a past due date and a non-completed status",
			tasks: []task.Task{
				{ID: "t1", Status: task.StatusPending, DueDate: &yesterday},
				{ID: "t2", Status: task.StatusCompleted, DueDate: &yesterday},
				{ID: "t3", Status: task.StatusInProgress, DueDate: &tomorrow},
				{ID: "t4", Status: task.StatusPending},
			},
			want: filter.Stats{Total: 4, Completed: 1, Pending: 2, InProgress: 1, Overdue: 1, CompletionRate: 25},
		},
		{
			name: "high priority counted, rate rounds to nearest",
			tasks: []task.Task{
				{ID: "t1", Status: task.StatusCompleted, Priority: task.PriorityHigh},
				{ID: "t2", Status: task.StatusCompleted, Priority: task.PriorityLow},
				{ID: "t3", Status: task.StatusPending, Priority: task.PriorityHigh},
			},
			want: filter.Stats{Total: 3, Completed: 2, Pending: 1, HighPriority: 2, CompletionRate: 67},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filter.ComputeStats(tt.tasks, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Statuses partition the collection: the three counters sum to the total.
func TestComputeStats_StatusPartition(t *testing.T) {
	tasks := []task.Task{
		{Status: task.StatusPending},
		{Status: task.StatusPending},
		{Status: task.StatusInProgress},
		{Status: task.StatusCompleted},
		{Status: task.StatusCompleted},
	}

	got := filter.ComputeStats(tasks, time.Now())
	assert.Equal(t, got.Total, got.Completed+got.Pending+got.InProgress)
}
