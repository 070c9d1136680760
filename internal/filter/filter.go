package filter

import (
	"strings"

	"taskManager/internal/models/task"
)

// All is the sentinel the UI selects use for "no constraint".
const All = "all"

// Criteria is the active view filter. Empty (or "all") fields constrain
// nothing.
type Criteria struct {
	Status   task.Status
	Priority task.Priority
	Search   string
}

func (c Criteria) IsEmpty() bool {
	return !statusSet(c.Status) && !prioritySet(c.Priority) && c.Search == ""
}

// Patch carries the fields of a filter-change intent. Nil fields are left as
// they are; a pointer to the zero value (or "all") clears that constraint.
type Patch struct {
	Status   *task.Status
	Priority *task.Priority
	Search   *string
}

// Merge applies the patch field-wise and returns the resulting criteria.
func (c Criteria) Merge(p Patch) Criteria {
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.Priority != nil {
		c.Priority = *p.Priority
	}
	if p.Search != nil {
		c.Search = *p.Search
	}
	return c
}

func statusSet(s task.Status) bool {
	return s != "" && string(s) != All
}

func prioritySet(p task.Priority) bool {
	return p != "" && string(p) != All
}

// Apply returns the tasks matching the criteria, preserving the input order.
// The result is always a fresh slice; the input is never mutated.
func Apply(tasks []task.Task, c Criteria) []task.Task {
	filtered := make([]task.Task, 0, len(tasks))
	search := strings.ToLower(c.Search)

	for _, t := range tasks {
		if statusSet(c.Status) && t.Status != c.Status {
			continue
		}
		if prioritySet(c.Priority) && t.Priority != c.Priority {
			continue
		}
		if search != "" && !matchesSearch(&t, search) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// matchesSearch reports whether the lowercased search term occurs in the title
// or the description. A missing description never matches.
func matchesSearch(t *task.Task, search string) bool {
	if strings.Contains(strings.ToLower(t.Title), search) {
		return true
	}
	return t.Description != "" && strings.Contains(strings.ToLower(t.Description), search)
}
