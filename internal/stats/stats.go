// Package stats holds the pure projections over the in-memory issue
// collection: aggregate counts and the filtered, date-sorted list view.
// No I/O here; both functions are recomputed on every render.
package stats

import (
	"sort"

	"gis-kpi-tracker/internal/models"
)

type Stats struct {
	Total      int
	Open       int
	InProgress int
	Resolved   int
}

func Derive(issues []models.Issue) Stats {
	s := Stats{Total: len(issues)}
	for _, i := range issues {
		switch i.Status {
		case models.StatusOpen:
			s.Open++
		case models.StatusInProgress:
			s.InProgress++
		case models.StatusResolved:
			s.Resolved++
		}
	}
	return s
}

// Filter fields left empty ("" sentinel) admit every issue.
type Filter struct {
	Role     models.Role
	Status   models.Status
	Priority models.Priority
}

func (f Filter) matches(i models.Issue) bool {
	if f.Role != "" && i.Role != f.Role {
		return false
	}
	if f.Status != "" && i.Status != f.Status {
		return false
	}
	if f.Priority != "" && i.Priority != f.Priority {
		return false
	}
	return true
}

// FilterAndSort returns the matching subset ordered by Date descending,
// stable so equal dates keep their original relative order.
func FilterAndSort(issues []models.Issue, f Filter) []models.Issue {
	out := make([]models.Issue, 0, len(issues))
	for _, i := range issues {
		if f.matches(i) {
			out = append(out, i)
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Date.After(out[b].Date)
	})

	return out
}
