// Package ranking orders approved runs of one category.
package ranking

import (
	"bytes"
	"cmp"
	"slices"
	"time"

	"speedrun/metric"

	"github.com/google/uuid"
)

// Entry is the part of a run the ordering looks at.
type Entry struct {
	Id          uuid.UUID
	Value       int64
	SubmittedAt time.Time
}

type Ranked[T any] struct {
	Item T
	Rank int
}

// Compare orders a before b when it returns a negative number. Values are
// compared in the direction of kind, then the earlier submission wins, then
// the lower id, so no two distinct runs ever compare equal.
func Compare(kind metric.Kind, a, b Entry) int {
	c := cmp.Compare(a.Value, b.Value)
	if !metric.Ascending(kind) {
		c = -c
	}
	if c != 0 {
		return c
	}
	if c = a.SubmittedAt.Compare(b.SubmittedAt); c != 0 {
		return c
	}
	return bytes.Compare(a.Id[:], b.Id[:])
}

// Rank sorts a copy of items and numbers them from 1. Ranks are never shared.
func Rank[T any](kind metric.Kind, items []T, entry func(T) Entry) []Ranked[T] {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return Compare(kind, entry(a), entry(b))
	})
	ranked := make([]Ranked[T], len(sorted))
	for i, item := range sorted {
		ranked[i] = Ranked[T]{Item: item, Rank: i + 1}
	}
	return ranked
}

// Best returns the item that would be ranked first.
func Best[T any](kind metric.Kind, items []T, entry func(T) Entry) (T, bool) {
	var best T
	if len(items) == 0 {
		return best, false
	}
	best = items[0]
	for _, item := range items[1:] {
		if Compare(kind, entry(item), entry(best)) < 0 {
			best = item
		}
	}
	return best, true
}

// OrderClause is the SQL equivalent of Compare for the runs table.
func OrderClause(kind metric.Kind) string {
	if metric.Ascending(kind) {
		return "value ASC, submitted_at ASC, id ASC"
	}
	return "value DESC, submitted_at ASC, id ASC"
}
