package unlock

import (
	"sort"

	"github.com/abhisek/rustdojo/internal/catalog"
)

// CompletionSource answers whether an exercise has been completed.
// A nil source means nothing is completed.
type CompletionSource interface {
	IsCompleted(id string) bool
}

// Resolver gates exercise starts on predecessor completion.
type Resolver struct {
	Order Order
	// Force unlocks every exercise, bypassing the ordering entirely.
	Force bool
}

// NewResolver returns a resolver over the given order.
func NewResolver(order Order, force bool) Resolver {
	return Resolver{Order: order, Force: force}
}

// Sequence returns the exercises of one tier sorted by (rank, id).
func (r Resolver) Sequence(all []catalog.Exercise, d catalog.Difficulty) []catalog.Exercise {
	var same []catalog.Exercise
	for _, ex := range all {
		if ex.Difficulty == d {
			same = append(same, ex)
		}
	}
	sort.Slice(same, func(i, j int) bool {
		ri := r.Order.Rank(d, same[i].Slug())
		rj := r.Order.Rank(d, same[j].Slug())
		if ri != rj {
			return ri < rj
		}
		return same[i].ID < same[j].ID
	})
	return same
}

// Predecessor returns the exercise immediately before id in its tier.
// ok is false when id is first in its tier or not in the catalog.
func (r Resolver) Predecessor(all []catalog.Exercise, id string) (prev catalog.Exercise, ok bool) {
	ex, err := catalog.Find(all, id)
	if err != nil {
		return catalog.Exercise{}, false
	}
	seq := r.Sequence(all, ex.Difficulty)
	for i, s := range seq {
		if s.ID == id {
			if i == 0 {
				return catalog.Exercise{}, false
			}
			return seq[i-1], true
		}
	}
	return catalog.Exercise{}, false
}

// IsUnlocked reports whether id may be started. The first exercise of each
// tier is always unlocked; every other one requires its predecessor to be
// completed. Ids missing from the catalog are locked.
func (r Resolver) IsUnlocked(all []catalog.Exercise, progress CompletionSource, id string) bool {
	if r.Force {
		return true
	}
	if _, err := catalog.Find(all, id); err != nil {
		return false
	}
	prev, ok := r.Predecessor(all, id)
	if !ok {
		return true
	}
	if progress == nil {
		return false
	}
	return progress.IsCompleted(prev.ID)
}
