package workflow

import (
	"context"
	"fmt"
)

// StatusMutator is the single mutation entry point for transitions.
type StatusMutator interface {
	UpdateStatus(ctx context.Context, id int, target Status) error
}

// Performer executes a planned transition: one status mutation, then a counts
// refresh, then navigation. Navigation fires exactly once per Perform, on
// success and on failure alike — the record the user was looking at is stale
// either way, so the UI always moves to the transition's listing route rather
// than stranding them on it.
type Performer struct {
	Mutator  StatusMutator
	Counts   *Counts
	Navigate func(Route)
}

// Perform issues the mutation for tr against record id. On success the counts
// refresh completes before the navigation callback runs, so the destination
// never renders stale badges. There is no retry and nothing to roll back:
// local state is never optimistically mutated.
func (p *Performer) Perform(ctx context.Context, id int, tr Transition) error {
	if id <= 0 {
		return fmt.Errorf("workflow: invalid record id %d", id)
	}
	if !tr.Target.Known() {
		return fmt.Errorf("workflow: unknown target status %d", tr.Target)
	}

	err := p.Mutator.UpdateStatus(ctx, id, tr.Target)
	if err == nil && p.Counts != nil {
		p.Counts.Invalidate()
		// A failed refresh is not a failed transition; the badges render
		// stale until the next refresh and the navigation still happens.
		_ = p.Counts.Refresh(ctx)
	}

	if p.Navigate != nil {
		p.Navigate(tr.Route)
	}
	if err != nil {
		return fmt.Errorf("workflow: transition %s of record %d: %w", tr.Action.Label(), id, err)
	}
	return nil
}
