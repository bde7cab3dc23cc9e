package workflow

import (
	"context"
	"errors"
	"testing"
)

type fakeMutator struct {
	calls []Status
	err   error
}

func (f *fakeMutator) UpdateStatus(_ context.Context, _ int, target Status) error {
	f.calls = append(f.calls, target)
	return f.err
}

// eventLog records the order of side effects so refresh-before-navigation can
// be asserted exactly.
type eventLog struct {
	events []string
}

func TestPerformRefreshesCountsBeforeNavigating(t *testing.T) {
	log := &eventLog{}
	counts := NewCounts(func(context.Context) (CountsSnapshot, error) {
		log.events = append(log.events, "refresh")
		return CountsSnapshot{InputQueue: 4}, nil
	})
	p := &Performer{
		Mutator: &fakeMutator{},
		Counts:  counts,
		Navigate: func(r Route) {
			log.events = append(log.events, "navigate:"+string(r))
		},
	}

	tr, _ := TransitionFor(RoleInput, ActionMoveToOutput)
	if err := p.Perform(context.Background(), 12, tr); err != nil {
		t.Fatalf("Perform: %v", err)
	}

	if len(log.events) != 2 || log.events[0] != "refresh" || log.events[1] != "navigate:input-queue" {
		t.Fatalf("events = %v, want refresh strictly before navigation", log.events)
	}
	if snap, ok := counts.Get(); !ok || snap.InputQueue != 4 {
		t.Fatalf("counts after transition = %+v valid=%v", snap, ok)
	}
}

func TestPerformNavigatesExactlyOnceOnMutationFailure(t *testing.T) {
	var routes []Route
	p := &Performer{
		Mutator:  &fakeMutator{err: errors.New("backend down")},
		Counts:   NewCounts(func(context.Context) (CountsSnapshot, error) { return CountsSnapshot{}, nil }),
		Navigate: func(r Route) { routes = append(routes, r) },
	}

	tr, _ := TransitionFor(RoleOutput, ActionReturnToInput)
	err := p.Perform(context.Background(), 5, tr)
	if err == nil {
		t.Fatal("expected mutation error")
	}
	if len(routes) != 1 || routes[0] != RouteOutputQueue {
		t.Fatalf("routes = %v, want exactly one navigation to the fallback listing", routes)
	}
}

func TestPerformSkipsRefreshOnMutationFailure(t *testing.T) {
	refreshed := false
	counts := NewCounts(func(context.Context) (CountsSnapshot, error) {
		refreshed = true
		return CountsSnapshot{}, nil
	})
	p := &Performer{
		Mutator:  &fakeMutator{err: errors.New("rejected")},
		Counts:   counts,
		Navigate: func(Route) {},
	}
	tr, _ := TransitionFor(RoleInput, ActionReturnToReporter)
	if err := p.Perform(context.Background(), 3, tr); err == nil {
		t.Fatal("expected error")
	}
	if refreshed {
		t.Fatal("counts must not refresh when the mutation failed")
	}
}

func TestPerformRejectsBadInputs(t *testing.T) {
	m := &fakeMutator{}
	p := &Performer{Mutator: m, Navigate: func(Route) { t.Fatal("must not navigate on invalid input") }}

	tr, _ := TransitionFor(RoleInput, ActionMoveToOutput)
	if err := p.Perform(context.Background(), 0, tr); err == nil {
		t.Fatal("id 0 must be rejected")
	}
	if err := p.Perform(context.Background(), 1, Transition{Target: Status(42)}); err == nil {
		t.Fatal("unknown target status must be rejected")
	}
	if len(m.calls) != 0 {
		t.Fatalf("mutator called %d times for invalid input", len(m.calls))
	}
}

func TestCountsCacheLifecycle(t *testing.T) {
	fails := false
	c := NewCounts(func(context.Context) (CountsSnapshot, error) {
		if fails {
			return CountsSnapshot{}, errors.New("unavailable")
		}
		return CountsSnapshot{Drafts: 2, Published: 10}, nil
	})

	if _, ok := c.Get(); ok {
		t.Fatal("fresh cache must not be valid")
	}
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if snap, ok := c.Get(); !ok || snap.Drafts != 2 {
		t.Fatalf("after refresh: %+v valid=%v", snap, ok)
	}

	c.Invalidate()
	if snap, ok := c.Get(); ok || snap.Drafts != 2 {
		t.Fatalf("invalidate must keep values but mark stale: %+v valid=%v", snap, ok)
	}

	fails = true
	if err := c.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh failure")
	}
	if snap, ok := c.Get(); ok || snap.Published != 10 {
		t.Fatalf("failed refresh must keep stale snapshot: %+v valid=%v", snap, ok)
	}
}
