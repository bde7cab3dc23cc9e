package workflow

import "context"

// CountsSnapshot is the badge counter set shown across the app.
type CountsSnapshot struct {
	Drafts      int
	InputQueue  int
	OutputQueue int
	Returned    int
	Published   int
}

// CountsFetcher recomputes the counters from the backend.
type CountsFetcher func(ctx context.Context) (CountsSnapshot, error)

// Counts is the app-wide badge-count cache. It is an explicitly owned object
// passed to whoever needs it, initialized at session start, invalidated by
// any workflow mutation and refreshed on demand. It lives on the event loop
// and is not safe for concurrent use.
type Counts struct {
	fetch CountsFetcher
	snap  CountsSnapshot
	valid bool
}

func NewCounts(fetch CountsFetcher) *Counts {
	return &Counts{fetch: fetch}
}

// Get returns the cached snapshot and whether it is current.
func (c *Counts) Get() (CountsSnapshot, bool) {
	return c.snap, c.valid
}

// Invalidate marks the snapshot stale without discarding it; the stale values
// keep rendering until the next Refresh completes.
func (c *Counts) Invalidate() { c.valid = false }

// Refresh recomputes the counters. On failure the previous snapshot is kept
// but stays marked stale.
func (c *Counts) Refresh(ctx context.Context) error {
	snap, err := c.fetch(ctx)
	if err != nil {
		c.valid = false
		return err
	}
	c.snap = snap
	c.valid = true
	return nil
}
