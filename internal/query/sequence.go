package query

// Sequence issues monotonic tokens for in-flight fetches. There is no request
// cancellation: changing filters rapidly can leave several fetches in flight,
// and without a guard whichever resolves last would win even if it carries an
// older query. Each fetch takes a token from Next; when its response arrives
// the view applies it only if Stale returns false.
//
// Sequence lives on the event loop alongside the model, so it needs no
// locking.
type Sequence struct {
	latest uint64
}

// Next invalidates all outstanding tokens and returns a fresh one.
func (s *Sequence) Next() uint64 {
	s.latest++
	return s.latest
}

// Stale reports whether a newer fetch has been issued since token was taken.
func (s *Sequence) Stale(token uint64) bool {
	return token != s.latest
}
