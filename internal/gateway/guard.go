package gateway

import "golang.org/x/sync/semaphore"

// Guard admits one outstanding submission per action. A second submission
// while the first is running is refused with ErrInFlight and sends nothing.
type Guard struct {
	sem *semaphore.Weighted
}

func NewGuard() *Guard {
	return &Guard{sem: semaphore.NewWeighted(1)}
}

// Do runs fn unless another call through g is still running.
func (g *Guard) Do(fn func() error) error {
	if !g.sem.TryAcquire(1) {
		return ErrInFlight
	}
	defer g.sem.Release(1)
	return fn()
}

// Busy reports whether a submission is outstanding.
func (g *Guard) Busy() bool {
	if !g.sem.TryAcquire(1) {
		return true
	}
	g.sem.Release(1)
	return false
}
