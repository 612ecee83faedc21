package poller

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Group manages several pollers as one unit: start them together, stop
// them together. Stops run concurrently so one slow poller does not
// serialize the others' shutdown budgets.
type Group struct {
	mu      sync.Mutex
	pollers []*Poller
}

// Add registers a poller with the group. Add after StartAll is legal; the
// late poller simply is not running until the next StartAll, which will
// fail on the already-started ones, so in practice add everything first.
func (g *Group) Add(p *Poller) {
	if p == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pollers = append(g.pollers, p)
}

// StartAll starts every poller in the group. On the first failure it
// stops the pollers already started and returns the error.
func (g *Group) StartAll(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i, p := range g.pollers {
		if err := p.Start(ctx); err != nil {
			for _, started := range g.pollers[:i] {
				_ = started.Stop(time.Second)
			}
			return err
		}
	}
	return nil
}

// StopAll stops every poller concurrently, giving each the same timeout,
// and returns the first stop error encountered.
func (g *Group) StopAll(timeout time.Duration) error {
	g.mu.Lock()
	pollers := make([]*Poller, len(g.pollers))
	copy(pollers, g.pollers)
	g.mu.Unlock()

	var eg errgroup.Group
	for _, p := range pollers {
		p := p
		eg.Go(func() error { return p.Stop(timeout) })
	}
	return eg.Wait()
}
