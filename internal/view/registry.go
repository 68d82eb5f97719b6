package view

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Registry hands out one Controller per viewer session and evicts sessions
// idle for longer than idleTTL. View state lives and dies with the session.
type Registry struct {
	fetcher  Fetcher
	backLink string
	idleTTL  time.Duration

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	ctrl     *Controller
	lastSeen time.Time
}

func NewRegistry(fetcher Fetcher, backLink string, idleTTL time.Duration) *Registry {
	return &Registry{
		fetcher:  fetcher,
		backLink: backLink,
		idleTTL:  idleTTL,
		sessions: make(map[string]*sessionEntry),
	}
}

// Controller returns the session's controller, creating it on first use.
func (r *Registry) Controller(sessionID string) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[sessionID]
	if !ok {
		entry = &sessionEntry{ctrl: NewController(r.fetcher, r.backLink)}
		r.sessions[sessionID] = entry
	}
	entry.lastSeen = time.Now()
	return entry.ctrl
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Run sweeps idle sessions until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(r.idleTTL / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := r.sweep(now); n > 0 {
				slog.Info("Evicted idle view sessions", "count", n)
			}
		}
	}
}

func (r *Registry) sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var evicted int
	for id, entry := range r.sessions {
		if now.Sub(entry.lastSeen) > r.idleTTL {
			delete(r.sessions, id)
			evicted++
		}
	}
	return evicted
}
