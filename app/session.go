package app

import (
	"sync"

	"github.com/juniorcleaning/cleaning-app/models"
)

// SessionProvider publishes the current authenticated identity to its
// subscribers, once per change. Until the first publish the session is
// still resolving and consumers should hold off rendering.
type SessionProvider struct {
	mu       sync.Mutex
	current  *models.Identity
	resolved bool
	subs     map[int]func(*models.Identity)
	next     int
}

func NewSessionProvider() *SessionProvider {
	return &SessionProvider{subs: make(map[int]func(*models.Identity))}
}

// Subscribe registers an observer for identity changes and returns the
// func that removes the registration again. Callers must invoke it on
// teardown or the observer leaks for the provider's lifetime.
func (p *SessionProvider) Subscribe(fn func(*models.Identity)) func() {
	p.mu.Lock()
	id := p.next
	p.next++
	p.subs[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

// Publish hands a new identity (or nil for signed out) to every
// subscriber. A publish that does not change the identity is dropped so
// each change is observed exactly once.
func (p *SessionProvider) Publish(identity *models.Identity) {
	p.mu.Lock()
	if p.resolved && sameIdentity(p.current, identity) {
		p.mu.Unlock()
		return
	}
	p.current = identity
	p.resolved = true
	fns := make([]func(*models.Identity), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(identity)
	}
}

// Current returns the last published identity, nil when signed out.
func (p *SessionProvider) Current() *models.Identity {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Resolving reports whether the first notification is still pending.
func (p *SessionProvider) Resolving() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.resolved
}

func sameIdentity(a, b *models.Identity) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}
