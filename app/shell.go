package app

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/juniorcleaning/cleaning-app/models"
)

// Deps carries the external collaborators a shell needs.
type Deps struct {
	Docs       Documents
	Blobs      Blobs
	WebhookURL string
	HTTPClient *http.Client
}

// Shell is the per-identity application core: session → profile → views.
// Handlers read and mutate it; it owns no transport of its own.
type Shell struct {
	Session  *SessionProvider
	Profile  *ProfileStore
	View     *ViewRouter
	Booking  *BookingFlow
	News     *NewsFeed
	Settings *SettingsOverlay

	mu          sync.Mutex
	lastTouch   time.Time
	unsubscribe func()
}

// NewShell wires the components together and publishes the identity so
// the profile load kicks off immediately.
func NewShell(identity *models.Identity, deps Deps) *Shell {
	sh := &Shell{
		Session:   NewSessionProvider(),
		Profile:   NewProfileStore(deps.Docs),
		View:      NewViewRouter(),
		News:      NewNewsFeed(deps.Docs),
		lastTouch: time.Now(),
	}
	sh.Booking = NewBookingFlow(sh.Profile, identity.ID, deps.WebhookURL, deps.HTTPClient)
	sh.Settings = NewSettingsOverlay(sh.Profile, deps.Blobs, identity.ID)

	sh.Profile.OnChange(func() {
		sh.Booking.Refresh()
		sh.Settings.Sync()
	})

	sh.unsubscribe = sh.Session.Subscribe(func(id *models.Identity) {
		sh.View.Reset()
		sh.Profile.Bind(id)
		if id != nil {
			go sh.Profile.Load(context.Background())
		}
	})
	sh.Session.Publish(identity)
	return sh
}

// Touch records activity so the pruner leaves the shell alone.
func (sh *Shell) Touch() {
	sh.mu.Lock()
	sh.lastTouch = time.Now()
	sh.mu.Unlock()
}

// LastTouch returns the time of the most recent activity.
func (sh *Shell) LastTouch() time.Time {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.lastTouch
}

// Teardown publishes the signed-out state and drops the subscription.
// Pending load results for the old identity are superseded, not awaited.
func (sh *Shell) Teardown() {
	sh.Session.Publish(nil)
	if sh.unsubscribe != nil {
		sh.unsubscribe()
	}
}

// Registry holds the live shells, one per signed-in identity.
type Registry struct {
	mu     sync.Mutex
	shells map[string]*Shell
	deps   Deps
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{shells: make(map[string]*Shell), deps: deps}
}

// Get returns the shell for the identity, building one on first use.
func (r *Registry) Get(identity *models.Identity) *Shell {
	r.mu.Lock()
	sh, ok := r.shells[identity.ID]
	if !ok {
		sh = NewShell(identity, r.deps)
		r.shells[identity.ID] = sh
	}
	r.mu.Unlock()
	sh.Touch()
	return sh
}

// Lookup returns the shell for a user id without creating one.
func (r *Registry) Lookup(userID string) *Shell {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shells[userID]
}

// Drop tears down and forgets the shell for a user, if present.
func (r *Registry) Drop(userID string) {
	r.mu.Lock()
	sh, ok := r.shells[userID]
	if ok {
		delete(r.shells, userID)
	}
	r.mu.Unlock()
	if ok {
		sh.Teardown()
	}
}

// PruneIdle tears down shells untouched for longer than maxIdle and
// returns how many were removed.
func (r *Registry) PruneIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	var idle []*Shell
	r.mu.Lock()
	for id, sh := range r.shells {
		if sh.LastTouch().Before(cutoff) {
			idle = append(idle, sh)
			delete(r.shells, id)
		}
	}
	r.mu.Unlock()
	for _, sh := range idle {
		sh.Teardown()
	}
	return len(idle)
}
