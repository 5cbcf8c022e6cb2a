package app

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/juniorcleaning/cleaning-app/models"
)

// Documents is the document-store client the app core reads and writes
// through. The production implementation lives in the store package.
type Documents interface {
	GetProfile(ctx context.Context, userID string) (*models.ProfileDoc, error)
	CreateProfile(ctx context.Context, doc *models.ProfileDoc) error
	MergeProfile(ctx context.Context, userID string, updates map[string]interface{}) error
	ListNews(ctx context.Context) ([]models.NewsItem, error)
}

// Warnings shown inline when remote persistence is unavailable. The app
// keeps running on the local copy either way.
const (
	warnProfileWrite = "Kunne ikke gemme profiloplysninger (tilladelser)."
	warnProfileRead  = "Kunne ikke hente profil (tilladelser)."
)

// ProfileStore keeps the in-memory profile for the bound identity in sync
// with the remote users/{id} document. Reads always come from the local
// copy; a remote failure never rolls local state back.
type ProfileStore struct {
	mu       sync.Mutex
	docs     Documents
	identity *models.Identity
	profile  *models.Profile
	loading  bool
	warning  string
	gen      uint64
	onChange func()
}

func NewProfileStore(docs Documents) *ProfileStore {
	return &ProfileStore{docs: docs}
}

// OnChange registers the single callback invoked after the profile state
// settles or changes. Must be set before the store is bound.
func (s *ProfileStore) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Bind points the store at a new identity and supersedes any load still
// in flight for the previous one. Binding nil clears the profile.
func (s *ProfileStore) Bind(identity *models.Identity) {
	s.mu.Lock()
	s.gen++
	s.identity = identity
	s.warning = ""
	if identity == nil {
		s.profile = nil
		s.loading = false
	} else {
		s.loading = true
	}
	s.mu.Unlock()
	s.notify()
}

// Load resolves the profile for the currently bound identity: a point
// read, falling back to creating the default record on first sign-in.
// A result that settles after the identity changed again is discarded.
func (s *ProfileStore) Load(ctx context.Context) {
	s.mu.Lock()
	identity := s.identity
	gen := s.gen
	s.mu.Unlock()
	if identity == nil {
		return
	}

	var profile models.Profile
	var warning string

	doc, err := s.docs.GetProfile(ctx, identity.ID)
	switch {
	case err == nil:
		profile = doc.Profile()
	case errors.Is(err, models.ErrNotFound):
		profile = models.DefaultProfile(identity)
		created := &models.ProfileDoc{
			UserID:   identity.ID,
			Name:     profile.Name,
			Address:  profile.Address,
			Phone:    profile.Phone,
			Language: profile.Language,
			PhotoURL: profile.PhotoURL,
			DarkMode: profile.DarkMode,
		}
		if cerr := s.docs.CreateProfile(ctx, created); cerr != nil {
			// Continue with the local-only copy, timestamps stay nil.
			log.Printf("profile create for %s failed: %v", identity.ID, cerr)
			warning = warnProfileWrite
		} else {
			profile = created.Profile()
		}
	default:
		log.Printf("profile read for %s failed: %v", identity.ID, err)
		profile = models.DefaultProfile(identity)
		warning = warnProfileRead
	}

	s.settle(gen, &profile, warning)
}

func (s *ProfileStore) settle(gen uint64, profile *models.Profile, warning string) {
	s.mu.Lock()
	if gen != s.gen {
		// A newer bind superseded this load.
		s.mu.Unlock()
		return
	}
	s.profile = profile
	s.loading = false
	s.warning = warning
	s.mu.Unlock()
	s.notify()
}

// Save merges the updates into the local profile, stamps it, and attempts
// a partial remote write. The local copy is updated either way and the
// caller never sees the remote outcome.
func (s *ProfileStore) Save(ctx context.Context, updates map[string]interface{}) {
	s.mu.Lock()
	if s.identity == nil {
		s.mu.Unlock()
		return
	}
	if s.profile == nil {
		s.profile = &models.Profile{Language: models.DefaultLanguage}
	}
	s.profile.Apply(updates)
	now := time.Now()
	s.profile.UpdatedAt = &now
	userID := s.identity.ID
	s.mu.Unlock()
	s.notify()

	if err := s.docs.MergeProfile(ctx, userID, updates); err != nil {
		// Keep the local state; degraded persistence is accepted here.
		log.Printf("profile merge for %s failed: %v", userID, err)
	}
}

// Profile returns a copy of the current local profile.
func (s *ProfileStore) Profile() (models.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return models.Profile{}, false
	}
	return *s.profile, true
}

// Loading reports whether a load is still in flight for the bound identity.
func (s *ProfileStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Warning returns the non-fatal persistence warning, if any.
func (s *ProfileStore) Warning() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.warning
}

func (s *ProfileStore) notify() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}
