package app

import (
	"context"
	"io"
	"log"
	"sync"

	"github.com/juniorcleaning/cleaning-app/models"
)

// Blobs uploads avatar images and resolves their public URL. The
// production implementation lives in utils (Cloudinary).
type Blobs interface {
	UploadAvatar(ctx context.Context, userID string, file io.Reader) (string, error)
}

// SettingsOverlay edits a draft copy of the profile. Nothing is written
// until Confirm, except the avatar which is committed the moment its
// upload resolves.
type SettingsOverlay struct {
	store  *ProfileStore
	blobs  Blobs
	userID string

	mu        sync.Mutex
	draft     models.Profile
	uploading bool
}

func NewSettingsOverlay(store *ProfileStore, blobs Blobs, userID string) *SettingsOverlay {
	o := &SettingsOverlay{store: store, blobs: blobs, userID: userID}
	o.Sync()
	return o
}

// Sync replaces the draft with the live profile. Runs on every profile
// change, so a committed avatar shows up in the draft immediately.
func (o *SettingsOverlay) Sync() {
	profile, _ := o.store.Profile()
	o.mu.Lock()
	o.draft = profile
	o.mu.Unlock()
}

func (o *SettingsOverlay) Draft() models.Profile {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.draft
}

// Edit merges field updates into the draft only.
func (o *SettingsOverlay) Edit(updates map[string]interface{}) {
	o.mu.Lock()
	o.draft.Apply(updates)
	o.mu.Unlock()
}

func (o *SettingsOverlay) Uploading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.uploading
}

// UploadAvatar stores the image under the identity's fixed avatar path,
// overwriting any previous one, and commits the resolved URL right away,
// independent of other pending draft edits. Upload failures only reach
// the server log.
func (o *SettingsOverlay) UploadAvatar(ctx context.Context, file io.Reader) {
	o.mu.Lock()
	o.uploading = true
	o.mu.Unlock()

	url, err := o.blobs.UploadAvatar(ctx, o.userID, file)
	if err != nil {
		log.Printf("avatar upload for %s failed: %v", o.userID, err)
	} else {
		o.store.Save(ctx, map[string]interface{}{"photoURL": url})
	}

	o.mu.Lock()
	o.uploading = false
	o.mu.Unlock()
}

// Confirm commits the whole draft through the profile store.
func (o *SettingsOverlay) Confirm(ctx context.Context) {
	o.mu.Lock()
	draft := o.draft
	o.mu.Unlock()

	o.store.Save(ctx, map[string]interface{}{
		"name":     draft.Name,
		"address":  draft.Address,
		"phone":    draft.Phone,
		"language": draft.Language,
		"photoURL": draft.PhotoURL,
		"darkMode": draft.DarkMode,
	})
}
