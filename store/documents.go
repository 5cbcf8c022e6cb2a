package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/juniorcleaning/cleaning-app/models"
)

// Documents reads and writes the profile and news collections. The app
// core only ever talks to this type, never to gorm directly, so tests can
// swap in an in-memory copy.
type Documents struct {
	DB *gorm.DB
}

func NewDocuments(db *gorm.DB) *Documents {
	return &Documents{DB: db}
}

// GetProfile performs a point read of users/{userID}.
func (d *Documents) GetProfile(ctx context.Context, userID string) (*models.ProfileDoc, error) {
	var doc models.ProfileDoc
	err := d.DB.WithContext(ctx).Where("user_id = ?", userID).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// CreateProfile writes the initial profile document for an identity.
func (d *Documents) CreateProfile(ctx context.Context, doc *models.ProfileDoc) error {
	return d.DB.WithContext(ctx).Create(doc).Error
}

// MergeProfile applies a partial update to users/{userID}, leaving fields
// outside the update map untouched.
func (d *Documents) MergeProfile(ctx context.Context, userID string, updates map[string]interface{}) error {
	columns := map[string]interface{}{"updated_at": time.Now()}
	for key, value := range updates {
		switch key {
		case "name", "address", "phone", "language":
			columns[key] = value
		case "photoURL":
			columns["photo_url"] = value
		case "darkMode":
			columns["dark_mode"] = value
		}
	}
	return d.DB.WithContext(ctx).Model(&models.ProfileDoc{}).
		Where("user_id = ?", userID).
		Updates(columns).Error
}

// ListNews returns the full news collection, newest first.
func (d *Documents) ListNews(ctx context.Context) ([]models.NewsItem, error) {
	var items []models.NewsItem
	err := d.DB.WithContext(ctx).Order("created_at desc").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
