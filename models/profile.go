package models

import (
	"time"
)

// DefaultLanguage is the only language the app ships with.
const DefaultLanguage = "Dansk"

// ProfileDoc is the stored profile record, one per identity, keyed by the
// identity id (the users/{id} document).
type ProfileDoc struct {
	UserID    string    `json:"user_id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Language  string    `json:"language"`
	PhotoURL  string    `json:"photo_url"`
	DarkMode  bool      `json:"dark_mode"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile is the in-memory profile state the rest of the app reads.
// Timestamps are nil when the record only exists locally (degraded mode).
type Profile struct {
	Name      string     `json:"name"`
	Address   string     `json:"address"`
	Phone     string     `json:"phone"`
	Language  string     `json:"language"`
	PhotoURL  string     `json:"photoURL"`
	DarkMode  bool       `json:"darkMode"`
	CreatedAt *time.Time `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// Profile returns the in-memory view of a stored document.
func (d *ProfileDoc) Profile() Profile {
	created := d.CreatedAt
	updated := d.UpdatedAt
	return Profile{
		Name:      d.Name,
		Address:   d.Address,
		Phone:     d.Phone,
		Language:  d.Language,
		PhotoURL:  d.PhotoURL,
		DarkMode:  d.DarkMode,
		CreatedAt: &created,
		UpdatedAt: &updated,
	}
}

// DefaultProfile builds the record created on first sign-in, seeded from
// whatever the identity already carries.
func DefaultProfile(id *Identity) Profile {
	return Profile{
		Name:     id.DisplayName,
		Address:  "",
		Phone:    "",
		Language: DefaultLanguage,
		PhotoURL: id.PhotoURL,
		DarkMode: false,
	}
}

// Apply merges a field update map into the profile. Unknown keys are
// ignored so a partial update can never corrupt local state.
func (p *Profile) Apply(updates map[string]interface{}) {
	for key, value := range updates {
		switch key {
		case "name":
			if v, ok := value.(string); ok {
				p.Name = v
			}
		case "address":
			if v, ok := value.(string); ok {
				p.Address = v
			}
		case "phone":
			if v, ok := value.(string); ok {
				p.Phone = v
			}
		case "language":
			if v, ok := value.(string); ok {
				p.Language = v
			}
		case "photoURL":
			if v, ok := value.(string); ok {
				p.PhotoURL = v
			}
		case "darkMode":
			if v, ok := value.(bool); ok {
				p.DarkMode = v
			}
		}
	}
}

// SetupComplete reports whether the booking setup fields are all present.
func (p *Profile) SetupComplete() bool {
	return p.Name != "" && p.Address != "" && p.Phone != ""
}
