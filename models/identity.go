package models

import (
	"time"
)

// Identity is the authenticated principal as reported by the auth service.
// The app only ever observes identities, it never creates them itself.
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
}

// Account is the auth provider's own record of a user, kept separate from
// the profile document so that profile creation stays lazy.
type Account struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"unique"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name"`
	PhotoURL     string    `json:"photo_url"`
	Provider     string    `json:"provider"` // "password" or "google"
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity returns the identity view of an account.
func (a *Account) Identity() *Identity {
	return &Identity{
		ID:          a.ID,
		Email:       a.Email,
		DisplayName: a.DisplayName,
		PhotoURL:    a.PhotoURL,
	}
}
