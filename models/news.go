package models

import (
	"time"
)

// NewsItem is a read-only announcement authored outside the app.
type NewsItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
