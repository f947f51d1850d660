package entity

import (
	"time"
)

// Base has no soft delete, deleting a challenge must really remove its
// participants, submissions and photos.
type Base struct {
	ID        string `gorm:"primarykey;size:36"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
