package domain

import "time"

// Todo is a single todo item. Every item belongs to exactly one user; the
// owner is fixed at creation time and rows are removed when the owner is
// deleted (ON DELETE CASCADE in the schema).
type Todo struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:255;not null"`
	Description *string
	Completed   bool   `gorm:"not null;default:false"`
	CreatedBy   string `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
