// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Board is a named collection of pins owned by one user. Deleting a board
// detaches its pins (board_id set to NULL) rather than deleting them.
type Board struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Title       string    `gorm:"size:50;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User User  `gorm:"foreignKey:UserID" json:"-"`
	Pins []Pin `gorm:"foreignKey:BoardID" json:"pins,omitempty"`
}

// OwnedBy returns the owning user for authorization checks.
func (b *Board) OwnedBy() uint {
	return b.UserID
}
