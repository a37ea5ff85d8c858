// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Pin represents a single shareable image post, optionally grouped into a
// board. Deleting a pin cascades destructively to its comments and likes.
type Pin struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	BoardID     *uint  `gorm:"index" json:"board_id"`
	Image       string `gorm:"not null" json:"image"`
	Title       string `gorm:"size:100;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this pin (computed)
	Liked     bool      `gorm:"->" json:"liked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User  User   `gorm:"foreignKey:UserID" json:"-"`
	Board *Board `gorm:"foreignKey:BoardID" json:"board,omitempty"`

	// Comments holds the first page of the pin's comments on detail
	// reads; further pages come from the comments listing.
	Comments []*Comment `gorm:"-" json:"comments,omitempty"`
}

// OwnedBy returns the owning user for authorization checks.
func (p *Pin) OwnedBy() uint {
	return p.UserID
}
