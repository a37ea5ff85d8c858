// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// MaxCommentLen is the maximum comment length in characters.
const MaxCommentLen = 500

// Comment represents a comment on a pin. Comments are removed when their
// pin is deleted.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PinID     uint      `gorm:"not null;index" json:"pin_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Content   string    `gorm:"size:500;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Pin  Pin  `gorm:"foreignKey:PinID" json:"-"`
}

// OwnedBy returns the comment's author for authorization checks.
func (c *Comment) OwnedBy() uint {
	return c.UserID
}
