package models

import (
	"time"
)

// Like represents a user's like on a pin.
// The combination of PinID and UserID must be unique; the unique index is
// the mechanism that closes the check-then-insert race, not application
// level existence probes.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PinID     uint      `gorm:"not null;uniqueIndex:idx_pin_user_like" json:"pin_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_pin_user_like" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Pin  Pin  `gorm:"foreignKey:PinID" json:"-"`
}
