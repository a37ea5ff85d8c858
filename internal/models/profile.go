// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Profile holds the public-facing attributes of a user. Every User has
// exactly one Profile from the moment it is created; the profile is created
// by a lifecycle hook, never by a client request.
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	Username  string    `gorm:"size:20;unique;not null" json:"username"`
	Slug      string    `gorm:"size:32;unique;not null" json:"slug"`
	FirstName string    `gorm:"size:50" json:"first_name"`
	LastName  string    `gorm:"size:50" json:"last_name"`
	Bio       string    `gorm:"type:text" json:"bio"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for GORM.
func (Profile) TableName() string {
	return "profiles"
}

// OwnedBy returns the owning user for authorization checks.
func (p *Profile) OwnedBy() uint {
	return p.UserID
}
