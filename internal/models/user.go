// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account in the Pinboard application. Accounts are
// created inactive and flipped active by a one-time activation token.
// Users are never hard-deleted in visible flows.
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Email       string         `gorm:"unique;not null;index" json:"email"`
	Password    string         `gorm:"not null" json:"-"`
	IsActive    bool           `gorm:"not null;default:false" json:"is_active"`
	IsSuperuser bool           `gorm:"not null;default:false" json:"-"`
	IsStaff     bool           `gorm:"not null;default:false" json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Profile *Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}
