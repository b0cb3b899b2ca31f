// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Address is the optional postal address attached to a user profile.
// It is owned exclusively by its user and removed when the user is deleted.
type Address struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	City       string  `gorm:"size:128;not null" json:"city"`
	PostalCode *string `gorm:"size:16" json:"postal_code,omitempty"`
}

// TableName specifies the table name for GORM
func (Address) TableName() string {
	return "addresses"
}

// User represents a user account in the Careline application.
// Accounts are hard-deleted; dependent rows are cascaded by the repository
// (communications, messages, comments, address) or detached (posts).
type User struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	Username      string   `gorm:"unique;not null" json:"username"`
	Email         string   `gorm:"unique;not null" json:"email"`
	Password      string   `gorm:"not null" json:"-"`
	Helper        bool     `gorm:"not null;default:false" json:"helper"`
	Seeker        bool     `gorm:"not null;default:false" json:"seeker"`
	EmailVerified bool     `gorm:"not null;default:false" json:"email_verified"`
	AddressID     *uint    `json:"-"`
	Address       *Address `gorm:"foreignKey:AddressID" json:"address,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
