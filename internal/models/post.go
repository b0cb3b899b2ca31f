// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post represents a post in the Careline application.
// UserID is nullable: posts survive the deletion of their author.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Post) TableName() string {
	return "posts"
}

// OwnedBy reports whether the post currently belongs to userID.
// A post with a detached owner belongs to nobody.
func (p *Post) OwnedBy(userID uint) bool {
	return p.UserID != nil && *p.UserID == userID
}
