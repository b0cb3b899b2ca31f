// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Message is a single message sent within an accepted communication.
// CreatedAt is server-assigned and immutable; only the body may change.
type Message struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CommunicationID uint      `gorm:"not null;index" json:"communication"`
	Msg             string    `gorm:"type:text;not null" json:"msg"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"-"`

	Communication *Communication `gorm:"foreignKey:CommunicationID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM
func (Message) TableName() string {
	return "messages"
}
