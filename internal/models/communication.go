// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// CommunicationStatus represents the status of a communication request.
type CommunicationStatus string

const (
	// CommunicationPending indicates a communication request awaiting a decision.
	CommunicationPending CommunicationStatus = "pending"
	// CommunicationAccepted indicates an accepted communication request.
	CommunicationAccepted CommunicationStatus = "accepted"
	// CommunicationRejected indicates a rejected communication request.
	CommunicationRejected CommunicationStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s CommunicationStatus) Valid() bool {
	switch s {
	case CommunicationPending, CommunicationAccepted, CommunicationRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether a status change from s to next is legal.
// The only legal transitions are pending -> accepted and pending -> rejected;
// a communication never returns to pending.
func (s CommunicationStatus) CanTransitionTo(next CommunicationStatus) bool {
	if s != CommunicationPending {
		return false
	}
	return next == CommunicationAccepted || next == CommunicationRejected
}

// Communication represents a consent relationship between exactly two users:
// the sender (FromUser) requests permission to message the recipient (ToUser).
type Communication struct {
	ID         uint                `gorm:"primaryKey" json:"id"`
	ToUserID   uint                `gorm:"not null;index" json:"to_user"`
	FromUserID uint                `gorm:"not null;index" json:"from_user"`
	Status     CommunicationStatus `gorm:"type:varchar(10);not null;default:'pending'" json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`

	// Relationships
	ToUser   User `gorm:"foreignKey:ToUserID;constraint:OnDelete:CASCADE" json:"-"`
	FromUser User `gorm:"foreignKey:FromUserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM
func (Communication) TableName() string {
	return "communications"
}

// HasParticipant reports whether userID is one of the two parties.
func (c *Communication) HasParticipant(userID uint) bool {
	return userID == c.ToUserID || userID == c.FromUserID
}

// IsRecipient reports whether userID is the party with acceptance authority.
func (c *Communication) IsRecipient(userID uint) bool {
	return userID == c.ToUserID
}

// Accepted reports whether messages may currently be sent in this communication.
func (c *Communication) Accepted() bool {
	return c.Status == CommunicationAccepted
}
