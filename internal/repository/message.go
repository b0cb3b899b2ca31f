// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"careline/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines the interface for message data operations
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	GetByID(ctx context.Context, id uint) (*models.Message, error)
	ListForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error)
	ListByCommunication(ctx context.Context, communicationID uint, limit, offset int) ([]models.Message, error)
	Update(ctx context.Context, msg *models.Message) error
	Delete(ctx context.Context, id uint) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	var msg models.Message
	if err := r.db.WithContext(ctx).Preload("Communication").First(&msg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Message", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &msg, nil
}

// ListForUser aggregates messages across every communication the user is a
// party to. The participant filter lives in the query, never in the handler.
func (r *messageRepository) ListForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	var msgs []models.Message
	if err := r.db.WithContext(ctx).
		Joins("JOIN communications ON communications.id = messages.communication_id").
		Where("communications.to_user_id = ? OR communications.from_user_id = ?", userID, userID).
		Order("messages.created_at asc").
		Limit(limit).Offset(offset).
		Find(&msgs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return msgs, nil
}

func (r *messageRepository) ListByCommunication(ctx context.Context, communicationID uint, limit, offset int) ([]models.Message, error) {
	var msgs []models.Message
	if err := r.db.WithContext(ctx).
		Where("communication_id = ?", communicationID).
		Order("created_at asc").
		Limit(limit).Offset(offset).
		Find(&msgs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return msgs, nil
}

// Update persists only the mutable body; created_at stays server-assigned.
func (r *messageRepository) Update(ctx context.Context, msg *models.Message) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("id = ?", msg.ID).
		Update("msg", msg.Msg).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Message{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
