// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"careline/internal/models"

	"gorm.io/gorm"
)

// CommunicationRepository defines the interface for communication data operations
type CommunicationRepository interface {
	Create(ctx context.Context, comm *models.Communication) error
	GetByID(ctx context.Context, id uint) (*models.Communication, error)
	GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.Communication, error)
	ListForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Communication, error)
	UpdateStatus(ctx context.Context, id uint, status models.CommunicationStatus) error
	Delete(ctx context.Context, id uint) error
}

type communicationRepository struct {
	db *gorm.DB
}

// NewCommunicationRepository creates a new communication repository
func NewCommunicationRepository(db *gorm.DB) CommunicationRepository {
	return &communicationRepository{db: db}
}

func (r *communicationRepository) Create(ctx context.Context, comm *models.Communication) error {
	if err := r.db.WithContext(ctx).Create(comm).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *communicationRepository) GetByID(ctx context.Context, id uint) (*models.Communication, error) {
	var comm models.Communication
	if err := r.db.WithContext(ctx).First(&comm, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Communication", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comm, nil
}

// GetBetweenUsers returns the live (pending or accepted) communication
// between the two users, in either direction, or nil. Rejected rows are
// skipped so a rejection does not block a later request for the same pair.
func (r *communicationRepository) GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.Communication, error) {
	var comm models.Communication

	if err := r.db.WithContext(ctx).
		Where("(to_user_id = ? AND from_user_id = ?) OR (to_user_id = ? AND from_user_id = ?)",
			userID1, userID2, userID2, userID1).
		Where("status <> ?", models.CommunicationRejected).
		First(&comm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No communication exists
		}
		return nil, models.NewInternalError(err)
	}
	return &comm, nil
}

func (r *communicationRepository) ListForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Communication, error) {
	var comms []models.Communication
	if err := r.db.WithContext(ctx).
		Where("to_user_id = ? OR from_user_id = ?", userID, userID).
		Order("id asc").
		Limit(limit).Offset(offset).
		Find(&comms).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return comms, nil
}

func (r *communicationRepository) UpdateStatus(ctx context.Context, id uint, status models.CommunicationStatus) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Communication{}).
		Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the communication and, with it, every contained message.
func (r *communicationRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("communication_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Communication{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
