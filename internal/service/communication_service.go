package service

import (
	"context"
	"errors"
	"fmt"

	"careline/internal/models"
	"careline/internal/repository"
)

// CommunicationService enforces who can see and mutate a communication.
// Non-participants are never told a communication exists: every lookup on
// their behalf yields a not-found error, not a forbidden one.
type CommunicationService struct {
	comms repository.CommunicationRepository
	users repository.UserRepository
}

func NewCommunicationService(comms repository.CommunicationRepository, users repository.UserRepository) *CommunicationService {
	return &CommunicationService{comms: comms, users: users}
}

// Request opens a pending communication from fromUserID to toUserID.
func (s *CommunicationService) Request(ctx context.Context, fromUserID, toUserID uint) (*models.Communication, error) {
	if fromUserID == toUserID {
		return nil, models.NewValidationError("You cannot open a communication with yourself")
	}

	target, err := s.users.GetByID(ctx, toUserID)
	if err != nil {
		return nil, fmt.Errorf("looking up recipient: %w", err)
	}
	if target == nil {
		return nil, models.NewNotFoundError("User", toUserID)
	}

	existing, err := s.comms.GetBetweenUsers(ctx, fromUserID, toUserID)
	if err != nil {
		return nil, fmt.Errorf("checking existing communication: %w", err)
	}
	if existing != nil && existing.Status != models.CommunicationRejected {
		return nil, models.NewValidationError("A communication between these users already exists")
	}

	comm := &models.Communication{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Status:     models.CommunicationPending,
	}
	if err := s.comms.Create(ctx, comm); err != nil {
		return nil, err
	}
	return s.comms.GetByID(ctx, comm.ID)
}

// List returns the communications userID participates in, oldest first.
func (s *CommunicationService) List(ctx context.Context, userID uint, limit, offset int) ([]models.Communication, error) {
	return s.comms.ListForUser(ctx, userID, limit, offset)
}

// Get returns the communication if userID participates in it.
func (s *CommunicationService) Get(ctx context.Context, userID, commID uint) (*models.Communication, error) {
	comm, err := s.comms.GetByID(ctx, commID)
	if err != nil {
		return nil, err
	}
	if !comm.HasParticipant(userID) {
		return nil, models.NewNotFoundError("Communication", commID)
	}
	return comm, nil
}

// UpdateStatus moves a communication to the given status. Only the
// recipient may do this, and only while the communication is pending.
// The checks are ordered so that an outsider learns nothing: membership
// is decided before role, and role before transition validity.
func (s *CommunicationService) UpdateStatus(ctx context.Context, userID, commID uint, status models.CommunicationStatus) (*models.Communication, error) {
	if !status.Valid() {
		return nil, models.NewValidationError("Invalid communication status")
	}

	comm, err := s.Get(ctx, userID, commID)
	if err != nil {
		return nil, err
	}
	if !comm.IsRecipient(userID) {
		return nil, models.NewForbiddenError("Only the recipient can change the communication status")
	}
	if !comm.Status.CanTransitionTo(status) {
		return nil, models.NewValidationError(
			fmt.Sprintf("Cannot change communication status from %s to %s", comm.Status, status))
	}

	if err := s.comms.UpdateStatus(ctx, commID, status); err != nil {
		return nil, err
	}
	return s.comms.GetByID(ctx, commID)
}

// Delete removes a communication and its messages. Either participant
// may delete.
func (s *CommunicationService) Delete(ctx context.Context, userID, commID uint) error {
	if _, err := s.Get(ctx, userID, commID); err != nil {
		return err
	}
	if err := s.comms.Delete(ctx, commID); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return models.NewInternalError(err)
	}
	return nil
}
