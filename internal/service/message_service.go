package service

import (
	"context"
	"strings"

	"careline/internal/models"
	"careline/internal/observability"
	"careline/internal/repository"
)

// MessageService guards message access with the same visibility rule as
// communications: a user who is not a participant of the surrounding
// communication gets a not-found error for any message in it.
type MessageService struct {
	messages repository.MessageRepository
	comms    repository.CommunicationRepository
}

func NewMessageService(messages repository.MessageRepository, comms repository.CommunicationRepository) *MessageService {
	return &MessageService{messages: messages, comms: comms}
}

// Send creates a message in the given communication. The communication
// must be visible to the sender and must have been accepted.
func (s *MessageService) Send(ctx context.Context, userID, commID uint, body string) (*models.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, models.NewValidationError("Message body cannot be empty")
	}

	comm, err := s.comms.GetByID(ctx, commID)
	if err != nil {
		return nil, err
	}
	if !comm.HasParticipant(userID) {
		return nil, models.NewNotFoundError("Communication", commID)
	}
	if !comm.Accepted() {
		return nil, models.NewValidationError("Messages can only be sent in accepted communications.")
	}

	msg := &models.Message{
		CommunicationID: commID,
		Msg:             body,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	observability.MessagesCreated.Inc()
	return s.messages.GetByID(ctx, msg.ID)
}

// List returns all messages across the communications userID takes part
// in, oldest first.
func (s *MessageService) List(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	return s.messages.ListForUser(ctx, userID, limit, offset)
}

// ListByCommunication returns the messages of one communication, after
// checking the caller can see it.
func (s *MessageService) ListByCommunication(ctx context.Context, userID, commID uint, limit, offset int) ([]models.Message, error) {
	comm, err := s.comms.GetByID(ctx, commID)
	if err != nil {
		return nil, err
	}
	if !comm.HasParticipant(userID) {
		return nil, models.NewNotFoundError("Communication", commID)
	}
	return s.messages.ListByCommunication(ctx, commID, limit, offset)
}

// Get returns a single message if its communication is visible to userID.
func (s *MessageService) Get(ctx context.Context, userID, msgID uint) (*models.Message, error) {
	msg, err := s.messages.GetByID(ctx, msgID)
	if err != nil {
		return nil, err
	}
	if msg.Communication == nil || !msg.Communication.HasParticipant(userID) {
		return nil, models.NewNotFoundError("Message", msgID)
	}
	return msg, nil
}

// Update rewrites the body of a message. Either participant of the
// communication may edit.
func (s *MessageService) Update(ctx context.Context, userID, msgID uint, body string) (*models.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, models.NewValidationError("Message body cannot be empty")
	}
	msg, err := s.Get(ctx, userID, msgID)
	if err != nil {
		return nil, err
	}
	msg.Msg = body
	if err := s.messages.Update(ctx, msg); err != nil {
		return nil, err
	}
	return s.messages.GetByID(ctx, msg.ID)
}

// Delete removes a message visible to userID.
func (s *MessageService) Delete(ctx context.Context, userID, msgID uint) error {
	msg, err := s.Get(ctx, userID, msgID)
	if err != nil {
		return err
	}
	return s.messages.Delete(ctx, msg.ID)
}
