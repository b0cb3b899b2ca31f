package server

import (
	"careline/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetCommunications handles GET /api/communications, returning only the
// caller's communications.
func (s *Server) GetCommunications(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	comms, err := s.commService.List(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	if comms == nil {
		comms = []models.Communication{}
	}
	return c.JSON(comms)
}

// CreateCommunication handles POST /api/communications
func (s *Server) CreateCommunication(c *fiber.Ctx) error {
	var req struct {
		ToUser uint `json:"to_user"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ToUser == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("to_user is required"))
	}

	comm, err := s.commService.Request(c.Context(), currentUserID(c), req.ToUser)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comm)
}

// GetCommunication handles GET /api/communications/:id
func (s *Server) GetCommunication(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comm, err := s.commService.Get(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comm)
}

// UpdateCommunicationStatus handles PATCH /api/communications/:id. Only
// the recipient may accept or reject, and only while pending.
func (s *Server) UpdateCommunicationStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Status == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("status is required"))
	}

	comm, err := s.commService.UpdateStatus(c.Context(), currentUserID(c), id,
		models.CommunicationStatus(req.Status))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comm)
}

// DeleteCommunication handles DELETE /api/communications/:id
func (s *Server) DeleteCommunication(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commService.Delete(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetCommunicationMessages handles GET /api/communications/:id/messages
func (s *Server) GetCommunicationMessages(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	p := parsePagination(c, 50)
	messages, err := s.messageService.ListByCommunication(c.Context(), currentUserID(c), id, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return c.JSON(messages)
}
