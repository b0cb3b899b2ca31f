package server

import (
	"careline/internal/models"
	"careline/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetProfile(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT and PATCH /api/users/me. Fields absent from
// the body are left unchanged; the username is immutable.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Email   *string      `json:"email"`
		Helper  *bool        `json:"helper"`
		Seeker  *bool        `json:"seeker"`
		Address *addressBody `json:"address"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	update := service.ProfileUpdate{
		Email:  req.Email,
		Helper: req.Helper,
		Seeker: req.Seeker,
	}
	if req.Address != nil {
		if req.Address.City == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Address city is required"))
		}
		update.Address = &models.Address{
			City:       req.Address.City,
			PostalCode: req.Address.PostalCode,
		}
	}

	user, err := s.userService.UpdateProfile(c.Context(), currentUserID(c), update)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// ChangePassword handles PUT /api/users/me/change_password
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req struct {
		OldPassword string `json:"old_password"`
		Password    string `json:"password"`
		Password2   string `json:"password2"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Password != req.Password2 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Entered passwords do not match"))
	}

	if err := s.userService.ChangePassword(c.Context(), currentUserID(c), req.OldPassword, req.Password); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}

// DeleteMyAccount handles DELETE /api/users/me. The delete is hard:
// communications, messages, and comments go with the account, posts
// survive without an owner.
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	if err := s.userService.DeleteAccount(c.Context(), currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
