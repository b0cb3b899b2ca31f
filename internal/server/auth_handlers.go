package server

import (
	"fmt"
	"strconv"
	"time"

	"careline/internal/cache"
	"careline/internal/models"
	"careline/internal/observability"
	"careline/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type addressBody struct {
	City       string  `json:"city"`
	PostalCode *string `json:"postal_code"`
}

// Register handles POST /api/auth/register. No token is issued at
// registration; login is a separate step.
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username  string       `json:"username"`
		Email     string       `json:"email"`
		Password  string       `json:"password"`
		Password2 string       `json:"password2"`
		Helper    bool         `json:"helper"`
		Seeker    bool         `json:"seeker"`
		Address   *addressBody `json:"address"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username, email, and password are required"))
	}
	if req.Password != req.Password2 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Entered passwords do not match"))
	}

	var address *models.Address
	if req.Address != nil {
		if req.Address.City == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Address city is required"))
		}
		address = &models.Address{
			City:       req.Address.City,
			PostalCode: req.Address.PostalCode,
		}
	}

	if _, err := s.userService.Register(c.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Helper:   req.Helper,
		Seeker:   req.Seeker,
		Address:  address,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"msg": "User was created",
	})
}

// Login handles POST /api/auth/login and returns an access/refresh pair.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Authenticate(c.Context(), req.Username, req.Password)
	if err != nil {
		return respondServiceError(c, err)
	}

	access, err := s.generateToken(user.ID, "access", s.config.AccessTokenTTL)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	refresh, err := s.generateToken(user.ID, "refresh", s.config.RefreshTokenTTL)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"access":  access,
		"refresh": refresh,
	})
}

// Refresh handles POST /api/auth/refresh, exchanging a refresh token for
// a new access token.
func (s *Server) Refresh(c *fiber.Ctx) error {
	claims, err := s.refreshClaims(c)
	if err != nil {
		return nil
	}

	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid user ID in token"))
	}

	access, err := s.generateToken(uint(userID), "access", s.config.AccessTokenTTL)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"access": access,
	})
}

// Logout handles POST /api/auth/logout. The refresh token's jti is
// blacklisted until the token would have expired anyway; a second logout
// with the same token fails validation.
func (s *Server) Logout(c *fiber.Ctx) error {
	claims, err := s.refreshClaims(c)
	if err != nil {
		return nil
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Token is invalid"))
	}

	ttl := s.config.RefreshTokenTTL
	if exp, expErr := claims.GetExpirationTime(); expErr == nil && exp != nil {
		ttl = time.Until(exp.Time)
	}
	if ttl <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Token is invalid or expired"))
	}

	if s.redis != nil {
		if err := s.redis.Set(c.Context(), cache.BlacklistKey(jti), "revoked", ttl).Err(); err != nil {
			observability.RedisErrors.WithLabelValues("blacklist").Inc()
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
		observability.TokensBlacklisted.Inc()
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// refreshClaims parses the refresh token from the request body and checks
// its type and revocation state. On failure the response has already been
// written and the caller should return nil.
func (s *Server) refreshClaims(c *fiber.Ctx) (jwt.MapClaims, error) {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := c.BodyParser(&req); err != nil || req.Refresh == "" {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Refresh token is required"))
		return nil, errResponseWritten
	}

	claims, err := s.parseToken(req.Refresh)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Token is invalid or expired"))
		return nil, errResponseWritten
	}

	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Token has wrong type"))
		return nil, errResponseWritten
	}

	if jti, _ := claims["jti"].(string); jti != "" && s.redis != nil {
		blacklisted, err := s.redis.Exists(c.Context(), cache.BlacklistKey(jti)).Result()
		if err == nil && blacklisted > 0 {
			_ = models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Token is blacklisted"))
			return nil, errResponseWritten
		}
	}

	return claims, nil
}

// generateToken creates a signed JWT of the given type and lifetime.
func (s *Server) generateToken(userID uint, tokenType string, ttl time.Duration) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(userID), 10),
		"type": tokenType,
		"iss":  tokenIssuer,
		"aud":  tokenAudience,
		"exp":  now.Add(ttl).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"jti":  uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", err
	}
	observability.TokensIssued.WithLabelValues(tokenType).Inc()
	return signed, nil
}
