// Package bootstrap wires runtime dependencies (database, Redis) and applies
// development-only startup fixtures before the server is constructed.
package bootstrap

import (
	"errors"
	"fmt"
	"strings"

	"careline/internal/cache"
	"careline/internal/config"
	"careline/internal/database"
	"careline/internal/models"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// InitRuntime connects to the database and Redis and, in development,
// optionally ensures a known support-worker account exists.
func InitRuntime(cfg *config.Config) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// May leave a nil client if Redis is unreachable; the server degrades
	// to uncached reads and rejects nothing.
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := ensureDevUser(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development account: %w", err)
	}

	return db, r, nil
}

// ensureDevUser creates or refreshes a fixed helper account so a fresh
// development database always has a login to test with.
func ensureDevUser(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapUser {
		return nil
	}

	username := strings.TrimSpace(cfg.DevUserName)
	if username == "" {
		username = "careline_dev"
	}
	email := strings.TrimSpace(strings.ToLower(cfg.DevUserEmail))
	if email == "" {
		email = "dev@careline.local"
	}
	password := cfg.DevUserPassword
	if password == "" {
		return fmt.Errorf("DEV_USER_PASSWORD must be set when DEV_BOOTSTRAP_USER is enabled")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		findErr := tx.Where("username = ?", username).First(&user).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			user = models.User{
				Username:      username,
				Email:         email,
				Password:      string(hashedPassword),
				Helper:        true,
				Seeker:        true,
				EmailVerified: true,
			}
			return tx.Create(&user).Error
		case findErr != nil:
			return findErr
		default:
			return tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]any{
				"email":          email,
				"password":       string(hashedPassword),
				"helper":         true,
				"seeker":         true,
				"email_verified": true,
			}).Error
		}
	})
}
