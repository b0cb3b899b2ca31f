// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"careline/internal/cache"
	"careline/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// cachedUser is the Redis representation of a user. The API model hides
// Password and AddressID behind json:"-", so caching models.User directly
// would strip both on the round-trip and a warm cache would hand back an
// account with an empty hash.
type cachedUser struct {
	ID            uint            `json:"id"`
	Username      string          `json:"username"`
	Email         string          `json:"email"`
	Password      string          `json:"password"`
	Helper        bool            `json:"helper"`
	Seeker        bool            `json:"seeker"`
	EmailVerified bool            `json:"email_verified"`
	AddressID     *uint           `json:"address_id"`
	Address       *models.Address `json:"address"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func newCachedUser(user *models.User) cachedUser {
	return cachedUser{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		Password:      user.Password,
		Helper:        user.Helper,
		Seeker:        user.Seeker,
		EmailVerified: user.EmailVerified,
		AddressID:     user.AddressID,
		Address:       user.Address,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

func (c *cachedUser) toModel() *models.User {
	return &models.User{
		ID:            c.ID,
		Username:      c.Username,
		Email:         c.Email,
		Password:      c.Password,
		Helper:        c.Helper,
		Seeker:        c.Seeker,
		EmailVerified: c.EmailVerified,
		AddressID:     c.AddressID,
		Address:       c.Address,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var cached cachedUser

	err := cache.Aside(ctx, cache.UserKey(id), &cached, cache.UserTTL, func() error {
		var user models.User
		if err := r.db.WithContext(ctx).Preload("Address").First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		cached = newCachedUser(&user)
		return nil
	})

	if err != nil {
		return nil, err
	}
	return cached.toModel(), nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Address").Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("A user with this username or email already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := strings.ToLower(err.Error())
	// SQLite reports "UNIQUE constraint failed"; driver-wrapped postgres
	// errors carry the SQLSTATE in the message
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if user.Address != nil {
			if err := tx.Save(user.Address).Error; err != nil {
				return err
			}
			user.AddressID = &user.Address.ID
		}
		return tx.Save(user).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("A user with this username or email already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

// Delete removes the user and everything that must not outlive them:
// communications where they are a party (and the messages inside),
// their comments, and their address. Posts are kept with a detached owner.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return err
		}

		var commIDs []uint
		if err := tx.Model(&models.Communication{}).
			Where("to_user_id = ? OR from_user_id = ?", id, id).
			Pluck("id", &commIDs).Error; err != nil {
			return err
		}
		if len(commIDs) > 0 {
			if err := tx.Where("communication_id IN ?", commIDs).Delete(&models.Message{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Communication{}, commIDs).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		// Posts survive with a null owner.
		if err := tx.Model(&models.Post{}).Where("user_id = ?", id).
			Update("user_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.User{}, id).Error; err != nil {
			return err
		}

		if user.AddressID != nil {
			if err := tx.Delete(&models.Address{}, *user.AddressID).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}
