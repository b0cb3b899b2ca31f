package repository

import (
	"fmt"
	"testing"
	"time"

	"careline/internal/database"
	"careline/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh in-memory database per test so cascade
// behavior is observed without cross-test interference.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.ConnectTest()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// createTestUser inserts a user with unique username/email.
func createTestUser(t *testing.T, db *gorm.DB, tag string) *models.User {
	t.Helper()
	ts := time.Now().UnixNano()
	user := &models.User{
		Username: fmt.Sprintf("%s_%d", tag, ts),
		Email:    fmt.Sprintf("%s_%d@example.com", tag, ts),
		Password: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
