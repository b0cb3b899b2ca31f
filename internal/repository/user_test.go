package repository

import (
	"context"
	"errors"
	"testing"

	"careline/internal/cache"
	"careline/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	postal := "10115"
	user := &models.User{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hashed",
		Seeker:   true,
		Address:  &models.Address{City: "Berlin", PostalCode: &postal},
	}
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Username)
	assert.True(t, got.Seeker)
	require.NotNil(t, got.Address)
	assert.Equal(t, "Berlin", got.Address.City)

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, user.ID, byName.ID)

	missing, err := repo.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &models.User{Username: "alice", Email: "alice@example.com", Password: "hashed"}
	require.NoError(t, repo.Create(ctx, first))

	dup := &models.User{Username: "alice", Email: "other@example.com", Password: "hashed"}
	err := repo.Create(ctx, dup)
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	postal := "10115"
	alice := &models.User{
		Username: "alice", Email: "alice@example.com", Password: "hashed",
		Address: &models.Address{City: "Berlin", PostalCode: &postal},
	}
	require.NoError(t, users.Create(ctx, alice))
	bob := createTestUser(t, db, "bob")

	comm := &models.Communication{FromUserID: alice.ID, ToUserID: bob.ID, Status: models.CommunicationAccepted}
	require.NoError(t, db.Create(comm).Error)
	require.NoError(t, db.Create(&models.Message{CommunicationID: comm.ID, Msg: "hello"}).Error)
	require.NoError(t, db.Create(&models.Message{CommunicationID: comm.ID, Msg: "again"}).Error)

	post := &models.Post{Title: "keep me", Content: "body", UserID: &alice.ID}
	require.NoError(t, db.Create(post).Error)
	require.NoError(t, db.Create(&models.Comment{Content: "mine", UserID: alice.ID, PostID: post.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{Content: "bobs", UserID: bob.ID, PostID: post.ID}).Error)

	require.NoError(t, users.Delete(ctx, alice.ID))

	var commCount, msgCount, commentCount, addressCount int64
	db.Model(&models.Communication{}).Count(&commCount)
	db.Model(&models.Message{}).Count(&msgCount)
	db.Model(&models.Comment{}).Count(&commentCount)
	db.Model(&models.Address{}).Count(&addressCount)

	// Communications, their messages, the user's comments, and the
	// address all go; the other user's comment stays.
	assert.Zero(t, commCount)
	assert.Zero(t, msgCount)
	assert.EqualValues(t, 1, commentCount)
	assert.Zero(t, addressCount)

	// The post survives without an owner.
	var kept models.Post
	require.NoError(t, db.First(&kept, post.ID).Error)
	assert.Nil(t, kept.UserID)

	_, err := users.GetByID(ctx, alice.ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestUserRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")
	user.Helper = true
	user.Email = "new@example.com"
	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.Helper)
	assert.Equal(t, "new@example.com", got.Email)
}

func TestUserRepository_WarmCacheKeepsCredentials(t *testing.T) {
	db := setupTestDB(t)
	mr := miniredis.RunT(t)
	prev := cache.GetClient()
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(prev) })

	repo := NewUserRepository(db)
	ctx := context.Background()

	postal := "10115"
	user := &models.User{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "bcrypt-hash",
		Helper:   true,
		Address:  &models.Address{City: "Berlin", PostalCode: &postal},
	}
	require.NoError(t, repo.Create(ctx, user))

	// cold read fills the cache
	cold, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists(cache.UserKey(user.ID)))
	assert.Equal(t, "bcrypt-hash", cold.Password)

	// warm read must keep the hidden fields intact
	warm, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "bcrypt-hash", warm.Password)
	require.NotNil(t, warm.AddressID)
	require.NotNil(t, warm.Address)
	assert.Equal(t, "Berlin", warm.Address.City)

	// saving a warm-cache read must not zero the stored hash
	warm.Seeker = true
	require.NoError(t, repo.Update(ctx, warm))

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, "bcrypt-hash", stored.Password)
	assert.True(t, stored.Seeker)
}
