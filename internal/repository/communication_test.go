package repository

import (
	"context"
	"errors"
	"testing"

	"careline/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommunicationRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommunicationRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	t.Run("Create and GetByID", func(t *testing.T) {
		comm := &models.Communication{FromUserID: alice.ID, ToUserID: bob.ID, Status: models.CommunicationPending}
		require.NoError(t, repo.Create(ctx, comm))
		require.NotZero(t, comm.ID)

		got, err := repo.GetByID(ctx, comm.ID)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.FromUserID)
		assert.Equal(t, models.CommunicationPending, got.Status)
	})

	t.Run("GetByID missing", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})

	t.Run("GetBetweenUsers is direction-agnostic", func(t *testing.T) {
		got, err := repo.GetBetweenUsers(ctx, bob.ID, alice.ID)
		require.NoError(t, err)
		require.NotNil(t, got)

		none, err := repo.GetBetweenUsers(ctx, alice.ID, carol.ID)
		require.NoError(t, err)
		assert.Nil(t, none)
	})

	t.Run("ListForUser returns only participant rows", func(t *testing.T) {
		other := &models.Communication{FromUserID: bob.ID, ToUserID: carol.ID, Status: models.CommunicationPending}
		require.NoError(t, repo.Create(ctx, other))

		aliceComms, err := repo.ListForUser(ctx, alice.ID, 50, 0)
		require.NoError(t, err)
		require.Len(t, aliceComms, 1)

		bobComms, err := repo.ListForUser(ctx, bob.ID, 50, 0)
		require.NoError(t, err)
		assert.Len(t, bobComms, 2)
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		comm, err := repo.GetBetweenUsers(ctx, alice.ID, bob.ID)
		require.NoError(t, err)

		require.NoError(t, repo.UpdateStatus(ctx, comm.ID, models.CommunicationAccepted))

		got, err := repo.GetByID(ctx, comm.ID)
		require.NoError(t, err)
		assert.Equal(t, models.CommunicationAccepted, got.Status)
	})

	t.Run("Delete removes messages", func(t *testing.T) {
		comm, err := repo.GetBetweenUsers(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		require.NoError(t, db.Create(&models.Message{CommunicationID: comm.ID, Msg: "hello"}).Error)

		require.NoError(t, repo.Delete(ctx, comm.ID))

		var msgCount int64
		db.Model(&models.Message{}).Where("communication_id = ?", comm.ID).Count(&msgCount)
		assert.Zero(t, msgCount)

		_, err = repo.GetByID(ctx, comm.ID)
		require.Error(t, err)
	})
}

func TestCommunicationRepository_GetBetweenUsersSkipsRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommunicationRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	rejected := &models.Communication{FromUserID: alice.ID, ToUserID: bob.ID, Status: models.CommunicationRejected}
	require.NoError(t, repo.Create(ctx, rejected))

	// only a rejected row exists: the pair counts as unconnected
	got, err := repo.GetBetweenUsers(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// a fresh request after rejection is the live row
	fresh := &models.Communication{FromUserID: alice.ID, ToUserID: bob.ID, Status: models.CommunicationPending}
	require.NoError(t, repo.Create(ctx, fresh))

	got, err = repo.GetBetweenUsers(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, fresh.ID, got.ID)
	assert.Equal(t, models.CommunicationPending, got.Status)
}
