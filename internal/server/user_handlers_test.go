package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"careline/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func userRoutes(s *Server, userID uint) *fiber.App {
	app := fiber.New()
	users := app.Group("/users", asUser(userID))
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)
	users.Patch("/me", s.UpdateMyProfile)
	users.Delete("/me", s.DeleteMyAccount)
	users.Put("/me/change_password", s.ChangePassword)
	return app
}

func TestGetMyProfile(t *testing.T) {
	s, mocks := newTestServer()
	postal := "10115"
	mocks.users.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{
			ID:       1,
			Username: "alice",
			Email:    "alice@example.com",
			Helper:   true,
			Address:  &models.Address{ID: 2, City: "Berlin", PostalCode: &postal},
		}, nil)

	app := userRoutes(s, 1)
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, true, body["helper"])
	assert.Equal(t, false, body["seeker"])
	address, ok := body["address"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Berlin", address["city"])
	// The password hash must never appear in responses.
	_, exposed := body["password"]
	assert.False(t, exposed)
}

func TestUpdateMyProfilePartial(t *testing.T) {
	s, mocks := newTestServer()
	state := &models.User{ID: 1, Username: "alice", Email: "alice@example.com", Helper: true}
	mocks.users.On("GetByID", mock.Anything, uint(1)).Return(state, nil)
	mocks.users.On("Update", mock.Anything, mock.Anything).Return(nil)

	app := userRoutes(s, 1)
	resp := doJSON(t, app, http.MethodPatch, "/users/me", map[string]any{"seeker": true})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["seeker"])
	assert.Equal(t, true, body["helper"])
	assert.Equal(t, "alice@example.com", body["email"])
}

func TestChangePassword(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cretpass"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		s, mocks := newTestServer()
		mocks.users.On("GetByID", mock.Anything, uint(1)).
			Return(&models.User{ID: 1, Password: string(hashed)}, nil)
		mocks.users.On("Update", mock.Anything, mock.Anything).Return(nil)

		app := userRoutes(s, 1)
		resp := doJSON(t, app, http.MethodPut, "/users/me/change_password", map[string]string{
			"old_password": "s3cretpass",
			"password":     "newpassword",
			"password2":    "newpassword",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	})

	t.Run("Wrong old password", func(t *testing.T) {
		s, mocks := newTestServer()
		mocks.users.On("GetByID", mock.Anything, uint(1)).
			Return(&models.User{ID: 1, Password: string(hashed)}, nil)

		app := userRoutes(s, 1)
		resp := doJSON(t, app, http.MethodPut, "/users/me/change_password", map[string]string{
			"old_password": "wrongpass",
			"password":     "newpassword",
			"password2":    "newpassword",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "old password is not correct", body["error"])
	})

	t.Run("New passwords do not match", func(t *testing.T) {
		s, _ := newTestServer()
		app := userRoutes(s, 1)
		resp := doJSON(t, app, http.MethodPut, "/users/me/change_password", map[string]string{
			"old_password": "s3cretpass",
			"password":     "newpassword",
			"password2":    "different",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "Entered passwords do not match", body["error"])
	})
}

func TestDeleteMyAccount(t *testing.T) {
	s, mocks := newTestServer()
	mocks.users.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1, Username: "alice"}, nil)
	mocks.users.On("Delete", mock.Anything, uint(1)).Return(nil)

	app := userRoutes(s, 1)
	req := httptest.NewRequest(http.MethodDelete, "/users/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	mocks.users.AssertCalled(t, "Delete", mock.Anything, uint(1))
}
