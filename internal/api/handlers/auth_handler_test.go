package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vikramraju/customer-feedback/backend/internal/auth"
)

func TestAuthHandler_Login(t *testing.T) {
	f := newFixture(t)
	handler := NewAuthHandler(f.authService)

	rec := submitJSON(t, handler.Login, "/api/admin/login", map[string]string{
		"user_id":  "ops",
		"password": "s3cret",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var response struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

	claims, err := auth.ValidateToken(testJWTSecret, response.Token)
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	f := newFixture(t)
	handler := NewAuthHandler(f.authService)

	rec := submitJSON(t, handler.Login, "/api/admin/login", map[string]string{
		"user_id":  "ops",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Login_UnknownUser(t *testing.T) {
	f := newFixture(t)
	handler := NewAuthHandler(f.authService)

	rec := submitJSON(t, handler.Login, "/api/admin/login", map[string]string{
		"user_id":  "nobody",
		"password": "s3cret",
	})

	// Same status and message as a wrong password.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	f := newFixture(t)
	handler := NewAuthHandler(f.authService)

	rec := submitJSON(t, handler.Login, "/api/admin/login", map[string]string{
		"user_id": "ops",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
