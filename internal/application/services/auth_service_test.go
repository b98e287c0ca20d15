package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vikramraju/customer-feedback/backend/internal/auth"
	"github.com/vikramraju/customer-feedback/backend/internal/domain/entities"
)

const testSecret = "test-signing-secret"

func newAuthFixture(t *testing.T) *AuthService {
	t.Helper()
	repo := newStubAdminRepo()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &entities.Admin{
		ID:           "admin-1",
		UserID:       "ops",
		PasswordHash: string(hash),
	}))

	return NewAuthService(repo, testSecret, time.Hour)
}

func TestAuthService_Login(t *testing.T) {
	svc := newAuthFixture(t)

	result, err := svc.Login(context.Background(), "ops", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "ops", result.Admin.UserID)

	claims, err := auth.ValidateToken(testSecret, result.Token)
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc := newAuthFixture(t)

	_, unknownErr := svc.Login(context.Background(), "nobody", "s3cret")
	_, wrongPassErr := svc.Login(context.Background(), "ops", "wrong")

	require.Error(t, unknownErr)
	require.Error(t, wrongPassErr)
	// An unknown id and a wrong password must be indistinguishable.
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())
}

func TestAuthService_IssueCustomerToken(t *testing.T) {
	svc := newAuthFixture(t)

	token, err := svc.IssueCustomerToken("cust-1")
	require.NoError(t, err)

	claims, err := auth.ValidateToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "cust-1", claims.Subject)
	assert.Equal(t, auth.RoleCustomer, claims.Role)
}
