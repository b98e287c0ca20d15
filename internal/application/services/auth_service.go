package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vikramraju/customer-feedback/backend/internal/auth"
	"github.com/vikramraju/customer-feedback/backend/internal/domain/entities"
	"github.com/vikramraju/customer-feedback/backend/internal/domain/repositories"
	apperrors "github.com/vikramraju/customer-feedback/backend/pkg/errors"
)

// AuthService handles admin credential checks and session token issuance.
type AuthService struct {
	admins    repositories.AdminRepository
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuthService creates a new auth service.
func NewAuthService(admins repositories.AdminRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		admins:    admins,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// LoginResult carries the session token and the authenticated admin.
type LoginResult struct {
	Token string          `json:"token"`
	Admin *entities.Admin `json:"admin"`
}

// Login checks the credentials and issues an admin session token. A missing
// admin and a wrong password produce the same error so callers cannot tell
// the two apart.
func (s *AuthService) Login(ctx context.Context, userID, password string) (*LoginResult, error) {
	admin, err := s.admins.GetByUserID(ctx, userID)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Type == apperrors.ErrorTypeNotFound {
			return nil, apperrors.NewUnauthorizedError("invalid credentials")
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	token, err := auth.GenerateToken(s.jwtSecret, admin.UserID, auth.RoleAdmin, s.tokenTTL)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to issue session token", err)
	}

	return &LoginResult{Token: token, Admin: admin}, nil
}

// IssueCustomerToken issues a session token carrying the customer id as a
// claim. Customers never receive their raw database id as a credential.
func (s *AuthService) IssueCustomerToken(customerID string) (string, error) {
	token, err := auth.GenerateToken(s.jwtSecret, customerID, auth.RoleCustomer, s.tokenTTL)
	if err != nil {
		return "", apperrors.NewInternalError("failed to issue session token", err)
	}
	return token, nil
}
