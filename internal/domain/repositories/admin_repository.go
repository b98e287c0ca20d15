package repositories

import (
	"context"

	"github.com/vikramraju/customer-feedback/backend/internal/domain/entities"
)

// AdminRepository defines the interface for admin account operations.
type AdminRepository interface {
	// Create creates a new admin account
	Create(ctx context.Context, admin *entities.Admin) error

	// GetByUserID retrieves an admin by login id
	GetByUserID(ctx context.Context, userID string) (*entities.Admin, error)
}
