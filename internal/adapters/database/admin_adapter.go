package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/vikramraju/customer-feedback/backend/internal/domain/entities"
	"github.com/vikramraju/customer-feedback/backend/internal/domain/repositories"
	"github.com/vikramraju/customer-feedback/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/vikramraju/customer-feedback/backend/pkg/errors"
)

// AdminAdapter implements AdminRepository
type AdminAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAdminAdapter creates a new admin adapter
func NewAdminAdapter(client *postgres.Client) repositories.AdminRepository {
	return &AdminAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new admin account
func (a *AdminAdapter) Create(ctx context.Context, admin *entities.Admin) error {
	record := goqu.Record{
		"id":            admin.ID,
		"user_id":       admin.UserID,
		"password_hash": admin.PasswordHash,
		"created_at":    admin.CreatedAt,
	}

	query, args, err := a.db.Insert("admins").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build admin insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create admin", err)
	}

	return nil
}

// GetByUserID retrieves an admin by login id
func (a *AdminAdapter) GetByUserID(ctx context.Context, userID string) (*entities.Admin, error) {
	query, args, err := a.db.Select(
		"id", "user_id", "password_hash", "created_at",
	).From("admins").
		Where(goqu.Ex{"user_id": userID}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build admin query", err)
	}

	admin := &entities.Admin{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&admin.ID,
		&admin.UserID,
		&admin.PasswordHash,
		&admin.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("admin %s not found", userID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get admin", err)
	}

	return admin, nil
}
