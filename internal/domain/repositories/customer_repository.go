package repositories

import (
	"context"

	"github.com/vikramraju/customer-feedback/backend/internal/domain/entities"
)

// CustomerRepository defines the interface for customer data operations.
type CustomerRepository interface {
	// GetByID retrieves a customer by ID
	GetByID(ctx context.Context, id string) (*entities.Customer, error)

	// GetByPhone retrieves a customer by phone number
	GetByPhone(ctx context.Context, phone string) (*entities.Customer, error)

	// List retrieves all customers
	List(ctx context.Context) ([]*entities.Customer, error)

	// Upsert inserts a customer keyed by phone, or updates the name and
	// product set when the phone already exists. Atomic per customer.
	Upsert(ctx context.Context, customer *entities.Customer) error
}
