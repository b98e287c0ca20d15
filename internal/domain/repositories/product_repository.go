package repositories

import (
	"context"

	"github.com/vikramraju/customer-feedback/backend/internal/domain/entities"
)

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	// Create creates a new product
	Create(ctx context.Context, product *entities.Product) error

	// GetByID retrieves a product by ID
	GetByID(ctx context.Context, id string) (*entities.Product, error)

	// List retrieves all products
	List(ctx context.Context) ([]*entities.Product, error)

	// ListByNames retrieves products whose name is in the given set
	ListByNames(ctx context.Context, names []string) ([]*entities.Product, error)

	// Update updates a product
	Update(ctx context.Context, product *entities.Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id string) error
}
