package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vikramraju/customer-feedback/backend/internal/domain/entities"
	"github.com/vikramraju/customer-feedback/backend/internal/domain/repositories"
	apperrors "github.com/vikramraju/customer-feedback/backend/pkg/errors"
)

// ProductService handles product management.
type ProductService struct {
	products repositories.ProductRepository
}

// NewProductService creates a new product service.
func NewProductService(products repositories.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// Create validates and stores a new product.
func (s *ProductService) Create(ctx context.Context, product *entities.Product) error {
	product.Name = strings.TrimSpace(product.Name)
	product.Code = strings.TrimSpace(product.Code)

	if product.Name == "" || product.Code == "" {
		return apperrors.NewValidationError("product name and code are required")
	}

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	return s.products.Create(ctx, product)
}

// List retrieves all products.
func (s *ProductService) List(ctx context.Context) ([]*entities.Product, error) {
	return s.products.List(ctx)
}

// Get retrieves a product by id.
func (s *ProductService) Get(ctx context.Context, id string) (*entities.Product, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("product ID is required")
	}
	return s.products.GetByID(ctx, id)
}

// Update validates and stores changes to a product.
func (s *ProductService) Update(ctx context.Context, product *entities.Product) error {
	product.Name = strings.TrimSpace(product.Name)
	product.Code = strings.TrimSpace(product.Code)

	if product.ID == "" {
		return apperrors.NewValidationError("product ID is required")
	}
	if product.Name == "" || product.Code == "" {
		return apperrors.NewValidationError("product name and code are required")
	}

	return s.products.Update(ctx, product)
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.NewValidationError("product ID is required")
	}
	return s.products.Delete(ctx, id)
}
