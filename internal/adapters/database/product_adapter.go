package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/vikramraju/customer-feedback/backend/internal/domain/entities"
	"github.com/vikramraju/customer-feedback/backend/internal/domain/repositories"
	"github.com/vikramraju/customer-feedback/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/vikramraju/customer-feedback/backend/pkg/errors"
)

// ProductAdapter implements ProductRepository
type ProductAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewProductAdapter creates a new product adapter
func NewProductAdapter(client *postgres.Client) repositories.ProductRepository {
	return &ProductAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new product
func (a *ProductAdapter) Create(ctx context.Context, product *entities.Product) error {
	record := goqu.Record{
		"id":         product.ID,
		"name":       product.Name,
		"code":       product.Code,
		"created_at": product.CreatedAt,
		"updated_at": product.UpdatedAt,
	}

	query, args, err := a.db.Insert("products").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build product insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create product", err)
	}

	return nil
}

// GetByID retrieves a product by ID
func (a *ProductAdapter) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	query, args, err := a.db.Select(
		"id", "name", "code", "created_at", "updated_at",
	).From("products").
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build product query", err)
	}

	product := &entities.Product{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&product.ID,
		&product.Name,
		&product.Code,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("product %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get product", err)
	}

	return product, nil
}

// List retrieves all products
func (a *ProductAdapter) List(ctx context.Context) ([]*entities.Product, error) {
	query, args, err := a.db.Select(
		"id", "name", "code", "created_at", "updated_at",
	).From("products").
		Order(goqu.I("name").Asc()).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build product list query", err)
	}

	return a.queryProducts(ctx, query, args)
}

// ListByNames retrieves products whose name is in the given set
func (a *ProductAdapter) ListByNames(ctx context.Context, names []string) ([]*entities.Product, error) {
	if len(names) == 0 {
		return nil, nil
	}

	query, args, err := a.db.Select(
		"id", "name", "code", "created_at", "updated_at",
	).From("products").
		Where(goqu.C("name").In(names)).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build product name query", err)
	}

	return a.queryProducts(ctx, query, args)
}

func (a *ProductAdapter) queryProducts(ctx context.Context, query string, args []interface{}) ([]*entities.Product, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list products", err)
	}
	defer rows.Close()

	var products []*entities.Product
	for rows.Next() {
		product := &entities.Product{}
		if err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Code,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan product", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate products", err)
	}

	return products, nil
}

// Update updates a product
func (a *ProductAdapter) Update(ctx context.Context, product *entities.Product) error {
	product.UpdatedAt = time.Now().UTC()

	record := goqu.Record{
		"name":       product.Name,
		"code":       product.Code,
		"updated_at": product.UpdatedAt,
	}

	query, args, err := a.db.Update("products").
		Set(record).
		Where(goqu.Ex{"id": product.ID}).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build product update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update product", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("product %s not found", product.ID))
	}

	return nil
}

// Delete deletes a product
func (a *ProductAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("products").
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build product delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete product", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("product %s not found", id))
	}

	return nil
}
