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

// CustomerAdapter implements CustomerRepository
type CustomerAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCustomerAdapter creates a new customer adapter
func NewCustomerAdapter(client *postgres.Client) repositories.CustomerRepository {
	return &CustomerAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves a customer by ID
func (a *CustomerAdapter) GetByID(ctx context.Context, id string) (*entities.Customer, error) {
	return a.getByField(ctx, "id", id)
}

// GetByPhone retrieves a customer by phone number
func (a *CustomerAdapter) GetByPhone(ctx context.Context, phone string) (*entities.Customer, error) {
	return a.getByField(ctx, "phone", phone)
}

func (a *CustomerAdapter) getByField(ctx context.Context, field, value string) (*entities.Customer, error) {
	query, args, err := a.db.Select(
		"id", "phone", "name", "created_at", "updated_at",
	).From("customers").
		Where(goqu.Ex{field: value}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build customer query", err)
	}

	customer := &entities.Customer{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&customer.ID,
		&customer.Phone,
		&customer.Name,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("customer with %s %s not found", field, value))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get customer", err)
	}

	productIDs, err := a.listProductIDs(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	customer.ProductIDs = productIDs

	return customer, nil
}

func (a *CustomerAdapter) listProductIDs(ctx context.Context, customerID string) ([]string, error) {
	query, args, err := a.db.Select("product_id").
		From("customer_products").
		Where(goqu.Ex{"customer_id": customerID}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build customer product query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list customer products", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewInternalError("failed to scan customer product", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate customer products", err)
	}

	return ids, nil
}

// List retrieves all customers
func (a *CustomerAdapter) List(ctx context.Context) ([]*entities.Customer, error) {
	query, args, err := a.db.Select(
		"id", "phone", "name", "created_at", "updated_at",
	).From("customers").
		Order(goqu.I("name").Asc()).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build customer list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list customers", err)
	}
	defer rows.Close()

	var customers []*entities.Customer
	for rows.Next() {
		customer := &entities.Customer{}
		if err := rows.Scan(
			&customer.ID,
			&customer.Phone,
			&customer.Name,
			&customer.CreatedAt,
			&customer.UpdatedAt,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan customer", err)
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate customers", err)
	}

	return customers, nil
}

// Upsert inserts a customer keyed by phone, or updates the name and product
// set when the phone already exists. The customer row and its product links
// are written in one transaction.
func (a *CustomerAdapter) Upsert(ctx context.Context, customer *entities.Customer) error {
	insertQuery, insertArgs, err := a.db.Insert("customers").
		Rows(goqu.Record{
			"id":         customer.ID,
			"phone":      customer.Phone,
			"name":       customer.Name,
			"created_at": customer.CreatedAt,
			"updated_at": customer.UpdatedAt,
		}).
		OnConflict(goqu.DoUpdate("phone", goqu.Record{
			"name":       customer.Name,
			"updated_at": customer.UpdatedAt,
		})).
		Returning("id").
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build customer upsert query", err)
	}

	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin customer upsert", err)
	}
	defer tx.Rollback()

	var id string
	if err := tx.QueryRowContext(ctx, insertQuery, insertArgs...).Scan(&id); err != nil {
		return apperrors.NewInternalError("failed to upsert customer", err)
	}
	customer.ID = id

	deleteQuery, deleteArgs, err := a.db.Delete("customer_products").
		Where(goqu.Ex{"customer_id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build customer product delete query", err)
	}

	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return apperrors.NewInternalError("failed to clear customer products", err)
	}

	if len(customer.ProductIDs) > 0 {
		records := make([]interface{}, 0, len(customer.ProductIDs))
		for _, productID := range customer.ProductIDs {
			records = append(records, goqu.Record{
				"customer_id": id,
				"product_id":  productID,
			})
		}

		linkQuery, linkArgs, err := a.db.Insert("customer_products").Rows(records...).ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build customer product insert query", err)
		}

		if _, err := tx.ExecContext(ctx, linkQuery, linkArgs...); err != nil {
			return apperrors.NewInternalError("failed to link customer products", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit customer upsert", err)
	}

	return nil
}
