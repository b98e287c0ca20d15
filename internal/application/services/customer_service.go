package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vikramraju/customer-feedback/backend/internal/domain/entities"
	"github.com/vikramraju/customer-feedback/backend/internal/domain/providers"
	"github.com/vikramraju/customer-feedback/backend/internal/domain/repositories"
	apperrors "github.com/vikramraju/customer-feedback/backend/pkg/errors"
)

// CustomerService handles customer verification, lookup and bulk import.
type CustomerService struct {
	customers          repositories.CustomerRepository
	products           repositories.ProductRepository
	otp                providers.OTPProvider
	defaultCountryCode string
}

// NewCustomerService creates a new customer service.
func NewCustomerService(
	customers repositories.CustomerRepository,
	products repositories.ProductRepository,
	otp providers.OTPProvider,
	defaultCountryCode string,
) *CustomerService {
	return &CustomerService{
		customers:          customers,
		products:           products,
		otp:                otp,
		defaultCountryCode: defaultCountryCode,
	}
}

// FormatPhone prefixes the default country code when the number carries no
// international prefix.
func (s *CustomerService) FormatPhone(phone string) string {
	if strings.HasPrefix(phone, "+") {
		return phone
	}
	return s.defaultCountryCode + phone
}

// RequestOTP triggers a one-time code delivery for a known customer phone.
// Unknown phones are rejected before the provider is ever contacted.
func (s *CustomerService) RequestOTP(ctx context.Context, phone string) error {
	if phone == "" {
		return apperrors.NewValidationError("phone number is required")
	}

	if _, err := s.customers.GetByPhone(ctx, phone); err != nil {
		return err
	}

	if err := s.otp.Send(ctx, s.FormatPhone(phone), providers.OTPChannelSMS); err != nil {
		return apperrors.NewExternalError("failed to send OTP", err)
	}

	return nil
}

// VerifyOTP checks a submitted code and returns the customer id on success.
func (s *CustomerService) VerifyOTP(ctx context.Context, phone, code string) (*entities.Customer, error) {
	if phone == "" || code == "" {
		return nil, apperrors.NewValidationError("phone and OTP are required")
	}

	customer, err := s.customers.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	approved, err := s.otp.Check(ctx, s.FormatPhone(phone), code)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to verify OTP", err)
	}
	if !approved {
		return nil, apperrors.NewValidationError("invalid or expired OTP")
	}

	return customer, nil
}

// GetCustomer retrieves a customer with product references resolved.
func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*entities.CustomerDetail, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("customer ID is required")
	}

	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &entities.CustomerDetail{Customer: *customer}
	for _, productID := range customer.ProductIDs {
		product, err := s.products.GetByID(ctx, productID)
		if err != nil {
			// Dangling references are dropped from the view rather than
			// failing the whole lookup.
			continue
		}
		detail.Products = append(detail.Products, product)
	}

	return detail, nil
}

// ImportRow is one parsed row of a bulk customer import.
type ImportRow struct {
	Phone    string
	Name     string
	Products string
}

// BulkImport upserts customers by phone. Rows without a phone are skipped,
// unmatched product names are silently dropped, and processing is not
// transactional across rows: a failure on row N leaves rows 1..N-1 applied.
// The returned count covers successfully processed rows in either case.
func (s *CustomerService) BulkImport(ctx context.Context, rows []ImportRow) (int, error) {
	count := 0
	for _, row := range rows {
		if strings.TrimSpace(row.Phone) == "" {
			continue
		}

		productIDs, err := s.resolveProductNames(ctx, row.Products)
		if err != nil {
			return count, err
		}

		now := time.Now().UTC()
		customer := &entities.Customer{
			ID:         uuid.New().String(),
			Phone:      strings.TrimSpace(row.Phone),
			Name:       strings.TrimSpace(row.Name),
			ProductIDs: productIDs,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		if err := s.customers.Upsert(ctx, customer); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

func (s *CustomerService) resolveProductNames(ctx context.Context, raw string) ([]string, error) {
	var names []string
	for _, name := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';'
	}) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			names = append(names, trimmed)
		}
	}

	if len(names) == 0 {
		return nil, nil
	}

	products, err := s.products.ListByNames(ctx, names)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(products))
	for _, product := range products {
		ids = append(ids, product.ID)
	}
	return ids, nil
}
