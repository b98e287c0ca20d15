package handlers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vikramraju/customer-feedback/backend/internal/application/services"
	"github.com/vikramraju/customer-feedback/backend/internal/domain/entities"
	apperrors "github.com/vikramraju/customer-feedback/backend/pkg/errors"
)

const testJWTSecret = "handler-test-secret"

// In-memory repositories backing the real services in handler tests.

type memAdminRepo struct {
	admins map[string]*entities.Admin
}

func (m *memAdminRepo) Create(ctx context.Context, admin *entities.Admin) error {
	m.admins[admin.UserID] = admin
	return nil
}

func (m *memAdminRepo) GetByUserID(ctx context.Context, userID string) (*entities.Admin, error) {
	admin, ok := m.admins[userID]
	if !ok {
		return nil, apperrors.NewNotFoundError("admin not found")
	}
	return admin, nil
}

type memProductRepo struct {
	products []*entities.Product
}

func (m *memProductRepo) Create(ctx context.Context, product *entities.Product) error {
	m.products = append(m.products, product)
	return nil
}

func (m *memProductRepo) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	for _, product := range m.products {
		if product.ID == id {
			return product, nil
		}
	}
	return nil, apperrors.NewNotFoundError("product not found")
}

func (m *memProductRepo) List(ctx context.Context) ([]*entities.Product, error) {
	return m.products, nil
}

func (m *memProductRepo) ListByNames(ctx context.Context, names []string) ([]*entities.Product, error) {
	var matched []*entities.Product
	for _, product := range m.products {
		for _, name := range names {
			if strings.EqualFold(product.Name, name) {
				matched = append(matched, product)
				break
			}
		}
	}
	return matched, nil
}

func (m *memProductRepo) Update(ctx context.Context, product *entities.Product) error {
	for i, existing := range m.products {
		if existing.ID == product.ID {
			m.products[i] = product
			return nil
		}
	}
	return apperrors.NewNotFoundError("product not found")
}

func (m *memProductRepo) Delete(ctx context.Context, id string) error {
	for i, existing := range m.products {
		if existing.ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotFoundError("product not found")
}

type memQuestionRepo struct {
	questions []*entities.Question
}

func (m *memQuestionRepo) Create(ctx context.Context, question *entities.Question) error {
	m.questions = append(m.questions, question)
	return nil
}

func (m *memQuestionRepo) GetByID(ctx context.Context, id string) (*entities.Question, error) {
	for _, question := range m.questions {
		if question.ID == id {
			return question, nil
		}
	}
	return nil, apperrors.NewNotFoundError("question not found")
}

func (m *memQuestionRepo) List(ctx context.Context) ([]*entities.Question, error) {
	return m.questions, nil
}

func (m *memQuestionRepo) Update(ctx context.Context, question *entities.Question) error {
	for i, existing := range m.questions {
		if existing.ID == question.ID {
			m.questions[i] = question
			return nil
		}
	}
	return apperrors.NewNotFoundError("question not found")
}

type memCustomerRepo struct {
	customers []*entities.Customer
}

func (m *memCustomerRepo) GetByID(ctx context.Context, id string) (*entities.Customer, error) {
	for _, customer := range m.customers {
		if customer.ID == id {
			return customer, nil
		}
	}
	return nil, apperrors.NewNotFoundError("customer not found")
}

func (m *memCustomerRepo) GetByPhone(ctx context.Context, phone string) (*entities.Customer, error) {
	for _, customer := range m.customers {
		if customer.Phone == phone {
			return customer, nil
		}
	}
	return nil, apperrors.NewNotFoundError("customer not found")
}

func (m *memCustomerRepo) List(ctx context.Context) ([]*entities.Customer, error) {
	return m.customers, nil
}

func (m *memCustomerRepo) Upsert(ctx context.Context, customer *entities.Customer) error {
	for i, existing := range m.customers {
		if existing.Phone == customer.Phone {
			customer.ID = existing.ID
			m.customers[i] = customer
			return nil
		}
	}
	m.customers = append(m.customers, customer)
	return nil
}

type memFeedbackRepo struct {
	records []*entities.Feedback
}

func (m *memFeedbackRepo) Create(ctx context.Context, feedback *entities.Feedback) error {
	m.records = append(m.records, feedback)
	return nil
}

func (m *memFeedbackRepo) List(ctx context.Context) ([]*entities.Feedback, error) {
	return m.records, nil
}

type stubOTP struct {
	sent     []string
	approved bool
}

func (s *stubOTP) Send(ctx context.Context, phone, channel string) error {
	s.sent = append(s.sent, phone)
	return nil
}

func (s *stubOTP) Check(ctx context.Context, phone, code string) (bool, error) {
	return s.approved, nil
}

// fixture wires real services over the in-memory repositories.
type fixture struct {
	admins    *memAdminRepo
	products  *memProductRepo
	questions *memQuestionRepo
	customers *memCustomerRepo
	feedback  *memFeedbackRepo
	otp       *stubOTP

	authService     *services.AuthService
	customerService *services.CustomerService
	productService  *services.ProductService
	questionService *services.QuestionService
	feedbackService *services.FeedbackService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	f := &fixture{
		admins: &memAdminRepo{admins: map[string]*entities.Admin{
			"ops": {ID: "admin-1", UserID: "ops", PasswordHash: string(hash)},
		}},
		products: &memProductRepo{products: []*entities.Product{
			{ID: "prod-1", Name: "Solar Water Heater 100L", Code: "SWH-100"},
			{ID: "prod-2", Name: "Rooftop Solar Panel 3kW", Code: "RSP-3K"},
		}},
		questions: &memQuestionRepo{questions: []*entities.Question{
			{ID: "q-common", Text: "How satisfied are you overall?", Kind: entities.QuestionKindCommon},
			{ID: "q-prod1", Text: "Is the water hot enough?", Kind: entities.QuestionKindProduct, ProductRef: "prod-1"},
		}},
		customers: &memCustomerRepo{customers: []*entities.Customer{
			{ID: "cust-1", Phone: "9876500001", Name: "Asha Verma", ProductIDs: []string{"prod-1"}},
		}},
		feedback: &memFeedbackRepo{},
		otp:      &stubOTP{approved: true},
	}

	f.authService = services.NewAuthService(f.admins, testJWTSecret, time.Hour)
	f.customerService = services.NewCustomerService(f.customers, f.products, f.otp, "+91")
	f.productService = services.NewProductService(f.products)
	f.questionService = services.NewQuestionService(f.questions, f.products)
	f.feedbackService = services.NewFeedbackService(f.feedback, f.customers, f.products, f.questions)

	return f
}
