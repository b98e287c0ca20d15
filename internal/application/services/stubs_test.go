package services

import (
	"context"
	"strings"

	"github.com/vikramraju/customer-feedback/backend/internal/domain/entities"
	apperrors "github.com/vikramraju/customer-feedback/backend/pkg/errors"
)

// In-memory repository stubs shared by the service tests.

type stubAdminRepo struct {
	admins map[string]*entities.Admin
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{admins: make(map[string]*entities.Admin)}
}

func (s *stubAdminRepo) Create(ctx context.Context, admin *entities.Admin) error {
	s.admins[admin.UserID] = admin
	return nil
}

func (s *stubAdminRepo) GetByUserID(ctx context.Context, userID string) (*entities.Admin, error) {
	admin, ok := s.admins[userID]
	if !ok {
		return nil, apperrors.NewNotFoundError("admin not found")
	}
	return admin, nil
}

type stubProductRepo struct {
	products []*entities.Product
}

func (s *stubProductRepo) Create(ctx context.Context, product *entities.Product) error {
	s.products = append(s.products, product)
	return nil
}

func (s *stubProductRepo) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	for _, product := range s.products {
		if product.ID == id {
			return product, nil
		}
	}
	return nil, apperrors.NewNotFoundError("product not found")
}

func (s *stubProductRepo) List(ctx context.Context) ([]*entities.Product, error) {
	return s.products, nil
}

func (s *stubProductRepo) ListByNames(ctx context.Context, names []string) ([]*entities.Product, error) {
	var matched []*entities.Product
	for _, product := range s.products {
		for _, name := range names {
			if strings.EqualFold(product.Name, name) {
				matched = append(matched, product)
				break
			}
		}
	}
	return matched, nil
}

func (s *stubProductRepo) Update(ctx context.Context, product *entities.Product) error {
	for i, existing := range s.products {
		if existing.ID == product.ID {
			s.products[i] = product
			return nil
		}
	}
	return apperrors.NewNotFoundError("product not found")
}

func (s *stubProductRepo) Delete(ctx context.Context, id string) error {
	for i, existing := range s.products {
		if existing.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotFoundError("product not found")
}

type stubQuestionRepo struct {
	questions []*entities.Question
	updated   []*entities.Question
}

func (s *stubQuestionRepo) Create(ctx context.Context, question *entities.Question) error {
	s.questions = append(s.questions, question)
	return nil
}

func (s *stubQuestionRepo) GetByID(ctx context.Context, id string) (*entities.Question, error) {
	for _, question := range s.questions {
		if question.ID == id {
			return question, nil
		}
	}
	return nil, apperrors.NewNotFoundError("question not found")
}

func (s *stubQuestionRepo) List(ctx context.Context) ([]*entities.Question, error) {
	return s.questions, nil
}

func (s *stubQuestionRepo) Update(ctx context.Context, question *entities.Question) error {
	for i, existing := range s.questions {
		if existing.ID == question.ID {
			s.questions[i] = question
			s.updated = append(s.updated, question)
			return nil
		}
	}
	return apperrors.NewNotFoundError("question not found")
}

type stubCustomerRepo struct {
	customers []*entities.Customer
	upserts   int
}

func (s *stubCustomerRepo) GetByID(ctx context.Context, id string) (*entities.Customer, error) {
	for _, customer := range s.customers {
		if customer.ID == id {
			return customer, nil
		}
	}
	return nil, apperrors.NewNotFoundError("customer not found")
}

func (s *stubCustomerRepo) GetByPhone(ctx context.Context, phone string) (*entities.Customer, error) {
	for _, customer := range s.customers {
		if customer.Phone == phone {
			return customer, nil
		}
	}
	return nil, apperrors.NewNotFoundError("customer not found")
}

func (s *stubCustomerRepo) List(ctx context.Context) ([]*entities.Customer, error) {
	return s.customers, nil
}

func (s *stubCustomerRepo) Upsert(ctx context.Context, customer *entities.Customer) error {
	s.upserts++
	for i, existing := range s.customers {
		if existing.Phone == customer.Phone {
			customer.ID = existing.ID
			s.customers[i] = customer
			return nil
		}
	}
	s.customers = append(s.customers, customer)
	return nil
}

type stubFeedbackRepo struct {
	records []*entities.Feedback
}

func (s *stubFeedbackRepo) Create(ctx context.Context, feedback *entities.Feedback) error {
	s.records = append(s.records, feedback)
	return nil
}

func (s *stubFeedbackRepo) List(ctx context.Context) ([]*entities.Feedback, error) {
	return s.records, nil
}

type stubOTPProvider struct {
	sent     []string
	approved bool
	sendErr  error
	checkErr error
}

func (s *stubOTPProvider) Send(ctx context.Context, phone, channel string) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.sent = append(s.sent, phone)
	return nil
}

func (s *stubOTPProvider) Check(ctx context.Context, phone, code string) (bool, error) {
	if s.checkErr != nil {
		return false, s.checkErr
	}
	return s.approved, nil
}
