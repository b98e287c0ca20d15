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

// QuestionService handles questionnaire management.
type QuestionService struct {
	questions repositories.QuestionRepository
	products  repositories.ProductRepository
}

// NewQuestionService creates a new question service.
func NewQuestionService(
	questions repositories.QuestionRepository,
	products repositories.ProductRepository,
) *QuestionService {
	return &QuestionService{
		questions: questions,
		products:  products,
	}
}

func validateQuestion(question *entities.Question) error {
	question.Text = strings.TrimSpace(question.Text)
	if question.Text == "" {
		return apperrors.NewValidationError("question text is required")
	}

	switch question.Kind {
	case entities.QuestionKindCommon, entities.QuestionKindProduct:
	default:
		return apperrors.NewValidationError("question kind must be common or product")
	}

	// The kind/reference invariant is enforced here on every write, never
	// trusted from the caller.
	question.Normalize()

	return nil
}

// Create validates, normalizes and stores a new question.
func (s *QuestionService) Create(ctx context.Context, question *entities.Question) error {
	if err := validateQuestion(question); err != nil {
		return err
	}

	if question.ID == "" {
		question.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if question.CreatedAt.IsZero() {
		question.CreatedAt = now
	}
	question.UpdatedAt = now

	return s.questions.Create(ctx, question)
}

// Update validates, normalizes and stores changes to a question.
func (s *QuestionService) Update(ctx context.Context, question *entities.Question) error {
	if question.ID == "" {
		return apperrors.NewValidationError("question ID is required")
	}
	if err := validateQuestion(question); err != nil {
		return err
	}

	return s.questions.Update(ctx, question)
}

// List retrieves all questions with their product references resolved.
func (s *QuestionService) List(ctx context.Context) ([]*entities.QuestionDetail, error) {
	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, err
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*entities.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	details := make([]*entities.QuestionDetail, 0, len(questions))
	for _, question := range questions {
		detail := &entities.QuestionDetail{Question: *question}
		if question.ProductRef != "" {
			detail.Product = byID[question.ProductRef]
		}
		details = append(details, detail)
	}

	return details, nil
}

// Questionnaire returns the questions eligible for a product: every common
// question plus the product questions referencing it, by id or by legacy
// case-insensitive name match.
func (s *QuestionService) Questionnaire(ctx context.Context, productID string) ([]*entities.Question, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, err
	}

	eligible := make([]*entities.Question, 0, len(questions))
	for _, question := range questions {
		if question.AppliesTo(product) {
			eligible = append(eligible, question)
		}
	}

	return eligible, nil
}

// PendingLegacyRefs returns product questions whose reference is neither a
// known product id nor resolvable, plus those still holding a product name.
func (s *QuestionService) PendingLegacyRefs(ctx context.Context) ([]*entities.Question, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	idSet := make(map[string]struct{}, len(products))
	for _, product := range products {
		idSet[product.ID] = struct{}{}
	}

	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, err
	}

	var pending []*entities.Question
	for _, question := range questions {
		if question.Kind != entities.QuestionKindProduct || question.ProductRef == "" {
			continue
		}
		if _, ok := idSet[question.ProductRef]; ok {
			continue
		}
		pending = append(pending, question)
	}

	return pending, nil
}

// MigrateLegacyRefs converts name-valued product references on questions to
// product ids. It returns the number of questions rewritten.
func (s *QuestionService) MigrateLegacyRefs(ctx context.Context) (int, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return 0, err
	}

	idByName := make(map[string]string, len(products))
	idSet := make(map[string]struct{}, len(products))
	for _, product := range products {
		idByName[strings.ToLower(product.Name)] = product.ID
		idSet[product.ID] = struct{}{}
	}

	questions, err := s.questions.List(ctx)
	if err != nil {
		return 0, err
	}

	migrated := 0
	for _, question := range questions {
		if question.Kind != entities.QuestionKindProduct || question.ProductRef == "" {
			continue
		}
		if _, ok := idSet[question.ProductRef]; ok {
			continue
		}

		id, ok := idByName[strings.ToLower(question.ProductRef)]
		if !ok {
			continue
		}

		question.ProductRef = id
		if err := s.questions.Update(ctx, question); err != nil {
			return migrated, err
		}
		migrated++
	}

	return migrated, nil
}
