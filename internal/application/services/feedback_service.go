package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vikramraju/customer-feedback/backend/internal/domain/entities"
	"github.com/vikramraju/customer-feedback/backend/internal/domain/repositories"
	apperrors "github.com/vikramraju/customer-feedback/backend/pkg/errors"
)

// Rating bounds accepted at the submission boundary.
const (
	MinRating = 1
	MaxRating = 5
)

// FeedbackService handles feedback submission, listing and aggregation.
type FeedbackService struct {
	feedback  repositories.FeedbackRepository
	customers repositories.CustomerRepository
	products  repositories.ProductRepository
	questions repositories.QuestionRepository
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(
	feedback repositories.FeedbackRepository,
	customers repositories.CustomerRepository,
	products repositories.ProductRepository,
	questions repositories.QuestionRepository,
) *FeedbackService {
	return &FeedbackService{
		feedback:  feedback,
		customers: customers,
		products:  products,
		questions: questions,
	}
}

// Submit validates and stores one feedback record. Every answered question
// must be eligible for the product and every rating within bounds; the year
// defaults to the current calendar year.
func (s *FeedbackService) Submit(ctx context.Context, feedback *entities.Feedback) error {
	if feedback.CustomerID == "" || feedback.ProductID == "" {
		return apperrors.NewValidationError("customer and product are required")
	}

	if _, err := s.customers.GetByID(ctx, feedback.CustomerID); err != nil {
		return err
	}

	product, err := s.products.GetByID(ctx, feedback.ProductID)
	if err != nil {
		return err
	}

	questions, err := s.questions.List(ctx)
	if err != nil {
		return err
	}
	byID := make(map[string]*entities.Question, len(questions))
	for _, question := range questions {
		byID[question.ID] = question
	}

	for _, answer := range feedback.Answers {
		if answer.Rating < MinRating || answer.Rating > MaxRating {
			return apperrors.NewValidationError(
				fmt.Sprintf("rating must be between %d and %d", MinRating, MaxRating))
		}

		question, ok := byID[answer.QuestionRef]
		if !ok {
			return apperrors.NewValidationError(
				fmt.Sprintf("unknown question %s", answer.QuestionRef))
		}
		if !question.AppliesTo(product) {
			return apperrors.NewValidationError(
				fmt.Sprintf("question %s does not apply to product %s", question.ID, product.ID))
		}
	}

	if feedback.Year == 0 {
		feedback.Year = time.Now().Year()
	}
	if feedback.ID == "" {
		feedback.ID = uuid.New().String()
	}
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = time.Now().UTC()
	}
	feedback.Comment = strings.TrimSpace(feedback.Comment)

	return s.feedback.Create(ctx, feedback)
}

// Filter narrows a feedback listing. Zero values leave the dimension
// unfiltered; filtering runs over the full result set, not in storage.
type Filter struct {
	ProductIDs []string
	Year       int
	Phone      string
}

func (f Filter) matches(detail *entities.FeedbackDetail) bool {
	if len(f.ProductIDs) > 0 {
		found := false
		for _, id := range f.ProductIDs {
			if detail.ProductID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.Year != 0 && detail.Year != f.Year {
		return false
	}

	if f.Phone != "" {
		if detail.Customer == nil || !strings.Contains(detail.Customer.Phone, f.Phone) {
			return false
		}
	}

	return true
}

// List retrieves feedback records matching the filter with customer, product
// and question references resolved.
func (s *FeedbackService) List(ctx context.Context, filter Filter) ([]*entities.FeedbackDetail, error) {
	feedbacks, err := s.feedback.List(ctx)
	if err != nil {
		return nil, err
	}

	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, err
	}
	customerByID := make(map[string]*entities.Customer, len(customers))
	for _, customer := range customers {
		customerByID[customer.ID] = customer
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	productByID := make(map[string]*entities.Product, len(products))
	for _, product := range products {
		productByID[product.ID] = product
	}

	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, err
	}
	questionByID := make(map[string]*entities.Question, len(questions))
	for _, question := range questions {
		questionByID[question.ID] = question
	}

	details := make([]*entities.FeedbackDetail, 0, len(feedbacks))
	for _, feedback := range feedbacks {
		detail := &entities.FeedbackDetail{
			Feedback: *feedback,
			Customer: customerByID[feedback.CustomerID],
			Product:  productByID[feedback.ProductID],
		}

		for _, answer := range feedback.Answers {
			detail.Resolved = append(detail.Resolved, entities.AnsweredQuestion{
				Answer:   answer,
				Question: questionByID[answer.QuestionRef],
			})
		}

		if avg, ok := feedback.AverageRating(); ok {
			detail.Average = round2(avg)
			detail.HasAnswers = true
		}

		if filter.matches(detail) {
			details = append(details, detail)
		}
	}

	return details, nil
}

// Report aggregates every answer across the filtered feedback of the
// selected products, grouped by question. At least one product must be
// selected. Unresolvable question references group under the raw reference.
func (s *FeedbackService) Report(ctx context.Context, filter Filter) ([]*entities.QuestionStat, error) {
	if len(filter.ProductIDs) == 0 {
		return nil, apperrors.NewValidationError("at least one product is required")
	}

	details, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		text  string
		sum   int
		count int
	}

	var order []string
	buckets := make(map[string]*bucket)

	for _, detail := range details {
		for _, answered := range detail.Resolved {
			key := answered.QuestionRef
			text := ""
			if answered.Question != nil {
				key = answered.Question.ID
				text = answered.Question.Text
			}

			b, ok := buckets[key]
			if !ok {
				b = &bucket{text: text}
				buckets[key] = b
				order = append(order, key)
			}
			b.sum += answered.Rating
			b.count++
		}
	}

	stats := make([]*entities.QuestionStat, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		stats = append(stats, &entities.QuestionStat{
			QuestionRef: key,
			Text:        b.text,
			Average:     round2(float64(b.sum) / float64(b.count)),
			Responses:   b.count,
		})
	}

	return stats, nil
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
