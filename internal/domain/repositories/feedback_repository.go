package repositories

import (
	"context"

	"github.com/vikramraju/customer-feedback/backend/internal/domain/entities"
)

// FeedbackRepository defines the interface for feedback operations.
type FeedbackRepository interface {
	// Create inserts a feedback record with its answers in one transaction
	Create(ctx context.Context, feedback *entities.Feedback) error

	// List retrieves all feedback records with their answers
	List(ctx context.Context) ([]*entities.Feedback, error)
}
