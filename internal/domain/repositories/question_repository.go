package repositories

import (
	"context"

	"github.com/vikramraju/customer-feedback/backend/internal/domain/entities"
)

// QuestionRepository defines the interface for question data operations.
type QuestionRepository interface {
	// Create creates a new question
	Create(ctx context.Context, question *entities.Question) error

	// GetByID retrieves a question by ID
	GetByID(ctx context.Context, id string) (*entities.Question, error)

	// List retrieves all questions
	List(ctx context.Context) ([]*entities.Question, error)

	// Update updates a question
	Update(ctx context.Context, question *entities.Question) error
}
