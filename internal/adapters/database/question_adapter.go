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

// QuestionAdapter implements QuestionRepository
type QuestionAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewQuestionAdapter creates a new question adapter
func NewQuestionAdapter(client *postgres.Client) repositories.QuestionRepository {
	return &QuestionAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new question
func (a *QuestionAdapter) Create(ctx context.Context, question *entities.Question) error {
	record := goqu.Record{
		"id":          question.ID,
		"text":        question.Text,
		"kind":        string(question.Kind),
		"product_ref": sql.NullString{String: question.ProductRef, Valid: question.ProductRef != ""},
		"created_at":  question.CreatedAt,
		"updated_at":  question.UpdatedAt,
	}

	query, args, err := a.db.Insert("questions").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build question insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create question", err)
	}

	return nil
}

// GetByID retrieves a question by ID
func (a *QuestionAdapter) GetByID(ctx context.Context, id string) (*entities.Question, error) {
	query, args, err := a.db.Select(
		"id", "text", "kind", "product_ref", "created_at", "updated_at",
	).From("questions").
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build question query", err)
	}

	question := &entities.Question{}
	var kind string
	var productRef sql.NullString

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&question.ID,
		&question.Text,
		&kind,
		&productRef,
		&question.CreatedAt,
		&question.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("question %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get question", err)
	}

	question.Kind = entities.QuestionKind(kind)
	question.ProductRef = productRef.String

	return question, nil
}

// List retrieves all questions
func (a *QuestionAdapter) List(ctx context.Context) ([]*entities.Question, error) {
	query, args, err := a.db.Select(
		"id", "text", "kind", "product_ref", "created_at", "updated_at",
	).From("questions").
		Order(goqu.I("created_at").Asc()).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build question list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list questions", err)
	}
	defer rows.Close()

	var questions []*entities.Question
	for rows.Next() {
		question := &entities.Question{}
		var kind string
		var productRef sql.NullString

		if err := rows.Scan(
			&question.ID,
			&question.Text,
			&kind,
			&productRef,
			&question.CreatedAt,
			&question.UpdatedAt,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan question", err)
		}

		question.Kind = entities.QuestionKind(kind)
		question.ProductRef = productRef.String
		questions = append(questions, question)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate questions", err)
	}

	return questions, nil
}

// Update updates a question
func (a *QuestionAdapter) Update(ctx context.Context, question *entities.Question) error {
	question.UpdatedAt = time.Now().UTC()

	record := goqu.Record{
		"text":        question.Text,
		"kind":        string(question.Kind),
		"product_ref": sql.NullString{String: question.ProductRef, Valid: question.ProductRef != ""},
		"updated_at":  question.UpdatedAt,
	}

	query, args, err := a.db.Update("questions").
		Set(record).
		Where(goqu.Ex{"id": question.ID}).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build question update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update question", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("question %s not found", question.ID))
	}

	return nil
}
