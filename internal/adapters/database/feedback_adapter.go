package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/vikramraju/customer-feedback/backend/internal/domain/entities"
	"github.com/vikramraju/customer-feedback/backend/internal/domain/repositories"
	"github.com/vikramraju/customer-feedback/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/vikramraju/customer-feedback/backend/pkg/errors"
)

// FeedbackAdapter implements feedback persistence in Postgres.
type FeedbackAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewFeedbackAdapter creates a new feedback adapter.
func NewFeedbackAdapter(client *postgres.Client) repositories.FeedbackRepository {
	return &FeedbackAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a feedback record with its answers in one transaction.
func (a *FeedbackAdapter) Create(ctx context.Context, feedback *entities.Feedback) error {
	if feedback == nil {
		return apperrors.NewInternalError("feedback is nil", fmt.Errorf("feedback is nil"))
	}

	record := goqu.Record{
		"id":          feedback.ID,
		"customer_id": feedback.CustomerID,
		"product_id":  feedback.ProductID,
		"year":        feedback.Year,
		"comment":     sql.NullString{String: feedback.Comment, Valid: feedback.Comment != ""},
		"created_at":  feedback.CreatedAt,
	}

	query, args, err := a.db.Insert("feedback").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build feedback insert query", err)
	}

	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin feedback insert", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create feedback", err)
	}

	if len(feedback.Answers) > 0 {
		records := make([]interface{}, 0, len(feedback.Answers))
		for _, answer := range feedback.Answers {
			records = append(records, goqu.Record{
				"id":           uuid.New().String(),
				"feedback_id":  feedback.ID,
				"question_ref": answer.QuestionRef,
				"rating":       answer.Rating,
			})
		}

		answerQuery, answerArgs, err := a.db.Insert("feedback_answers").Rows(records...).ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build answer insert query", err)
		}

		if _, err := tx.ExecContext(ctx, answerQuery, answerArgs...); err != nil {
			return apperrors.NewInternalError("failed to create feedback answers", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit feedback", err)
	}

	return nil
}

// List retrieves all feedback records with their answers.
func (a *FeedbackAdapter) List(ctx context.Context) ([]*entities.Feedback, error) {
	query, args, err := a.db.Select(
		"id", "customer_id", "product_id", "year", "comment", "created_at",
	).From("feedback").
		Order(goqu.I("created_at").Desc()).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build feedback list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list feedback", err)
	}
	defer rows.Close()

	var feedbacks []*entities.Feedback
	byID := make(map[string]*entities.Feedback)

	for rows.Next() {
		feedback := &entities.Feedback{}
		var comment sql.NullString

		if err := rows.Scan(
			&feedback.ID,
			&feedback.CustomerID,
			&feedback.ProductID,
			&feedback.Year,
			&comment,
			&feedback.CreatedAt,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan feedback", err)
		}

		feedback.Comment = comment.String
		feedbacks = append(feedbacks, feedback)
		byID[feedback.ID] = feedback
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate feedback", err)
	}

	if len(feedbacks) == 0 {
		return feedbacks, nil
	}

	answerQuery, answerArgs, err := a.db.Select(
		"feedback_id", "question_ref", "rating",
	).From("feedback_answers").
		Order(goqu.I("id").Asc()).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build answer list query", err)
	}

	answerRows, err := a.client.DB().QueryContext(ctx, answerQuery, answerArgs...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list feedback answers", err)
	}
	defer answerRows.Close()

	for answerRows.Next() {
		var feedbackID string
		var answer entities.Answer

		if err := answerRows.Scan(&feedbackID, &answer.QuestionRef, &answer.Rating); err != nil {
			return nil, apperrors.NewInternalError("failed to scan feedback answer", err)
		}

		if feedback, ok := byID[feedbackID]; ok {
			feedback.Answers = append(feedback.Answers, answer)
		}
	}

	if err := answerRows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate feedback answers", err)
	}

	return feedbacks, nil
}
