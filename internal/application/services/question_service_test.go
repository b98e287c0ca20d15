package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vikramraju/customer-feedback/backend/internal/domain/entities"
	apperrors "github.com/vikramraju/customer-feedback/backend/pkg/errors"
)

func newQuestionFixture() (*QuestionService, *stubQuestionRepo, *stubProductRepo) {
	questionRepo := &stubQuestionRepo{}
	productRepo := &stubProductRepo{
		products: []*entities.Product{
			{ID: "prod-1", Name: "Solar Water Heater 100L", Code: "SWH-100"},
			{ID: "prod-2", Name: "Heat Pump 150L", Code: "HP-150"},
		},
	}
	return NewQuestionService(questionRepo, productRepo), questionRepo, productRepo
}

func TestQuestionService_Create_NormalizesCommonQuestion(t *testing.T) {
	svc, repo, _ := newQuestionFixture()

	question := &entities.Question{
		Text:       "  How satisfied are you overall?  ",
		Kind:       entities.QuestionKindCommon,
		ProductRef: "prod-1",
	}

	require.NoError(t, svc.Create(context.Background(), question))
	require.Len(t, repo.questions, 1)

	stored := repo.questions[0]
	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, "How satisfied are you overall?", stored.Text)
	assert.Empty(t, stored.ProductRef, "common questions never keep a product reference")
}

func TestQuestionService_Create_Validation(t *testing.T) {
	svc, _, _ := newQuestionFixture()

	tests := []struct {
		name     string
		question entities.Question
	}{
		{"empty text", entities.Question{Kind: entities.QuestionKindCommon}},
		{"blank text", entities.Question{Text: "   ", Kind: entities.QuestionKindCommon}},
		{"bad kind", entities.Question{Text: "ok?", Kind: "survey"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Create(context.Background(), &tt.question)
			assertErrorType(t, err, apperrors.ErrorTypeValidation)
		})
	}
}

func TestQuestionService_Update_EnforcesInvariant(t *testing.T) {
	svc, repo, _ := newQuestionFixture()
	repo.questions = []*entities.Question{
		{ID: "q-1", Text: "old text", Kind: entities.QuestionKindProduct, ProductRef: "prod-1"},
	}

	// Flipping a product question to common must clear the reference.
	updated := &entities.Question{
		ID:         "q-1",
		Text:       "new text",
		Kind:       entities.QuestionKindCommon,
		ProductRef: "prod-1",
	}
	require.NoError(t, svc.Update(context.Background(), updated))
	assert.Empty(t, repo.questions[0].ProductRef)
}

func TestQuestionService_Update_RequiresID(t *testing.T) {
	svc, _, _ := newQuestionFixture()

	err := svc.Update(context.Background(), &entities.Question{
		Text: "text",
		Kind: entities.QuestionKindCommon,
	})
	assertErrorType(t, err, apperrors.ErrorTypeValidation)
}

func TestQuestionService_List_ResolvesProducts(t *testing.T) {
	svc, repo, _ := newQuestionFixture()
	repo.questions = []*entities.Question{
		{ID: "q-1", Text: "common", Kind: entities.QuestionKindCommon},
		{ID: "q-2", Text: "scoped", Kind: entities.QuestionKindProduct, ProductRef: "prod-1"},
		{ID: "q-3", Text: "legacy", Kind: entities.QuestionKindProduct, ProductRef: "Solar Water Heater 100L"},
	}

	details, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, details, 3)

	assert.Nil(t, details[0].Product)
	require.NotNil(t, details[1].Product)
	assert.Equal(t, "prod-1", details[1].Product.ID)
	// Legacy name references resolve only after migration.
	assert.Nil(t, details[2].Product)
}

func TestQuestionService_Questionnaire(t *testing.T) {
	svc, repo, _ := newQuestionFixture()
	repo.questions = []*entities.Question{
		{ID: "q-common", Text: "common", Kind: entities.QuestionKindCommon},
		{ID: "q-byid", Text: "by id", Kind: entities.QuestionKindProduct, ProductRef: "prod-1"},
		{ID: "q-byname", Text: "by legacy name", Kind: entities.QuestionKindProduct, ProductRef: "solar water heater 100l"},
		{ID: "q-other", Text: "other product", Kind: entities.QuestionKindProduct, ProductRef: "prod-2"},
	}

	questions, err := svc.Questionnaire(context.Background(), "prod-1")
	require.NoError(t, err)

	var ids []string
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	assert.Equal(t, []string{"q-common", "q-byid", "q-byname"}, ids)
}

func TestQuestionService_Questionnaire_UnknownProduct(t *testing.T) {
	svc, _, _ := newQuestionFixture()

	_, err := svc.Questionnaire(context.Background(), "prod-missing")
	assertErrorType(t, err, apperrors.ErrorTypeNotFound)
}

func TestQuestionService_MigrateLegacyRefs(t *testing.T) {
	svc, repo, _ := newQuestionFixture()
	repo.questions = []*entities.Question{
		{ID: "q-1", Text: "already migrated", Kind: entities.QuestionKindProduct, ProductRef: "prod-1"},
		{ID: "q-2", Text: "legacy name", Kind: entities.QuestionKindProduct, ProductRef: "SOLAR WATER HEATER 100L"},
		{ID: "q-3", Text: "unknown name", Kind: entities.QuestionKindProduct, ProductRef: "Discontinued Model"},
		{ID: "q-4", Text: "common untouched", Kind: entities.QuestionKindCommon},
	}

	migrated, err := svc.MigrateLegacyRefs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, migrated)
	assert.Equal(t, "prod-1", repo.questions[1].ProductRef)
	assert.Equal(t, "Discontinued Model", repo.questions[2].ProductRef)
}

func TestQuestionService_PendingLegacyRefs(t *testing.T) {
	svc, repo, _ := newQuestionFixture()
	repo.questions = []*entities.Question{
		{ID: "q-1", Text: "migrated", Kind: entities.QuestionKindProduct, ProductRef: "prod-1"},
		{ID: "q-2", Text: "legacy", Kind: entities.QuestionKindProduct, ProductRef: "Heat Pump 150L"},
		{ID: "q-3", Text: "orphan", Kind: entities.QuestionKindProduct, ProductRef: "Discontinued Model"},
	}

	pending, err := svc.PendingLegacyRefs(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "q-2", pending[0].ID)
	assert.Equal(t, "q-3", pending[1].ID)
}
