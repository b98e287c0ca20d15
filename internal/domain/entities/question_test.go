package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestion_Normalize(t *testing.T) {
	tests := []struct {
		name        string
		question    Question
		expectedRef string
	}{
		{
			name:        "common question drops a stray product reference",
			question:    Question{Kind: QuestionKindCommon, ProductRef: "prod-1"},
			expectedRef: "",
		},
		{
			name:        "product question keeps its reference",
			question:    Question{Kind: QuestionKindProduct, ProductRef: "prod-1"},
			expectedRef: "prod-1",
		},
		{
			name:        "unknown kind is treated as non-product",
			question:    Question{Kind: "other", ProductRef: "prod-1"},
			expectedRef: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.question.Normalize()
			assert.Equal(t, tt.expectedRef, tt.question.ProductRef)
		})
	}
}

func TestQuestion_AppliesTo(t *testing.T) {
	product := &Product{ID: "prod-1", Name: "Solar Water Heater 100L"}

	tests := []struct {
		name     string
		question Question
		expected bool
	}{
		{
			name:     "common question applies to any product",
			question: Question{Kind: QuestionKindCommon},
			expected: true,
		},
		{
			name:     "product question matching by id",
			question: Question{Kind: QuestionKindProduct, ProductRef: "prod-1"},
			expected: true,
		},
		{
			name:     "product question matching legacy name reference",
			question: Question{Kind: QuestionKindProduct, ProductRef: "solar water heater 100l"},
			expected: true,
		},
		{
			name:     "product question for a different product",
			question: Question{Kind: QuestionKindProduct, ProductRef: "prod-2"},
			expected: false,
		},
		{
			name:     "product question with empty reference",
			question: Question{Kind: QuestionKindProduct},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.question.AppliesTo(product))
		})
	}
}

func TestQuestion_AppliesTo_NilProduct(t *testing.T) {
	common := Question{Kind: QuestionKindCommon}
	assert.True(t, common.AppliesTo(nil))

	scoped := Question{Kind: QuestionKindProduct, ProductRef: "prod-1"}
	assert.False(t, scoped.AppliesTo(nil))
}
