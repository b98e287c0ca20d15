package entities

import (
	"strings"
	"time"
)

// QuestionKind distinguishes questions shown for every product from
// questions tied to a single product.
type QuestionKind string

const (
	QuestionKindCommon  QuestionKind = "common"
	QuestionKindProduct QuestionKind = "product"
)

// Question is a questionnaire entry. ProductRef is normally a product id,
// but legacy records may still hold a product name until the migration
// command has run.
type Question struct {
	ID         string       `json:"id" db:"id"`
	Text       string       `json:"text" db:"text"`
	Kind       QuestionKind `json:"kind" db:"kind"`
	ProductRef string       `json:"product_ref,omitempty" db:"product_ref"`
	CreatedAt  time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at" db:"updated_at"`
}

// QuestionDetail is a question with its product reference resolved.
// Product is nil for common questions and for unresolved legacy references.
type QuestionDetail struct {
	Question
	Product *Product `json:"product,omitempty"`
}

// Normalize enforces the kind/reference invariant: a product question keeps
// the supplied reference, a common question has it cleared regardless of
// what the caller sent.
func (q *Question) Normalize() {
	if q.Kind != QuestionKindProduct {
		q.ProductRef = ""
	}
}

// AppliesTo reports whether the question belongs to the product's
// questionnaire. Common questions apply everywhere; product questions apply
// when the reference matches the product id, or its name case-insensitively
// for legacy un-migrated references.
func (q *Question) AppliesTo(product *Product) bool {
	if q.Kind == QuestionKindCommon {
		return true
	}
	if q.Kind != QuestionKindProduct || product == nil || q.ProductRef == "" {
		return false
	}
	if q.ProductRef == product.ID {
		return true
	}
	return strings.EqualFold(q.ProductRef, product.Name)
}
