package entities

import "time"

// Answer is one rated question inside a feedback submission.
type Answer struct {
	QuestionRef string `json:"question" db:"question_ref"`
	Rating      int    `json:"rating" db:"rating"`
}

// Feedback is a single questionnaire submission. Records are written once
// and never mutated through the API.
type Feedback struct {
	ID         string    `json:"id" db:"id"`
	CustomerID string    `json:"customer_id" db:"customer_id"`
	ProductID  string    `json:"product_id" db:"product_id"`
	Year       int       `json:"year" db:"year"`
	Answers    []Answer  `json:"answers"`
	Comment    string    `json:"comment" db:"comment"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// AverageRating is the arithmetic mean of the answer ratings. The second
// return value is false when the feedback has no answers and no mean is
// defined.
func (f *Feedback) AverageRating() (float64, bool) {
	if len(f.Answers) == 0 {
		return 0, false
	}
	sum := 0
	for _, a := range f.Answers {
		sum += a.Rating
	}
	return float64(sum) / float64(len(f.Answers)), true
}

// AnsweredQuestion is an answer with its question resolved. Question is nil
// when the reference could not be resolved.
type AnsweredQuestion struct {
	Answer
	Question *Question `json:"question_detail,omitempty"`
}

// FeedbackDetail is a feedback record with customer, product and question
// references resolved for display.
type FeedbackDetail struct {
	Feedback
	Customer   *Customer          `json:"customer,omitempty"`
	Product    *Product           `json:"product,omitempty"`
	Resolved   []AnsweredQuestion `json:"resolved_answers"`
	Average    float64            `json:"average_rating"`
	HasAnswers bool               `json:"has_answers"`
}

// QuestionStat is one row of the aggregate report: the mean rating and
// response count for a single question across a filtered feedback set.
type QuestionStat struct {
	QuestionRef string  `json:"question"`
	Text        string  `json:"text,omitempty"`
	Average     float64 `json:"average_rating"`
	Responses   int     `json:"responses"`
}
