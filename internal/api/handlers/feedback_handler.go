package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/vikramraju/customer-feedback/backend/internal/application/services"
	"github.com/vikramraju/customer-feedback/backend/internal/domain/entities"
)

// FeedbackHandler handles feedback submission and reporting.
type FeedbackHandler struct {
	feedback *services.FeedbackService
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(feedback *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

type answerPayload struct {
	Question string `json:"question"`
	Rating   int    `json:"rating"`
}

type feedbackRequest struct {
	Customer string          `json:"customer"`
	Product  string          `json:"product"`
	Year     int             `json:"year"`
	Answers  []answerPayload `json:"answers"`
	Comment  string          `json:"comment"`
}

// SubmitFeedback handles POST /api/feedback
func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var payload feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	feedback := &entities.Feedback{
		CustomerID: payload.Customer,
		ProductID:  payload.Product,
		Year:       payload.Year,
		Comment:    payload.Comment,
	}
	for _, answer := range payload.Answers {
		feedback.Answers = append(feedback.Answers, entities.Answer{
			QuestionRef: answer.Question,
			Rating:      answer.Rating,
		})
	}

	if err := h.feedback.Submit(r.Context(), feedback); err != nil {
		respondWithAppError(w, err, "failed to submit feedback")
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "feedback submitted",
		"feedback": feedback,
	})
}

// ListFeedback handles GET /api/feedback
func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	details, err := h.feedback.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err, "failed to list feedback")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"feedbacks": details,
		"count":     len(details),
	})
}

// GetReport handles GET /api/feedback/report
func (h *FeedbackHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := h.feedback.Report(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err, "failed to build report")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"report": stats,
		"count":  len(stats),
	})
}

func parseFilter(r *http.Request) (services.Filter, error) {
	filter := services.Filter{
		Phone: strings.TrimSpace(r.URL.Query().Get("phone")),
	}

	if products := r.URL.Query().Get("products"); products != "" {
		for _, id := range strings.Split(products, ",") {
			if trimmed := strings.TrimSpace(id); trimmed != "" {
				filter.ProductIDs = append(filter.ProductIDs, trimmed)
			}
		}
	}

	if year := r.URL.Query().Get("year"); year != "" {
		parsed, err := strconv.Atoi(year)
		if err != nil {
			return filter, fmt.Errorf("year must be a number")
		}
		filter.Year = parsed
	}

	return filter, nil
}
