package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vikramraju/customer-feedback/backend/internal/application/services"
	"github.com/vikramraju/customer-feedback/backend/internal/domain/entities"
)

// QuestionHandler handles questionnaire HTTP requests
type QuestionHandler struct {
	questions *services.QuestionService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questions *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

type questionRequest struct {
	Text    string `json:"text"`
	Kind    string `json:"kind"`
	Product string `json:"product"`
}

// ListQuestions handles GET /api/questions
func (h *QuestionHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questions.List(r.Context())
	if err != nil {
		respondWithAppError(w, err, "failed to list questions")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"questions": questions,
		"count":     len(questions),
	})
}

// CreateQuestion handles POST /api/questions
func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var payload questionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	question := &entities.Question{
		Text:       payload.Text,
		Kind:       entities.QuestionKind(payload.Kind),
		ProductRef: payload.Product,
	}

	if err := h.questions.Create(r.Context(), question); err != nil {
		respondWithAppError(w, err, "failed to create question")
		return
	}

	respondWithJSON(w, http.StatusCreated, question)
}

// UpdateQuestion handles PUT /api/questions/{id}
func (h *QuestionHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "question ID is required")
		return
	}

	var payload questionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	question := &entities.Question{
		ID:         id,
		Text:       payload.Text,
		Kind:       entities.QuestionKind(payload.Kind),
		ProductRef: payload.Product,
	}

	if err := h.questions.Update(r.Context(), question); err != nil {
		respondWithAppError(w, err, "failed to update question")
		return
	}

	respondWithJSON(w, http.StatusOK, question)
}

// GetQuestionnaire handles GET /api/products/{id}/questions
func (h *QuestionHandler) GetQuestionnaire(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("id")
	if productID == "" {
		respondWithError(w, http.StatusBadRequest, "product ID is required")
		return
	}

	questions, err := h.questions.Questionnaire(r.Context(), productID)
	if err != nil {
		respondWithAppError(w, err, "failed to build questionnaire")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"questions": questions,
		"count":     len(questions),
	})
}
