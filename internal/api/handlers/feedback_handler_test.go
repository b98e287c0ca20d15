package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitJSON(t *testing.T, handler http.HandlerFunc, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestFeedbackHandler_Submit(t *testing.T) {
	f := newFixture(t)
	handler := NewFeedbackHandler(f.feedbackService)

	rec := submitJSON(t, handler.SubmitFeedback, "/api/feedback", map[string]any{
		"customer": "cust-1",
		"product":  "prod-1",
		"answers": []map[string]any{
			{"question": "q-common", "rating": 5},
			{"question": "q-prod1", "rating": 4},
		},
		"comment": "works well",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, f.feedback.records, 1)
	assert.Equal(t, "works well", f.feedback.records[0].Comment)
}

func TestFeedbackHandler_Submit_RatingOutOfRange(t *testing.T) {
	f := newFixture(t)
	handler := NewFeedbackHandler(f.feedbackService)

	rec := submitJSON(t, handler.SubmitFeedback, "/api/feedback", map[string]any{
		"customer": "cust-1",
		"product":  "prod-1",
		"answers":  []map[string]any{{"question": "q-common", "rating": 6}},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.feedback.records)
}

func TestFeedbackHandler_Submit_UnknownCustomer(t *testing.T) {
	f := newFixture(t)
	handler := NewFeedbackHandler(f.feedbackService)

	rec := submitJSON(t, handler.SubmitFeedback, "/api/feedback", map[string]any{
		"customer": "cust-missing",
		"product":  "prod-1",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFeedbackHandler_Submit_InvalidBody(t *testing.T) {
	f := newFixture(t)
	handler := NewFeedbackHandler(f.feedbackService)

	req := httptest.NewRequest(http.MethodPost, "/api/feedback", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.SubmitFeedback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFeedbackHandler_List_FiltersByQuery(t *testing.T) {
	f := newFixture(t)
	handler := NewFeedbackHandler(f.feedbackService)

	for _, entry := range []struct {
		product string
		year    int
	}{
		{"prod-1", 2024},
		{"prod-1", 2025},
		{"prod-2", 2025},
	} {
		rec := submitJSON(t, handler.SubmitFeedback, "/api/feedback", map[string]any{
			"customer": "cust-1",
			"product":  entry.product,
			"year":     entry.year,
			"answers":  []map[string]any{{"question": "q-common", "rating": 4}},
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/feedback?products=prod-1&year=2025", nil)
	rec := httptest.NewRecorder()
	handler.ListFeedback(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var response struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 1, response.Count)
}

func TestFeedbackHandler_List_BadYear(t *testing.T) {
	f := newFixture(t)
	handler := NewFeedbackHandler(f.feedbackService)

	req := httptest.NewRequest(http.MethodGet, "/api/feedback?year=twenty25", nil)
	rec := httptest.NewRecorder()
	handler.ListFeedback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "year must be a number")
}

func TestFeedbackHandler_Report_RequiresProducts(t *testing.T) {
	f := newFixture(t)
	handler := NewFeedbackHandler(f.feedbackService)

	req := httptest.NewRequest(http.MethodGet, "/api/feedback/report", nil)
	rec := httptest.NewRecorder()
	handler.GetReport(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFeedbackHandler_Report(t *testing.T) {
	f := newFixture(t)
	handler := NewFeedbackHandler(f.feedbackService)

	rec := submitJSON(t, handler.SubmitFeedback, "/api/feedback", map[string]any{
		"customer": "cust-1",
		"product":  "prod-1",
		"answers": []map[string]any{
			{"question": "q-common", "rating": 5},
			{"question": "q-prod1", "rating": 3},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/feedback/report?products=prod-1", nil)
	rec = httptest.NewRecorder()
	handler.GetReport(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var response struct {
		Count  int `json:"count"`
		Report []struct {
			Question  string  `json:"question"`
			Average   float64 `json:"average_rating"`
			Responses int     `json:"responses"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Count)
}
