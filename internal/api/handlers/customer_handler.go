package handlers

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vikramraju/customer-feedback/backend/internal/api/middleware"
	"github.com/vikramraju/customer-feedback/backend/internal/application/services"
	"github.com/vikramraju/customer-feedback/backend/internal/auth"
	"github.com/vikramraju/customer-feedback/backend/internal/domain/providers"
	"github.com/vikramraju/customer-feedback/backend/internal/infrastructure/observability"
)

const (
	otpRateLimit     = 5
	otpRateWindow    = time.Hour
	maxImportSize    = 10 << 20 // 10 MiB
	importFieldName  = "file"
	importColPhone   = "phone"
	importColName    = "name"
	importColProduct = "products"
)

// CustomerHandler handles customer verification, lookup and bulk import.
type CustomerHandler struct {
	customers *services.CustomerService
	auth      *services.AuthService
	cache     providers.CacheProvider
	metrics   *observability.Metrics
	local     *localRateLimiter
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(
	customers *services.CustomerService,
	authService *services.AuthService,
	cache providers.CacheProvider,
	metrics *observability.Metrics,
) *CustomerHandler {
	return &CustomerHandler{
		customers: customers,
		auth:      authService,
		cache:     cache,
		metrics:   metrics,
		local:     newLocalRateLimiter(),
	}
}

type otpRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"otp"`
}

// RequestOTP handles POST /api/customers/request-otp
func (h *CustomerHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var payload otpRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	payload.Phone = strings.TrimSpace(payload.Phone)
	if payload.Phone == "" {
		respondWithError(w, http.StatusBadRequest, "phone number is required")
		return
	}

	key := "otp:rate:" + payload.Phone
	allowed, retryAfter := h.allowRequest(r.Context(), key)
	if !allowed {
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		respondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	if err := h.customers.RequestOTP(r.Context(), payload.Phone); err != nil {
		h.recordOTP(r, "error")
		respondWithAppError(w, err, "failed to send OTP")
		return
	}

	h.recordOTP(r, "sent")
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "OTP sent"})
}

// VerifyOTP handles POST /api/customers/verify-otp
func (h *CustomerHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var payload otpRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	customer, err := h.customers.VerifyOTP(r.Context(), strings.TrimSpace(payload.Phone), strings.TrimSpace(payload.Code))
	if err != nil {
		respondWithAppError(w, err, "failed to verify OTP")
		return
	}

	token, err := h.auth.IssueCustomerToken(customer.ID)
	if err != nil {
		respondWithAppError(w, err, "failed to issue session token")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message":     "OTP verified, login successful",
		"customer_id": customer.ID,
		"token":       token,
	})
}

// GetCustomer handles GET /api/customers/{id}. A customer token only grants
// access to its own record; admin tokens may read any customer.
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "customer ID is required")
		return
	}

	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if claims.Role == auth.RoleCustomer && claims.Subject != id {
		respondWithError(w, http.StatusForbidden, "cannot access another customer")
		return
	}

	customer, err := h.customers.GetCustomer(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err, "failed to get customer")
		return
	}

	respondWithJSON(w, http.StatusOK, customer)
}

// UploadCSV handles POST /api/customers/upload-csv. The uploaded file is
// spooled to a single-use temp file which is removed on every exit path.
func (h *CustomerHandler) UploadCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		respondWithError(w, http.StatusBadRequest, "no file uploaded")
		return
	}

	file, _, err := r.FormFile(importFieldName)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "customer-import-*.csv")
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		respondWithError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	if err := tmp.Close(); err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}

	rows, err := parseImportFile(tmpPath)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "error processing CSV")
		return
	}

	count, err := h.customers.BulkImport(r.Context(), rows)
	if h.metrics != nil {
		observability.RecordImportRows(r.Context(), h.metrics, count)
	}
	if err != nil {
		respondWithAppError(w, err, "error processing CSV")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "customers uploaded successfully",
		"count":   count,
	})
}

// parseImportFile reads a delimited file with a header row into import rows.
func parseImportFile(path string) ([]services.ImportRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, column := range header {
		index[strings.ToLower(strings.TrimSpace(column))] = i
	}

	field := func(record []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []services.ImportRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		rows = append(rows, services.ImportRow{
			Phone:    field(record, importColPhone),
			Name:     field(record, importColName),
			Products: field(record, importColProduct),
		})
	}

	return rows, nil
}

func (h *CustomerHandler) recordOTP(r *http.Request, outcome string) {
	if h.metrics != nil {
		observability.RecordOTPSend(r.Context(), h.metrics, outcome)
	}
}

func (h *CustomerHandler) allowRequest(ctx context.Context, key string) (bool, time.Duration) {
	if h.cache == nil {
		return h.local.allow(key, otpRateLimit, otpRateWindow)
	}

	state := rateLimitState{}
	if data, err := h.cache.Get(ctx, key); err == nil {
		_ = json.Unmarshal(data, &state)
	}

	if state.Count >= otpRateLimit {
		return false, otpRateWindow
	}

	state.Count++
	data, _ := json.Marshal(state)
	_ = h.cache.Set(ctx, key, data, int(otpRateWindow.Seconds()))
	return true, otpRateWindow
}

type rateLimitState struct {
	Count int `json:"count"`
}

type localRateLimiter struct {
	mu     sync.Mutex
	states map[string]*localRateState
}

type localRateState struct {
	count   int
	resetAt time.Time
}

func newLocalRateLimiter() *localRateLimiter {
	return &localRateLimiter{
		states: make(map[string]*localRateState),
	}
}

func (l *localRateLimiter) allow(key string, limit int, window time.Duration) (bool, time.Duration) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.states[key]
	if !ok || now.After(state.resetAt) {
		state = &localRateState{count: 0, resetAt: now.Add(window)}
		l.states[key] = state
	}

	if state.count >= limit {
		retryAfter := time.Until(state.resetAt)
		if retryAfter < 0 {
			retryAfter = window
		}
		return false, retryAfter
	}

	state.count++
	return true, window
}
