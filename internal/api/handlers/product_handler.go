package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vikramraju/customer-feedback/backend/internal/application/services"
	"github.com/vikramraju/customer-feedback/backend/internal/domain/entities"
	apperrors "github.com/vikramraju/customer-feedback/backend/pkg/errors"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	products *services.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(products *services.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

type productRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		respondWithAppError(w, err, "failed to list products")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
	})
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var payload productRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	product := &entities.Product{Name: payload.Name, Code: payload.Code}
	if err := h.products.Create(r.Context(), product); err != nil {
		respondWithAppError(w, err, "failed to create product")
		return
	}

	respondWithJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "product ID is required")
		return
	}

	var payload productRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	product := &entities.Product{ID: id, Name: payload.Name, Code: payload.Code}
	if err := h.products.Update(r.Context(), product); err != nil {
		respondWithAppError(w, err, "failed to update product")
		return
	}

	respondWithJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "product ID is required")
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, err, "failed to delete product")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps the application error taxonomy onto HTTP status
// codes; anything unclassified becomes a generic 500.
func respondWithAppError(w http.ResponseWriter, err error, fallback string) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		respondWithError(w, http.StatusInternalServerError, fallback)
		return
	}

	switch appErr.Type {
	case apperrors.ErrorTypeValidation:
		respondWithError(w, http.StatusBadRequest, appErr.Message)
	case apperrors.ErrorTypeNotFound:
		respondWithError(w, http.StatusNotFound, appErr.Message)
	case apperrors.ErrorTypeUnauthorized:
		respondWithError(w, http.StatusUnauthorized, appErr.Message)
	case apperrors.ErrorTypeForbidden:
		respondWithError(w, http.StatusForbidden, appErr.Message)
	case apperrors.ErrorTypeConflict:
		respondWithError(w, http.StatusConflict, appErr.Message)
	case apperrors.ErrorTypeExternal:
		respondWithError(w, http.StatusInternalServerError, appErr.Message)
	default:
		respondWithError(w, http.StatusInternalServerError, fallback)
	}
}
