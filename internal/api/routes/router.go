package routes

import (
	"net/http"

	"github.com/vikramraju/customer-feedback/backend/internal/api/handlers"
	"github.com/vikramraju/customer-feedback/backend/internal/api/middleware"
	"github.com/vikramraju/customer-feedback/backend/internal/auth"
	"github.com/vikramraju/customer-feedback/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	authHandler     *handlers.AuthHandler
	customerHandler *handlers.CustomerHandler
	productHandler  *handlers.ProductHandler
	questionHandler *handlers.QuestionHandler
	feedbackHandler *handlers.FeedbackHandler

	jwtSecret string
	metrics   *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	customerHandler *handlers.CustomerHandler,
	productHandler *handlers.ProductHandler,
	questionHandler *handlers.QuestionHandler,
	feedbackHandler *handlers.FeedbackHandler,
	jwtSecret string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		authHandler:     authHandler,
		customerHandler: customerHandler,
		productHandler:  productHandler,
		questionHandler: questionHandler,
		feedbackHandler: feedbackHandler,

		jwtSecret: jwtSecret,
		metrics:   metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	adminOnly := middleware.AuthMiddleware(r.jwtSecret, auth.RoleAdmin)
	anySession := middleware.AuthMiddleware(r.jwtSecret, auth.RoleAdmin, auth.RoleCustomer)

	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Admin auth
	r.mux.HandleFunc("POST /api/admin/login", r.authHandler.Login)

	// Customer endpoints
	r.mux.HandleFunc("POST /api/customers/request-otp", r.customerHandler.RequestOTP)
	r.mux.HandleFunc("POST /api/customers/verify-otp", r.customerHandler.VerifyOTP)
	r.mux.Handle("GET /api/customers/{id}", anySession(http.HandlerFunc(r.customerHandler.GetCustomer)))
	r.mux.Handle("POST /api/customers/upload-csv", adminOnly(http.HandlerFunc(r.customerHandler.UploadCSV)))

	// Product endpoints (reads public, writes admin)
	r.mux.HandleFunc("GET /api/products", r.productHandler.ListProducts)
	r.mux.Handle("POST /api/products", adminOnly(http.HandlerFunc(r.productHandler.CreateProduct)))
	r.mux.Handle("PUT /api/products/{id}", adminOnly(http.HandlerFunc(r.productHandler.UpdateProduct)))
	r.mux.Handle("DELETE /api/products/{id}", adminOnly(http.HandlerFunc(r.productHandler.DeleteProduct)))

	// Question endpoints (reads public, writes admin)
	r.mux.HandleFunc("GET /api/questions", r.questionHandler.ListQuestions)
	r.mux.Handle("POST /api/questions", adminOnly(http.HandlerFunc(r.questionHandler.CreateQuestion)))
	r.mux.Handle("PUT /api/questions/{id}", adminOnly(http.HandlerFunc(r.questionHandler.UpdateQuestion)))
	r.mux.HandleFunc("GET /api/products/{id}/questions", r.questionHandler.GetQuestionnaire)

	// Feedback endpoints
	r.mux.HandleFunc("POST /api/feedback", r.feedbackHandler.SubmitFeedback)
	r.mux.HandleFunc("GET /api/feedback", r.feedbackHandler.ListFeedback)
	r.mux.HandleFunc("GET /api/feedback/report", r.feedbackHandler.GetReport)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so headers are set on every response
	handler = middleware.CORSMiddleware(handler)

	return handler
}
