package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"paperdeck/internal/service"
	"paperdeck/internal/transport/rest/handler"
	"paperdeck/internal/transport/rest/middleware"
	"paperdeck/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService      *service.AuthService
	PaperService     *service.PaperService
	QuestionService  *service.QuestionService
	ConditionService *service.ConditionService
	WSHub            *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	paperHandler := handler.NewPaperHandler(c.PaperService)
	questionHandler := handler.NewQuestionHandler(c.QuestionService)
	graphHandler := handler.NewGraphHandler(c.ConditionService, c.QuestionService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws/papers/{paperId}", wsHandler.EditorWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Author routes (require auth)
	authorRoutes := v1.NewRoute().Subrouter()
	authorRoutes.Use(authMW.RequireAuthor)

	authorRoutes.HandleFunc("/papers", paperHandler.Create).Methods("POST", "OPTIONS")
	authorRoutes.HandleFunc("/papers", paperHandler.List).Methods("GET", "OPTIONS")
	authorRoutes.HandleFunc("/papers/{paperId}", paperHandler.Get).Methods("GET", "OPTIONS")
	authorRoutes.HandleFunc("/papers/{paperId}", paperHandler.Update).Methods("PUT", "OPTIONS")
	authorRoutes.HandleFunc("/papers/{paperId}", paperHandler.Delete).Methods("DELETE", "OPTIONS")

	authorRoutes.HandleFunc("/papers/{paperId}/questions", questionHandler.List).Methods("GET", "OPTIONS")
	authorRoutes.HandleFunc("/papers/{paperId}/questions", questionHandler.Create).Methods("POST", "OPTIONS")
	authorRoutes.HandleFunc("/papers/{paperId}/questions/{questionId}", questionHandler.Update).Methods("PUT", "OPTIONS")
	authorRoutes.HandleFunc("/papers/{paperId}/questions/{questionId}", questionHandler.Delete).Methods("DELETE", "OPTIONS")

	// Dependency engine routes
	authorRoutes.HandleFunc("/papers/{paperId}/questions/{questionId}/condition/validate", graphHandler.ValidateCondition).Methods("POST", "OPTIONS")
	authorRoutes.HandleFunc("/papers/{paperId}/questions/{questionId}/condition", graphHandler.SetCondition).Methods("PUT", "OPTIONS")
	authorRoutes.HandleFunc("/papers/{paperId}/questions/{questionId}/dependencies", graphHandler.Dependencies).Methods("GET", "OPTIONS")
	authorRoutes.HandleFunc("/papers/{paperId}/graph", graphHandler.Analytics).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
