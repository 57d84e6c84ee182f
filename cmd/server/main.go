package main

import (
	"log"
	"net/http"
	"os"

	"github.com/exam-prep/backend/internal/analysis"
	"github.com/exam-prep/backend/internal/auth"
	"github.com/exam-prep/backend/internal/database"
	"github.com/exam-prep/backend/internal/middleware"
	"github.com/exam-prep/backend/internal/priority"
	"github.com/exam-prep/backend/internal/sessions"
	"github.com/exam-prep/backend/internal/uploads"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize services
	priorityService := priority.NewService(priority.NewPostgresStore(db))
	sessionStore := sessions.NewStore(db)
	analyzer := analysis.NewAnalyzer()

	// Initialize handlers
	authHandler := auth.NewHandler(db)
	sessionHandler := sessions.NewHandler(sessionStore, priorityService)
	priorityHandler := priority.NewHandler(priorityService)
	uploadHandler := uploads.NewHandler(sessionStore, analyzer, priorityService)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	protected.HandleFunc("/sessions", sessionHandler.CreateSession).Methods("POST")
	protected.HandleFunc("/sessions/{id}", sessionHandler.GetSessionSummary).Methods("GET")
	protected.HandleFunc("/sessions/{id}/materials", sessionHandler.UploadMaterials).Methods("POST")
	protected.HandleFunc("/sessions/{id}/practice", uploadHandler.UploadPracticeWork).Methods("POST")

	protected.HandleFunc("/sessions/{id}/results", priorityHandler.SubmitResults).Methods("POST")
	protected.HandleFunc("/sessions/{id}/priorities", priorityHandler.GetPriorities).Methods("GET")
	protected.HandleFunc("/sessions/{id}/priorities/reset", priorityHandler.ResetPriorities).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
