package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/meridianfs/meridian-backend/internal/api/handlers"
	"github.com/meridianfs/meridian-backend/internal/api/middleware"
	"github.com/meridianfs/meridian-backend/internal/config"
	"github.com/meridianfs/meridian-backend/internal/service"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.CORS(cfg.CORSAllowedOrigin))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Account)
	categoryHandler := handlers.NewCategoryHandler(services.Category)
	documentHandler := handlers.NewDocumentHandler(services.Document, cfg.UploadDir)
	contactHandler := handlers.NewContactHandler(services.Contact)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/forgot-password", authHandler.ForgotPassword)
			r.Post("/verify-otp", authHandler.VerifyOTP)
			r.Post("/reset-password", authHandler.ResetPassword)
			r.Post("/refresh", authHandler.Refresh)
			r.Get("/google/callback", authHandler.GoogleCallback)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Account))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Public site routes
		r.Get("/categories", categoryHandler.GetAll)
		r.Get("/categories/{id}", categoryHandler.Get)
		r.Get("/documents", documentHandler.ListPublished)
		r.Get("/documents/{id}/download", documentHandler.Download)
		r.Post("/contact", contactHandler.Submit)

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(services.Account))

			r.Delete("/accounts/{id}", authHandler.DeleteAccount)

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", categoryHandler.Create)
				r.Put("/{id}", categoryHandler.Update)
				r.Delete("/{id}", categoryHandler.Delete)
			})

			r.Route("/documents", func(r chi.Router) {
				r.Get("/", documentHandler.ListAll)
				r.Post("/", documentHandler.Create)
				r.Get("/{id}", documentHandler.Get)
				r.Put("/{id}", documentHandler.Update)
				r.Delete("/{id}", documentHandler.Delete)
				r.Post("/{id}/restore", documentHandler.Restore)
			})

			r.Route("/contact", func(r chi.Router) {
				r.Get("/", contactHandler.GetAll)
				r.Delete("/{id}", contactHandler.Delete)
			})
		})
	})

	return r
}
