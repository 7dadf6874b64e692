package api

import (
	"net/http"
	"time"

	"bloghub/internal/api/handler"
	"bloghub/internal/api/middleware"
	"bloghub/internal/app/service"
	"bloghub/internal/common/security"
	"bloghub/internal/domain/repository"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"go.uber.org/zap"
)

func NewRouter(
	log *zap.Logger,
	tokens *security.TokenAuth,
	userRepo repository.UserRepository,
	authService *service.AuthService,
	blogService *service.BlogService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifier extracts "Authorization: Bearer <t>" and puts claims in the
	// context; routes without Authenticator stay public regardless.
	r.Use(jwtauth.Verifier(tokens.JWTAuth()))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		// Auth routes (public)
		authHandler := handler.NewAuthHandler(authService)
		v1.Route("/auth", authHandler.RegisterRoutes)

		// Current-user route (authenticated)
		userHandler := handler.NewUserHandler(authService)
		v1.Route("/users", func(users chi.Router) {
			users.Use(middleware.Authenticator(userRepo))
			userHandler.RegisterRoutes(users)
		})

		// Blog routes (reads public, mutations owner-only)
		blogHandler := handler.NewBlogHandler(blogService, userRepo)
		v1.Route("/blogs", blogHandler.RegisterRoutes)
	})

	return r
}
