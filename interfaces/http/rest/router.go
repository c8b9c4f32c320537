package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	commandbus "cinegraph-backend/application/commands/bus"
	querybus "cinegraph-backend/application/queries/bus"
	"cinegraph-backend/infrastructure/config"
	"cinegraph-backend/interfaces/http/rest/handlers"
	"cinegraph-backend/interfaces/http/rest/middleware"
	"cinegraph-backend/pkg/auth"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg             *config.Config
	commandBus      *commandbus.CommandBus
	queryBus        *querybus.QueryBus
	jwtValidator    *auth.JWTValidator
	ipRateLimiter   *auth.IPRateLimiter
	userRateLimiter *auth.UserRateLimiter
	logger          *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	commandBus *commandbus.CommandBus,
	queryBus *querybus.QueryBus,
	jwtValidator *auth.JWTValidator,
	ipRateLimiter *auth.IPRateLimiter,
	userRateLimiter *auth.UserRateLimiter,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:             cfg,
		commandBus:      commandBus,
		queryBus:        queryBus,
		jwtValidator:    jwtValidator,
		ipRateLimiter:   ipRateLimiter,
		userRateLimiter: userRateLimiter,
		logger:          logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.cinegraph.app"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.jwtValidator, rt.ipRateLimiter, rt.userRateLimiter, rt.logger))

		movieHandler := handlers.NewMovieHandler(rt.queryBus, rt.logger)
		r.Get("/movies", movieHandler.ListMovies)
		r.Get("/genres", movieHandler.ListGenres)

		recHandler := handlers.NewRecommendationHandler(rt.queryBus, rt.logger)
		r.Get("/recommendations/{username}", recHandler.GetRecommendations)
		r.Get("/homepage/{username}", recHandler.GetHomepageFeed)

		prefHandler := handlers.NewPreferenceHandler(rt.commandBus, rt.queryBus, rt.logger)
		r.Post("/preferences", prefHandler.SetPreference)
		r.Get("/preferences/{username}/{movieName}", prefHandler.GetPreferenceStatus)
		r.Delete("/preferences/{username}/{movieName}", prefHandler.ClearPreference)

		userHandler := handlers.NewUserHandler(rt.commandBus, rt.queryBus, rt.logger)
		r.Route("/users/{username}", func(r chi.Router) {
			r.Get("/stats", userHandler.GetStats)
			r.Get("/likes", userHandler.ListLikes)
			r.Get("/dislikes", userHandler.ListDislikes)
			r.Get("/friends", userHandler.ListFriends)
		})
		r.Post("/friends", userHandler.AddFriend)
		r.Delete("/friends/{username}/{friend}", userHandler.RemoveFriend)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
