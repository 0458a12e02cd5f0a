package rest

import (
	"net/http"
	"os"

	"insight-backend/application/commands/bus"
	querybus "insight-backend/application/queries/bus"
	"insight-backend/interfaces/http/rest/handlers"
	"insight-backend/interfaces/http/rest/middleware"
	"insight-backend/pkg/auth"
	appErrors "insight-backend/pkg/errors"
	"insight-backend/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	validator  *auth.JWTValidator
	limiter    middleware.Limiter
	tracer     *observability.Tracer
	logger     *zap.Logger
}

// NewRouter creates a new router instance. The validator authenticates
// session routes and, when present on public routes, attaches the
// caller's identity; a nil validator falls back to environment-driven
// authentication. A nil limiter falls back to an in-process token
// bucket.
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	validator *auth.JWTValidator,
	limiter middleware.Limiter,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *Router {
	return &Router{
		commandBus: commandBus,
		queryBus:   queryBus,
		validator:  validator,
		limiter:    limiter,
		tracer:     tracer,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(appErrors.NewErrorHandler(rt.logger, false).Middleware)
	router.Use(middleware.Logger(rt.logger))
	if rt.tracer != nil {
		router.Use(middleware.Tracing(rt.tracer))
	}

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://*.insight.dev"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	contentHandler := handlers.NewContentHandler(rt.commandBus, rt.queryBus, rt.logger)
	interactionHandler := handlers.NewInteractionHandler(rt.commandBus, rt.logger)
	analyticsHandler := handlers.NewAnalyticsHandler(rt.queryBus, rt.logger)
	eventHandler := handlers.NewEventHandler(rt.commandBus, rt.queryBus, rt.logger)

	limiter := rt.limiter
	if limiter == nil {
		limiter = auth.NewIPRateLimiter(100)
	}
	var authenticate func(http.Handler) http.Handler
	if rt.validator != nil && os.Getenv("AWS_LAMBDA_FUNCTION_NAME") == "" {
		authenticate = middleware.AuthenticateWithConfig(rt.validator, rt.logger)
	} else {
		authenticate = middleware.Authenticate()
	}

	router.Route("/api/v1", func(r chi.Router) {
		// Public routes: reading content and checking event access need
		// no session. Guests on private events verify by email instead.
		// A bearer token is still honored here so an allow-listed viewer
		// sees their private-event grant.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(limiter))
			r.Use(middleware.OptionalAuthenticate(rt.validator, rt.logger))

			r.Get("/content", contentHandler.ListContent)
			r.Get("/content/{contentID}", contentHandler.GetContent)
			r.Get("/events/{eventID}/access", eventHandler.GetAccess)
			r.Post("/events/{eventID}/verify-guest", eventHandler.VerifyGuest)
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Route("/content", func(r chi.Router) {
				r.Post("/", contentHandler.CreateContent)
				r.Put("/{contentID}", contentHandler.UpdateContent)
				r.Delete("/{contentID}", contentHandler.ArchiveContent)
				r.Post("/{contentID}/comments", interactionHandler.AddComment)
				r.Post("/{contentID}/reactions", interactionHandler.ToggleReaction)
			})

			r.Delete("/comments/{commentID}", interactionHandler.DeleteComment)

			r.Get("/analytics/snapshot", analyticsHandler.GetSnapshot)

			r.Route("/events", func(r chi.Router) {
				r.Post("/", eventHandler.CreateEvent)
				r.Put("/{eventID}/visibility", eventHandler.UpdateVisibility)
			})
		})
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
