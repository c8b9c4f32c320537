package di

import (
	"go.uber.org/zap"

	commandbus "cinegraph-backend/application/commands/bus"
	"cinegraph-backend/application/ports"
	querybus "cinegraph-backend/application/queries/bus"
	"cinegraph-backend/application/services"
	"cinegraph-backend/infrastructure/config"
	"cinegraph-backend/pkg/auth"
	"cinegraph-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *zap.Logger
	CatalogRepo     ports.CatalogRepository
	UserRepo        ports.UserRepository
	PreferenceRepo  ports.PreferenceRepository
	FriendshipRepo  ports.FriendshipRepository
	EventPublisher  ports.EventPublisher
	RecService      *services.RecommendationService
	CommandBus      *commandbus.CommandBus
	QueryBus        *querybus.QueryBus
	Metrics         *observability.Metrics
	Tracer          *observability.Tracer
	JWTValidator    *auth.JWTValidator
	IPRateLimiter   *auth.IPRateLimiter
	UserRateLimiter *auth.UserRateLimiter
}
