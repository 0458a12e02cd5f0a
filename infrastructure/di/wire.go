//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"insight-backend/application/commands/bus"
	"insight-backend/application/ports"
	querybus "insight-backend/application/queries/bus"
	domainconfig "insight-backend/domain/config"
	"insight-backend/infrastructure/config"
	"insight-backend/pkg/auth"
	"insight-backend/pkg/observability"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	DomainConfig *domainconfig.DomainConfig
	Logger       *zap.Logger
	ContentRepo  ports.ContentRepository
	CommentRepo  ports.CommentRepository
	ReactionRepo ports.ReactionRepository
	EventRepo    ports.EventRepository
	Publisher    ports.EventPublisher
	CommandBus   *bus.CommandBus
	QueryBus     *querybus.QueryBus
	Cache        ports.Cache
	Metrics      *observability.Metrics
	Tracer       *observability.Tracer
	RateLimiter  *auth.DistributedRateLimiter
	JWTValidator *auth.JWTValidator
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideDomainConfig,
	ProvideContentRepository,
	ProvideCommentRepository,
	ProvideReactionRepository,
	ProvideEventRepository,
	ProvideEventPublisher,
	ProvideMetrics,
	ProvideTracer,
	ProvideResourceLocker,
	ProvideDistributedRateLimiter,
	ProvideJWTValidator,
	ProvideCommandBus,
	ProvideQueryBus,
	ProvideInMemoryCache,
	ProvideQueryCache,
	ProvideSnapshotCacheTTL,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
