package di

import (
	"context"
	"fmt"
	"time"

	"insight-backend/application/commands"
	"insight-backend/application/commands/bus"
	commands_handlers "insight-backend/application/commands/handlers"
	"insight-backend/application/ports"
	"insight-backend/application/queries"
	querybus "insight-backend/application/queries/bus"
	queries_handlers "insight-backend/application/queries/handlers"
	domainconfig "insight-backend/domain/config"
	"insight-backend/infrastructure/config"
	"insight-backend/infrastructure/messaging/eventbridge"
	"insight-backend/infrastructure/persistence/dynamodb"
	"insight-backend/pkg/auth"
	"insight-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideDomainConfig creates the domain rules configuration
func ProvideDomainConfig(cfg *config.Config) *domainconfig.DomainConfig {
	dc := domainconfig.LoadDomainConfig(cfg.Environment)
	if cfg.SnapshotWindowDays > 0 {
		dc.WindowDays = cfg.SnapshotWindowDays
	}
	if cfg.SnapshotTopN > 0 {
		dc.TopN = cfg.SnapshotTopN
	}
	return dc
}

// ProvideContentRepository creates a content repository
func ProvideContentRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ContentRepository {
	return dynamodb.NewContentRepository(
		client,
		cfg.DynamoDBTable,
		cfg.IndexName,
		logger,
	)
}

// ProvideCommentRepository creates a comment repository
func ProvideCommentRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.CommentRepository {
	return dynamodb.NewCommentRepository(
		client,
		cfg.DynamoDBTable,
		cfg.IndexName,
		cfg.GSI2IndexName,
		logger,
	)
}

// ProvideReactionRepository creates a reaction repository
func ProvideReactionRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ReactionRepository {
	return dynamodb.NewReactionRepository(
		client,
		cfg.DynamoDBTable,
		cfg.IndexName,
		cfg.GSI2IndexName,
		logger,
	)
}

// ProvideEventRepository creates an event repository
func ProvideEventRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.EventRepository {
	return dynamodb.NewEventRepository(
		client,
		cfg.DynamoDBTable,
		cfg.IndexName,
		logger,
	)
}

// ProvideEventPublisher creates an event publisher
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	return eventbridge.NewPublisher(
		client,
		cfg.EventBusName,
		logger,
	)
}

// ProvideMetrics creates metrics instance
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config) *observability.Metrics {
	if !cfg.EnableMetrics {
		return observability.NewMetrics("", nil)
	}
	namespace := fmt.Sprintf("Insight/%s", cfg.Environment)
	return observability.NewMetrics(namespace, client)
}

// resourceLockerAdapter adapts the DynamoDB lock to the application port
type resourceLockerAdapter struct {
	inner *dynamodb.DistributedLock
}

func (a *resourceLockerAdapter) AcquireLock(ctx context.Context, resourceName, ownerID string, lockDuration time.Duration) (ports.ResourceLock, error) {
	lock, err := a.inner.AcquireLock(ctx, resourceName, ownerID, lockDuration)
	if err != nil {
		return nil, err
	}
	return lock, nil
}

// ProvideResourceLocker creates the distributed lock used to serialize
// contended writes
func ProvideResourceLocker(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ResourceLocker {
	return &resourceLockerAdapter{
		inner: dynamodb.NewDistributedLock(client, cfg.DynamoDBTable, logger),
	}
}

// ProvideTracer creates the X-Ray tracer, or nil when tracing is disabled
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	if !cfg.EnableTracing {
		return nil
	}
	return observability.NewTracer("insight-backend")
}

// ProvideDistributedRateLimiter creates a distributed rate limiter
func ProvideDistributedRateLimiter(client *awsdynamodb.Client, cfg *config.Config) *auth.DistributedRateLimiter {
	return auth.NewDistributedRateLimiter(
		client,
		cfg.DynamoDBTable,
		100,           // 100 requests
		1*time.Minute, // per minute
		"API",         // key prefix for API rate limiting
	)
}

// ProvideJWTValidator creates a JWT validator
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	secret := cfg.JWTSecret
	if secret == "" && !cfg.IsProduction() {
		secret = "development-secret-change-in-production"
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     secret,
		Issuer:        cfg.JWTIssuer,
		Audience:      []string{"insight-api"},
	})
}

// CommandHandlerAdapter adapts specific command handlers to the generic interface
type CommandHandlerAdapter struct {
	handler func(context.Context, bus.Command) error
}

func (a *CommandHandlerAdapter) Handle(ctx context.Context, cmd bus.Command) error {
	return a.handler(ctx, cmd)
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	contentRepo ports.ContentRepository,
	commentRepo ports.CommentRepository,
	reactionRepo ports.ReactionRepository,
	eventRepo ports.EventRepository,
	publisher ports.EventPublisher,
	locker ports.ResourceLocker,
	domainCfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *bus.CommandBus {
	commandBus := bus.NewCommandBus()

	createContentHandler := commands_handlers.NewCreateContentHandler(contentRepo, publisher, domainCfg, logger)
	commandBus.Register(commands.CreateContentCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			createCmd, ok := cmd.(commands.CreateContentCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			_, err := createContentHandler.Handle(ctx, createCmd)
			return err
		},
	})

	updateContentHandler := commands_handlers.NewUpdateContentHandler(contentRepo, publisher, domainCfg, logger)
	commandBus.Register(commands.UpdateContentCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			updateCmd, ok := cmd.(commands.UpdateContentCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return updateContentHandler.Handle(ctx, updateCmd)
		},
	})
	commandBus.Register(commands.ArchiveContentCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			archiveCmd, ok := cmd.(commands.ArchiveContentCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return updateContentHandler.HandleArchive(ctx, archiveCmd)
		},
	})

	addCommentHandler := commands_handlers.NewAddCommentHandler(commentRepo, contentRepo, publisher, domainCfg, logger)
	commandBus.Register(commands.AddCommentCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			addCmd, ok := cmd.(commands.AddCommentCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			_, err := addCommentHandler.Handle(ctx, addCmd)
			return err
		},
	})

	deleteCommentHandler := commands_handlers.NewDeleteCommentHandler(commentRepo, publisher, logger)
	commandBus.Register(commands.DeleteCommentCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			deleteCmd, ok := cmd.(commands.DeleteCommentCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return deleteCommentHandler.Handle(ctx, deleteCmd)
		},
	})

	toggleReactionHandler := commands_handlers.NewToggleReactionHandler(reactionRepo, contentRepo, publisher, locker, domainCfg, logger)
	commandBus.Register(commands.ToggleReactionCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			toggleCmd, ok := cmd.(commands.ToggleReactionCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			_, err := toggleReactionHandler.Handle(ctx, toggleCmd)
			return err
		},
	})

	createEventHandler := commands_handlers.NewCreateEventHandler(eventRepo, publisher, logger)
	commandBus.Register(commands.CreateEventCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			createCmd, ok := cmd.(commands.CreateEventCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			_, err := createEventHandler.Handle(ctx, createCmd)
			return err
		},
	})

	visibilityHandler := commands_handlers.NewUpdateEventVisibilityHandler(eventRepo, publisher, logger)
	commandBus.Register(commands.UpdateEventVisibilityCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			visCmd, ok := cmd.(commands.UpdateEventVisibilityCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return visibilityHandler.Handle(ctx, visCmd)
		},
	})

	return commandBus
}

// QueryHandlerAdapter adapts specific query handlers to the generic interface
type QueryHandlerAdapter struct {
	handler func(context.Context, querybus.Query) (interface{}, error)
}

func (a *QueryHandlerAdapter) Handle(ctx context.Context, query querybus.Query) (interface{}, error) {
	return a.handler(ctx, query)
}

// ProvideQueryBus creates a query bus with registered handlers. When a
// cache and a positive TTL are supplied, the engagement snapshot query
// is served through the caching middleware; all other queries always hit
// storage.
func ProvideQueryBus(
	contentRepo ports.ContentRepository,
	commentRepo ports.CommentRepository,
	reactionRepo ports.ReactionRepository,
	eventRepo ports.EventRepository,
	publisher ports.EventPublisher,
	domainCfg *domainconfig.DomainConfig,
	cache querybus.Cache,
	snapshotCacheTTL SnapshotCacheTTL,
	logger *zap.Logger,
) *querybus.QueryBus {
	queryBus := querybus.NewQueryBus()

	snapshotHandler := queries_handlers.NewEngagementSnapshotHandler(contentRepo, commentRepo, reactionRepo, domainCfg, logger)
	var snapshotQueryHandler querybus.QueryHandler = &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			snapQuery, ok := query.(queries.GetEngagementSnapshotQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return snapshotHandler.Handle(ctx, snapQuery)
		},
	}
	if cache != nil && snapshotCacheTTL > 0 {
		snapshotQueryHandler = querybus.NewCachingMiddleware(cache, int(snapshotCacheTTL)).Wrap(snapshotQueryHandler)
	}
	queryBus.Register(queries.GetEngagementSnapshotQuery{}, snapshotQueryHandler)

	accessHandler := queries_handlers.NewEventAccessHandler(eventRepo, logger)
	queryBus.Register(queries.GetEventAccessQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			accessQuery, ok := query.(queries.GetEventAccessQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return accessHandler.Handle(ctx, accessQuery)
		},
	})

	verifyHandler := queries_handlers.NewVerifyGuestHandler(eventRepo, publisher, logger)
	queryBus.Register(queries.VerifyGuestAccessQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			verifyQuery, ok := query.(queries.VerifyGuestAccessQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return verifyHandler.Handle(ctx, verifyQuery)
		},
	})

	listHandler := queries_handlers.NewListContentHandler(contentRepo, logger)
	queryBus.Register(queries.ListContentQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			listQuery, ok := query.(queries.ListContentQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return listHandler.Handle(ctx, listQuery)
		},
	})

	getHandler := queries_handlers.NewGetContentHandler(contentRepo, commentRepo, reactionRepo, logger)
	queryBus.Register(queries.GetContentQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			getQuery, ok := query.(queries.GetContentQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getHandler.Handle(ctx, getQuery)
		},
	})

	return queryBus
}

// ProvideInMemoryCache creates a simple in-memory cache
// In production, this would be Redis or similar
func ProvideInMemoryCache() ports.Cache {
	return NewInMemoryCache()
}

// SnapshotCacheTTL is the engagement snapshot cache lifetime in seconds.
// Zero disables caching.
type SnapshotCacheTTL int

// ProvideSnapshotCacheTTL reads the snapshot cache lifetime from config
func ProvideSnapshotCacheTTL(cfg *config.Config) SnapshotCacheTTL {
	return SnapshotCacheTTL(cfg.SnapshotCacheTTL)
}

// ProvideQueryCache narrows the cache to the query-bus interface
func ProvideQueryCache(cache ports.Cache) querybus.Cache {
	return cache
}
