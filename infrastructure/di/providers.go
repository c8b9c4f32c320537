package di

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"

	"cinegraph-backend/application/commands"
	commandbus "cinegraph-backend/application/commands/bus"
	commandhandlers "cinegraph-backend/application/commands/handlers"
	"cinegraph-backend/application/ports"
	"cinegraph-backend/application/queries"
	querybus "cinegraph-backend/application/queries/bus"
	queryhandlers "cinegraph-backend/application/queries/handlers"
	"cinegraph-backend/application/services"
	"cinegraph-backend/infrastructure/config"
	"cinegraph-backend/infrastructure/messaging/eventbridge"
	"cinegraph-backend/infrastructure/persistence/dynamodb"
	"cinegraph-backend/pkg/auth"
	"cinegraph-backend/pkg/observability"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger, nil
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

// ProvideCatalogRepository creates the movie catalog repository
func ProvideCatalogRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.CatalogRepository {
	return dynamodb.NewMovieRepository(client, cfg.DynamoDBTable, cfg.IndexName, logger)
}

// ProvideUserRepository creates the user repository
func ProvideUserRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.UserRepository {
	return dynamodb.NewUserRepository(client, cfg.DynamoDBTable, logger)
}

// ProvidePreferenceRepository creates the preference edge repository
func ProvidePreferenceRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.PreferenceRepository {
	return dynamodb.NewPreferenceRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideFriendshipRepository creates the friendship edge repository
func ProvideFriendshipRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.FriendshipRepository {
	return dynamodb.NewFriendshipRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideEventPublisher creates the EventBridge event publisher
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates metrics instance
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config) *observability.Metrics {
	namespace := fmt.Sprintf("CineGraph/%s", cfg.Environment)
	return observability.NewMetrics(namespace, client)
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer("cinegraph-engine")
}

// ProvideRecommendationService creates the scoring pipeline service
func ProvideRecommendationService(
	catalogRepo ports.CatalogRepository,
	prefRepo ports.PreferenceRepository,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *services.RecommendationService {
	return services.NewRecommendationService(catalogRepo, prefRepo, tracer, logger)
}

// ProvideJWTValidator creates the JWT validator for the API layer.
// Development falls back to a local-only secret; production requires
// JWT_SECRET via config validation.
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	secret := cfg.JWTSecret
	if secret == "" && !cfg.IsProduction() {
		secret = "local-development-secret"
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     secret,
		Issuer:        cfg.JWTIssuer,
	})
}

// ProvideIPRateLimiter creates the per-IP rate limiter
func ProvideIPRateLimiter(cfg *config.Config) *auth.IPRateLimiter {
	return auth.NewIPRateLimiter(cfg.ReadRequestsPerMinute)
}

// ProvideUserRateLimiter creates the per-user write rate limiter
func ProvideUserRateLimiter(cfg *config.Config) *auth.UserRateLimiter {
	return auth.NewUserRateLimiter(cfg.WriteRequestsPerMinute)
}

// zapLoggerAdapter adapts zap to the command bus Logger interface
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Sugar().Infow(msg, keysAndValues...)
}

func (a *zapLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.logger.Sugar().Errorw(msg, keysAndValues...)
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	userRepo ports.UserRepository,
	catalogRepo ports.CatalogRepository,
	prefRepo ports.PreferenceRepository,
	friendRepo ports.FriendshipRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) (*commandbus.CommandBus, error) {
	cb := commandbus.NewCommandBus()
	pipeline := commandbus.NewPipeline(
		commandbus.LoggingMiddleware(&zapLoggerAdapter{logger}),
	)

	prefHandler := commandhandlers.NewSetPreferenceHandler(userRepo, catalogRepo, prefRepo, publisher, logger)
	if err := cb.Register(commands.SetPreferenceCommand{}, pipeline.Execute(prefHandler)); err != nil {
		return nil, err
	}

	clearHandler := commandhandlers.NewClearPreferenceHandler(userRepo, prefRepo, logger)
	if err := cb.Register(commands.ClearPreferenceCommand{}, pipeline.Execute(clearHandler)); err != nil {
		return nil, err
	}

	friendHandler := commandhandlers.NewFriendshipHandler(userRepo, friendRepo, publisher, logger)
	if err := cb.Register(commands.AddFriendCommand{}, pipeline.Execute(friendHandler)); err != nil {
		return nil, err
	}
	if err := cb.Register(commands.RemoveFriendCommand{}, pipeline.Execute(friendHandler)); err != nil {
		return nil, err
	}

	return cb, nil
}

// metricsAdapter bridges the CloudWatch metrics type to the query bus
// Metrics interface, whose StartTimer returns the bus-local Timer type.
type metricsAdapter struct {
	m *observability.Metrics
}

func (a *metricsAdapter) StartTimer(metric, label string) querybus.Timer {
	return a.m.StartTimer(metric, label)
}

func (a *metricsAdapter) Increment(metric, label string) {
	a.m.Increment(metric, label)
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	recService *services.RecommendationService,
	catalogRepo ports.CatalogRepository,
	prefRepo ports.PreferenceRepository,
	friendRepo ports.FriendshipRepository,
	metrics *observability.Metrics,
	cfg *config.Config,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	qb := querybus.NewQueryBus()

	wrap := func(h querybus.QueryHandler) querybus.QueryHandler {
		if !cfg.EnableMetrics {
			return h
		}
		return querybus.NewMetricsMiddleware(&metricsAdapter{metrics}).Wrap(h)
	}

	registrations := []struct {
		query   querybus.Query
		handler querybus.QueryHandler
	}{
		{queries.GetRecommendationsQuery{}, queryhandlers.NewGetRecommendationsHandler(recService, logger)},
		{queries.GetHomepageFeedQuery{}, queryhandlers.NewGetHomepageFeedHandler(recService, logger)},
		{queries.GetPreferenceStatusQuery{}, queryhandlers.NewGetPreferenceStatusHandler(catalogRepo, prefRepo, logger)},
		{queries.GetUserStatsQuery{}, queryhandlers.NewGetUserStatsHandler(prefRepo, friendRepo, logger)},
		{queries.ListJudgedMoviesQuery{}, queryhandlers.NewListJudgedMoviesHandler(catalogRepo, prefRepo, logger)},
		{queries.ListFriendsQuery{}, queryhandlers.NewListFriendsHandler(friendRepo, logger)},
		{queries.ListMoviesQuery{}, queryhandlers.NewListMoviesHandler(catalogRepo, logger)},
		{queries.ListGenresQuery{}, queryhandlers.NewListGenresHandler(catalogRepo, logger)},
	}

	for _, reg := range registrations {
		if err := qb.Register(reg.query, wrap(reg.handler)); err != nil {
			return nil, err
		}
	}

	return qb, nil
}
