package di

import (
	"context"
	"fmt"
	"time"

	"wordless-backend/application/ports"
	"wordless-backend/application/queries"
	"wordless-backend/application/queries/bus"
	queryhandlers "wordless-backend/application/queries/handlers"
	"wordless-backend/infrastructure/config"
	dynamostore "wordless-backend/infrastructure/persistence/dynamodb"
	mysqlstore "wordless-backend/infrastructure/persistence/mysql"
	"wordless-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	DB       *gorm.DB
	DynamoDB *awsdynamodb.Client
	Ledger   ports.EmoteLedger
	Profiles ports.ProfileStore
	Tallies  ports.ReactionTallyStore
	Metrics  *observability.Metrics
	Tracer   *observability.Tracer
	QueryBus *bus.QueryBus
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration. With tracing enabled every AWS
// SDK call is instrumented as an X-Ray subsegment.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, err
	}

	if cfg.EnableTracing {
		awsv2.AWSV2Instrumentor(&awsCfg.APIOptions)
	}

	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideGormDB opens the emote ledger connection pool. The pool is owned
// here and injected into adapters; nothing else opens connections.
func ProvideGormDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                      cfg.DSN(),
		DefaultStringSize:        256,
		DisableDatetimePrecision: true,
	}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// Lambda containers handle one request at a time; keep the pool small.
	sqlDB.SetMaxOpenConns(2)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// ProvideEmoteLedger creates the ledger store adapter
func ProvideEmoteLedger(db *gorm.DB, logger *zap.Logger) ports.EmoteLedger {
	return mysqlstore.NewEmoteLedger(db, logger)
}

// ProvideProfileStore creates the author profile store adapter
func ProvideProfileStore(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ProfileStore {
	return dynamostore.NewProfileStore(client, cfg.UsersTable, logger)
}

// ProvideReactionTallyStore creates the reaction tally store adapter
func ProvideReactionTallyStore(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ReactionTallyStore {
	return dynamostore.NewReactionTallyStore(client, cfg.EmoteReactionTable, logger)
}

// ProvideMetrics creates the metrics instance, or nil when metrics are disabled
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config) *observability.Metrics {
	if !cfg.EnableMetrics {
		return nil
	}
	namespace := fmt.Sprintf("Wordless/%s", cfg.Environment)
	return observability.NewMetrics(namespace, client)
}

// ProvideTracer creates the tracer, or nil when tracing is disabled
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	if !cfg.EnableTracing {
		return nil
	}
	return observability.NewTracer("wordless-backend")
}

// ProvideQueryBus creates the query bus with the feed handler registered
func ProvideQueryBus(
	cfg *config.Config,
	ledger ports.EmoteLedger,
	profiles ports.ProfileStore,
	tallies ports.ReactionTallyStore,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	logger *zap.Logger,
) (*bus.QueryBus, error) {
	feedHandler := queryhandlers.NewGetFeedHandler(
		ledger,
		profiles,
		tallies,
		cfg.StoreTimeout,
		tracer,
		logger,
	)

	var handler bus.QueryHandler = bus.QueryHandlerFunc(func(ctx context.Context, q bus.Query) (interface{}, error) {
		feedQuery, ok := q.(queries.GetFeedQuery)
		if !ok {
			return nil, fmt.Errorf("unexpected query type %T", q)
		}
		return feedHandler.Handle(ctx, feedQuery)
	})

	if metrics != nil {
		handler = bus.NewMetricsMiddleware(busMetricsAdapter{metrics: metrics}).Wrap(handler)
	}

	queryBus := bus.NewQueryBus()
	if err := queryBus.Register(queries.GetFeedQuery{}, handler); err != nil {
		return nil, err
	}

	return queryBus, nil
}

// busMetricsAdapter adapts observability.Metrics to the query bus Metrics interface
type busMetricsAdapter struct {
	metrics *observability.Metrics
}

func (a busMetricsAdapter) StartTimer(metric, label string) bus.Timer {
	return a.metrics.StartTimer(metric, label)
}

func (a busMetricsAdapter) Increment(metric, label string) {
	a.metrics.Increment(metric, label)
}
