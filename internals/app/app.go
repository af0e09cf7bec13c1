// Package app wires configured backends into a runnable ingestion service.
package app

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/cockroachdb/errors"
	"github.com/objectflow/ingester/internals/fetcher"
	"github.com/objectflow/ingester/internals/ingestion"
	"github.com/objectflow/ingester/internals/storage"
	"github.com/objectflow/ingester/internals/storage/badgerdb"
	"github.com/objectflow/ingester/internals/storage/couchdb"
	dynamodbstore "github.com/objectflow/ingester/internals/storage/dynamodb"
	esstore "github.com/objectflow/ingester/internals/storage/elasticsearch"
	mongostore "github.com/objectflow/ingester/internals/storage/mongodb"
	"github.com/objectflow/ingester/internals/trigger"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.mongodb.org/mongo-driver/mongo"
)

// Services holds the wired components of a running instance and their
// teardown hooks.
type Services struct {
	Orchestrator *ingestion.Orchestrator
	Poller       *trigger.Poller

	closers []func(context.Context) error
}

// New reads the active configuration and builds the service graph. Backend
// selection happens here and only here; everything downstream sees the ports.
func New(ctx context.Context) (*Services, error) {
	services := &Services{}

	var awsConfig *awssdk.Config
	needsAWS := viper.GetString("CONFIG_DATABASE_TYPE") == "dynamodb" ||
		viper.GetString("DATABASE_TYPE") == "dynamodb" ||
		viper.GetString("OBJECT_STORE_TYPE") == "s3" ||
		viper.GetBool("SQS_ENABLED")
	if needsAWS {
		cfg, err := loadAWSConfig(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "load AWS configuration")
		}
		awsConfig = cfg
	}

	var mongoClient *mongo.Client
	mongoFor := func() (*mongo.Client, error) {
		if mongoClient != nil {
			return mongoClient, nil
		}
		client, err := mongostore.NewClient(ctx, viper.GetString("MONGODB_URI"))
		if err != nil {
			return nil, err
		}
		mongoClient = client
		services.closers = append(services.closers, client.Disconnect)
		return client, nil
	}

	configRepository, err := services.buildConfigRepository(mongoFor, awsConfig)
	if err != nil {
		return nil, err
	}
	dataRepository, err := services.buildDataRepository(mongoFor, awsConfig)
	if err != nil {
		return nil, err
	}
	fileFetcher, err := buildFileFetcher(awsConfig)
	if err != nil {
		return nil, err
	}

	services.Orchestrator = ingestion.NewOrchestrator(configRepository, fileFetcher, dataRepository)

	if viper.GetBool("SQS_ENABLED") {
		queueURL := viper.GetString("SQS_QUEUE_URL")
		if queueURL == "" {
			return nil, errors.New("SQS_ENABLED requires SQS_QUEUE_URL")
		}
		poller, err := trigger.NewPoller(sqs.NewFromConfig(*awsConfig), queueURL,
			services.Orchestrator, viper.GetInt("INGESTER_MAXIMUM_WORKERS"))
		if err != nil {
			return nil, errors.Wrap(err, "build SQS poller")
		}
		services.Poller = poller
	}

	return services, nil
}

// Close tears down the service graph in reverse construction order.
func (s *Services) Close(ctx context.Context) {
	if s.Poller != nil {
		s.Poller.Close()
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			zap.L().Warn("Close service", zap.Error(err))
		}
	}
}

func (s *Services) buildConfigRepository(mongoFor func() (*mongo.Client, error), awsConfig *awssdk.Config) (storage.ConfigRepository, error) {
	backend := viper.GetString("CONFIG_DATABASE_TYPE")
	zap.L().Info("Initialize config repository", zap.String("backend", backend))

	switch backend {
	case "mongodb":
		client, err := mongoFor()
		if err != nil {
			return nil, errors.Wrap(err, "connect MongoDB")
		}
		return mongostore.NewConfigRepository(client, viper.GetString("MONGODB_DATABASE")), nil
	case "dynamodb":
		return dynamodbstore.NewConfigRepository(dynamodb.NewFromConfig(*awsConfig),
			viper.GetString("DYNAMODB_CONFIG_TABLE")), nil
	case "memory":
		return storage.NewMemoryConfigRepository(), nil
	default:
		return nil, errors.Newf("unsupported CONFIG_DATABASE_TYPE %q", backend)
	}
}

func (s *Services) buildDataRepository(mongoFor func() (*mongo.Client, error), awsConfig *awssdk.Config) (storage.DataRepository, error) {
	backend := viper.GetString("DATABASE_TYPE")
	zap.L().Info("Initialize data repository", zap.String("backend", backend))

	switch backend {
	case "mongodb":
		client, err := mongoFor()
		if err != nil {
			return nil, errors.Wrap(err, "connect MongoDB")
		}
		return mongostore.NewDataRepository(client, viper.GetString("MONGODB_DATABASE")), nil
	case "elasticsearch":
		client, err := esstore.NewClient(viper.GetStringSlice("ELASTICSEARCH_URLS"),
			viper.GetString("ELASTICSEARCH_USERNAME"), viper.GetString("ELASTICSEARCH_PASSWORD"))
		if err != nil {
			return nil, errors.Wrap(err, "connect Elasticsearch")
		}
		return esstore.NewDataRepository(client), nil
	case "dynamodb":
		return dynamodbstore.NewDataRepository(dynamodb.NewFromConfig(*awsConfig)), nil
	case "couchdb":
		return couchdb.NewDataRepository(viper.GetString("COUCHDB_URL")), nil
	case "badger":
		db, err := badgerdb.Open(viper.GetString("BADGER_PATH"))
		if err != nil {
			return nil, errors.Wrap(err, "open badger store")
		}
		s.closers = append(s.closers, func(context.Context) error { return db.Close() })
		return badgerdb.NewDataRepository(db), nil
	case "memory":
		return storage.NewMemoryDataRepository(), nil
	default:
		return nil, errors.Newf("unsupported DATABASE_TYPE %q", backend)
	}
}

func buildFileFetcher(awsConfig *awssdk.Config) (fetcher.FileFetcher, error) {
	backend := viper.GetString("OBJECT_STORE_TYPE")
	zap.L().Info("Initialize object store", zap.String("backend", backend))

	switch backend {
	case "s3":
		client := s3.NewFromConfig(*awsConfig, func(o *s3.Options) {
			// Path-style addressing: virtual-host bucket URLs do not resolve
			// against local S3 emulators.
			if viper.GetString("AWS_ENDPOINT_URL") != "" {
				o.UsePathStyle = true
			}
		})
		return fetcher.NewS3Fetcher(client), nil
	case "fs":
		return fetcher.NewFsFetcher(viper.GetString("OBJECT_STORE_FS_ROOT")), nil
	case "memory":
		return fetcher.NewMemoryFetcher(), nil
	default:
		return nil, errors.Newf("unsupported OBJECT_STORE_TYPE %q", backend)
	}
}

func loadAWSConfig(ctx context.Context) (*awssdk.Config, error) {
	var options []func(*awsconfig.LoadOptions) error
	if endpoint := viper.GetString("AWS_ENDPOINT_URL"); endpoint != "" {
		options = append(options, awsconfig.WithBaseEndpoint(endpoint))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
