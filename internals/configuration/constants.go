package configuration

import (
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// ConfigPath is the toml configuration file path
var ConfigPath = "config"

// ConfigName is the toml configuration file name
var ConfigName = "ingester"

// EnvPrefix is the standard environment variable prefix
var EnvPrefix = "OBJECTFLOW"

// ConfigKey declares one allowed configuration key with its default value
type ConfigKey struct {
	Name         string
	DefaultValue interface{}
	Description  string
}

// AllowedConfigKey list every allowed configuration key
var AllowedConfigKey = []ConfigKey{
	{Name: "DEBUG_MODE", DefaultValue: false, Description: "Enable debug mode"},
	{Name: "LOGGER_PRODUCTION", DefaultValue: true, Description: "Enable or disable production log"},

	{Name: "HTTP_SERVER_PORT", DefaultValue: 9001, Description: "Server port"},
	{Name: "HTTP_SERVER_ENABLE_TLS", DefaultValue: false, Description: "Run the server in secured mode (with TLS)"},
	{Name: "HTTP_SERVER_TLS_FILE_CRT", DefaultValue: "certs/server.rsa.crt", Description: "TLS certificate crt file location"},
	{Name: "HTTP_SERVER_TLS_FILE_KEY", DefaultValue: "certs/server.rsa.key", Description: "TLS certificate key file location"},

	{Name: "CONFIG_DATABASE_TYPE", DefaultValue: "mongodb", Description: "Backend holding ingestion rules (mongodb, dynamodb, memory)"},
	{Name: "DATABASE_TYPE", DefaultValue: "mongodb", Description: "Backend receiving parsed documents (mongodb, elasticsearch, dynamodb, couchdb, badger, memory)"},

	{Name: "MONGODB_URI", DefaultValue: "mongodb://localhost:27017", Description: "MongoDB connection URI"},
	{Name: "MONGODB_DATABASE", DefaultValue: "ingestion_db", Description: "MongoDB database name"},
	{Name: "ELASTICSEARCH_URLS", DefaultValue: []string{"http://localhost:9200"}, Description: "Elasticsearch URLS"},
	{Name: "ELASTICSEARCH_AUTH", DefaultValue: false, Description: "Enable Elasticsearch basic authentication"},
	{Name: "ELASTICSEARCH_USERNAME", DefaultValue: "", Description: "Elasticsearch username"},
	{Name: "ELASTICSEARCH_PASSWORD", DefaultValue: "", Description: "Elasticsearch password"},
	{Name: "DYNAMODB_CONFIG_TABLE", DefaultValue: "ingestion_config", Description: "DynamoDB table holding ingestion rules"},
	{Name: "COUCHDB_URL", DefaultValue: "http://localhost:5984", Description: "CouchDB base URL"},
	{Name: "BADGER_PATH", DefaultValue: "data/badger", Description: "Badger database directory"},

	{Name: "OBJECT_STORE_TYPE", DefaultValue: "s3", Description: "Object store serving file bytes (s3, fs, memory)"},
	{Name: "OBJECT_STORE_FS_ROOT", DefaultValue: "data/objects", Description: "Root directory of the filesystem object store"},
	{Name: "AWS_ENDPOINT_URL", DefaultValue: "", Description: "Custom AWS endpoint (LocalStack support)"},

	{Name: "SQS_ENABLED", DefaultValue: false, Description: "Enable the SQS notification poller"},
	{Name: "SQS_QUEUE_URL", DefaultValue: "", Description: "SQS queue delivering storage-object notifications"},
	{Name: "INGESTER_MAXIMUM_WORKERS", DefaultValue: 2, Description: "Maximum parallel ingestion attempts"},
}

// InitializeConfig declares every allowed key with its default value, binds
// environment variables with the EnvPrefix and reads the optional toml file.
func InitializeConfig() {
	for _, key := range AllowedConfigKey {
		viper.SetDefault(key.Name, key.DefaultValue)
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(ConfigName)
	viper.AddConfigPath(ConfigPath)
	if err := viper.ReadInConfig(); err != nil {
		zap.L().Info("No configuration file found, using defaults and environment",
			zap.String("path", ConfigPath), zap.String("name", ConfigName))
	}
}
