package mongodb

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/objectflow/ingester/internals/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ConfigRepository serves ingestion rules from the ingestion_config collection.
type ConfigRepository struct {
	collection *mongo.Collection
}

// NewConfigRepository returns a ConfigRepository bound to a database.
func NewConfigRepository(client *mongo.Client, database string) *ConfigRepository {
	return &ConfigRepository{
		collection: client.Database(database).Collection(configCollection),
	}
}

// ListRules returns every rule, sorted by _id so the resolver's first-match
// tie-break is stable across calls.
func (r *ConfigRepository) ListRules(ctx context.Context) ([]models.Rule, error) {
	cursor, err := r.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "query ingestion_config")
	}
	defer cursor.Close(ctx)

	var rules []models.Rule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, errors.Wrap(err, "decode ingestion rules")
	}

	zap.L().Debug("Loaded ingestion rules", zap.Int("count", len(rules)))
	return rules, nil
}
