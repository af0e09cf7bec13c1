package mongodb

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/objectflow/ingester/internals/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// DataRepository inserts parsed documents into per-target collections.
type DataRepository struct {
	client   *mongo.Client
	database string
}

// NewDataRepository returns a DataRepository bound to a database.
func NewDataRepository(client *mongo.Client, database string) *DataRepository {
	return &DataRepository{client: client, database: database}
}

// InsertDocuments writes the whole sequence with an ordered InsertMany; on
// failure a prefix of the sequence may already be persisted.
func (r *DataRepository) InsertDocuments(ctx context.Context, targetTable string, documents []models.Document) error {
	if len(documents) == 0 {
		zap.L().Info("No documents to insert", zap.String("collection", targetTable))
		return nil
	}

	docs := make([]interface{}, 0, len(documents))
	for _, document := range documents {
		docs = append(docs, document.Source)
	}

	collection := r.client.Database(r.database).Collection(targetTable)
	result, err := collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		return errors.Wrapf(err, "insert into %s.%s", r.database, targetTable)
	}

	zap.L().Info("Documents inserted",
		zap.String("collection", targetTable), zap.Int("count", len(result.InsertedIDs)))
	return nil
}
