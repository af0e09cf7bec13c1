package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/cockroachdb/errors"
	"github.com/objectflow/ingester/internals/models"
	"go.uber.org/zap"
)

// DataRepository puts parsed documents into the target table, one item per
// document. Puts are independent: on failure the already-written prefix stays.
type DataRepository struct {
	client *dynamodb.Client
}

// NewDataRepository returns a DataRepository over a DynamoDB client.
func NewDataRepository(client *dynamodb.Client) *DataRepository {
	return &DataRepository{client: client}
}

func (r *DataRepository) InsertDocuments(ctx context.Context, targetTable string, documents []models.Document) error {
	for i, document := range documents {
		item, err := attributevalue.MarshalMap(document.Source)
		if err != nil {
			return errors.Wrapf(err, "encode document %d", i)
		}

		_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(targetTable),
			Item:      item,
		})
		if err != nil {
			return errors.Wrapf(err, "put document %d into %s", i, targetTable)
		}
	}

	zap.L().Info("Documents written", zap.String("table", targetTable), zap.Int("count", len(documents)))
	return nil
}
