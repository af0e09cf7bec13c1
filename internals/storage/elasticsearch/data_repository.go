// Package elasticsearch implements the data side of the storage gateway on
// Elasticsearch: each target table is an index, each document a bulk-indexed
// entry.
package elasticsearch

import (
	"bytes"
	"context"

	"github.com/cockroachdb/errors"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/objectflow/ingester/internals/models"
	"go.uber.org/zap"
)

// NewClient builds an Elasticsearch client from addresses and optional basic auth.
func NewClient(urls []string, username, password string) (*elasticsearch.Client, error) {
	esConfig := elasticsearch.Config{Addresses: urls}
	if username != "" {
		zap.L().Warn("Elasticsearch authentication enabled", zap.String("username", username))
		esConfig.Username = username
		esConfig.Password = password
	}
	client, err := elasticsearch.NewClient(esConfig)
	if err != nil {
		return nil, errors.Wrap(err, "build elasticsearch client")
	}
	return client, nil
}

// DataRepository bulk-indexes documents into the target index.
type DataRepository struct {
	client *elasticsearch.Client
}

// NewDataRepository returns a DataRepository over an Elasticsearch client.
func NewDataRepository(client *elasticsearch.Client) *DataRepository {
	return &DataRepository{client: client}
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		Status int `json:"status"`
		Error  *struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	} `json:"items"`
}

// InsertDocuments issues one _bulk request for the whole sequence. Documents
// without an ID get a generated one; Elasticsearch applies bulk items
// independently, so on failure a prefix may already be indexed.
func (r *DataRepository) InsertDocuments(ctx context.Context, targetTable string, documents []models.Document) error {
	if len(documents) == 0 {
		return nil
	}

	var body bytes.Buffer
	for _, document := range documents {
		id := document.ID
		if id == "" {
			id = uuid.New().String()
		}
		meta, err := jsoniter.Marshal(map[string]interface{}{
			"index": map[string]interface{}{"_index": targetTable, "_id": id},
		})
		if err != nil {
			return errors.Wrap(err, "encode bulk action")
		}
		source, err := jsoniter.Marshal(document.Source)
		if err != nil {
			return errors.Wrap(err, "encode document")
		}
		body.Write(meta)
		body.WriteByte('\n')
		body.Write(source)
		body.WriteByte('\n')
	}

	res, err := r.client.Bulk(bytes.NewReader(body.Bytes()), r.client.Bulk.WithContext(ctx))
	if err != nil {
		return errors.Wrapf(err, "bulk index into %s", targetTable)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.Newf("bulk index into %s: %s", targetTable, res.String())
	}

	var response bulkResponse
	if err := jsoniter.NewDecoder(res.Body).Decode(&response); err != nil {
		return errors.Wrap(err, "decode bulk response")
	}
	if response.Errors {
		for _, item := range response.Items {
			for _, status := range item {
				if status.Error != nil {
					return errors.Newf("bulk index into %s: %s: %s",
						targetTable, status.Error.Type, status.Error.Reason)
				}
			}
		}
		return errors.Newf("bulk index into %s reported item failures", targetTable)
	}

	zap.L().Info("Documents indexed", zap.String("index", targetTable), zap.Int("count", len(documents)))
	return nil
}
