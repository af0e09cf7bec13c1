// Package couchdb implements the data side of the storage gateway on CouchDB
// through the _bulk_docs endpoint.
package couchdb

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-retryablehttp"
	jsoniter "github.com/json-iterator/go"
	"github.com/objectflow/ingester/internals/models"
	"go.uber.org/zap"
)

// DataRepository posts document batches to {base}/{target_table}/_bulk_docs.
type DataRepository struct {
	client  *retryablehttp.Client
	baseURL string
}

// NewDataRepository returns a DataRepository over a CouchDB base URL.
func NewDataRepository(baseURL string) *DataRepository {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = nil // zap is the process logger
	return &DataRepository{client: client, baseURL: baseURL}
}

func (r *DataRepository) InsertDocuments(ctx context.Context, targetTable string, documents []models.Document) error {
	if len(documents) == 0 {
		return nil
	}

	docs := make([]map[string]interface{}, 0, len(documents))
	for _, document := range documents {
		docs = append(docs, document.Source)
	}
	body, err := jsoniter.Marshal(map[string]interface{}{"docs": docs})
	if err != nil {
		return errors.Wrap(err, "encode _bulk_docs body")
	}

	url := fmt.Sprintf("%s/%s/_bulk_docs", r.baseURL, targetTable)
	request, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return errors.Wrap(err, "build _bulk_docs request")
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := r.client.Do(request)
	if err != nil {
		return errors.Wrapf(err, "post _bulk_docs to %s", targetTable)
	}
	defer response.Body.Close()

	if response.StatusCode >= http.StatusMultipleChoices {
		return errors.Newf("post _bulk_docs to %s: status %d", targetTable, response.StatusCode)
	}

	zap.L().Info("Documents posted", zap.String("database", targetTable), zap.Int("count", len(documents)))
	return nil
}
