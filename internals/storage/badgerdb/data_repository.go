// Package badgerdb implements the data side of the storage gateway on an
// embedded Badger store. Keys are "{target_table}/{id}"; values are the
// JSON-encoded document source. A whole sequence goes in one transaction, so
// this backend is the only truly atomic insert.
package badgerdb

import (
	"context"

	"github.com/cockroachdb/errors"
	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/objectflow/ingester/internals/models"
	"go.uber.org/zap"
)

// Open opens the Badger database at path.
func Open(path string) (*badger.DB, error) {
	options := badger.DefaultOptions(path)
	options.Logger = nil // zap is the process logger
	db, err := badger.Open(options)
	if err != nil {
		return nil, errors.Wrapf(err, "open badger at %s", path)
	}
	return db, nil
}

// DataRepository stores documents in an embedded Badger database.
type DataRepository struct {
	db *badger.DB
}

// NewDataRepository returns a DataRepository over an open Badger database.
func NewDataRepository(db *badger.DB) *DataRepository {
	return &DataRepository{db: db}
}

func (r *DataRepository) InsertDocuments(ctx context.Context, targetTable string, documents []models.Document) error {
	if len(documents) == 0 {
		return nil
	}

	err := r.db.Update(func(txn *badger.Txn) error {
		for i, document := range documents {
			id := document.ID
			if id == "" {
				id = uuid.New().String()
			}
			value, err := jsoniter.Marshal(document.Source)
			if err != nil {
				return errors.Wrapf(err, "encode document %d", i)
			}
			if err := txn.Set([]byte(targetTable+"/"+id), value); err != nil {
				return errors.Wrapf(err, "set document %d", i)
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "insert into %s", targetTable)
	}

	zap.L().Info("Documents stored", zap.String("table", targetTable), zap.Int("count", len(documents)))
	return nil
}
