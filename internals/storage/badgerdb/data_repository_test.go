package badgerdb

import (
	"context"
	"testing"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/objectflow/ingester/internals/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openInMemory(t *testing.T) *badger.DB {
	t.Helper()
	options := badger.DefaultOptions("").WithInMemory(true)
	options.Logger = nil
	db, err := badger.Open(options)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInsertDocuments(t *testing.T) {
	db := openInMemory(t)
	repository := NewDataRepository(db)

	err := repository.InsertDocuments(context.Background(), "json_data", []models.Document{
		{ID: "doc-1", Source: map[string]interface{}{"name": "Alice"}},
		{Source: map[string]interface{}{"name": "Bob"}},
	})
	require.NoError(t, err)

	var keys int
	err = db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Prefix = []byte("json_data/")
		it := txn.NewIterator(options)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys++
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, keys)
}

func TestInsertDocumentsEmpty(t *testing.T) {
	db := openInMemory(t)
	repository := NewDataRepository(db)
	require.NoError(t, repository.InsertDocuments(context.Background(), "json_data", nil))
}
