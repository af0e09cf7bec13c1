// Package storage defines the two capability contracts of the storage gateway.
// Backends are interchangeable behind these interfaces; no backend type crosses
// the boundary. Implementations must be safe under concurrent invocation.
package storage

import (
	"context"

	"github.com/objectflow/ingester/internals/models"
)

// ConfigRepository is the read side of the gateway: it serves ingestion rules.
// ListRules must return rules in a stable order across calls for an unchanged
// rule set; the resolver's first-match tie-break depends on it.
type ConfigRepository interface {
	ListRules(ctx context.Context) ([]models.Rule, error)
}

// DataRepository is the write side of the gateway. InsertDocuments is
// all-or-nothing from the caller's perspective: on a reported failure an
// unspecified prefix of documents may have been persisted, depending on the
// backend's transactional guarantees.
type DataRepository interface {
	InsertDocuments(ctx context.Context, targetTable string, documents []models.Document) error
}
