package storage

import (
	"context"
	"sync"

	"github.com/objectflow/ingester/internals/models"
)

// MemoryConfigRepository serves rules from memory in insertion order.
// It doubles as the "memory" backend and as the test double for the resolver.
type MemoryConfigRepository struct {
	mu    sync.RWMutex
	rules []models.Rule

	// Err, when set, is returned by every call. Test hook for repository failures.
	Err error

	ListCalls int
}

// NewMemoryConfigRepository returns a repository pre-loaded with rules.
func NewMemoryConfigRepository(rules ...models.Rule) *MemoryConfigRepository {
	return &MemoryConfigRepository{rules: rules}
}

// AddRule appends a rule; it matches after every rule added before it.
func (r *MemoryConfigRepository) AddRule(rule models.Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, rule)
}

func (r *MemoryConfigRepository) ListRules(ctx context.Context) ([]models.Rule, error) {
	r.mu.Lock()
	r.ListCalls++
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	rules := make([]models.Rule, len(r.rules))
	copy(rules, r.rules)
	return rules, nil
}

// MemoryDataRepository collects inserted documents per table, in insertion order.
type MemoryDataRepository struct {
	mu     sync.RWMutex
	tables map[string][]models.Document

	// Err, when set, is returned by every insert. Test hook for store failures.
	Err error

	InsertCalls int
}

// NewMemoryDataRepository returns an empty in-memory data repository.
func NewMemoryDataRepository() *MemoryDataRepository {
	return &MemoryDataRepository{tables: make(map[string][]models.Document)}
}

func (r *MemoryDataRepository) InsertDocuments(ctx context.Context, targetTable string, documents []models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.InsertCalls++
	if r.Err != nil {
		return r.Err
	}
	r.tables[targetTable] = append(r.tables[targetTable], documents...)
	return nil
}

// Documents returns the documents stored in a table, in insertion order.
func (r *MemoryDataRepository) Documents(targetTable string) []models.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()
	documents := make([]models.Document, len(r.tables[targetTable]))
	copy(documents, r.tables[targetTable])
	return documents
}
