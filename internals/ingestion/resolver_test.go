package ingestion

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/objectflow/ingester/internals/models"
	"github.com/objectflow/ingester/internals/storage"
)

func TestResolveSingleMatch(t *testing.T) {
	repository := storage.NewMemoryConfigRepository(
		models.Rule{Pattern: `^data/.*\.json$`, TargetTable: "json_data", ParserConfig: map[string]interface{}{"per_line": true}},
		models.Rule{Pattern: `^logs/.*\.txt$`, TargetTable: "log_data"},
	)
	resolver := NewRuleResolver(repository)

	rule, err := resolver.Resolve(context.Background(), "data/test.json")
	if err != nil {
		t.Fatal(err)
	}
	if rule.TargetTable != "json_data" {
		t.Errorf("wrong target table: got %v want %v", rule.TargetTable, "json_data")
	}
	if rule.Pattern != `^data/.*\.json$` {
		t.Errorf("pattern not passed through unchanged: %v", rule.Pattern)
	}
	if rule.ParserConfig["per_line"] != true {
		t.Errorf("parser config not passed through unchanged: %v", rule.ParserConfig)
	}
}

func TestResolveNoMatch(t *testing.T) {
	repository := storage.NewMemoryConfigRepository(
		models.Rule{Pattern: `^data/.*\.json$`, TargetTable: "json_data"},
	)
	resolver := NewRuleResolver(repository)

	rule, err := resolver.Resolve(context.Background(), "unmatched/file.dat")
	if err == nil {
		t.Fatalf("expected ErrNoRule, got rule %+v", rule)
	}
	if !errors.Is(err, ErrNoRule) {
		t.Errorf("expected ErrNoRule, got %v", err)
	}
	if errors.Is(err, ErrRepository) {
		t.Error("no-match must not be reported as a repository failure")
	}
}

func TestResolveEmptyRuleSet(t *testing.T) {
	resolver := NewRuleResolver(storage.NewMemoryConfigRepository())

	_, err := resolver.Resolve(context.Background(), "anything")
	if !errors.Is(err, ErrNoRule) {
		t.Errorf("expected ErrNoRule, got %v", err)
	}
}

func TestResolveMultipleMatchesDeterministic(t *testing.T) {
	repository := storage.NewMemoryConfigRepository(
		models.Rule{Pattern: `^data/`, TargetTable: "first_table"},
		models.Rule{Pattern: `\.json$`, TargetTable: "second_table"},
	)
	resolver := NewRuleResolver(repository)

	// First match in repository order wins, every time.
	for i := 0; i < 20; i++ {
		rule, err := resolver.Resolve(context.Background(), "data/test.json")
		if err != nil {
			t.Fatal(err)
		}
		if rule.TargetTable != "first_table" {
			t.Fatalf("iteration %d: got %v want first_table", i, rule.TargetTable)
		}
	}
}

func TestResolveFreshLookupPerCall(t *testing.T) {
	repository := storage.NewMemoryConfigRepository(
		models.Rule{Pattern: `^data/`, TargetTable: "data_table"},
	)
	resolver := NewRuleResolver(repository)

	for i := 0; i < 3; i++ {
		if _, err := resolver.Resolve(context.Background(), "data/x.csv"); err != nil {
			t.Fatal(err)
		}
	}
	if repository.ListCalls != 3 {
		t.Errorf("expected 3 lookups, got %d", repository.ListCalls)
	}
}

func TestResolveRepositoryFailure(t *testing.T) {
	repository := storage.NewMemoryConfigRepository()
	repository.Err = errors.New("connection refused")
	resolver := NewRuleResolver(repository)

	_, err := resolver.Resolve(context.Background(), "data/test.json")
	if !errors.Is(err, ErrRepository) {
		t.Errorf("expected ErrRepository, got %v", err)
	}
	if errors.Is(err, ErrNoRule) {
		t.Error("repository failure must not be reported as no-rule")
	}
}

func TestResolveInvalidPattern(t *testing.T) {
	repository := storage.NewMemoryConfigRepository(
		models.Rule{Pattern: `([`, TargetTable: "broken"},
	)
	resolver := NewRuleResolver(repository)

	_, err := resolver.Resolve(context.Background(), "data/test.json")
	if !errors.Is(err, ErrRepository) {
		t.Errorf("expected ErrRepository for an invalid pattern, got %v", err)
	}
}
