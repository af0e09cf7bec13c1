package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/objectflow/ingester/internals/fetcher"
	"github.com/objectflow/ingester/internals/ingestion"
	"github.com/objectflow/ingester/internals/models"
	"github.com/objectflow/ingester/internals/storage"
)

func buildHandler(configRepository *storage.MemoryConfigRepository, fileFetcher *fetcher.MemoryFetcher,
	dataRepository *storage.MemoryDataRepository) *IngesterHandler {
	return NewIngesterHandler(ingestion.NewOrchestrator(configRepository, fileFetcher, dataRepository))
}

func TestReceiveFile(t *testing.T) {
	configRepository := storage.NewMemoryConfigRepository(
		models.Rule{Pattern: `\.csv$`, TargetTable: "csv_data"},
	)
	fileFetcher := fetcher.NewMemoryFetcher()
	fileFetcher.PutObject("bucket", "data/test.csv", []byte("name,age\nJohn,30\n"))
	dataRepository := storage.NewMemoryDataRepository()
	handler := buildHandler(configRepository, fileFetcher, dataRepository)

	req := httptest.NewRequest("POST", "/ingester/file",
		strings.NewReader(`{"bucket":"bucket","key":"data/test.csv"}`))
	w := httptest.NewRecorder()
	handler.ReceiveFile(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d (%s)", w.Code, http.StatusOK, w.Body.String())
	}
	var response map[string]interface{}
	if err := jsoniter.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatal(err)
	}
	if response["state"] != "Stored" {
		t.Errorf("state: got %v want Stored", response["state"])
	}
	if response["target_table"] != "csv_data" {
		t.Errorf("target_table: got %v", response["target_table"])
	}
	if len(dataRepository.Documents("csv_data")) != 1 {
		t.Errorf("expected 1 stored document")
	}
}

func TestReceiveFileBadPayload(t *testing.T) {
	handler := buildHandler(storage.NewMemoryConfigRepository(), fetcher.NewMemoryFetcher(), storage.NewMemoryDataRepository())

	cases := []string{
		`{"bucket":`,
		`{"bucket":"","key":"data/test.csv"}`,
		`{"bucket":"bucket","key":""}`,
	}
	for _, body := range cases {
		req := httptest.NewRequest("POST", "/ingester/file", strings.NewReader(body))
		w := httptest.NewRecorder()
		handler.ReceiveFile(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: got %d want %d", body, w.Code, http.StatusBadRequest)
		}
	}
}

func TestReceiveFileStatusMapping(t *testing.T) {
	configRepository := storage.NewMemoryConfigRepository(
		models.Rule{Pattern: `\.csv$`, TargetTable: "csv_data"},
		models.Rule{Pattern: `\.json$`, TargetTable: "json_data"},
	)
	fileFetcher := fetcher.NewMemoryFetcher()
	fileFetcher.PutObject("bucket", "data/broken.json", []byte(`[{"name":`))
	dataRepository := storage.NewMemoryDataRepository()
	handler := buildHandler(configRepository, fileFetcher, dataRepository)

	cases := []struct {
		body   string
		status int
	}{
		{`{"bucket":"bucket","key":"unmatched/file.dat"}`, http.StatusNotFound},
		{`{"bucket":"bucket","key":"data/broken.json"}`, http.StatusUnprocessableEntity},
		{`{"bucket":"bucket","key":"missing.csv"}`, http.StatusBadGateway},
	}
	for _, c := range cases {
		req := httptest.NewRequest("POST", "/ingester/file", strings.NewReader(c.body))
		w := httptest.NewRecorder()
		handler.ReceiveFile(w, req)
		if w.Code != c.status {
			t.Errorf("body %q: got %d want %d", c.body, w.Code, c.status)
		}
	}
}

func TestReceiveFileStoreFailure(t *testing.T) {
	configRepository := storage.NewMemoryConfigRepository(
		models.Rule{Pattern: `\.csv$`, TargetTable: "csv_data"},
	)
	fileFetcher := fetcher.NewMemoryFetcher()
	fileFetcher.PutObject("bucket", "data/test.csv", []byte("a,b\n1,2\n"))
	dataRepository := storage.NewMemoryDataRepository()
	dataRepository.Err = errors.New("write rejected")
	handler := buildHandler(configRepository, fileFetcher, dataRepository)

	req := httptest.NewRequest("POST", "/ingester/file",
		strings.NewReader(`{"bucket":"bucket","key":"data/test.csv"}`))
	w := httptest.NewRecorder()
	handler.ReceiveFile(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("status: got %d want %d", w.Code, http.StatusBadGateway)
	}
}

func TestIsAlive(t *testing.T) {
	req := httptest.NewRequest("GET", "/isalive", nil)
	w := httptest.NewRecorder()
	IsAlive(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status: got %d want %d", w.Code, http.StatusOK)
	}
	if w.Body.String() != `{"alive": true}` {
		t.Errorf("body: got %q", w.Body.String())
	}
}
