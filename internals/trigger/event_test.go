package trigger

import (
	"testing"
)

func TestDecodeEvent(t *testing.T) {
	body := `{"Records":[
		{"s3":{"bucket":{"name":"data-ingestion-bucket"},"object":{"key":"data/test.csv"}}},
		{"s3":{"bucket":{"name":"data-ingestion-bucket"},"object":{"key":"data/test.json"}}}
	]}`

	files, err := decodeEvent(body)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].Bucket != "data-ingestion-bucket" || files[0].Key != "data/test.csv" {
		t.Errorf("unexpected first file: %+v", files[0])
	}
	if files[1].Key != "data/test.json" {
		t.Errorf("unexpected second file: %+v", files[1])
	}
}

func TestDecodeEventSkipsIncompleteRecords(t *testing.T) {
	body := `{"Records":[
		{"s3":{"bucket":{"name":""},"object":{"key":"orphan.csv"}}},
		{"s3":{"bucket":{"name":"bucket"},"object":{"key":""}}},
		{"s3":{"bucket":{"name":"bucket"},"object":{"key":"kept.csv"}}}
	]}`

	files, err := decodeEvent(body)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if files[0].Key != "kept.csv" {
		t.Errorf("wrong record kept: %+v", files[0])
	}
}

func TestDecodeEventEmpty(t *testing.T) {
	files, err := decodeEvent(`{"Records":[]}`)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Errorf("expected no files, got %d", len(files))
	}
}

func TestDecodeEventMalformed(t *testing.T) {
	if _, err := decodeEvent(`{"Records":`); err == nil {
		t.Error("expected an error for a truncated body")
	}
}
