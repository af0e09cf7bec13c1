package parser

import (
	"bufio"
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/objectflow/ingester/internals/models"
)

func init() {
	Register("txt", parseText)
	Register("log", parseText)
}

// parseText converts free text. By default the whole file becomes one document
// with a single "text" field; the per_line policy switches to one document per line.
func parseText(data []byte, policy Policy) ([]models.Document, error) {
	if !policy.PerLine {
		return []models.Document{{Source: map[string]interface{}{"text": string(data)}}}, nil
	}

	documents := make([]models.Document, 0)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		documents = append(documents, models.Document{Source: map[string]interface{}{"text": scanner.Text()}})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scan lines")
	}
	return documents, nil
}
