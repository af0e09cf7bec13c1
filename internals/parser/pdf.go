package parser

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/ledongthuc/pdf"
	"github.com/objectflow/ingester/internals/models"
)

func init() {
	Register("pdf", parsePDF)
}

// parsePDF extracts the plain text of a document-format file into one document
// with a single "text" field. Extraction is lossy by contract; extraction
// failure is an error, never empty output.
func parsePDF(data []byte, _ Policy) (documents []models.Document, err error) {
	// The pdf reader panics on some malformed files instead of returning an error.
	defer func() {
		if r := recover(); r != nil {
			documents = nil
			err = errors.Newf("corrupt pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrap(err, "open pdf")
	}

	plainText, err := reader.GetPlainText()
	if err != nil {
		return nil, errors.Wrap(err, "extract text")
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plainText); err != nil {
		return nil, errors.Wrap(err, "read extracted text")
	}

	return []models.Document{{Source: map[string]interface{}{"text": buf.String()}}}, nil
}
