package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/objectflow/ingester/internals/models"
)

func init() {
	Register("csv", newDelimitedConverter(','))
	Register("tsv", newDelimitedConverter('\t'))
}

// newDelimitedConverter builds a converter for delimited text. Each data row
// becomes one document; the first row provides field names unless the policy
// disables headers, in which case fields are named positionally.
func newDelimitedConverter(defaultDelimiter rune) Converter {
	return func(data []byte, policy Policy) ([]models.Document, error) {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = defaultDelimiter
		if policy.Delimiter != "" {
			reader.Comma = []rune(policy.Delimiter)[0]
		}

		var headers []string
		if policy.hasHeader() {
			record, err := reader.Read()
			if err == io.EOF {
				return []models.Document{}, nil
			}
			if err != nil {
				return nil, errors.Wrap(err, "read header row")
			}
			headers = record
		}

		documents := make([]models.Document, 0)
		for {
			record, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, errors.Wrapf(err, "read row %d", len(documents)+1)
			}

			if headers == nil {
				headers = positionalFields(len(record))
			}

			source := make(map[string]interface{}, len(record))
			for i, field := range record {
				if i < len(headers) {
					source[headers[i]] = field
				}
			}
			documents = append(documents, models.Document{Source: source})
		}
		return documents, nil
	}
}

func positionalFields(n int) []string {
	fields := make([]string, n)
	for i := range fields {
		fields[i] = fmt.Sprintf("field_%d", i+1)
	}
	return fields
}
