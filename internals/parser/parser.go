package parser

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/objectflow/ingester/internals/models"
	"go.uber.org/zap"
)

// Converter turns raw file bytes into an ordered sequence of documents.
// A converter is a pure function: same bytes and policy, same output.
type Converter func(data []byte, policy Policy) ([]models.Document, error)

var converters = make(map[string]Converter)

// Register binds a converter to a format tag. Adding a format is one Register
// call plus one converter; nothing else in the pipeline changes.
func Register(formatTag string, converter Converter) {
	converters[strings.ToLower(formatTag)] = converter
}

// Supported reports whether a converter is registered for the format tag.
func Supported(formatTag string) bool {
	_, found := converters[strings.ToLower(formatTag)]
	return found
}

// DetectFormat infers the format tag from the object key's extension, lower-cased.
// An empty result means no extension; dispatch will reject it.
func DetectFormat(key string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(key), "."))
}

// Parse converts file bytes into documents using the converter registered for
// formatTag. An unrecognized tag is a dispatch failure, not a silent no-op.
// Empty input yields an empty sequence for every supported format. On any
// converter failure the partial output is discarded.
func Parse(data []byte, formatTag string, parserConfig map[string]interface{}) ([]models.Document, error) {
	converter, found := converters[strings.ToLower(formatTag)]
	if !found {
		return nil, errors.Newf("unsupported file format %q", formatTag)
	}

	policy, err := DecodePolicy(parserConfig)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid parser settings for format %q", formatTag)
	}

	if len(data) == 0 {
		zap.L().Debug("Empty file content", zap.String("format", formatTag))
		return []models.Document{}, nil
	}

	documents, err := converter(data, policy)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", formatTag)
	}
	return documents, nil
}
