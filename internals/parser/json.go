package parser

import (
	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/objectflow/ingester/internals/models"
)

func init() {
	Register("json", parseJSON)
}

// parseJSON converts self-describing object/array input. A top-level array
// yields one document per element; a single top-level object yields exactly
// one document. Non-object array elements are wrapped under a "value" field.
func parseJSON(data []byte, _ Policy) ([]models.Document, error) {
	var root interface{}
	if err := jsoniter.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, "decode json")
	}

	switch value := root.(type) {
	case []interface{}:
		documents := make([]models.Document, 0, len(value))
		for _, element := range value {
			documents = append(documents, models.Document{Source: asSource(element)})
		}
		return documents, nil
	case map[string]interface{}:
		return []models.Document{{Source: value}}, nil
	default:
		return nil, errors.Newf("top-level json value must be an object or an array, got %T", root)
	}
}

func asSource(element interface{}) map[string]interface{} {
	if source, ok := element.(map[string]interface{}); ok {
		return source
	}
	return map[string]interface{}{"value": element}
}
