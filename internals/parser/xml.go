package parser

import (
	"sort"

	"github.com/clbanning/mxj/v2"
	"github.com/cockroachdb/errors"
	"github.com/objectflow/ingester/internals/models"
)

func init() {
	Register("xml", parseXML)
}

// parseXML converts markup input: each repeated element under the root becomes
// one document, attributes (prefixed "-" by mxj) and child text as fields.
// Order is preserved within a repeated tag; distinct child tags are emitted in
// sorted tag order to keep the sequence deterministic.
func parseXML(data []byte, _ Policy) ([]models.Document, error) {
	tree, err := mxj.NewMapXml(data)
	if err != nil {
		return nil, errors.Wrap(err, "decode xml")
	}

	rootMap := map[string]interface{}(tree)
	if len(rootMap) != 1 {
		return nil, errors.Newf("expected a single root element, got %d", len(rootMap))
	}

	var rootValue interface{}
	for _, value := range rootMap {
		rootValue = value
	}

	children, ok := rootValue.(map[string]interface{})
	if !ok {
		// Root with only text content: a single document.
		return []models.Document{{Source: map[string]interface{}{"#text": rootValue}}}, nil
	}

	tags := make([]string, 0, len(children))
	for tag := range children {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	documents := make([]models.Document, 0)
	for _, tag := range tags {
		switch value := children[tag].(type) {
		case []interface{}:
			for _, element := range value {
				documents = append(documents, models.Document{Source: asXMLSource(element)})
			}
		default:
			documents = append(documents, models.Document{Source: asXMLSource(value)})
		}
	}
	return documents, nil
}

func asXMLSource(element interface{}) map[string]interface{} {
	if source, ok := element.(map[string]interface{}); ok {
		return source
	}
	return map[string]interface{}{"#text": element}
}
