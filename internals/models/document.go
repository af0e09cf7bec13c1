package models

// Document is one logical record extracted from a source file.
// Source is a dynamic key-value tree (JSON-equivalent); ID is optional and
// assigned by backends which require a document identity.
type Document struct {
	ID     string                 `json:"id,omitempty"`
	Source map[string]interface{} `json:"source"`
}

// NewDocument returns a new Document
func NewDocument(id string, source map[string]interface{}) Document {
	return Document{ID: id, Source: source}
}
