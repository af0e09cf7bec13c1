package models

// Rule maps an object key pattern to a destination table and parser settings.
// Pattern is a regular expression matched against the object key (not the full URI).
// ParserConfig is passed opaquely to the parser; nil means format defaults.
type Rule struct {
	Pattern      string                 `json:"pattern" bson:"pattern"`
	TargetTable  string                 `json:"target_table" bson:"target_table"`
	ParserConfig map[string]interface{} `json:"parser_config,omitempty" bson:"parser_config,omitempty"`
}
