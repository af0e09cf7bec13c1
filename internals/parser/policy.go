package parser

import (
	"github.com/cockroachdb/errors"
	"github.com/mitchellh/mapstructure"
)

// Policy carries the optional per-rule parser settings. Each converter reads
// only the fields relevant to its format; absence means format defaults.
type Policy struct {
	Delimiter string `mapstructure:"delimiter"`
	HasHeader *bool  `mapstructure:"has_header"`
	PerLine   bool   `mapstructure:"per_line"`
	Sheet     string `mapstructure:"sheet"`
}

// DecodePolicy builds a Policy from the opaque parser_config of a rule.
func DecodePolicy(parserConfig map[string]interface{}) (Policy, error) {
	var policy Policy
	if parserConfig == nil {
		return policy, nil
	}
	if err := mapstructure.Decode(parserConfig, &policy); err != nil {
		return policy, errors.Wrap(err, "decode parser_config")
	}
	return policy, nil
}

// hasHeader defaults to true when the rule does not say otherwise.
func (p Policy) hasHeader() bool {
	if p.HasHeader == nil {
		return true
	}
	return *p.HasHeader
}
