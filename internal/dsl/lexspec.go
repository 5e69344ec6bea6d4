// Package dsl loads the two external spec surfaces: the YAML lexer
// spec and the textual grammar DSL.
package dsl

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/helkgen/helkgen/internal/grammar"
)

// rawLexSpec mirrors the on-disk YAML shape.
type rawLexSpec struct {
	SkipWhitespace bool `yaml:"skip_whitespace"`
	Rules          []struct {
		Name    string `yaml:"name"`
		Pattern string `yaml:"pattern"`
	} `yaml:"rules"`
}

// LoadLexSpec parses a YAML lexer spec document. Every declared rule
// enters the match set with its declaration index as priority - rules
// sharing a name stay separate patterns tagging the same token type,
// and the enum emitter renders the shared enumerator once. A rule with
// an empty name or pattern is rejected as a parse error.
func LoadLexSpec(data []byte) (*grammar.LexSpec, error) {
	var raw rawLexSpec
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing lexer spec: %w", err)
	}
	if len(raw.Rules) == 0 {
		return nil, fmt.Errorf("parsing lexer spec: no rules declared")
	}

	spec := &grammar.LexSpec{SkipWhitespace: raw.SkipWhitespace}
	for i, r := range raw.Rules {
		if r.Name == "" || r.Pattern == "" {
			return nil, fmt.Errorf("parsing lexer spec: rule %d has an empty name or pattern", i)
		}
		spec.Rules = append(spec.Rules, grammar.TokenRule{
			Name:     r.Name,
			Pattern:  r.Pattern,
			Priority: i,
		})
	}
	return spec, nil
}
