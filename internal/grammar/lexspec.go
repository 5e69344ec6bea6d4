// Package grammar holds the in-memory shapes both halves of the
// generator build on: the lexer spec (ordered token rules) the
// automata pipeline consumes, and the context-free grammar (flat
// production lists) the table builder consumes. Neither type parses
// text itself - that is internal/dsl's job.
package grammar

// TokenRule is one (name, pattern) declaration from the lexer spec,
// plus its resolved priority.
type TokenRule struct {
	Name     string
	Pattern  string
	Priority int // declaration index; smaller wins ties
}

// LexSpec is the fully-loaded lexer specification: an ordered list of
// rules plus the whitespace-skip flag. Rules may share a name; they
// then tag the same token type, and only the emitted enum collapses
// the name to one enumerator.
type LexSpec struct {
	SkipWhitespace bool
	Rules          []TokenRule
}
