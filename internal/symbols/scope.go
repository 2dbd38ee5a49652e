package symbols

import (
	"symdisplay/internal/source"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid   ScopeKind = iota
	ScopeFile                // compilation unit; owner is the global namespace
	ScopeNamespace           // namespace body
	ScopeType                // type body
	ScopeMethod              // method body with parameters and type parameters
	ScopeBlock               // nested block with locals
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeFile:
		return "file"
	case ScopeNamespace:
		return "namespace"
	case ScopeType:
		return "type"
	case ScopeMethod:
		return "method"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Scope models a lexical scope with a parent-child hierarchy. Names visible in
// a scope come from its own declarations and the members of Owner, then from
// Aliases, then from the types of Imports.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	Owner     SymbolID
	Span      source.Span
	NameIndex map[source.StringID][]SymbolID
	Symbols   []SymbolID
	Imports   []SymbolID
	Aliases   []SymbolID
	Children  []ScopeID
}
