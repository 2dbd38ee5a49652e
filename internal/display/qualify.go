package display

import (
	"slices"

	"symdisplay/internal/symbols"
)

// qualifier emits the prefix of a namespace or type name. It reports true
// when an alias replaced the symbol itself, in which case the caller must not
// emit the name.
func (r *renderer) qualifier(id symbols.SymbolID) bool {
	if r.minimal() {
		return r.minimalQualifier(id)
	}
	r.containers(id)
	return false
}

// containers spells the container chain selected by the qualification style.
func (r *renderer) containers(id symbols.SymbolID) {
	sym := r.tab.Get(id)
	if sym == nil {
		return
	}
	var chain []symbols.SymbolID
	global := false
walk:
	for c := sym.Container; c.IsValid(); {
		cs := r.tab.Get(c)
		switch cs.Kind {
		case symbols.SymbolNamedType, symbols.SymbolErrorType:
			if r.f.qual == NameOnly {
				break walk
			}
		case symbols.SymbolNamespace:
			if r.f.qual < NameAndContainingTypesAndNamespaces {
				break walk
			}
			if cs.IsGlobalNamespace() {
				global = r.f.qual == FullyQualified || r.f.global == GlobalIncluded
				break walk
			}
		default:
			break walk
		}
		chain = append(chain, c)
		c = cs.Container
	}
	if global {
		r.globalPrefix()
	}
	for i := len(chain) - 1; i >= 0; i-- {
		next := id
		if i > 0 {
			next = chain[i-1]
		}
		r.containerName(chain[i])
		r.separator(chain[i], next)
	}
}

func (r *renderer) globalPrefix() {
	r.keyword("global")
	r.punct("::")
}

// containerName renders one link of a qualification chain without its own
// prefix.
func (r *renderer) containerName(id symbols.SymbolID) {
	sym := r.tab.Get(id)
	switch sym.Kind {
	case symbols.SymbolNamespace:
		r.add(PartNamespaceName, r.ident(r.name(id), false), id)
	case symbols.SymbolErrorType:
		r.add(PartErrorTypeName, r.name(id), id)
	default:
		r.typeName(id, sym)
		r.typeArgs(sym, nil)
	}
}

func (r *renderer) separator(container, next symbols.SymbolID) {
	if r.f.hasInternal(UsePlusForNestedTypes) && r.isType(container) && r.isType(next) {
		r.punct("+")
		return
	}
	r.punct(".")
}

func (r *renderer) isType(id symbols.SymbolID) bool {
	sym := r.tab.Get(id)
	return sym != nil && (sym.Kind == symbols.SymbolNamedType || sym.Kind == symbols.SymbolErrorType)
}

// minimalQualifier adds only the containers needed for the name to bind to
// id at the scope position.
func (r *renderer) minimalQualifier(id symbols.SymbolID) bool {
	if r.aliasFor(id) {
		return true
	}
	if r.bindsTo(id) {
		return false
	}
	sym := r.tab.Get(id)
	c := r.tab.Get(sym.Container)
	if c == nil {
		return false
	}
	if c.IsGlobalNamespace() {
		if r.f.global == GlobalIncluded || r.f.qual == FullyQualified {
			r.globalPrefix()
		}
		return false
	}
	switch c.Kind {
	case symbols.SymbolNamespace:
		r.namespaceRef(sym.Container)
	case symbols.SymbolNamedType, symbols.SymbolErrorType:
		r.namedRef(sym.Container, nil)
	default:
		return false
	}
	r.separator(sym.Container, id)
	return false
}

// aliasFor emits an alias naming id when one is visible and not shadowed.
func (r *renderer) aliasFor(id symbols.SymbolID) bool {
	for _, a := range r.scope.Aliases() {
		alias := r.tab.Get(a)
		if alias == nil || alias.Target != id {
			continue
		}
		name := r.name(a)
		bound := r.scope.LookupName(name)
		if len(bound) == 1 && bound[0] == a {
			r.add(PartAliasName, r.ident(name, false), a)
			return true
		}
	}
	return false
}

// bindsTo reports whether the simple name of id resolves to id alone.
func (r *renderer) bindsTo(id symbols.SymbolID) bool {
	sym := r.tab.Get(id)
	if sym == nil {
		return false
	}
	var matches []symbols.SymbolID
	for _, c := range r.scope.LookupName(r.name(id)) {
		cs := r.tab.Get(c)
		if cs == nil {
			continue
		}
		if cs.Kind == symbols.SymbolAlias {
			c = cs.Target
			if cs = r.tab.Get(c); cs == nil {
				continue
			}
		}
		if (sym.Kind == symbols.SymbolNamedType || sym.Kind == symbols.SymbolErrorType) &&
			cs.Kind.IsType() && cs.Arity() != sym.Arity() {
			continue
		}
		if !slices.Contains(matches, c) {
			matches = append(matches, c)
		}
	}
	return len(matches) == 1 && matches[0] == id
}
