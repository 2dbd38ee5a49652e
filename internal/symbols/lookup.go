package symbols

import (
	"symdisplay/internal/source"
)

// FileRoot returns (and creates if needed) the compilation-unit scope of a file.
// Its owner is the global namespace.
func (t *Table) FileRoot(file source.FileID, span source.Span) ScopeID {
	if scope, ok := t.fileRoot[file]; ok {
		return scope
	}
	span.File = file
	scope := t.Scopes.New(ScopeFile, NoScopeID, t.global, span)
	t.fileRoot[file] = scope
	return scope
}

// NewScope opens a nested scope whose owner's members become visible inside it.
func (t *Table) NewScope(kind ScopeKind, parent ScopeID, owner SymbolID, span source.Span) ScopeID {
	return t.Scopes.New(kind, parent, owner, span)
}

// Declare makes sym visible by name inside scope.
func (t *Table) Declare(scope ScopeID, sym SymbolID) {
	s := t.Scopes.Get(scope)
	if s == nil {
		return
	}
	if s.NameIndex == nil {
		s.NameIndex = make(map[source.StringID][]SymbolID)
	}
	name := t.Symbols.Get(sym).Name
	s.NameIndex[name] = append(s.NameIndex[name], sym)
	s.Symbols = append(s.Symbols, sym)
}

// Import adds a using directive for a namespace to scope.
func (t *Table) Import(scope ScopeID, ns SymbolID) {
	if s := t.Scopes.Get(scope); s != nil {
		s.Imports = append(s.Imports, ns)
	}
}

// AddAlias attaches a using alias to scope.
func (t *Table) AddAlias(scope ScopeID, alias SymbolID) {
	if s := t.Scopes.Get(scope); s != nil {
		s.Aliases = append(s.Aliases, alias)
	}
}

// ScopeAt returns the innermost scope containing the position.
func (t *Table) ScopeAt(file source.FileID, offset uint32) ScopeView {
	root, ok := t.fileRoot[file]
	if !ok {
		return ScopeView{table: t}
	}
	cur := root
	for {
		next := NoScopeID
		for _, child := range t.Scopes.Get(cur).Children {
			if t.Scopes.Get(child).Span.Contains(file, offset) {
				next = child
			}
		}
		if !next.IsValid() {
			break
		}
		cur = next
	}
	return ScopeView{table: t, scope: cur}
}

// ScopeView answers name lookups at a fixed lexical position.
type ScopeView struct {
	table *Table
	scope ScopeID
}

// Scope returns the underlying scope id.
func (v ScopeView) Scope() ScopeID { return v.scope }

// LookupName returns the symbols a simple name binds to at this position.
// The innermost scope that knows the name wins: its own declarations and the
// owner's members first, then its aliases, then the types of its imports.
// Declarations enclosing the owner that no outer scope stands for are
// searched before moving to the parent scope.
func (v ScopeView) LookupName(name string) []SymbolID {
	if v.table == nil {
		return nil
	}
	key, ok := v.table.Strings.Find(name)
	if !ok {
		return nil
	}
	for cur := v.scope; cur.IsValid(); {
		s := v.table.Scopes.Get(cur)
		if found := v.lookupLevel(s, key); len(found) > 0 {
			return found
		}
		stop := NoSymbolID
		if parent := v.table.Scopes.Get(s.Parent); parent != nil {
			stop = parent.Owner
		}
		if found := v.lookupEnclosing(s.Owner, stop, key); len(found) > 0 {
			return found
		}
		cur = s.Parent
	}
	return nil
}

// lookupEnclosing searches the containers of owner, innermost first, up to
// but excluding stop. The global namespace is searched when stop is unset.
func (v ScopeView) lookupEnclosing(owner, stop SymbolID, key source.StringID) []SymbolID {
	t := v.table
	sym := t.Symbols.Get(owner)
	if sym == nil {
		return nil
	}
	for c := sym.Container; c.IsValid() && c != stop; {
		container := t.Symbols.Get(c)
		if container == nil {
			break
		}
		var found []SymbolID
		for _, id := range container.TypeParams {
			if t.Symbols.Get(id).Name == key {
				found = append(found, id)
			}
		}
		for _, id := range container.Members {
			if m := t.Symbols.Get(id); m.Name == key && !m.Kind.isAccessorMethod(m.MethodKind) {
				found = append(found, id)
			}
		}
		if len(found) > 0 {
			return found
		}
		c = container.Container
	}
	return nil
}

func (v ScopeView) lookupLevel(s *Scope, key source.StringID) []SymbolID {
	t := v.table
	found := append([]SymbolID(nil), s.NameIndex[key]...)
	if owner := t.Symbols.Get(s.Owner); owner != nil {
		for _, id := range owner.TypeParams {
			if t.Symbols.Get(id).Name == key {
				found = append(found, id)
			}
		}
		if owner.Kind == SymbolMethod {
			for _, id := range owner.Params {
				if t.Symbols.Get(id).Name == key {
					found = append(found, id)
				}
			}
		}
		for _, id := range owner.Members {
			if m := t.Symbols.Get(id); m.Name == key && !m.Kind.isAccessorMethod(m.MethodKind) {
				found = append(found, id)
			}
		}
	}
	if len(found) > 0 {
		return found
	}
	for _, id := range s.Aliases {
		if t.Symbols.Get(id).Name == key {
			found = append(found, id)
		}
	}
	if len(found) > 0 {
		return found
	}
	for _, ns := range s.Imports {
		for _, id := range t.Symbols.Get(ns).Members {
			if m := t.Symbols.Get(id); m.Name == key && m.Kind == SymbolNamedType {
				found = append(found, id)
			}
		}
	}
	return found
}

// Aliases lists the aliases declared on the scope chain, innermost first.
func (v ScopeView) Aliases() []SymbolID {
	if v.table == nil {
		return nil
	}
	var out []SymbolID
	for cur := v.scope; cur.IsValid(); cur = v.table.Scopes.Get(cur).Parent {
		out = append(out, v.table.Scopes.Get(cur).Aliases...)
	}
	return out
}

func (k SymbolKind) isAccessorMethod(mk MethodKind) bool {
	return k == SymbolMethod && mk.IsAccessor()
}
