package symbols

import (
	"slices"

	"gitlab.com/tozd/go/errors"
)

// Validate walks internal arenas checking structural invariants. Returns nil if
// everything is consistent; otherwise aggregates all detected issues.
func (t *Table) Validate() error {
	var errs []error

	for scopeID, scope := range t.Scopes.all() {
		if scope.Kind == ScopeInvalid {
			errs = append(errs, errors.Errorf("scope %d has invalid kind", scopeID))
		}
		if scope.Parent.IsValid() {
			parent := t.Scopes.Get(scope.Parent)
			if parent == nil || scope.Parent == scopeID {
				errs = append(errs, errors.Errorf("scope %d has invalid parent %d", scopeID, scope.Parent))
				continue
			}
			if !slices.Contains(parent.Children, scopeID) {
				errs = append(errs, errors.Errorf("scope %d parent %d missing backlink", scopeID, scope.Parent))
			}
		}
		if scope.Owner.IsValid() && t.Symbols.Get(scope.Owner) == nil {
			errs = append(errs, errors.Errorf("scope %d has invalid owner %d", scopeID, scope.Owner))
		}
		for _, id := range scope.Symbols {
			if t.Symbols.Get(id) == nil {
				errs = append(errs, errors.Errorf("scope %d declares missing symbol %d", scopeID, id))
			}
		}
		for _, id := range scope.Aliases {
			if sym := t.Symbols.Get(id); sym == nil || sym.Kind != SymbolAlias {
				errs = append(errs, errors.Errorf("scope %d alias %d is not an alias", scopeID, id))
			}
		}
		for _, id := range scope.Imports {
			if sym := t.Symbols.Get(id); sym == nil || sym.Kind != SymbolNamespace {
				errs = append(errs, errors.Errorf("scope %d import %d is not a namespace", scopeID, id))
			}
		}
	}

	for symbolID, sym := range t.Symbols.all() {
		if sym.Kind == SymbolInvalid {
			errs = append(errs, errors.Errorf("symbol %d has invalid kind", symbolID))
			continue
		}
		if sym.Container.IsValid() && t.Symbols.Get(sym.Container) == nil {
			errs = append(errs, errors.Errorf("symbol %d has invalid container %d", symbolID, sym.Container))
			continue
		}
		if sym.Kind == SymbolNamespace && !sym.IsGlobalNamespace() && !sym.Container.IsValid() {
			errs = append(errs, errors.Errorf("namespace %d has no container", symbolID))
		}
		for _, m := range sym.Members {
			member := t.Symbols.Get(m)
			if member == nil {
				errs = append(errs, errors.Errorf("symbol %d lists missing member %d", symbolID, m))
				continue
			}
			if member.Container != symbolID {
				errs = append(errs, errors.Errorf("symbol %d member %d missing container backlink", symbolID, m))
			}
		}
		if sym.Kind == SymbolAlias && !sym.Target.IsValid() {
			errs = append(errs, errors.Errorf("alias %d has no target", symbolID))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
