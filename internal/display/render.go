package display

import (
	"symdisplay/internal/symbols"
	"symdisplay/internal/types"
)

// Scope answers name lookups at a source position for minimal qualification.
// symbols.ScopeView implements it.
type Scope interface {
	LookupName(name string) []symbols.SymbolID
	Aliases() []symbols.SymbolID
}

type emptyScope struct{}

func (emptyScope) LookupName(string) []symbols.SymbolID { return nil }
func (emptyScope) Aliases() []symbols.SymbolID          { return nil }

// renderer accumulates parts for one top-level request. It only reads the
// table, so independent renderers may share one.
type renderer struct {
	tab   *symbols.Table
	f     Format
	scope Scope
	out   Parts

	visiting map[symbols.SymbolID]struct{}
	// hideTupleNames drops tuple element names inside function pointer
	// signatures rendered without parameter names.
	hideTupleNames bool
}

func newRenderer(tab *symbols.Table, f Format, scope Scope) *renderer {
	return &renderer{
		tab:      tab,
		f:        f,
		scope:    scope,
		out:      make(Parts, 0, 16),
		visiting: make(map[symbols.SymbolID]struct{}),
	}
}

func (r *renderer) minimal() bool { return r.scope != nil }

func (r *renderer) add(kind PartKind, text string, sym symbols.SymbolID) {
	r.out = append(r.out, Part{Kind: kind, Text: text, Symbol: sym})
}

func (r *renderer) punct(text string)   { r.add(PartPunctuation, text, symbols.NoSymbolID) }
func (r *renderer) keyword(text string) { r.add(PartKeyword, text, symbols.NoSymbolID) }
func (r *renderer) space()              { r.add(PartSpace, " ", symbols.NoSymbolID) }

func (r *renderer) keywordSpace(text string) {
	r.keyword(text)
	r.space()
}

func (r *renderer) unknown() { r.add(PartErrorTypeName, "?", symbols.NoSymbolID) }

func (r *renderer) name(id symbols.SymbolID) string { return r.tab.Name(id) }

func (r *renderer) ident(text string, isType bool) string {
	if r.f.hasMisc(EscapeKeywordIdentifiers) {
		return escapeIdentifier(text, isType)
	}
	return text
}

// symbol renders a declaration. top marks the requested symbol, which alone
// shows kind keywords, delegate signatures and constraint clauses.
func (r *renderer) symbol(id symbols.SymbolID, top bool) {
	sym := r.tab.Get(id)
	if sym == nil {
		r.unknown()
		return
	}
	if _, busy := r.visiting[id]; busy {
		r.add(r.nameKind(sym), r.name(id), id)
		return
	}
	r.visiting[id] = struct{}{}
	defer delete(r.visiting, id)

	switch sym.Kind {
	case symbols.SymbolNamespace:
		r.namespace(id, sym, top)
	case symbols.SymbolNamedType:
		r.typeDecl(id, sym, top)
	case symbols.SymbolErrorType:
		r.errorType(id, sym, nil)
	case symbols.SymbolTypeParameter:
		if top {
			r.variance(sym)
		}
		r.add(PartTypeParameterName, r.ident(r.name(id), true), id)
	case symbols.SymbolMethod:
		r.method(id, sym, top)
	case symbols.SymbolField:
		r.field(id, sym)
	case symbols.SymbolProperty:
		r.property(id, sym)
	case symbols.SymbolEvent:
		r.event(id, sym)
	case symbols.SymbolParameter:
		r.param(id, false)
	case symbols.SymbolLocal:
		r.local(id, sym)
	case symbols.SymbolRangeVariable:
		r.add(PartRangeVariableName, r.ident(r.name(id), false), id)
	case symbols.SymbolLabel:
		r.add(PartLabelName, r.name(id), id)
	case symbols.SymbolAlias:
		r.alias(id, sym)
	default:
		r.unknown()
	}
}

// nameKind classifies the bare name of a symbol.
func (r *renderer) nameKind(sym *symbols.Symbol) PartKind {
	switch sym.Kind {
	case symbols.SymbolNamespace:
		return PartNamespaceName
	case symbols.SymbolNamedType:
		return typeNameKind(sym.TypeKind)
	case symbols.SymbolErrorType:
		return PartErrorTypeName
	case symbols.SymbolTypeParameter:
		return PartTypeParameterName
	case symbols.SymbolMethod:
		if sym.Flags&symbols.FlagExtensionMethod != 0 {
			return PartExtensionMethodName
		}
		return PartMethodName
	case symbols.SymbolField:
		if r.isEnumMember(sym) {
			return PartEnumMemberName
		}
		if sym.Modifiers&symbols.ModConst != 0 {
			return PartConstantName
		}
		return PartFieldName
	case symbols.SymbolProperty:
		return PartPropertyName
	case symbols.SymbolEvent:
		return PartEventName
	case symbols.SymbolParameter:
		return PartParameterName
	case symbols.SymbolLocal:
		return PartLocalName
	case symbols.SymbolRangeVariable:
		return PartRangeVariableName
	case symbols.SymbolLabel:
		return PartLabelName
	case symbols.SymbolAlias:
		return PartAliasName
	}
	return PartText
}

func typeNameKind(k symbols.TypeKind) PartKind {
	switch k {
	case symbols.TypeStruct:
		return PartStructName
	case symbols.TypeInterface:
		return PartInterfaceName
	case symbols.TypeEnum:
		return PartEnumName
	case symbols.TypeDelegate:
		return PartDelegateName
	case symbols.TypeRecordClass:
		return PartRecordClassName
	case symbols.TypeRecordStruct:
		return PartRecordStructName
	default:
		return PartClassName
	}
}

func (r *renderer) containerOf(sym *symbols.Symbol) *symbols.Symbol {
	return r.tab.Get(sym.Container)
}

func (r *renderer) isEnumMember(sym *symbols.Symbol) bool {
	c := r.containerOf(sym)
	return sym.Kind == symbols.SymbolField && c != nil &&
		c.Kind == symbols.SymbolNamedType && c.TypeKind == symbols.TypeEnum
}

// typeSymbol returns the declaration behind a named or error type reference.
func (r *renderer) typeSymbol(id types.TypeID) (symbols.SymbolID, *symbols.Symbol) {
	decl := r.tab.Decl(id)
	return decl, r.tab.Get(decl)
}

func (r *renderer) alias(id symbols.SymbolID, sym *symbols.Symbol) {
	r.add(PartAliasName, r.ident(r.name(id), false), id)
	if !r.f.hasLocal(LocalIncludeType) || !sym.Target.IsValid() {
		return
	}
	r.space()
	r.punct("=")
	r.space()
	inner := newRenderer(r.tab, r.f, nil)
	inner.symbol(sym.Target, false)
	r.out = append(r.out, inner.out...)
}
