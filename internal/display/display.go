package display

import (
	"symdisplay/internal/literal"
	"symdisplay/internal/symbols"
	"symdisplay/internal/types"
)

// ToParts renders a symbol with the qualification chosen by f.
func ToParts(tab *symbols.Table, id symbols.SymbolID, f Format) Parts {
	r := newRenderer(tab, f, nil)
	r.symbol(id, true)
	return r.out
}

// ToString is ToParts joined into text.
func ToString(tab *symbols.Table, id symbols.SymbolID, f Format) string {
	return ToParts(tab, id, f).String()
}

// ToMinimalParts renders a symbol qualified only as far as needed for its
// names to bind at scope. A nil scope sees no bindings.
func ToMinimalParts(tab *symbols.Table, id symbols.SymbolID, scope Scope, f Format) Parts {
	if scope == nil {
		scope = emptyScope{}
	}
	r := newRenderer(tab, f, scope)
	r.symbol(id, true)
	return r.out
}

// ToMinimalString is ToMinimalParts joined into text.
func ToMinimalString(tab *symbols.Table, id symbols.SymbolID, scope Scope, f Format) string {
	return ToMinimalParts(tab, id, scope, f).String()
}

// TypeToParts renders a type reference.
func TypeToParts(tab *symbols.Table, typ types.TypeID, f Format) Parts {
	r := newRenderer(tab, f, nil)
	r.typ(typ)
	return r.out
}

// TypeToMinimalParts renders a type reference minimally qualified at scope.
func TypeToMinimalParts(tab *symbols.Table, typ types.TypeID, scope Scope, f Format) Parts {
	if scope == nil {
		scope = emptyScope{}
	}
	r := newRenderer(tab, f, scope)
	r.typ(typ)
	return r.out
}

// ConstantToParts renders a value of type typ, decomposing enum values into
// member names.
func ConstantToParts(tab *symbols.Table, typ types.TypeID, value any, f Format) Parts {
	r := newRenderer(tab, f, nil)
	r.constant(typ, value, symbols.NoSymbolID)
	return r.out
}

// FormatLiteral renders a primitive value invariantly.
func FormatLiteral(v any, opts literal.Options) (string, bool) {
	return literal.Format(v, opts)
}

// FormatPrimitive renders a primitive quoted and optionally in hexadecimal.
func FormatPrimitive(v any, quote, hex bool) (string, bool) {
	return literal.FormatPrimitive(v, quote, hex)
}
