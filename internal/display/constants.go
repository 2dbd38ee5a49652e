package display

import (
	"cmp"
	"slices"

	"symdisplay/internal/literal"
	"symdisplay/internal/symbols"
	"symdisplay/internal/types"
)

func (r *renderer) literalOptions() literal.Options {
	opts := literal.UseQuotes | literal.EscapeNonPrintableCharacters
	if r.f.hasMisc(UseHexadecimalNumbers) {
		opts |= literal.UseHexadecimalNumbers
	}
	return opts
}

// constant renders a value of the given type. Enum-typed integers decompose
// into member names; null on a value type becomes default(T).
func (r *renderer) constant(typ types.TypeID, v any, self symbols.SymbolID) {
	if v == nil {
		r.nullConstant(typ)
		return
	}
	if elem, ok := r.nullableElem(typ); ok {
		typ = elem
	}
	if enum, sym := r.typeSymbol(typ); sym != nil && sym.Kind == symbols.SymbolNamedType &&
		sym.TypeKind == symbols.TypeEnum {
		if _, ok := enumBits(v); ok {
			r.enumValue(enum, sym, v, self, false)
			return
		}
	}
	r.value(v)
}

// value renders a primitive with its literal classification.
func (r *renderer) value(v any) {
	text, ok := literal.Format(v, r.literalOptions())
	if !ok {
		r.unknown()
		return
	}
	switch v.(type) {
	case nil, bool:
		r.keyword(text)
	case string, literal.Char:
		r.add(PartStringLiteral, text, symbols.NoSymbolID)
	default:
		r.add(PartNumericLiteral, text, symbols.NoSymbolID)
	}
}

func (r *renderer) nullableElem(typ types.TypeID) (types.TypeID, bool) {
	_, sym := r.typeSymbol(typ)
	if sym == nil || sym.Special != symbols.SpecialNullable {
		return types.NoTypeID, false
	}
	args := r.tab.Types.TypeArgs(typ)
	if len(args) != 1 {
		return types.NoTypeID, false
	}
	return args[0], true
}

func (r *renderer) nullConstant(typ types.TypeID) {
	if !r.isValueType(typ) {
		r.keyword("null")
		return
	}
	r.keyword("default")
	if r.f.hasMisc(AllowDefaultLiteral) {
		return
	}
	r.punct("(")
	r.typ(typ)
	r.punct(")")
}

// isValueType reports types whose null default must be spelled default(T).
func (r *renderer) isValueType(typ types.TypeID) bool {
	tt, ok := r.tab.Types.Lookup(typ)
	if !ok {
		return false
	}
	switch tt.Kind {
	case types.KindNamed:
		_, sym := r.typeSymbol(typ)
		if sym == nil || sym.Special == symbols.SpecialNullable || sym.Special.IsReferenceType() {
			return false
		}
		return sym.TypeKind.IsValueType()
	case types.KindTypeParam:
		_, sym := r.typeSymbol(typ)
		if sym == nil {
			return false
		}
		return sym.Constraints.Flags&(symbols.ConstraintClass|symbols.ConstraintNullableClass) == 0
	case types.KindTuple:
		return true
	}
	return false
}

// enumMemberValue renders the initializer of an enum member declaration.
func (r *renderer) enumMemberValue(enum symbols.SymbolID, v any, self symbols.SymbolID) {
	sym := r.tab.Get(enum)
	if sym == nil {
		r.value(v)
		return
	}
	r.enumValue(enum, sym, v, self, true)
}

type enumField struct {
	id    symbols.SymbolID
	bits  uint64
	order int
}

// enumValue renders v against the members of enum. Member declarations
// prefer the plain number; other uses prefer member names and fall back to
// the (E)N cast form.
func (r *renderer) enumValue(enum symbols.SymbolID, sym *symbols.Symbol, v any, self symbols.SymbolID, declaration bool) {
	bits, ok := enumBits(v)
	if !ok {
		r.value(v)
		return
	}
	fields := r.enumFields(sym, self)
	if sym.Flags&symbols.FlagFlagsEnum != 0 {
		if parts, ok := decomposeFlags(bits, fields); ok {
			for i, f := range parts {
				if i > 0 {
					r.space()
					r.punct("|")
					r.space()
				}
				r.enumMemberRef(enum, f.id)
			}
			return
		}
	}
	if declaration {
		r.value(v)
		return
	}
	for _, f := range fields {
		if f.bits == bits {
			r.enumMemberRef(enum, f.id)
			return
		}
	}
	r.punct("(")
	r.namedRef(enum, nil)
	r.punct(")")
	r.value(v)
}

// enumMemberRef names one member; the enum type prefixes it only when
// containing types are requested.
func (r *renderer) enumMemberRef(enum, member symbols.SymbolID) {
	if r.f.hasMember(MemberIncludeContainingType) {
		r.namedRef(enum, nil)
		r.punct(".")
	}
	r.add(PartEnumMemberName, r.ident(r.name(member), false), member)
}

// enumFields lists the constant members of an enum in declaration order,
// leaving out self.
func (r *renderer) enumFields(enum *symbols.Symbol, self symbols.SymbolID) []enumField {
	out := make([]enumField, 0, len(enum.Members))
	for i, m := range enum.Members {
		if m == self {
			continue
		}
		ms := r.tab.Get(m)
		if ms == nil || ms.Kind != symbols.SymbolField || ms.Constant == nil {
			continue
		}
		bits, ok := enumBits(ms.Constant.Value)
		if !ok {
			continue
		}
		out = append(out, enumField{id: m, bits: bits, order: i})
	}
	return out
}

// decomposeFlags picks members greedily from the largest value down; a
// member is taken while all of its bits are still uncovered. The result is
// in declaration order.
func decomposeFlags(bits uint64, fields []enumField) ([]enumField, bool) {
	if bits == 0 {
		for _, f := range fields {
			if f.bits == 0 {
				return []enumField{f}, true
			}
		}
		return nil, false
	}
	sorted := make([]enumField, 0, len(fields))
	for _, f := range fields {
		if f.bits != 0 {
			sorted = append(sorted, f)
		}
	}
	slices.SortStableFunc(sorted, func(a, b enumField) int { return cmp.Compare(b.bits, a.bits) })

	remaining := bits
	var taken []enumField
	for _, f := range sorted {
		if remaining&f.bits == f.bits {
			taken = append(taken, f)
			remaining &^= f.bits
		}
	}
	if remaining != 0 {
		return nil, false
	}
	slices.SortFunc(taken, func(a, b enumField) int { return cmp.Compare(a.order, b.order) })
	return taken, true
}

// enumBits widens an integral constant to 64 bits, sign-extending signed
// values so that the full value space orders consistently.
func enumBits(v any) (uint64, bool) {
	switch x := v.(type) {
	case int:
		return uint64(int64(x)), true
	case int8:
		return uint64(int64(x)), true
	case int16:
		return uint64(int64(x)), true
	case int32:
		return uint64(int64(x)), true
	case int64:
		return uint64(x), true
	case uint:
		return uint64(x), true
	case uint8:
		return uint64(x), true
	case uint16:
		return uint64(x), true
	case uint32:
		return uint64(x), true
	case uint64:
		return x, true
	case literal.Char:
		return uint64(x), true
	}
	return 0, false
}
