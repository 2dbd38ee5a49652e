package display

import (
	"strconv"
	"strings"

	"symdisplay/internal/symbols"
	"symdisplay/internal/types"
)

// typ renders a type reference.
func (r *renderer) typ(id types.TypeID) {
	tt, ok := r.tab.Types.Lookup(id)
	if !ok {
		r.unknown()
		return
	}
	switch tt.Kind {
	case types.KindNamed:
		r.named(id, tt)
	case types.KindTypeParam:
		decl := symbols.SymbolID(tt.Decl)
		r.add(PartTypeParameterName, r.ident(r.name(decl), true), decl)
		r.annotation(tt.Annotation)
	case types.KindArray:
		r.array(id)
	case types.KindPointer:
		r.typ(tt.Elem)
		r.punct("*")
	case types.KindFunctionPointer:
		r.functionPointer(id)
	case types.KindTuple:
		r.tuple(id, tt)
	case types.KindDynamic:
		r.keyword("dynamic")
		r.annotation(tt.Annotation)
	case types.KindError:
		decl := symbols.SymbolID(tt.Decl)
		r.errorType(decl, r.tab.Get(decl), nil)
		r.annotation(tt.Annotation)
	default:
		r.unknown()
	}
}

// annotation renders the nullable-reference suffix of a type use.
func (r *renderer) annotation(a types.Annotation) {
	switch a {
	case types.AnnotationNullable:
		if r.f.hasMisc(IncludeNullableReferenceTypeModifier) {
			r.punct("?")
		}
	case types.AnnotationNotNull:
		if r.f.hasMisc(IncludeNullableReferenceTypeModifier) && r.f.hasMisc(IncludeNotNullableReferenceTypeModifier) {
			r.punct("!")
		}
	}
}

func (r *renderer) named(id types.TypeID, tt types.Type) {
	decl, sym := r.typeSymbol(id)
	if sym == nil {
		r.unknown()
		return
	}
	args := r.tab.Types.TypeArgs(id)
	switch {
	case tt.Native && (sym.Special == symbols.SpecialIntPtr || sym.Special == symbols.SpecialUIntPtr) &&
		!r.f.hasInternal(UseNativeIntegerUnderlyingType):
		if sym.Special == symbols.SpecialIntPtr {
			r.keyword("nint")
		} else {
			r.keyword("nuint")
		}
	case r.f.hasMisc(UseSpecialTypes) && sym.Special != symbols.SpecialNone && specialKeywords[sym.Special] != "":
		r.keyword(specialKeywords[sym.Special])
	case sym.Special == symbols.SpecialNullable && len(args) == 1 && !r.f.hasMisc(ExpandNullable):
		r.typ(args[0])
		r.punct("?")
	default:
		r.namedRef(decl, args)
	}
	r.annotation(tt.Annotation)
}

// namedRef renders a qualified reference to a named type.
func (r *renderer) namedRef(id symbols.SymbolID, args []types.TypeID) {
	sym := r.tab.Get(id)
	if sym == nil {
		r.unknown()
		return
	}
	if sym.Kind == symbols.SymbolErrorType {
		r.errorType(id, sym, args)
		return
	}
	if r.qualifier(id) {
		return
	}
	r.typeName(id, sym)
	r.typeArgs(sym, args)
}

// namespaceRef renders a qualified namespace name.
func (r *renderer) namespaceRef(id symbols.SymbolID) {
	if r.qualifier(id) {
		return
	}
	r.add(PartNamespaceName, r.ident(r.name(id), false), id)
}

// typeName emits the bare name part of a named type.
func (r *renderer) typeName(id symbols.SymbolID, sym *symbols.Symbol) {
	name := r.name(id)
	if r.f.hasMisc(RemoveAttributeSuffix) && sym.Flags&symbols.FlagAttributeType != 0 {
		name = trimAttributeSuffix(name)
	}
	r.add(typeNameKind(sym.TypeKind), r.ident(name, true), id)
}

func trimAttributeSuffix(name string) string {
	short, ok := strings.CutSuffix(name, "Attribute")
	if !ok || !isValidIdentifier(short) || IsKeyword(short) {
		return name
	}
	return short
}

// typeArgs renders the argument list of a generic reference, or its
// parameter list when args is empty.
func (r *renderer) typeArgs(sym *symbols.Symbol, args []types.TypeID) {
	if sym.Arity() == 0 {
		return
	}
	if r.f.hasInternal(UseArityForGenericTypes) {
		r.add(PartArity, "`"+strconv.Itoa(sym.Arity()), symbols.NoSymbolID)
		return
	}
	if !r.f.hasGenerics(IncludeTypeParameters) {
		return
	}
	r.punct("<")
	if len(args) > 0 {
		for i, a := range args {
			if i > 0 {
				r.punct(",")
				r.space()
			}
			r.typ(a)
		}
	} else {
		r.typeParams(sym.TypeParams)
	}
	r.punct(">")
}

// typeParams renders declared type parameters without brackets.
func (r *renderer) typeParams(ids []symbols.SymbolID) {
	for i, tp := range ids {
		if i > 0 {
			r.punct(",")
			r.space()
		}
		if p := r.tab.Get(tp); p != nil {
			r.variance(p)
		}
		r.add(PartTypeParameterName, r.ident(r.name(tp), true), tp)
	}
}

func (r *renderer) variance(tp *symbols.Symbol) {
	if !r.f.hasGenerics(IncludeVariance) {
		return
	}
	switch tp.Variance {
	case symbols.VarianceIn:
		r.keywordSpace("in")
	case symbols.VarianceOut:
		r.keywordSpace("out")
	}
}

// errorType renders an unresolved type by its reported name. A single
// candidate stands in for it unless the error name is requested.
func (r *renderer) errorType(id symbols.SymbolID, sym *symbols.Symbol, args []types.TypeID) {
	if sym == nil {
		r.unknown()
		return
	}
	if sym.Target.IsValid() && !r.f.hasMisc(UseErrorTypeSymbolName) {
		r.namedRef(sym.Target, args)
		return
	}
	name := r.name(id)
	if name == "" {
		r.unknown()
		return
	}
	r.add(PartErrorTypeName, name, id)
	if len(args) > 0 {
		r.typeArgs(sym, args)
	}
}

// array renders T[] chains. Rank specifiers follow the element type from the
// outermost array inwards unless reversed.
func (r *renderer) array(id types.TypeID) {
	var levels []types.Type
	elem := id
	for {
		tt, ok := r.tab.Types.Lookup(elem)
		if !ok || tt.Kind != types.KindArray {
			break
		}
		levels = append(levels, tt)
		elem = tt.Elem
	}
	r.typ(elem)
	if r.f.hasInternal(ReverseArrayRankSpecifiers) {
		for i, j := 0, len(levels)-1; i < j; i, j = i+1, j-1 {
			levels[i], levels[j] = levels[j], levels[i]
		}
	}
	for _, lvl := range levels {
		r.rankSpecifier(lvl.Rank)
		r.annotation(lvl.Annotation)
	}
}

func (r *renderer) rankSpecifier(rank uint8) {
	r.punct("[")
	if rank > 1 {
		star := r.f.hasMisc(UseAsterisksInMultiDimensionalArrays)
		for i := range int(rank) {
			if i > 0 {
				r.punct(",")
			}
			if star {
				r.punct("*")
			}
		}
	}
	r.punct("]")
}

func (r *renderer) functionPointer(id types.TypeID) {
	info, ok := r.tab.Types.FnPtrInfo(id)
	if !ok {
		r.unknown()
		return
	}
	r.keyword("delegate")
	r.punct("*")
	if info.Convention != "" {
		r.space()
		conv, inner, bracketed := strings.Cut(info.Convention, "[")
		r.keyword(conv)
		if bracketed {
			r.punct("[")
			r.add(PartText, strings.TrimSuffix(inner, "]"), symbols.NoSymbolID)
			r.punct("]")
		}
	}
	saved := r.hideTupleNames
	r.hideTupleNames = !r.f.hasParam(ParamIncludeName)
	defer func() { r.hideTupleNames = saved }()

	r.punct("<")
	for _, p := range info.Params {
		r.refPrefix(p.Ref)
		r.typ(p.Type)
		r.punct(",")
		r.space()
	}
	r.refPrefix(info.ResultRef)
	r.typ(info.Result)
	r.punct(">")
}

// refPrefix emits a by-reference modifier and the following space.
func (r *renderer) refPrefix(ref types.RefKind) {
	switch ref {
	case types.RefRef:
		r.keywordSpace("ref")
	case types.RefOut:
		r.keywordSpace("out")
	case types.RefIn:
		r.keywordSpace("in")
	case types.RefReadOnly:
		r.keywordSpace("ref")
		r.keywordSpace("readonly")
	}
}

func (r *renderer) tuple(id types.TypeID, tt types.Type) {
	info, ok := r.tab.Types.TupleInfo(id)
	if !ok {
		r.unknown()
		return
	}
	if r.f.hasMisc(CollapseTupleTypes) {
		inner := newRenderer(r.tab, r.f.RemoveMiscOptions(CollapseTupleTypes), r.scope)
		inner.hideTupleNames = r.hideTupleNames
		inner.tuple(id, tt)
		r.add(PartStructName, inner.out.String(), symbols.NoSymbolID)
		return
	}
	if len(info.Elems) < 2 || r.f.hasMisc(ExpandValueTuple) {
		r.valueTupleChain(info.Elems)
		r.annotation(tt.Annotation)
		return
	}
	r.punct("(")
	for i, elem := range info.Elems {
		if i > 0 {
			r.punct(",")
			r.space()
		}
		r.typ(elem)
		if !r.hideTupleNames && i < len(info.Names) && info.Names[i] != "" {
			r.space()
			r.add(PartFieldName, r.ident(info.Names[i], false), symbols.NoSymbolID)
		}
	}
	r.punct(")")
	r.annotation(tt.Annotation)
}

// valueTupleChain spells a tuple as nested System.ValueTuple references,
// seven elements per level with the remainder in the last argument.
func (r *renderer) valueTupleChain(elems []types.TypeID) {
	head, rest := elems, []types.TypeID(nil)
	if len(elems) > 7 {
		head, rest = elems[:7], elems[7:]
	}
	arity := len(head)
	if rest != nil {
		arity++
	}
	if decl, ok := r.tab.LookupValueTuple(arity); ok {
		sym := r.tab.Get(decl)
		if !r.qualifier(decl) {
			r.typeName(decl, sym)
		}
	} else {
		r.add(PartStructName, "ValueTuple", symbols.NoSymbolID)
	}
	if arity == 0 || !r.f.hasGenerics(IncludeTypeParameters) {
		return
	}
	r.punct("<")
	for i, elem := range head {
		if i > 0 {
			r.punct(",")
			r.space()
		}
		r.typ(elem)
	}
	if rest != nil {
		r.punct(",")
		r.space()
		r.valueTupleChain(rest)
	}
	r.punct(">")
}
