package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symdisplay/internal/symbols"
	"symdisplay/internal/types"
)

var keywordTypes = NewFormat(Misc(UseSpecialTypes), Generics(IncludeTypeParameters))

func TestArrayRankSpecifiers(t *testing.T) {
	tab := newTable()
	c := tab.TypeOf(tab.NewType(tab.Global(), "C", symbols.TypeClass, symbols.AccessPublic))
	jagged := tab.Types.Array(tab.Types.Array(c, 2), 1)
	intGrid := tab.Types.Array(tab.SpecialType(symbols.SpecialInt32), 2)

	tests := []struct {
		name string
		typ  types.TypeID
		f    Format
		want string
	}{
		{"outer first", jagged, Format{}, "C[][,]"},
		{"reversed", jagged, NewFormat(Internal(ReverseArrayRankSpecifiers)), "C[,][]"},
		{"commas", intGrid, keywordTypes, "int[,]"},
		{"asterisks", intGrid, keywordTypes.AddMiscOptions(UseAsterisksInMultiDimensionalArrays), "int[*,*]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeToParts(tab, tt.typ, tt.f).String())
		})
	}
}

func TestSpecialTypesAndNullable(t *testing.T) {
	tab := newTable()
	i32 := tab.SpecialType(symbols.SpecialInt32)
	nullable := tab.NullableOf(i32)
	qualified := NewFormat(Qualify(NameAndContainingTypesAndNamespaces), Generics(IncludeTypeParameters))

	assert.Equal(t, "int", TypeToParts(tab, i32, keywordTypes).String())
	assert.Equal(t, "System.Int32", TypeToParts(tab, i32, qualified).String())
	assert.Equal(t, "int?", TypeToParts(tab, nullable, keywordTypes).String())
	assert.Equal(t, "Nullable<int>", TypeToParts(tab, nullable, keywordTypes.AddMiscOptions(ExpandNullable)).String())
	assert.Equal(t, "System.Int32?", TypeToParts(tab, nullable, qualified).String())

	parts := TypeToParts(tab, i32, keywordTypes)
	require.Len(t, parts, 1)
	assert.Equal(t, PartKeyword, parts[0].Kind)
}

func TestNullableReferenceAnnotations(t *testing.T) {
	tab := newTable()
	str := tab.SpecialType(symbols.SpecialString)
	maybe := tab.Types.Annotate(str, types.AnnotationNullable)
	never := tab.Types.Annotate(str, types.AnnotationNotNull)
	arr := tab.Types.Annotate(tab.Types.Array(maybe, 1), types.AnnotationNullable)

	withQ := keywordTypes.AddMiscOptions(IncludeNullableReferenceTypeModifier)
	withBoth := withQ.AddMiscOptions(IncludeNotNullableReferenceTypeModifier)

	assert.Equal(t, "string", TypeToParts(tab, maybe, keywordTypes).String())
	assert.Equal(t, "string?", TypeToParts(tab, maybe, withQ).String())
	assert.Equal(t, "string", TypeToParts(tab, never, withQ).String())
	assert.Equal(t, "string!", TypeToParts(tab, never, withBoth).String())
	assert.Equal(t, "string?[]?", TypeToParts(tab, arr, withQ).String())
}

func TestTuples(t *testing.T) {
	tab := newTable()
	tab.ValueTuple(2)
	i32 := tab.SpecialType(symbols.SpecialInt32)
	str := tab.SpecialType(symbols.SpecialString)
	named := tab.Types.Tuple([]types.TypeID{i32, str}, []string{"a", "b"})
	plain := tab.Types.Tuple([]types.TypeID{i32, str}, nil)

	assert.Equal(t, "(int a, string b)", TypeToParts(tab, named, keywordTypes).String())
	assert.Equal(t, "(int, string)", TypeToParts(tab, plain, keywordTypes).String())
	assert.Equal(t, "ValueTuple<int, string>",
		TypeToParts(tab, named, keywordTypes.AddMiscOptions(ExpandValueTuple)).String())

	collapsed := TypeToParts(tab, named, keywordTypes.AddMiscOptions(CollapseTupleTypes))
	require.Len(t, collapsed, 1)
	assert.Equal(t, Part{Kind: PartStructName, Text: "(int a, string b)"}, collapsed[0])

	elems := TypeToParts(tab, named, keywordTypes)
	assert.Equal(t, []PartKind{
		PartPunctuation, PartKeyword, PartSpace, PartFieldName, PartPunctuation,
		PartSpace, PartKeyword, PartSpace, PartFieldName, PartPunctuation,
	}, elems.Kinds())
}

func TestLongTupleChain(t *testing.T) {
	tab := newTable()
	tab.ValueTuple(8)
	tab.ValueTuple(2)
	i32 := tab.SpecialType(symbols.SpecialInt32)
	elems := make([]types.TypeID, 9)
	for i := range elems {
		elems[i] = i32
	}
	tuple := tab.Types.Tuple(elems, nil)

	assert.Equal(t, "(int, int, int, int, int, int, int, int, int)", TypeToParts(tab, tuple, keywordTypes).String())
	assert.Equal(t,
		"ValueTuple<int, int, int, int, int, int, int, ValueTuple<int, int>>",
		TypeToParts(tab, tuple, keywordTypes.AddMiscOptions(ExpandValueTuple)).String())
}

func TestPointersAndNativeIntegers(t *testing.T) {
	tab := newTable()
	i32 := tab.SpecialType(symbols.SpecialInt32)
	nint := tab.Types.NativeInt(tab.SpecialType(symbols.SpecialIntPtr))
	nuint := tab.Types.NativeInt(tab.SpecialType(symbols.SpecialUIntPtr))

	assert.Equal(t, "int*", TypeToParts(tab, tab.Types.Pointer(i32), keywordTypes).String())
	assert.Equal(t, "int**", TypeToParts(tab, tab.Types.Pointer(tab.Types.Pointer(i32)), keywordTypes).String())
	assert.Equal(t, "nint", TypeToParts(tab, nint, keywordTypes).String())
	assert.Equal(t, "nuint", TypeToParts(tab, nuint, keywordTypes).String())
	assert.Equal(t, "IntPtr",
		TypeToParts(tab, nint, keywordTypes.AddInternalOptions(UseNativeIntegerUnderlyingType)).String())
}

func TestFunctionPointers(t *testing.T) {
	tab := newTable()
	tab.ValueTuple(2)
	i32 := tab.SpecialType(symbols.SpecialInt32)
	void := tab.SpecialType(symbols.SpecialVoid)
	pair := tab.Types.Tuple([]types.TypeID{i32, i32}, []string{"x", "y"})

	fp := tab.Types.FunctionPointer(types.FnPtrInfo{
		Params: []types.FnParam{{Type: i32, Ref: types.RefRef}, {Type: pair}},
		Result: void,
	})
	assert.Equal(t, "delegate*<ref int, (int, int), void>", TypeToParts(tab, fp, keywordTypes).String())
	assert.Equal(t, "delegate*<ref int, (int x, int y), void>",
		TypeToParts(tab, fp, keywordTypes.AddParameterOptions(ParamIncludeName)).String())

	unmanaged := tab.Types.FunctionPointer(types.FnPtrInfo{
		Params:     []types.FnParam{{Type: i32, Ref: types.RefIn}},
		Result:     i32,
		ResultRef:  types.RefReadOnly,
		Convention: "unmanaged[Cdecl]",
	})
	assert.Equal(t, "delegate* unmanaged[Cdecl]<in int, ref readonly int>",
		TypeToParts(tab, unmanaged, keywordTypes).String())
}

func TestGenericArgumentsAndErrorTypes(t *testing.T) {
	tab := newTable()
	gc1 := tab.NewType(tab.Global(), "GC1", symbols.TypeClass, symbols.AccessPublic)
	tab.NewTypeParameter(gc1, "T")
	bogus := tab.NewErrorType(tab.Global(), "BOGUS", 0)
	typ := tab.TypeOf(gc1, tab.TypeOf(bogus))

	parts := TypeToParts(tab, typ, NewFormat(Generics(IncludeTypeParameters)))
	assert.Equal(t, "GC1<BOGUS>", parts.String())
	assert.Equal(t, []PartKind{PartClassName, PartPunctuation, PartErrorTypeName, PartPunctuation}, parts.Kinds())

	assert.Equal(t, "GC1", TypeToParts(tab, typ, Format{}).String())
	assert.Equal(t, "?", TypeToParts(tab, types.NoTypeID, Format{}).String())
}

func TestErrorTypeCandidate(t *testing.T) {
	tab := newTable()
	c := tab.NewType(tab.NamespacePath("N"), "Widget", symbols.TypeClass, symbols.AccessPublic)
	bad := tab.NewErrorType(tab.Global(), "Widgt", 0)
	tab.Get(bad).Target = c
	qualified := NewFormat(Qualify(NameAndContainingTypesAndNamespaces))

	assert.Equal(t, "N.Widget", TypeToParts(tab, tab.TypeOf(bad), qualified).String())
	assert.Equal(t, "Widgt", TypeToParts(tab, tab.TypeOf(bad), qualified.AddMiscOptions(UseErrorTypeSymbolName)).String())
}

func TestDynamicAndTypeParameters(t *testing.T) {
	tab := newTable()
	m := tab.NewMethod(tab.NewType(tab.Global(), "C", symbols.TypeClass, symbols.AccessPublic),
		"M", symbols.MethodOrdinary, symbols.AccessPublic, symbols.NoType)
	tp := tab.NewTypeParameter(m, "T")

	assert.Equal(t, "dynamic", TypeToParts(tab, tab.Types.Dynamic(), Format{}).String())
	parts := TypeToParts(tab, tab.TypeOf(tp), Format{})
	require.Len(t, parts, 1)
	assert.Equal(t, Part{Kind: PartTypeParameterName, Text: "T", Symbol: tp}, parts[0])
}

func TestMinimalTypeReference(t *testing.T) {
	tab := newTable()
	_, c1, c2 := nestedClasses(tab)
	root := tab.FileRoot(testFile, span(0, 0))
	tab.NewScope(symbols.ScopeType, root, c1, span(10, 50))

	typ := tab.TypeOf(c2)
	assert.Equal(t, "C2", TypeToMinimalParts(tab, typ, tab.ScopeAt(testFile, 20), MinimalFormat).String())
	assert.Equal(t, "N1.N2.N3.C1.C2", TypeToMinimalParts(tab, typ, tab.ScopeAt(testFile, 60), MinimalFormat).String())
}
