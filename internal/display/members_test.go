package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symdisplay/internal/symbols"
	"symdisplay/internal/types"
)

type fixture struct {
	tab *symbols.Table
	i32 types.TypeID
	str types.TypeID
	obj types.TypeID
}

func newFixture() fixture {
	tab := newTable()
	return fixture{
		tab: tab,
		i32: tab.SpecialType(symbols.SpecialInt32),
		str: tab.SpecialType(symbols.SpecialString),
		obj: tab.SpecialType(symbols.SpecialObject),
	}
}

func (fx fixture) void() types.TypeID { return fx.tab.SpecialType(symbols.SpecialVoid) }

// extension declares a public static extension method on a new static class.
func (fx fixture) extension(class, name string) symbols.SymbolID {
	c := fx.tab.NewType(fx.tab.Global(), class, symbols.TypeClass, symbols.AccessPublic)
	fx.tab.Get(c).Modifiers |= symbols.ModStatic
	m := fx.tab.NewMethod(c, name, symbols.MethodOrdinary, symbols.AccessPublic, symbols.NoType)
	sym := fx.tab.Get(m)
	sym.Modifiers |= symbols.ModStatic
	sym.Flags |= symbols.FlagExtensionMethod
	return m
}

func TestGenericMethodSignature(t *testing.T) {
	fx := newFixture()
	c1 := fx.tab.NewType(fx.tab.Global(), "C1", symbols.TypeClass, symbols.AccessPublic)
	m := fx.extension("C2", "M")
	tsource := fx.tab.NewTypeParameter(m, "TSource")
	fx.tab.Get(m).Type = fx.tab.TypeOf(tsource)
	fx.tab.NewParameter(m, "source", fx.tab.TypeOf(c1), types.RefNone)
	fx.tab.NewParameter(m, "index", fx.i32, types.RefNone)
	reduced := fx.tab.ReduceExtension(m, fx.tab.TypeOf(c1))
	require.True(t, reduced.IsValid())

	f := NewFormat(
		Generics(IncludeTypeParameters),
		Members(MemberIncludeAccessibility|MemberIncludeType|MemberIncludeContainingType|MemberIncludeParameters),
		Params(ParamIncludeType|ParamIncludeName),
		Misc(UseSpecialTypes),
	).WithExtensionMethodStyle(ExtensionInstanceMethod)
	parts := ToParts(fx.tab, reduced, f)
	assert.Equal(t, "public TSource C1.M<TSource>(int index)", parts.String())
	assert.Equal(t, []PartKind{
		PartKeyword, PartSpace, PartTypeParameterName, PartSpace, PartClassName, PartPunctuation,
		PartExtensionMethodName, PartPunctuation, PartTypeParameterName, PartPunctuation, PartPunctuation,
		PartKeyword, PartSpace, PartParameterName, PartPunctuation,
	}, parts.Kinds())
	assert.Equal(t, tsource, parts[8].Symbol)
}

func TestRenderingIsRepeatable(t *testing.T) {
	fx := newFixture()
	c1 := fx.tab.NewType(fx.tab.Global(), "C1", symbols.TypeClass, symbols.AccessPublic)
	m := fx.extension("C2", "M")
	fx.tab.Get(m).Type = fx.tab.TypeOf(fx.tab.NewTypeParameter(m, "TSource"))
	fx.tab.NewParameter(m, "source", fx.tab.TypeOf(c1), types.RefNone)
	fx.tab.NewParameter(m, "index", fx.i32, types.RefNone)
	reduced := fx.tab.ReduceExtension(m, fx.tab.TypeOf(c1))

	for _, f := range []Format{ErrorMessageFormat, MinimalFormat, FullyQualifiedFormat} {
		first := ToParts(fx.tab, reduced, f)
		second := ToParts(fx.tab, reduced, f)
		assert.Equal(t, first, second)
		assert.Equal(t, first, ToParts(fx.tab, reduced, f))
	}
}

func TestReducedExtensionSubstitutesInferredTypes(t *testing.T) {
	fx := newFixture()
	first := fx.extension("Enumerable", "First")
	tp := fx.tab.NewTypeParameter(first, "T")
	tt := fx.tab.TypeOf(tp)
	fx.tab.Get(first).Type = tt
	fx.tab.NewParameter(first, "arr", fx.tab.Types.Array(tt, 1), types.RefNone)
	fx.tab.NewParameter(first, "other", tt, types.RefNone)

	ints := fx.tab.Types.Array(fx.i32, 1)
	reduced := fx.tab.ReduceExtension(first, ints)
	require.True(t, reduced.IsValid())

	f := NewFormat(
		Generics(IncludeTypeParameters),
		Members(MemberIncludeType|MemberIncludeContainingType|MemberIncludeParameters),
		Params(ParamIncludeType|ParamIncludeName),
		Misc(UseSpecialTypes),
	)
	assert.Equal(t, "int int[].First<int>(int other)", ToString(fx.tab, reduced, f))
	assert.Equal(t, "T Enumerable.First<T>(T[] arr, T other)", ToString(fx.tab, first, f))
	assert.Equal(t, "T Enumerable.First<T>(T[] arr, T other)",
		ToString(fx.tab, reduced, f.WithExtensionMethodStyle(ExtensionStaticMethod)))

	pair := fx.extension("Pairs", "Pair")
	tk := fx.tab.NewTypeParameter(pair, "TKey")
	tv := fx.tab.NewTypeParameter(pair, "TValue")
	fx.tab.Get(tk).Constraints.Flags = symbols.ConstraintClass
	fx.tab.Get(tv).Constraints.Flags = symbols.ConstraintStruct
	fx.tab.Get(pair).Type = fx.tab.TypeOf(tv)
	fx.tab.NewParameter(pair, "keys", fx.tab.Types.Array(fx.tab.TypeOf(tk), 1), types.RefNone)
	fx.tab.NewParameter(pair, "value", fx.tab.TypeOf(tv), types.RefNone)
	partial := fx.tab.ReduceExtension(pair, fx.tab.Types.Array(fx.str, 1))

	withConstraints := f.AddGenericsOptions(IncludeTypeConstraints)
	assert.Equal(t, "TValue string[].Pair<string, TValue>(TValue value) where TValue : struct",
		ToString(fx.tab, partial, withConstraints))

	mismatch := fx.tab.ReduceExtension(pair, fx.str)
	assert.Equal(t, "TValue string.Pair<TKey, TValue>(TValue value)", ToString(fx.tab, mismatch, f))
}

func TestDefaultParameterValues(t *testing.T) {
	fx := newFixture()
	s := fx.tab.NewType(fx.tab.Global(), "S", symbols.TypeStruct, symbols.AccessInternal)
	m := fx.tab.NewMethod(s, "M", symbols.MethodOrdinary, symbols.AccessPublic, fx.void())
	fx.tab.SetDefault(fx.tab.NewParameter(m, "i", fx.i32, types.RefNone), 1)
	fx.tab.SetDefault(fx.tab.NewParameter(m, "str", fx.str, types.RefNone), "hello")
	fx.tab.SetDefault(fx.tab.NewParameter(m, "o", fx.obj, types.RefNone), nil)
	fx.tab.SetDefault(fx.tab.NewParameter(m, "s", fx.tab.TypeOf(s), types.RefNone), nil)

	f := NewFormat(
		Members(MemberIncludeType|MemberIncludeContainingType|MemberIncludeParameters),
		Params(ParamIncludeType|ParamIncludeName|ParamIncludeDefaultValue),
		Misc(UseSpecialTypes),
	)
	assert.Equal(t, `void S.M(int i = 1, string str = "hello", object o = null, S s = default(S))`, ToString(fx.tab, m, f))
	assert.Equal(t, `void S.M(int i = 1, string str = "hello", object o = null, S s = default)`,
		ToString(fx.tab, m, f.AddMiscOptions(AllowDefaultLiteral)))
	assert.Equal(t, `void S.M([int i = 1], [string str = "hello"], [object o = null], [S s = default(S)])`,
		ToString(fx.tab, m, f.AddParameterOptions(ParamIncludeOptionalBrackets)))
	assert.Equal(t, `void S.M([int], [string], [object], [S])`,
		ToString(fx.tab, m, f.RemoveParameterOptions(ParamIncludeName|ParamIncludeDefaultValue).AddParameterOptions(ParamIncludeOptionalBrackets)))
}

func TestParameterModifiers(t *testing.T) {
	fx := newFixture()
	c := fx.tab.NewType(fx.tab.Global(), "C", symbols.TypeClass, symbols.AccessPublic)
	m := fx.tab.NewMethod(c, "M", symbols.MethodOrdinary, symbols.AccessPublic, fx.void())
	a := fx.tab.NewParameter(m, "a", fx.i32, types.RefRef)
	fx.tab.Get(a).Flags |= symbols.FlagScoped
	o := fx.tab.NewParameter(m, "o", fx.i32, types.RefOut)
	fx.tab.Get(o).Flags |= symbols.FlagScoped
	fx.tab.NewParameter(m, "r", fx.i32, types.RefReadOnly)
	rest := fx.tab.NewParameter(m, "rest", fx.tab.Types.Array(fx.i32, 1), types.RefNone)
	fx.tab.Get(rest).Flags |= symbols.FlagParams

	f := NewFormat(
		Members(MemberIncludeParameters),
		Params(ParamIncludeParamsRefOut|ParamIncludeType|ParamIncludeName),
		Misc(UseSpecialTypes),
	)
	assert.Equal(t, "M(scoped ref int a, out int o, ref readonly int r, params int[] rest)", ToString(fx.tab, m, f))
	assert.Equal(t, "M(int a, int o, int r, int[] rest)",
		ToString(fx.tab, m, f.RemoveParameterOptions(ParamIncludeParamsRefOut)))
	assert.Equal(t, "M(a, o, r, rest)", ToString(fx.tab, m, f.WithParameterOptions(ParamIncludeName)))
}

func TestDelegateStyles(t *testing.T) {
	fx := newFixture()
	d, invoke := fx.tab.NewDelegate(fx.tab.Global(), "D", symbols.AccessPublic, fx.void())
	fx.tab.NewParameter(invoke, "param", fx.tab.TypeOf(d), types.RefNone)

	recursive := ErrorMessageFormat.
		AddKindOptions(IncludeTypeKeyword).
		WithDelegateStyle(DelegateNameAndSignature)
	assert.Equal(t, "delegate void D(D)", ToString(fx.tab, d, recursive))

	named := NewFormat(Delegates(DelegateNameAndSignature), Params(ParamIncludeType|ParamIncludeName))
	assert.Equal(t, "void D(D param)", ToString(fx.tab, d, named))
	assert.Equal(t, "D(D param)", ToString(fx.tab, d, named.WithDelegateStyle(DelegateNameAndParameters)))
	assert.Equal(t, "D", ToString(fx.tab, d, named.WithDelegateStyle(DelegateNameOnly)))
}

func TestTypeKeywordsAndConstraints(t *testing.T) {
	fx := newFixture()
	cmp := fx.tab.NewType(fx.tab.Global(), "IComparable", symbols.TypeInterface, symbols.AccessPublic)
	ct := fx.tab.NewTypeParameter(cmp, "T")
	fx.tab.Get(ct).Variance = symbols.VarianceIn
	g := fx.tab.NewType(fx.tab.Global(), "G", symbols.TypeClass, symbols.AccessPublic)
	gt := fx.tab.NewTypeParameter(g, "T")
	gu := fx.tab.NewTypeParameter(g, "U")
	fx.tab.Get(gt).Constraints = symbols.Constraints{
		Flags: symbols.ConstraintClass | symbols.ConstraintNew,
		Types: []types.TypeID{fx.tab.TypeOf(cmp, fx.tab.TypeOf(gt))},
	}
	fx.tab.Get(gu).Constraints = symbols.Constraints{Flags: symbols.ConstraintStruct}

	f := NewFormat(Generics(IncludeTypeParameters|IncludeTypeConstraints), Kinds(IncludeTypeKeyword))
	assert.Equal(t, "class G<T, U> where T : class, IComparable<T>, new() where U : struct", ToString(fx.tab, g, f))
	assert.Equal(t, "interface IComparable<T>", ToString(fx.tab, cmp, f))
	assert.Equal(t, "interface IComparable<in T>", ToString(fx.tab, cmp, f.AddGenericsOptions(IncludeVariance)))

	rs := fx.tab.NewType(fx.tab.Global(), "P", symbols.TypeRecordStruct, symbols.AccessPublic)
	fx.tab.Get(rs).Modifiers |= symbols.ModReadOnly
	assert.Equal(t, "readonly record struct P", ToString(fx.tab, rs, f))
	rc := fx.tab.NewType(fx.tab.Global(), "R", symbols.TypeRecordClass, symbols.AccessPublic)
	assert.Equal(t, "record R", ToString(fx.tab, rc, f))
}

func TestKeywordEscaping(t *testing.T) {
	fx := newFixture()
	rec := fx.tab.NewType(fx.tab.Global(), "record", symbols.TypeClass, symbols.AccessPublic)
	m := fx.tab.NewMethod(rec, "record", symbols.MethodOrdinary, symbols.AccessPublic, fx.void())
	cls := fx.tab.NewMethod(rec, "class", symbols.MethodOrdinary, symbols.AccessPublic, fx.void())

	f := NewFormat(Members(MemberIncludeContainingType), Misc(EscapeKeywordIdentifiers))
	assert.Equal(t, "@record", ToString(fx.tab, rec, f))
	assert.Equal(t, "@record.record", ToString(fx.tab, m, f))
	assert.Equal(t, "@record.@class", ToString(fx.tab, cls, f))
	assert.Equal(t, "record.class", ToString(fx.tab, cls, f.RemoveMiscOptions(EscapeKeywordIdentifiers)))
}

func TestRemoveAttributeSuffix(t *testing.T) {
	fx := newFixture()
	f := NewFormat(Misc(RemoveAttributeSuffix))
	tests := []struct {
		name      string
		attribute bool
		want      string
	}{
		{"class1Attribute", true, "class1"},
		{"ObsoleteAttribute", true, "Obsolete"},
		{"classAttribute", true, "classAttribute"},
		{"Attribute", true, "Attribute"},
		{"PlainAttribute", false, "PlainAttribute"},
	}
	for _, tt := range tests {
		id := fx.tab.NewType(fx.tab.Global(), tt.name, symbols.TypeClass, symbols.AccessPublic)
		if tt.attribute {
			fx.tab.Get(id).Flags |= symbols.FlagAttributeType
		}
		assert.Equal(t, tt.want, ToString(fx.tab, id, f), tt.name)
	}
}

func TestPropertiesAndAccessors(t *testing.T) {
	fx := newFixture()
	c := fx.tab.NewType(fx.tab.Global(), "C", symbols.TypeClass, symbols.AccessPublic)
	p := fx.tab.NewProperty(c, "P", fx.i32, symbols.AccessPublic)
	get := fx.tab.AddGetter(p, symbols.AccessPublic)
	set := fx.tab.AddSetter(p, symbols.AccessPrivate, false)
	handler := fx.tab.TypeOf(fx.tab.NewType(fx.tab.Global(), "EventHandler", symbols.TypeDelegate, symbols.AccessPublic))
	e := fx.tab.NewEvent(c, "E", handler, symbols.AccessPublic)

	container := NewFormat(Members(MemberIncludeContainingType))
	assert.Equal(t, "C.P.get", ToString(fx.tab, get, container))
	assert.Equal(t, "C.P.set", ToString(fx.tab, set, container))
	assert.Equal(t, "C.E.add", ToString(fx.tab, fx.tab.Get(e).Adder, container))
	assert.Equal(t, "C.E.remove", ToString(fx.tab, fx.tab.Get(e).Remover, container))
	assert.Equal(t, "C.get_P", ToString(fx.tab, get, container.AddInternalOptions(UseMetadataMethodNames)))

	descriptor := NewFormat(
		Members(MemberIncludeType|MemberIncludeAccessibility),
		Properties(PropertyShowReadWriteDescriptor),
		Misc(UseSpecialTypes),
	)
	assert.Equal(t, "public int P { get; private set; }", ToString(fx.tab, p, descriptor))
	assert.Equal(t, "int P { get; set; }", ToString(fx.tab, p, descriptor.RemoveMemberOptions(MemberIncludeAccessibility)))
	assert.Equal(t, "public int P", ToString(fx.tab, p, descriptor.WithPropertyStyle(PropertyNameOnly)))

	init := fx.tab.NewProperty(c, "Q", fx.str, symbols.AccessPublic)
	fx.tab.AddGetter(init, symbols.AccessPublic)
	fx.tab.AddSetter(init, symbols.AccessPublic, true)
	assert.Equal(t, "public string Q { get; init; }", ToString(fx.tab, init, descriptor))

	assert.Equal(t, "public event EventHandler E",
		ToString(fx.tab, e, NewFormat(Members(MemberIncludeType|MemberIncludeAccessibility), Kinds(IncludeMemberKeyword))))
}

func TestReadOnlyAccessorShownOnce(t *testing.T) {
	fx := newFixture()
	s := fx.tab.NewType(fx.tab.Global(), "S", symbols.TypeStruct, symbols.AccessPublic)
	p := fx.tab.NewProperty(s, "P", fx.i32, symbols.AccessPublic)
	get := fx.tab.AddGetter(p, symbols.AccessPublic)
	fx.tab.AddSetter(p, symbols.AccessPublic, false)
	fx.tab.Get(get).Modifiers |= symbols.ModReadOnly

	f := NewFormat(
		Members(MemberIncludeType|MemberIncludeModifiers),
		Properties(PropertyShowReadWriteDescriptor),
		Misc(UseSpecialTypes),
	)
	assert.Equal(t, "int P { readonly get; set; }", ToString(fx.tab, p, f))

	fx.tab.Get(p).Modifiers |= symbols.ModReadOnly
	assert.Equal(t, "readonly int P { get; set; }", ToString(fx.tab, p, f))
}

func TestIndexer(t *testing.T) {
	fx := newFixture()
	c := fx.tab.NewType(fx.tab.Global(), "C", symbols.TypeClass, symbols.AccessPublic)
	idx := fx.tab.NewProperty(c, "this[]", fx.str, symbols.AccessPublic)
	fx.tab.NewParameter(idx, "i", fx.i32, types.RefNone)
	get := fx.tab.AddGetter(idx, symbols.AccessPublic)

	f := NewFormat(
		Members(MemberIncludeType|MemberIncludeParameters|MemberIncludeContainingType),
		Params(ParamIncludeType|ParamIncludeName),
		Misc(UseSpecialTypes),
	)
	assert.Equal(t, "string C.this[int i]", ToString(fx.tab, idx, f))
	assert.Equal(t, "string C.this[int i].get", ToString(fx.tab, get, f))
	assert.Equal(t, "string C.get_Item", ToString(fx.tab, get, f.AddInternalOptions(UseMetadataMethodNames)))
}

func TestSpecialMethodNames(t *testing.T) {
	fx := newFixture()
	c := fx.tab.NewType(fx.tab.Global(), "C", symbols.TypeClass, symbols.AccessPublic)
	ctor := fx.tab.NewMethod(c, ".ctor", symbols.MethodConstructor, symbols.AccessPublic, symbols.NoType)
	fx.tab.NewParameter(ctor, "x", fx.i32, types.RefNone)
	cctor := fx.tab.NewMethod(c, ".cctor", symbols.MethodStaticConstructor, symbols.AccessPrivate, symbols.NoType)
	dtor := fx.tab.NewMethod(c, "Finalize", symbols.MethodDestructor, symbols.AccessProtected, symbols.NoType)
	ct := fx.tab.TypeOf(c)
	add := fx.tab.NewMethod(c, "op_Addition", symbols.MethodOperator, symbols.AccessPublic, ct)
	fx.tab.NewParameter(add, "a", ct, types.RefNone)
	fx.tab.NewParameter(add, "b", ct, types.RefNone)
	conv := fx.tab.NewMethod(c, "op_Implicit", symbols.MethodConversion, symbols.AccessPublic, fx.i32)
	fx.tab.NewParameter(conv, "c", ct, types.RefNone)

	f := NewFormat(
		Members(MemberIncludeType|MemberIncludeParameters|MemberIncludeContainingType),
		Params(ParamIncludeType),
		Misc(UseSpecialTypes),
	)
	metadata := f.AddInternalOptions(UseMetadataMethodNames)

	tests := []struct {
		id       symbols.SymbolID
		want     string
		metadata string
	}{
		{ctor, "C.C(int)", "C..ctor(int)"},
		{cctor, "C.C()", "C..cctor()"},
		{dtor, "C.~C()", "C.Finalize()"},
		{add, "C C.operator +(C, C)", "C C.op_Addition(C, C)"},
		{conv, "C.implicit operator int(C)", "C.op_Implicit(C)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToString(fx.tab, tt.id, f))
		assert.Equal(t, tt.metadata, ToString(fx.tab, tt.id, metadata))
	}
	parts := ToParts(fx.tab, add, NewFormat())
	require.NotEmpty(t, parts)
	assert.Equal(t, PartOperator, parts[len(parts)-1].Kind)
}

func TestExtensionMethodForms(t *testing.T) {
	fx := newFixture()
	ext := fx.tab.NewType(fx.tab.Global(), "Ext", symbols.TypeClass, symbols.AccessPublic)
	boolType := fx.tab.SpecialType(symbols.SpecialBoolean)
	m := fx.tab.NewMethod(ext, "IsEmpty", symbols.MethodOrdinary, symbols.AccessPublic, boolType)
	sym := fx.tab.Get(m)
	sym.Modifiers |= symbols.ModStatic
	sym.Flags |= symbols.FlagExtensionMethod
	fx.tab.NewParameter(m, "s", fx.str, types.RefNone)
	fx.tab.NewParameter(m, "n", fx.i32, types.RefNone)
	reduced := fx.tab.ReduceExtension(m, fx.str)
	require.True(t, reduced.IsValid())

	f := NewFormat(
		Members(MemberIncludeType|MemberIncludeParameters|MemberIncludeContainingType|MemberIncludeModifiers),
		Params(ParamIncludeType|ParamIncludeName|ParamIncludeExtensionThis),
		Misc(UseSpecialTypes),
	)
	static := "static bool Ext.IsEmpty(this string s, int n)"
	instance := "bool string.IsEmpty(int n)"

	assert.Equal(t, static, ToString(fx.tab, m, f))
	assert.Equal(t, instance, ToString(fx.tab, reduced, f))
	assert.Equal(t, static, ToString(fx.tab, reduced, f.WithExtensionMethodStyle(ExtensionStaticMethod)))
	assert.Equal(t, instance, ToString(fx.tab, m, f.WithExtensionMethodStyle(ExtensionInstanceMethod)))
	assert.Equal(t, "static bool Ext.IsEmpty(string s, int n)",
		ToString(fx.tab, m, f.RemoveParameterOptions(ParamIncludeExtensionThis)))

	parts := ToParts(fx.tab, reduced, NewFormat())
	require.Len(t, parts, 1)
	assert.Equal(t, PartExtensionMethodName, parts[0].Kind)
}

func TestMemberAccessibilityAndModifiers(t *testing.T) {
	fx := newFixture()
	c := fx.tab.NewType(fx.tab.Global(), "C", symbols.TypeClass, symbols.AccessPublic)
	i := fx.tab.NewType(fx.tab.Global(), "I", symbols.TypeInterface, symbols.AccessPublic)
	f := NewFormat(
		Members(MemberIncludeAccessibility|MemberIncludeModifiers|MemberIncludeType|MemberIncludeParameters),
		Misc(UseSpecialTypes),
	)

	abs := fx.tab.NewMethod(c, "F", symbols.MethodOrdinary, symbols.AccessPublic, fx.obj)
	fx.tab.Get(abs).Modifiers |= symbols.ModAbstract
	assert.Equal(t, "public abstract object F()", ToString(fx.tab, abs, f))

	ovr := fx.tab.NewMethod(c, "G", symbols.MethodOrdinary, symbols.AccessProtectedInternal, fx.void())
	fx.tab.Get(ovr).Modifiers |= symbols.ModOverride | symbols.ModSealed
	assert.Equal(t, "protected internal override sealed void G()", ToString(fx.tab, ovr, f))

	im := fx.tab.NewMethod(i, "M", symbols.MethodOrdinary, symbols.AccessPublic, fx.void())
	fx.tab.Get(im).Modifiers |= symbols.ModAbstract
	assert.Equal(t, "void M()", ToString(fx.tab, im, f))

	local := fx.tab.NewMethod(abs, "Local", symbols.MethodLocalFunction, symbols.AccessPrivate, fx.i32)
	assert.Equal(t, "int Local()", ToString(fx.tab, local, f.AddMemberOptions(MemberIncludeContainingType)))

	ret := fx.tab.NewMethod(c, "Ref", symbols.MethodOrdinary, symbols.AccessPrivate, fx.i32)
	fx.tab.Get(ret).RefKind = types.RefReadOnly
	assert.Equal(t, "private ref readonly int Ref()", ToString(fx.tab, ret, f.AddMemberOptions(MemberIncludeRef)))
	assert.Equal(t, "private int Ref()", ToString(fx.tab, ret, f))
}

func TestExplicitInterfaceImplementation(t *testing.T) {
	fx := newFixture()
	i := fx.tab.NewType(fx.tab.NamespacePath("N"), "I", symbols.TypeInterface, symbols.AccessPublic)
	c := fx.tab.NewType(fx.tab.Global(), "C", symbols.TypeClass, symbols.AccessPublic)
	m := fx.tab.NewMethod(c, "N.I.M", symbols.MethodOrdinary, symbols.AccessPrivate, fx.void())
	fx.tab.Get(m).ExplicitInterface = fx.tab.TypeOf(i)

	tests := []struct {
		opts MemberOptions
		want string
	}{
		{0, "M"},
		{MemberIncludeExplicitInterface, "I.M"},
		{MemberIncludeExplicitInterface | MemberIncludeContainingType, "C.I.M"},
		{MemberIncludeContainingType, "C.M"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToString(fx.tab, m, NewFormat(Members(tt.opts))))
	}
}

func TestFieldsLocalsAndMisc(t *testing.T) {
	fx := newFixture()
	c := fx.tab.NewType(fx.tab.Global(), "C", symbols.TypeClass, symbols.AccessPublic)
	max := fx.tab.NewConstant(c, "Max", fx.i32, symbols.AccessPublic, 10)
	fld := fx.tab.NewField(c, "count", fx.i32, symbols.AccessPrivate)
	fx.tab.Get(fld).Modifiers |= symbols.ModStatic | symbols.ModReadOnly

	members := NewFormat(
		Members(MemberIncludeAccessibility|MemberIncludeModifiers|MemberIncludeType|MemberIncludeConstantValue),
		Misc(UseSpecialTypes),
	)
	assert.Equal(t, "public const int Max = 10", ToString(fx.tab, max, members))
	assert.Equal(t, "private static readonly int count", ToString(fx.tab, fld, members))

	maxParts := ToParts(fx.tab, max, NewFormat())
	require.Len(t, maxParts, 1)
	assert.Equal(t, PartConstantName, maxParts[0].Kind)

	m := fx.tab.NewMethod(c, "M", symbols.MethodOrdinary, symbols.AccessPublic, fx.void())
	x := fx.tab.NewLocal(m, "x", fx.str)
	fx.tab.Get(x).Constant = &symbols.ConstantValue{Value: "hi\n"}
	r := fx.tab.NewLocal(m, "r", fx.i32)
	fx.tab.Get(r).RefKind = types.RefRef
	locals := NewFormat(Locals(LocalIncludeType|LocalIncludeConstantValue|LocalIncludeRef), Misc(UseSpecialTypes))
	assert.Equal(t, `string x = "hi\n"`, ToString(fx.tab, x, locals))
	assert.Equal(t, "ref int r", ToString(fx.tab, r, locals))
	assert.Equal(t, "x", ToString(fx.tab, x, NewFormat()))

	rv := fx.tab.NewRangeVariable(m, "item")
	lbl := fx.tab.NewLabel(m, "done")
	assert.Equal(t, Parts{{Kind: PartRangeVariableName, Text: "item", Symbol: rv}}, ToParts(fx.tab, rv, NewFormat()))
	assert.Equal(t, Parts{{Kind: PartLabelName, Text: "done", Symbol: lbl}}, ToParts(fx.tab, lbl, NewFormat()))

	alias := fx.tab.NewAlias("Cee", c)
	assert.Equal(t, "Cee", ToString(fx.tab, alias, NewFormat()))
	assert.Equal(t, "Cee = C", ToString(fx.tab, alias, NewFormat(Locals(LocalIncludeType))))
}

func TestCustomModifiers(t *testing.T) {
	fx := newFixture()
	isConst := fx.tab.NewType(fx.tab.Global(), "IsConst", symbols.TypeClass, symbols.AccessPublic)
	c := fx.tab.NewType(fx.tab.Global(), "C", symbols.TypeClass, symbols.AccessPublic)
	fld := fx.tab.NewField(c, "F", fx.i32, symbols.AccessPublic)
	fx.tab.Get(fld).CustomModifiers = []symbols.CustomModifier{{Type: fx.tab.TypeOf(isConst)}}

	f := NewFormat(Members(MemberIncludeType), Misc(UseSpecialTypes))
	assert.Equal(t, "int F", ToString(fx.tab, fld, f))
	assert.Equal(t, "int modopt(IsConst) F", ToString(fx.tab, fld, f.AddInternalOptions(IncludeCustomModifiers)))
}
