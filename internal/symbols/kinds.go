package symbols

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolNamespace
	SymbolNamedType
	SymbolMethod
	SymbolField
	SymbolProperty
	SymbolEvent
	SymbolParameter
	SymbolLocal
	SymbolTypeParameter
	SymbolRangeVariable
	SymbolAlias
	SymbolErrorType
	SymbolLabel
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolNamespace:
		return "namespace"
	case SymbolNamedType:
		return "type"
	case SymbolMethod:
		return "method"
	case SymbolField:
		return "field"
	case SymbolProperty:
		return "property"
	case SymbolEvent:
		return "event"
	case SymbolParameter:
		return "parameter"
	case SymbolLocal:
		return "local"
	case SymbolTypeParameter:
		return "type-parameter"
	case SymbolRangeVariable:
		return "range-variable"
	case SymbolAlias:
		return "alias"
	case SymbolErrorType:
		return "error-type"
	case SymbolLabel:
		return "label"
	default:
		return "invalid"
	}
}

// IsType reports whether symbols of this kind denote types.
func (k SymbolKind) IsType() bool {
	return k == SymbolNamedType || k == SymbolErrorType || k == SymbolTypeParameter
}

// TypeKind refines SymbolNamedType.
type TypeKind uint8

const (
	TypeClass TypeKind = iota
	TypeStruct
	TypeInterface
	TypeEnum
	TypeDelegate
	TypeExtension
	TypeRecordClass
	TypeRecordStruct
)

func (k TypeKind) String() string {
	switch k {
	case TypeStruct:
		return "struct"
	case TypeInterface:
		return "interface"
	case TypeEnum:
		return "enum"
	case TypeDelegate:
		return "delegate"
	case TypeExtension:
		return "extension"
	case TypeRecordClass:
		return "record"
	case TypeRecordStruct:
		return "record struct"
	default:
		return "class"
	}
}

// IsValueType reports whether instances of the type kind are structs.
func (k TypeKind) IsValueType() bool {
	return k == TypeStruct || k == TypeEnum || k == TypeRecordStruct
}

// MethodKind refines SymbolMethod.
type MethodKind uint8

const (
	MethodOrdinary MethodKind = iota
	MethodConstructor
	MethodStaticConstructor
	MethodDestructor
	MethodPropertyGet
	MethodPropertySet
	MethodEventAdd
	MethodEventRemove
	MethodLocalFunction
	MethodOperator
	MethodConversion
	MethodDelegateInvoke
)

// IsAccessor reports property and event accessors.
func (k MethodKind) IsAccessor() bool {
	switch k {
	case MethodPropertyGet, MethodPropertySet, MethodEventAdd, MethodEventRemove:
		return true
	}
	return false
}

// Accessibility is the declared accessibility of a member or type.
type Accessibility uint8

const (
	AccessNotApplicable Accessibility = iota
	AccessPrivate
	AccessPrivateProtected
	AccessInternal
	AccessProtected
	AccessProtectedInternal
	AccessPublic
)

// Keywords returns the source keywords spelling the accessibility.
func (a Accessibility) Keywords() []string {
	switch a {
	case AccessPrivate:
		return []string{"private"}
	case AccessPrivateProtected:
		return []string{"private", "protected"}
	case AccessInternal:
		return []string{"internal"}
	case AccessProtected:
		return []string{"protected"}
	case AccessProtectedInternal:
		return []string{"protected", "internal"}
	case AccessPublic:
		return []string{"public"}
	default:
		return nil
	}
}

// Modifiers is the set of declaration modifiers on a symbol.
type Modifiers uint32

const (
	ModStatic Modifiers = 1 << iota
	ModAbstract
	ModVirtual
	ModSealed
	ModOverride
	ModReadOnly
	ModConst
	ModRequired
	ModExtern
	ModVolatile
	ModAsync
	ModUnsafe
	ModPartial
	ModRef
	ModFile
)

// Has reports whether all bits of m are set.
func (s Modifiers) Has(m Modifiers) bool { return s&m == m }

var modifierLabels = []struct {
	mod  Modifiers
	text string
}{
	{ModStatic, "static"},
	{ModAbstract, "abstract"},
	{ModVirtual, "virtual"},
	{ModSealed, "sealed"},
	{ModOverride, "override"},
	{ModReadOnly, "readonly"},
	{ModConst, "const"},
	{ModRequired, "required"},
	{ModExtern, "extern"},
	{ModVolatile, "volatile"},
	{ModAsync, "async"},
	{ModUnsafe, "unsafe"},
	{ModPartial, "partial"},
	{ModRef, "ref"},
	{ModFile, "file"},
}

// Strings returns a slice of textual modifier labels.
func (s Modifiers) Strings() []string {
	if s == 0 {
		return nil
	}
	labels := make([]string, 0, 4)
	for _, l := range modifierLabels {
		if s&l.mod != 0 {
			labels = append(labels, l.text)
		}
	}
	return labels
}

// ParseModifier maps a keyword to its modifier bit.
func ParseModifier(text string) (Modifiers, bool) {
	for _, l := range modifierLabels {
		if l.text == text {
			return l.mod, true
		}
	}
	return 0, false
}

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint32

const (
	FlagGlobalNamespace SymbolFlags = 1 << iota
	FlagFlagsEnum
	FlagAttributeType
	FlagExtensionMethod
	FlagParams
	FlagOptional
	FlagThis
	FlagScoped
	FlagIndexer
	FlagInitOnly
	FlagImplicitlyDeclared
	FlagChecked
	FlagImplicitConversion
	FlagExplicitImpl
)

// Strings returns a slice of textual flag labels.
func (f SymbolFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	names := []string{
		"global", "flags", "attribute", "extension", "params", "optional", "this",
		"scoped", "indexer", "init", "implicit-decl", "checked", "implicit", "explicit-impl",
	}
	labels := make([]string, 0, 4)
	for i, name := range names {
		if f&(1<<i) != 0 {
			labels = append(labels, name)
		}
	}
	return labels
}

// Variance of a generic type parameter.
type Variance uint8

const (
	VarianceNone Variance = iota
	VarianceIn
	VarianceOut
)

// SpecialType tags the core library types that have keyword spellings.
type SpecialType uint8

const (
	SpecialNone SpecialType = iota
	SpecialObject
	SpecialVoid
	SpecialBoolean
	SpecialChar
	SpecialSByte
	SpecialByte
	SpecialInt16
	SpecialUInt16
	SpecialInt32
	SpecialUInt32
	SpecialInt64
	SpecialUInt64
	SpecialSingle
	SpecialDouble
	SpecialDecimal
	SpecialString
	SpecialIntPtr
	SpecialUIntPtr
	SpecialNullable
	SpecialValueTuple
)

var specialNames = [...]string{
	SpecialObject:     "Object",
	SpecialVoid:       "Void",
	SpecialBoolean:    "Boolean",
	SpecialChar:       "Char",
	SpecialSByte:      "SByte",
	SpecialByte:       "Byte",
	SpecialInt16:      "Int16",
	SpecialUInt16:     "UInt16",
	SpecialInt32:      "Int32",
	SpecialUInt32:     "UInt32",
	SpecialInt64:      "Int64",
	SpecialUInt64:     "UInt64",
	SpecialSingle:     "Single",
	SpecialDouble:     "Double",
	SpecialDecimal:    "Decimal",
	SpecialString:     "String",
	SpecialIntPtr:     "IntPtr",
	SpecialUIntPtr:    "UIntPtr",
	SpecialNullable:   "Nullable",
	SpecialValueTuple: "ValueTuple",
}

// MetadataName returns the System type name for the special type.
func (s SpecialType) MetadataName() string {
	if int(s) < len(specialNames) {
		return specialNames[s]
	}
	return ""
}

// IsReferenceType reports the special types that are classes.
func (s SpecialType) IsReferenceType() bool {
	return s == SpecialObject || s == SpecialString
}

// ConstraintFlags are the keyword constraints on a type parameter.
type ConstraintFlags uint8

const (
	ConstraintClass ConstraintFlags = 1 << iota
	ConstraintNullableClass
	ConstraintStruct
	ConstraintNotNull
	ConstraintUnmanaged
	ConstraintNew
)
