package display

// Qualification selects how many containers prefix a type name.
type Qualification uint8

const (
	NameOnly Qualification = iota
	NameAndContainingTypes
	NameAndContainingTypesAndNamespaces
	// FullyQualified is NameAndContainingTypesAndNamespaces with the global
	// namespace always spelled out as global::.
	FullyQualified
)

// GlobalNamespaceStyle controls rendering of the root namespace.
type GlobalNamespaceStyle uint8

const (
	GlobalOmitted GlobalNamespaceStyle = iota
	GlobalOmittedAsContaining
	GlobalIncluded
)

// GenericsOptions control type parameter lists.
type GenericsOptions uint8

const (
	IncludeTypeParameters GenericsOptions = 1 << iota
	IncludeTypeConstraints
	IncludeVariance
)

// MemberOptions control member signatures.
type MemberOptions uint16

const (
	MemberIncludeType MemberOptions = 1 << iota
	MemberIncludeModifiers
	MemberIncludeAccessibility
	MemberIncludeExplicitInterface
	MemberIncludeParameters
	MemberIncludeContainingType
	MemberIncludeConstantValue
	MemberIncludeRef
)

// ParameterOptions control each entry of a parameter list.
type ParameterOptions uint8

const (
	ParamIncludeExtensionThis ParameterOptions = 1 << iota
	ParamIncludeParamsRefOut
	ParamIncludeType
	ParamIncludeName
	ParamIncludeDefaultValue
	ParamIncludeOptionalBrackets
)

// DelegateStyle controls how much of a delegate type's signature is shown.
type DelegateStyle uint8

const (
	DelegateNameOnly DelegateStyle = iota
	DelegateNameAndParameters
	DelegateNameAndSignature
)

// ExtensionMethodStyle selects static or instance spelling of extension methods.
type ExtensionMethodStyle uint8

const (
	ExtensionDefault ExtensionMethodStyle = iota
	ExtensionInstanceMethod
	ExtensionStaticMethod
)

// PropertyStyle selects whether accessors are listed.
type PropertyStyle uint8

const (
	PropertyNameOnly PropertyStyle = iota
	PropertyShowReadWriteDescriptor
)

// KindOptions add declaration keywords.
type KindOptions uint8

const (
	IncludeNamespaceKeyword KindOptions = 1 << iota
	IncludeTypeKeyword
	IncludeMemberKeyword
)

// LocalOptions control locals.
type LocalOptions uint8

const (
	LocalIncludeType LocalOptions = 1 << iota
	LocalIncludeConstantValue
	LocalIncludeRef
)

// MiscOptions are correctness and convenience toggles.
type MiscOptions uint16

const (
	UseSpecialTypes MiscOptions = 1 << iota
	EscapeKeywordIdentifiers
	UseAsterisksInMultiDimensionalArrays
	UseErrorTypeSymbolName
	RemoveAttributeSuffix
	ExpandNullable
	IncludeNullableReferenceTypeModifier
	AllowDefaultLiteral
	IncludeNotNullableReferenceTypeModifier
	CollapseTupleTypes
	ExpandValueTuple
	UseHexadecimalNumbers
)

// InternalOptions are compiler-facing switches.
type InternalOptions uint8

const (
	UseArityForGenericTypes InternalOptions = 1 << iota
	UseMetadataMethodNames
	IncludeCustomModifiers
	ReverseArrayRankSpecifiers
	UseNativeIntegerUnderlyingType
	UsePlusForNestedTypes
)
