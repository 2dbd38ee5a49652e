package display

// Format is an immutable rendering configuration. The zero value renders bare
// names with no optional decorations. Every With, Add and Remove method returns
// a modified copy.
type Format struct {
	global     GlobalNamespaceStyle
	qual       Qualification
	generics   GenericsOptions
	members    MemberOptions
	params     ParameterOptions
	delegates  DelegateStyle
	extensions ExtensionMethodStyle
	props      PropertyStyle
	kinds      KindOptions
	locals     LocalOptions
	misc       MiscOptions
	internal   InternalOptions
}

// FormatOption sets one group of a Format under construction.
type FormatOption func(*Format)

// NewFormat builds a format from the zero value.
func NewFormat(opts ...FormatOption) Format {
	var f Format
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// Qualify sets how containers are spelled.
func Qualify(q Qualification) FormatOption {
	return func(f *Format) { f.qual = q }
}

// GlobalStyle sets how the global namespace is shown.
func GlobalStyle(s GlobalNamespaceStyle) FormatOption {
	return func(f *Format) { f.global = s }
}

// Generics sets the generics options.
func Generics(g GenericsOptions) FormatOption {
	return func(f *Format) { f.generics = g }
}

// Members sets the member options.
func Members(m MemberOptions) FormatOption {
	return func(f *Format) { f.members = m }
}

// Params sets the parameter options.
func Params(p ParameterOptions) FormatOption {
	return func(f *Format) { f.params = p }
}

// Delegates sets how delegates are shown.
func Delegates(d DelegateStyle) FormatOption {
	return func(f *Format) { f.delegates = d }
}

// Extensions sets how extension methods are shown.
func Extensions(e ExtensionMethodStyle) FormatOption {
	return func(f *Format) { f.extensions = e }
}

// Properties sets how properties are shown.
func Properties(p PropertyStyle) FormatOption {
	return func(f *Format) { f.props = p }
}

// Kinds sets the kind keyword options.
func Kinds(k KindOptions) FormatOption {
	return func(f *Format) { f.kinds = k }
}

// Locals sets the local options.
func Locals(l LocalOptions) FormatOption {
	return func(f *Format) { f.locals = l }
}

// Misc sets the miscellaneous options.
func Misc(m MiscOptions) FormatOption {
	return func(f *Format) { f.misc = m }
}

// Internal sets the internal options.
func Internal(i InternalOptions) FormatOption {
	return func(f *Format) { f.internal = i }
}

// Qualification returns the qualification setting.
func (f Format) Qualification() Qualification {
	return f.qual
}

// GlobalNamespaceStyle returns the global namespace style setting.
func (f Format) GlobalNamespaceStyle() GlobalNamespaceStyle {
	return f.global
}

// GenericsOptions returns the generics options setting.
func (f Format) GenericsOptions() GenericsOptions {
	return f.generics
}

// MemberOptions returns the member options setting.
func (f Format) MemberOptions() MemberOptions {
	return f.members
}

// ParameterOptions returns the parameter options setting.
func (f Format) ParameterOptions() ParameterOptions {
	return f.params
}

// DelegateStyle returns the delegate style setting.
func (f Format) DelegateStyle() DelegateStyle {
	return f.delegates
}

// ExtensionMethodStyle returns the extension method style setting.
func (f Format) ExtensionMethodStyle() ExtensionMethodStyle {
	return f.extensions
}

// PropertyStyle returns the property style setting.
func (f Format) PropertyStyle() PropertyStyle {
	return f.props
}

// KindOptions returns the kind options setting.
func (f Format) KindOptions() KindOptions {
	return f.kinds
}

// LocalOptions returns the local options setting.
func (f Format) LocalOptions() LocalOptions {
	return f.locals
}

// MiscOptions returns the misc options setting.
func (f Format) MiscOptions() MiscOptions {
	return f.misc
}

// InternalOptions returns the internal options setting.
func (f Format) InternalOptions() InternalOptions {
	return f.internal
}

// WithQualification returns a copy with the qualification replaced.
func (f Format) WithQualification(q Qualification) Format {
	f.qual = q
	return f
}

// WithGlobalNamespaceStyle returns a copy with the global namespace style replaced.
func (f Format) WithGlobalNamespaceStyle(s GlobalNamespaceStyle) Format {
	f.global = s
	return f
}

// WithGenericsOptions returns a copy with the generics options replaced.
func (f Format) WithGenericsOptions(g GenericsOptions) Format {
	f.generics = g
	return f
}

// WithMemberOptions returns a copy with the member options replaced.
func (f Format) WithMemberOptions(m MemberOptions) Format {
	f.members = m
	return f
}

// WithParameterOptions returns a copy with the parameter options replaced.
func (f Format) WithParameterOptions(p ParameterOptions) Format {
	f.params = p
	return f
}

// WithDelegateStyle returns a copy with the delegate style replaced.
func (f Format) WithDelegateStyle(d DelegateStyle) Format {
	f.delegates = d
	return f
}

// WithExtensionMethodStyle returns a copy with the extension method style replaced.
func (f Format) WithExtensionMethodStyle(e ExtensionMethodStyle) Format {
	f.extensions = e
	return f
}

// WithPropertyStyle returns a copy with the property style replaced.
func (f Format) WithPropertyStyle(p PropertyStyle) Format {
	f.props = p
	return f
}

// WithKindOptions returns a copy with the kind options replaced.
func (f Format) WithKindOptions(k KindOptions) Format {
	f.kinds = k
	return f
}

// WithLocalOptions returns a copy with the local options replaced.
func (f Format) WithLocalOptions(l LocalOptions) Format {
	f.locals = l
	return f
}

// WithMiscOptions returns a copy with the misc options replaced.
func (f Format) WithMiscOptions(m MiscOptions) Format {
	f.misc = m
	return f
}

// WithInternalOptions returns a copy with the internal options replaced.
func (f Format) WithInternalOptions(i InternalOptions) Format {
	f.internal = i
	return f
}

// AddGenericsOptions returns a copy with g added to the generics options.
func (f Format) AddGenericsOptions(g GenericsOptions) Format {
	f.generics |= g
	return f
}

// RemoveGenericsOptions returns a copy with g cleared from the generics options.
func (f Format) RemoveGenericsOptions(g GenericsOptions) Format {
	f.generics &^= g
	return f
}

// AddMemberOptions returns a copy with m added to the member options.
func (f Format) AddMemberOptions(m MemberOptions) Format {
	f.members |= m
	return f
}

// RemoveMemberOptions returns a copy with m cleared from the member options.
func (f Format) RemoveMemberOptions(m MemberOptions) Format {
	f.members &^= m
	return f
}

// AddParameterOptions returns a copy with p added to the parameter options.
func (f Format) AddParameterOptions(p ParameterOptions) Format {
	f.params |= p
	return f
}

// RemoveParameterOptions returns a copy with p cleared from the parameter options.
func (f Format) RemoveParameterOptions(p ParameterOptions) Format {
	f.params &^= p
	return f
}

// AddKindOptions returns a copy with k added to the kind options.
func (f Format) AddKindOptions(k KindOptions) Format {
	f.kinds |= k
	return f
}

// RemoveKindOptions returns a copy with k cleared from the kind options.
func (f Format) RemoveKindOptions(k KindOptions) Format {
	f.kinds &^= k
	return f
}

// AddLocalOptions returns a copy with l added to the local options.
func (f Format) AddLocalOptions(l LocalOptions) Format {
	f.locals |= l
	return f
}

// RemoveLocalOptions returns a copy with l cleared from the local options.
func (f Format) RemoveLocalOptions(l LocalOptions) Format {
	f.locals &^= l
	return f
}

// AddMiscOptions returns a copy with m added to the misc options.
func (f Format) AddMiscOptions(m MiscOptions) Format {
	f.misc |= m
	return f
}

// RemoveMiscOptions returns a copy with m cleared from the misc options.
func (f Format) RemoveMiscOptions(m MiscOptions) Format {
	f.misc &^= m
	return f
}

// AddInternalOptions returns a copy with i added to the internal options.
func (f Format) AddInternalOptions(i InternalOptions) Format {
	f.internal |= i
	return f
}

// RemoveInternalOptions returns a copy with i cleared from the internal options.
func (f Format) RemoveInternalOptions(i InternalOptions) Format {
	f.internal &^= i
	return f
}

func (f Format) hasGenerics(g GenericsOptions) bool { return f.generics&g != 0 }
func (f Format) hasMember(m MemberOptions) bool     { return f.members&m != 0 }
func (f Format) hasParam(p ParameterOptions) bool   { return f.params&p != 0 }
func (f Format) hasKind(k KindOptions) bool         { return f.kinds&k != 0 }
func (f Format) hasLocal(l LocalOptions) bool       { return f.locals&l != 0 }
func (f Format) hasMisc(m MiscOptions) bool         { return f.misc&m != 0 }
func (f Format) hasInternal(i InternalOptions) bool { return f.internal&i != 0 }

// Presets.
var (
	// ErrorMessageFormat matches compiler diagnostics.
	ErrorMessageFormat = NewFormat(
		GlobalStyle(GlobalOmitted),
		Qualify(NameAndContainingTypesAndNamespaces),
		Properties(PropertyNameOnly),
		Generics(IncludeTypeParameters|IncludeVariance),
		Members(MemberIncludeParameters|MemberIncludeContainingType|MemberIncludeExplicitInterface),
		Params(ParamIncludeParamsRefOut|ParamIncludeType),
		Misc(EscapeKeywordIdentifiers|UseSpecialTypes|UseAsterisksInMultiDimensionalArrays|UseErrorTypeSymbolName),
	)

	// FullyQualifiedFormat spells every container down to global::.
	FullyQualifiedFormat = NewFormat(
		GlobalStyle(GlobalIncluded),
		Qualify(NameAndContainingTypesAndNamespaces),
		Generics(IncludeTypeParameters),
		Misc(EscapeKeywordIdentifiers|UseSpecialTypes),
	)

	// MinimalFormat is meant for the minimal entry points.
	MinimalFormat = NewFormat(
		GlobalStyle(GlobalOmitted),
		Qualify(NameAndContainingTypes),
		Generics(IncludeTypeParameters),
		Members(MemberIncludeParameters|MemberIncludeType|MemberIncludeRef|MemberIncludeContainingType),
		Kinds(IncludeMemberKeyword),
		Params(ParamIncludeName|ParamIncludeType|ParamIncludeParamsRefOut|ParamIncludeDefaultValue),
		Locals(LocalIncludeType),
		Misc(EscapeKeywordIdentifiers|UseSpecialTypes|UseErrorTypeSymbolName),
	)

	// VerboseFormat shows every declaration detail without keyword types.
	VerboseFormat = NewFormat(
		GlobalStyle(GlobalOmittedAsContaining),
		Qualify(NameAndContainingTypesAndNamespaces),
		Generics(IncludeTypeParameters|IncludeVariance|IncludeTypeConstraints),
		Members(MemberIncludeParameters|MemberIncludeModifiers|MemberIncludeAccessibility|
			MemberIncludeType|MemberIncludeRef|MemberIncludeContainingType|MemberIncludeConstantValue),
		Kinds(IncludeMemberKeyword),
		Params(ParamIncludeParamsRefOut|ParamIncludeExtensionThis|ParamIncludeType|
			ParamIncludeName|ParamIncludeOptionalBrackets|ParamIncludeDefaultValue),
		Properties(PropertyShowReadWriteDescriptor),
		Locals(LocalIncludeType|LocalIncludeConstantValue|LocalIncludeRef),
	)
)
