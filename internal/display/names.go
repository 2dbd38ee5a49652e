package display

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrUnknownOption is returned when a configuration names no known option.
var ErrUnknownOption = errors.Base("unknown format option")

// Preset returns a named preset format.
func Preset(name string) (Format, bool) {
	switch strings.ToLower(name) {
	case "minimal":
		return MinimalFormat, true
	case "fully-qualified", "fullyqualified":
		return FullyQualifiedFormat, true
	case "error-message", "errormessage":
		return ErrorMessageFormat, true
	case "verbose":
		return VerboseFormat, true
	case "default", "":
		return Format{}, true
	}
	return Format{}, false
}

var genericsNames = map[string]GenericsOptions{
	"includetypeparameters":  IncludeTypeParameters,
	"includetypeconstraints": IncludeTypeConstraints,
	"includevariance":        IncludeVariance,
}

var memberNames = map[string]MemberOptions{
	"includetype":              MemberIncludeType,
	"includemodifiers":         MemberIncludeModifiers,
	"includeaccessibility":     MemberIncludeAccessibility,
	"includeexplicitinterface": MemberIncludeExplicitInterface,
	"includeparameters":        MemberIncludeParameters,
	"includecontainingtype":    MemberIncludeContainingType,
	"includeconstantvalue":     MemberIncludeConstantValue,
	"includeref":               MemberIncludeRef,
}

var paramNames = map[string]ParameterOptions{
	"includeextensionthis":    ParamIncludeExtensionThis,
	"includeparamsrefout":     ParamIncludeParamsRefOut,
	"includetype":             ParamIncludeType,
	"includename":             ParamIncludeName,
	"includedefaultvalue":     ParamIncludeDefaultValue,
	"includeoptionalbrackets": ParamIncludeOptionalBrackets,
}

var kindNames = map[string]KindOptions{
	"includenamespacekeyword": IncludeNamespaceKeyword,
	"includetypekeyword":      IncludeTypeKeyword,
	"includememberkeyword":    IncludeMemberKeyword,
}

var localNames = map[string]LocalOptions{
	"includetype":          LocalIncludeType,
	"includeconstantvalue": LocalIncludeConstantValue,
	"includeref":           LocalIncludeRef,
}

var miscNames = map[string]MiscOptions{
	"usespecialtypes":                         UseSpecialTypes,
	"escapekeywordidentifiers":                EscapeKeywordIdentifiers,
	"useasterisksinmultidimensionalarrays":    UseAsterisksInMultiDimensionalArrays,
	"useerrortypesymbolname":                  UseErrorTypeSymbolName,
	"removeattributesuffix":                   RemoveAttributeSuffix,
	"expandnullable":                          ExpandNullable,
	"includenullablereferencetypemodifier":    IncludeNullableReferenceTypeModifier,
	"allowdefaultliteral":                     AllowDefaultLiteral,
	"includenotnullablereferencetypemodifier": IncludeNotNullableReferenceTypeModifier,
	"collapsetupletypes":                      CollapseTupleTypes,
	"expandvaluetuple":                        ExpandValueTuple,
	"usehexadecimalnumbers":                   UseHexadecimalNumbers,
}

var internalNames = map[string]InternalOptions{
	"usearityforgenerictypes":        UseArityForGenericTypes,
	"usemetadatamethodnames":         UseMetadataMethodNames,
	"includecustommodifiers":         IncludeCustomModifiers,
	"reversearrayrankspecifiers":     ReverseArrayRankSpecifiers,
	"usenativeintegerunderlyingtype": UseNativeIntegerUnderlyingType,
	"useplusfornestedtypes":          UsePlusForNestedTypes,
}

// Set applies a named option inside a named group. Flag groups accumulate;
// enumerated groups are replaced.
func (f Format) Set(group, name string) (Format, error) {
	key := strings.ToLower(strings.ReplaceAll(name, "_", ""))
	orig := f
	lookup := func(ok bool) (Format, error) {
		if !ok {
			return orig, errors.WithDetails(ErrUnknownOption, "group", group, "option", name)
		}
		return f, nil
	}
	switch strings.ToLower(group) {
	case "qualification":
		q, ok := map[string]Qualification{
			"nameonly":                            NameOnly,
			"nameandcontainingtypes":              NameAndContainingTypes,
			"nameandcontainingtypesandnamespaces": NameAndContainingTypesAndNamespaces,
			"fullyqualified":                      FullyQualified,
		}[key]
		f.qual = q
		return lookup(ok)
	case "global":
		g, ok := map[string]GlobalNamespaceStyle{
			"omitted":             GlobalOmitted,
			"omittedascontaining": GlobalOmittedAsContaining,
			"included":            GlobalIncluded,
		}[key]
		f.global = g
		return lookup(ok)
	case "delegate":
		d, ok := map[string]DelegateStyle{
			"nameonly":          DelegateNameOnly,
			"nameandparameters": DelegateNameAndParameters,
			"nameandsignature":  DelegateNameAndSignature,
		}[key]
		f.delegates = d
		return lookup(ok)
	case "extension":
		e, ok := map[string]ExtensionMethodStyle{
			"default":        ExtensionDefault,
			"instancemethod": ExtensionInstanceMethod,
			"staticmethod":   ExtensionStaticMethod,
		}[key]
		f.extensions = e
		return lookup(ok)
	case "property":
		p, ok := map[string]PropertyStyle{
			"nameonly":                PropertyNameOnly,
			"showreadwritedescriptor": PropertyShowReadWriteDescriptor,
		}[key]
		f.props = p
		return lookup(ok)
	case "generics":
		g, ok := genericsNames[key]
		f.generics |= g
		return lookup(ok)
	case "members":
		m, ok := memberNames[key]
		f.members |= m
		return lookup(ok)
	case "parameters":
		p, ok := paramNames[key]
		f.params |= p
		return lookup(ok)
	case "kinds":
		k, ok := kindNames[key]
		f.kinds |= k
		return lookup(ok)
	case "locals":
		l, ok := localNames[key]
		f.locals |= l
		return lookup(ok)
	case "misc":
		m, ok := miscNames[key]
		f.misc |= m
		return lookup(ok)
	case "internal":
		i, ok := internalNames[key]
		f.internal |= i
		return lookup(ok)
	}
	return f, errors.WithDetails(ErrUnknownOption, "group", group)
}
