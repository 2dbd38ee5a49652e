package display

import (
	"unicode"
	"unicode/utf8"

	"symdisplay/internal/symbols"
)

var reservedKeywords = map[string]struct{}{}

// contextualTypeKeywords cannot name a type without escaping.
var contextualTypeKeywords = map[string]struct{}{
	"record": {}, "var": {}, "dynamic": {}, "nint": {}, "nuint": {}, "file": {}, "scoped": {},
}

func init() {
	for _, kw := range []string{
		"abstract", "as", "base", "bool", "break", "byte", "case", "catch", "char", "checked",
		"class", "const", "continue", "decimal", "default", "delegate", "do", "double", "else",
		"enum", "event", "explicit", "extern", "false", "finally", "fixed", "float", "for",
		"foreach", "goto", "if", "implicit", "in", "int", "interface", "internal", "is", "lock",
		"long", "namespace", "new", "null", "object", "operator", "out", "override", "params",
		"private", "protected", "public", "readonly", "ref", "return", "sbyte", "sealed",
		"short", "sizeof", "stackalloc", "static", "string", "struct", "switch", "this",
		"throw", "true", "try", "typeof", "uint", "ulong", "unchecked", "unsafe", "ushort",
		"using", "virtual", "void", "volatile", "while",
	} {
		reservedKeywords[kw] = struct{}{}
	}
}

// IsKeyword reports reserved C# keywords.
func IsKeyword(name string) bool {
	_, ok := reservedKeywords[name]
	return ok
}

// escapeIdentifier prefixes @ when the name would read as a keyword. Type
// names also escape contextual keywords that are reserved in type position.
func escapeIdentifier(name string, isType bool) string {
	if IsKeyword(name) {
		return "@" + name
	}
	if isType {
		if _, ok := contextualTypeKeywords[name]; ok {
			return "@" + name
		}
	}
	return name
}

// isValidIdentifier checks the identifier grammar without keyword rules.
func isValidIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r) || unicode.Is(unicode.Nl, r):
		case i > 0 && (unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) ||
			unicode.Is(unicode.Pc, r) || unicode.Is(unicode.Cf, r)):
		default:
			return false
		}
	}
	return utf8.ValidString(name)
}

var specialKeywords = map[symbols.SpecialType]string{
	symbols.SpecialObject:  "object",
	symbols.SpecialVoid:    "void",
	symbols.SpecialBoolean: "bool",
	symbols.SpecialChar:    "char",
	symbols.SpecialSByte:   "sbyte",
	symbols.SpecialByte:    "byte",
	symbols.SpecialInt16:   "short",
	symbols.SpecialUInt16:  "ushort",
	symbols.SpecialInt32:   "int",
	symbols.SpecialUInt32:  "uint",
	symbols.SpecialInt64:   "long",
	symbols.SpecialUInt64:  "ulong",
	symbols.SpecialSingle:  "float",
	symbols.SpecialDouble:  "double",
	symbols.SpecialDecimal: "decimal",
	symbols.SpecialString:  "string",
}

// SpecialKeyword returns the keyword spelling of a special type.
func SpecialKeyword(st symbols.SpecialType) (string, bool) {
	kw, ok := specialKeywords[st]
	return kw, ok
}

var operatorMetadataNames = map[string]string{
	"op_Addition": "+", "op_Subtraction": "-", "op_Multiply": "*", "op_Division": "/",
	"op_Modulus": "%", "op_BitwiseAnd": "&", "op_BitwiseOr": "|", "op_ExclusiveOr": "^",
	"op_LeftShift": "<<", "op_RightShift": ">>", "op_UnsignedRightShift": ">>>",
	"op_Equality": "==", "op_Inequality": "!=", "op_LessThan": "<", "op_GreaterThan": ">",
	"op_LessThanOrEqual": "<=", "op_GreaterThanOrEqual": ">=", "op_UnaryPlus": "+",
	"op_UnaryNegation": "-", "op_LogicalNot": "!", "op_OnesComplement": "~",
	"op_Increment": "++", "op_Decrement": "--", "op_True": "true", "op_False": "false",
}

// OperatorToken maps an operator metadata name to its source token.
func OperatorToken(metadataName string) (string, bool) {
	tok, ok := operatorMetadataNames[metadataName]
	return tok, ok
}
