// Package display renders symbols, types and constants as classified text
// fragments in C# surface syntax.
package display

import (
	"strings"

	"symdisplay/internal/symbols"
)

// PartKind classifies a display fragment.
type PartKind uint8

const (
	PartText PartKind = iota
	PartKeyword
	PartPunctuation
	PartSpace
	PartOperator
	PartLineBreak
	PartClassName
	PartStructName
	PartInterfaceName
	PartEnumName
	PartEnumMemberName
	PartDelegateName
	PartRecordClassName
	PartRecordStructName
	PartErrorTypeName
	PartTypeParameterName
	PartMethodName
	PartExtensionMethodName
	PartFieldName
	PartConstantName
	PartPropertyName
	PartEventName
	PartParameterName
	PartLocalName
	PartRangeVariableName
	PartLabelName
	PartNamespaceName
	PartAliasName
	PartNumericLiteral
	PartStringLiteral
	PartArity
)

var partKindNames = [...]string{
	PartText:                "Text",
	PartKeyword:             "Keyword",
	PartPunctuation:         "Punctuation",
	PartSpace:               "Space",
	PartOperator:            "Operator",
	PartLineBreak:           "LineBreak",
	PartClassName:           "ClassName",
	PartStructName:          "StructName",
	PartInterfaceName:       "InterfaceName",
	PartEnumName:            "EnumName",
	PartEnumMemberName:      "EnumMemberName",
	PartDelegateName:        "DelegateName",
	PartRecordClassName:     "RecordClassName",
	PartRecordStructName:    "RecordStructName",
	PartErrorTypeName:       "ErrorTypeName",
	PartTypeParameterName:   "TypeParameterName",
	PartMethodName:          "MethodName",
	PartExtensionMethodName: "ExtensionMethodName",
	PartFieldName:           "FieldName",
	PartConstantName:        "ConstantName",
	PartPropertyName:        "PropertyName",
	PartEventName:           "EventName",
	PartParameterName:       "ParameterName",
	PartLocalName:           "LocalName",
	PartRangeVariableName:   "RangeVariableName",
	PartLabelName:           "LabelName",
	PartNamespaceName:       "NamespaceName",
	PartAliasName:           "AliasName",
	PartNumericLiteral:      "NumericLiteral",
	PartStringLiteral:       "StringLiteral",
	PartArity:               "Arity",
}

func (k PartKind) String() string {
	if int(k) < len(partKindNames) {
		return partKindNames[k]
	}
	return "Unknown"
}

// IsName reports kinds that name a declared entity.
func (k PartKind) IsName() bool {
	return k >= PartClassName && k <= PartAliasName
}

// Part is one classified fragment. Symbol, when valid, is the entity the
// fragment names.
type Part struct {
	Kind   PartKind         `json:"kind" msgpack:"k"`
	Text   string           `json:"text" msgpack:"t"`
	Symbol symbols.SymbolID `json:"symbol,omitempty" msgpack:"s,omitempty"`
}

// Parts is an ordered rendering. Concatenating the texts yields the display string.
type Parts []Part

func (p Parts) String() string {
	var b strings.Builder
	for _, part := range p {
		b.WriteString(part.Text)
	}
	return b.String()
}

// Kinds lists the classification of every part in order.
func (p Parts) Kinds() []PartKind {
	out := make([]PartKind, len(p))
	for i, part := range p {
		out[i] = part.Kind
	}
	return out
}
