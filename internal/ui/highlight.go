// Package ui styles rendered display parts for terminals.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"symdisplay/internal/display"
)

// Theme maps part classifications to terminal styles.
type Theme struct {
	styles map[display.PartKind]lipgloss.Style
}

// DefaultTheme colours keywords, type names, member names and literals.
func DefaultTheme() Theme {
	keyword := lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	typeName := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	member := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	value := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	local := lipgloss.NewStyle().Foreground(lipgloss.Color("4"))

	return Theme{styles: map[display.PartKind]lipgloss.Style{
		display.PartKeyword:             keyword,
		display.PartOperator:            keyword,
		display.PartClassName:           typeName,
		display.PartStructName:          typeName,
		display.PartInterfaceName:       typeName,
		display.PartEnumName:            typeName,
		display.PartDelegateName:        typeName,
		display.PartRecordClassName:     typeName,
		display.PartRecordStructName:    typeName,
		display.PartTypeParameterName:   typeName.Italic(true),
		display.PartErrorTypeName:       lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Underline(true),
		display.PartNamespaceName:       lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		display.PartAliasName:           lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Italic(true),
		display.PartMethodName:          member,
		display.PartExtensionMethodName: member.Italic(true),
		display.PartPropertyName:        member,
		display.PartEventName:           member,
		display.PartFieldName:           member,
		display.PartConstantName:        member.Bold(true),
		display.PartEnumMemberName:      member.Bold(true),
		display.PartParameterName:       local,
		display.PartLocalName:           local,
		display.PartRangeVariableName:   local,
		display.PartNumericLiteral:      value,
		display.PartStringLiteral:       value,
	}}
}

// Style returns the style for kind and whether the theme styles it.
func (t Theme) Style(kind display.PartKind) (lipgloss.Style, bool) {
	s, ok := t.styles[kind]
	return s, ok
}

// Highlight renders parts with the theme. A disabled theme returns plain text.
func Highlight(parts display.Parts, t Theme, enabled bool) string {
	if !enabled || t.styles == nil {
		return parts.String()
	}
	var b strings.Builder
	for _, p := range parts {
		if s, ok := t.styles[p.Kind]; ok {
			b.WriteString(s.Render(p.Text))
			continue
		}
		b.WriteString(p.Text)
	}
	return b.String()
}
