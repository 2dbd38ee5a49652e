// Package literal renders primitive constant values the way they would be
// spelled in source code.
package literal

import "strings"

// Options controls literal rendering.
type Options uint8

const (
	UseQuotes Options = 1 << iota
	EscapeNonPrintableCharacters
	UseHexadecimalNumbers
	IncludeCodePoints
	IncludeTypeSuffix
	UseCurrentCulture
)

// None formats values as-is.
const None Options = 0

// Has reports whether every bit of f is set.
func (o Options) Has(f Options) bool { return o&f == f }

var optionNames = []string{
	"UseQuotes", "EscapeNonPrintableCharacters", "UseHexadecimalNumbers",
	"IncludeCodePoints", "IncludeTypeSuffix", "UseCurrentCulture",
}

func (o Options) String() string {
	if o == 0 {
		return "None"
	}
	var parts []string
	for i, name := range optionNames {
		if o&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseOption maps an option name to its bit.
func ParseOption(name string) (Options, bool) {
	for i, n := range optionNames {
		if strings.EqualFold(n, name) {
			return 1 << i, true
		}
	}
	return 0, false
}
