package literal

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestHexWidths(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want string
	}{
		{"sbyte positive", int8(5), "0x05"},
		{"sbyte -1 widens", int8(-1), "0xffffffff"},
		{"sbyte -2 widens", int8(-2), "0xfffffffe"},
		{"byte", uint8(255), "0xff"},
		{"short", int16(255), "0x00ff"},
		{"short negative widens", int16(-1), "0xffffffff"},
		{"ushort", uint16(1), "0x0001"},
		{"int", int32(10), "0x0000000a"},
		{"int negative", int32(-1), "0xffffffff"},
		{"uint", uint32(1), "0x00000001"},
		{"long negative", int64(-1), "0xffffffffffffffff"},
		{"ulong", uint64(1), "0x0000000000000001"},
		{"go int fits 32 bits", 16, "0x00000010"},
		{"go int needs 64 bits", int(math.MaxInt32) + 1, "0x0000000080000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Format(tt.v, UseHexadecimalNumbers)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypeSuffixes(t *testing.T) {
	tests := []struct {
		v    any
		opts Options
		want string
	}{
		{int32(5), IncludeTypeSuffix, "5"},
		{uint8(5), IncludeTypeSuffix, "5"},
		{uint32(1), IncludeTypeSuffix, "1U"},
		{int64(1), IncludeTypeSuffix, "1L"},
		{uint64(1), IncludeTypeSuffix, "1UL"},
		{uint64(1), IncludeTypeSuffix | UseHexadecimalNumbers, "0x0000000000000001UL"},
		{float32(1.5), IncludeTypeSuffix, "1.5F"},
		{float64(2), IncludeTypeSuffix, "2D"},
		{NewDecimal(150, 2), IncludeTypeSuffix, "1.50M"},
		{true, IncludeTypeSuffix, "true"},
	}
	for _, tt := range tests {
		got, ok := Format(tt.v, tt.opts)
		require.True(t, ok)
		assert.Equal(t, tt.want, got, "value %#v", tt.v)
	}
}

func TestFloatRoundTrip(t *testing.T) {
	tests := []struct {
		v    any
		want string
	}{
		{1.5, "1.5"},
		{-0.5, "-0.5"},
		{0.0, "0"},
		{1e14, "100000000000000"},
		{1e15, "1E+15"},
		{123456789012345680.0, "1.2345678901234568E+17"},
		{0.0001, "0.0001"},
		{0.00001, "1E-05"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{float32(1e7), "1E+07"},
		{float32(16777216), "16777216"},
		{float32(0.1), "0.1"},
	}
	for _, tt := range tests {
		got, ok := Format(tt.v, None)
		require.True(t, ok)
		assert.Equal(t, tt.want, got, "value %v", tt.v)
	}
}

func TestChars(t *testing.T) {
	tests := []struct {
		name string
		c    Char
		opts Options
		want string
	}{
		{"plain", 'a', None, "a"},
		{"quoted", 'a', UseQuotes, "'a'"},
		{"quote escaped", '\'', UseQuotes, `'\''`},
		{"newline escaped", '\n', UseQuotes | EscapeNonPrintableCharacters, `'\n'`},
		{"control escaped", 0x1, EscapeNonPrintableCharacters, `\u0001`},
		{"code point", 'a', UseQuotes | IncludeCodePoints, "97 'a'"},
		{"hex code point", 'a', UseQuotes | IncludeCodePoints | UseHexadecimalNumbers, "0x0061 'a'"},
		{"lone surrogate", 0xD800, UseQuotes | EscapeNonPrintableCharacters, `'\ud800'`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatChar(tt.c, tt.opts))
		})
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		name string
		s    string
		opts Options
		want string
	}{
		{"as is", "a\tb\\", None, "a\tb\\"},
		{"escaped tab", "a\tb", UseQuotes | EscapeNonPrintableCharacters, `"a\tb"`},
		{"verbatim newline", "\n", UseQuotes, "@\"\n\""},
		{"verbatim doubles quotes", "\"\n", UseQuotes, "@\"\"\"\n\""},
		{"escaped quote", `a"b`, UseQuotes, `"a\"b"`},
		{"backslash kept without escaping", `a\b`, UseQuotes, `"a\b"`},
		{"backslash escaped", `a\b`, UseQuotes | EscapeNonPrintableCharacters, `"a\\b"`},
		{"newline escaped wins over verbatim", "x\ny", UseQuotes | EscapeNonPrintableCharacters, `"x\ny"`},
		{"line separator", "\u2028", EscapeNonPrintableCharacters, `\u2028`},
		{"right to left passes", "שלום", UseQuotes | EscapeNonPrintableCharacters, `"שלום"`},
		{"astral printable passes", "\U0001F600", EscapeNonPrintableCharacters, "\U0001F600"},
		{"nul", "\x00", EscapeNonPrintableCharacters, `\0`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatString(tt.s, tt.opts))
		})
	}
}

func TestFormatPrimitive(t *testing.T) {
	got, ok := FormatPrimitive(int8(-1), false, true)
	require.True(t, ok)
	assert.Equal(t, "0xffffffff", got)

	got, ok = FormatPrimitive(nil, true, false)
	require.True(t, ok)
	assert.Equal(t, "null", got)

	got, ok = FormatPrimitive("hi", true, false)
	require.True(t, ok)
	assert.Equal(t, `"hi"`, got)

	_, ok = FormatPrimitive(struct{}{}, false, false)
	assert.False(t, ok)
	assert.False(t, IsPrimitive([]int{1}))
	assert.True(t, IsPrimitive(Char('x')))
}

func TestCurrentCulture(t *testing.T) {
	de := Formatter{Culture: language.German}

	invariant, _ := de.Format(-1234.5, None)
	assert.Equal(t, "-1234.5", invariant, "culture is ignored unless requested")

	got, ok := de.Format(-1234.5, UseCurrentCulture)
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(got, "1234,5"), "got %q", got)
	assert.NotContains(t, got, ".")

	got, _ = de.Format(1e20, UseCurrentCulture)
	assert.Equal(t, "1E+20", got)

	got, _ = Invariant.Format(-3, UseCurrentCulture)
	assert.Equal(t, "-3", got)
}

func TestParseDecimal(t *testing.T) {
	d, err := ParseDecimal("-12.50")
	require.NoError(t, err)
	assert.Equal(t, "-12.50", d.String())

	d, err = ParseDecimal("0.05m")
	require.NoError(t, err)
	assert.Equal(t, "0.05", d.String())

	_, err = ParseDecimal("1.2.3")
	assert.Error(t, err)

	assert.Equal(t, "0", Decimal{}.String())
}

func TestParseOption(t *testing.T) {
	o, ok := ParseOption("usequotes")
	require.True(t, ok)
	assert.Equal(t, UseQuotes, o)
	assert.Equal(t, "UseQuotes|IncludeTypeSuffix", (UseQuotes | IncludeTypeSuffix).String())
	_, ok = ParseOption("bogus")
	assert.False(t, ok)
}
