package literal

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FormatChar renders a char literal.
func FormatChar(c Char, opts Options) string {
	var b strings.Builder
	if opts.Has(IncludeCodePoints) {
		if opts.Has(UseHexadecimalNumbers) {
			b.WriteString(hexDigits(uint64(c), 4))
		} else {
			b.WriteString(strconv.Itoa(int(c)))
		}
		b.WriteByte(' ')
	}
	quote := opts.Has(UseQuotes)
	if quote {
		b.WriteByte('\'')
	}
	r := rune(c)
	switch {
	case opts.Has(EscapeNonPrintableCharacters) && writeEscape(&b, r):
	case quote && c == '\'':
		b.WriteString(`\'`)
	case utf16IsSurrogate(r):
		// A lone surrogate has no UTF-8 spelling.
		b.WriteString(`\u`)
		b.WriteString(hex4(r))
	default:
		b.WriteRune(r)
	}
	if quote {
		b.WriteByte('\'')
	}
	return b.String()
}

// FormatString renders a string literal. Without quotes or escaping the input
// is returned unchanged.
func FormatString(s string, opts Options) string {
	quote := opts.Has(UseQuotes)
	escape := opts.Has(EscapeNonPrintableCharacters)
	if !quote && !escape {
		return s
	}
	verbatim := quote && !escape && containsLineBreak(s)

	var b strings.Builder
	b.Grow(len(s) + 2)
	if quote {
		if verbatim {
			b.WriteByte('@')
		}
		b.WriteByte('"')
	}
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if r == utf8.RuneError && size == 1 {
			if escape {
				b.WriteString(`\ufffd`)
			} else {
				b.WriteRune(r)
			}
			continue
		}
		switch {
		case escape && writeEscape(&b, r):
		case quote && r == '"':
			if verbatim {
				b.WriteString(`""`)
			} else {
				b.WriteString(`\"`)
			}
		default:
			b.WriteRune(r)
		}
	}
	if quote {
		b.WriteByte('"')
	}
	return b.String()
}

// writeEscape writes the escaped form of r when one is required.
func writeEscape(b *strings.Builder, r rune) bool {
	switch r {
	case '\\':
		b.WriteString(`\\`)
	case 0:
		b.WriteString(`\0`)
	case '\a':
		b.WriteString(`\a`)
	case '\b':
		b.WriteString(`\b`)
	case '\f':
		b.WriteString(`\f`)
	case '\n':
		b.WriteString(`\n`)
	case '\r':
		b.WriteString(`\r`)
	case '\t':
		b.WriteString(`\t`)
	case '\v':
		b.WriteString(`\v`)
	default:
		if !needsEscaping(r) {
			return false
		}
		if r > 0xFFFF {
			b.WriteString(`\U`)
			s := strconv.FormatUint(uint64(r), 16)
			b.WriteString(strings.Repeat("0", 8-len(s)))
			b.WriteString(s)
		} else {
			b.WriteString(`\u`)
			b.WriteString(hex4(r))
		}
	}
	return true
}

func hex4(r rune) string {
	s := strconv.FormatUint(uint64(r), 16)
	if len(s) < 4 {
		s = strings.Repeat("0", 4-len(s)) + s
	}
	return s
}

// needsEscaping is true for control characters, line and paragraph
// separators, surrogates and unassigned code points.
func needsEscaping(r rune) bool {
	switch {
	case unicode.Is(unicode.Cc, r), unicode.Is(unicode.Zl, r), unicode.Is(unicode.Zp, r):
		return true
	case utf16IsSurrogate(r):
		return true
	}
	return !assigned(r)
}

func assigned(r rune) bool {
	return unicode.In(r, unicode.L, unicode.M, unicode.N, unicode.P, unicode.S, unicode.Z,
		unicode.Cc, unicode.Cf, unicode.Co)
}

func utf16IsSurrogate(r rune) bool {
	return r >= 0xD800 && r <= 0xDFFF
}

func containsLineBreak(s string) bool {
	return strings.ContainsAny(s, "\r\n\u0085\u2028\u2029")
}
