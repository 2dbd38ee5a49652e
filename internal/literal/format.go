package literal

import (
	"math"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/text/language"
)

// Formatter renders literals. The zero value formats invariantly; Culture is
// consulted only when UseCurrentCulture is requested.
type Formatter struct {
	Culture language.Tag
}

// Invariant is the culture-insensitive formatter.
var Invariant = Formatter{}

// Format renders v using the invariant formatter.
func Format(v any, opts Options) (string, bool) {
	return Invariant.Format(v, opts)
}

// FormatPrimitive renders a primitive value; ok is false for unsupported types.
// Strings are quoted but not escaped when quote is set.
func FormatPrimitive(v any, quote, hex bool) (string, bool) {
	var opts Options
	if quote {
		opts |= UseQuotes
	}
	if hex {
		opts |= UseHexadecimalNumbers
	}
	return Invariant.Format(v, opts)
}

// IsPrimitive reports whether v is a value Format understands.
func IsPrimitive(v any) bool {
	switch v.(type) {
	case nil, bool, string, Char, Decimal, *Decimal,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

// Format renders v. The boolean result is false when v is not a primitive.
func (f Formatter) Format(v any, opts Options) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "null", true
	case bool:
		return FormatBool(x), true
	case string:
		return FormatString(x, opts), true
	case Char:
		return FormatChar(x, opts), true
	case int8:
		return f.signed(int64(x), 8, opts), true
	case int16:
		return f.signed(int64(x), 16, opts), true
	case int32:
		return f.signed(int64(x), 32, opts), true
	case int64:
		return f.signed(x, 64, opts), true
	case int:
		if n, err := safecast.Conv[int32](x); err == nil {
			return f.signed(int64(n), 32, opts), true
		}
		return f.signed(int64(x), 64, opts), true
	case uint8:
		return f.unsigned(uint64(x), 8, opts), true
	case uint16:
		return f.unsigned(uint64(x), 16, opts), true
	case uint32:
		return f.unsigned(uint64(x), 32, opts), true
	case uint64:
		return f.unsigned(x, 64, opts), true
	case uint:
		if n, err := safecast.Conv[uint32](x); err == nil {
			return f.unsigned(uint64(n), 32, opts), true
		}
		return f.unsigned(uint64(x), 64, opts), true
	case float32:
		return f.FormatFloat32(x, opts), true
	case float64:
		return f.FormatFloat64(x, opts), true
	case Decimal:
		return f.FormatDecimal(x, opts), true
	case *Decimal:
		if x == nil {
			return "null", true
		}
		return f.FormatDecimal(*x, opts), true
	}
	return "", false
}

// FormatBool renders true or false.
func FormatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func (f Formatter) symbols(opts Options) numberSymbols {
	if opts.Has(UseCurrentCulture) {
		return symbolsFor(f.Culture)
	}
	return invariantSymbols
}

// signed renders a signed integer of the given bit width. In hex mode
// negative 8 and 16 bit values are sign-extended to 32 bits.
func (f Formatter) signed(v int64, bits int, opts Options) string {
	var s string
	if opts.Has(UseHexadecimalNumbers) {
		switch {
		case bits < 32 && v < 0:
			s = hexDigits(uint64(uint32(int32(v))), 8)
		case bits == 64:
			s = hexDigits(uint64(v), 16)
		case bits == 32:
			s = hexDigits(uint64(uint32(int32(v))), 8)
		default:
			s = hexDigits(uint64(v), bits/4)
		}
	} else {
		s = f.symbols(opts).localize(strconv.FormatInt(v, 10))
	}
	if bits == 64 && opts.Has(IncludeTypeSuffix) {
		s += "L"
	}
	return s
}

func (f Formatter) unsigned(v uint64, bits int, opts Options) string {
	var s string
	if opts.Has(UseHexadecimalNumbers) {
		s = hexDigits(v, bits/4)
	} else {
		s = strconv.FormatUint(v, 10)
	}
	if opts.Has(IncludeTypeSuffix) {
		switch bits {
		case 32:
			s += "U"
		case 64:
			s += "UL"
		}
	}
	return s
}

func hexDigits(v uint64, width int) string {
	digits := strconv.FormatUint(v, 16)
	if len(digits) < width {
		digits = strings.Repeat("0", width-len(digits)) + digits
	}
	return "0x" + digits
}

// FormatInt64 renders a long.
func (f Formatter) FormatInt64(v int64, opts Options) string { return f.signed(v, 64, opts) }

// FormatUint64 renders a ulong.
func (f Formatter) FormatUint64(v uint64, opts Options) string { return f.unsigned(v, 64, opts) }

// FormatFloat64 renders a double with the shortest round-trip digits.
func (f Formatter) FormatFloat64(v float64, opts Options) string {
	s := f.symbols(opts).localize(roundTrip(v, 64))
	if opts.Has(IncludeTypeSuffix) {
		s += "D"
	}
	return s
}

// FormatFloat32 renders a float with the shortest round-trip digits.
func (f Formatter) FormatFloat32(v float32, opts Options) string {
	s := f.symbols(opts).localize(roundTrip(float64(v), 32))
	if opts.Has(IncludeTypeSuffix) {
		s += "F"
	}
	return s
}

// FormatDecimal renders a decimal keeping its scale.
func (f Formatter) FormatDecimal(d Decimal, opts Options) string {
	s := f.symbols(opts).localize(d.String())
	if opts.Has(IncludeTypeSuffix) {
		s += "M"
	}
	return s
}

// roundTrip spells a float like the general format: positional notation
// unless the decimal point falls beyond the significant digits (and the
// type's precision), or more than three places before them.
func roundTrip(v float64, bits int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	precision := 15
	if bits == 32 {
		precision = 7
	}
	e := strconv.FormatFloat(v, 'e', -1, bits)
	neg := strings.HasPrefix(e, "-")
	e = strings.TrimPrefix(e, "-")
	mant, expText, _ := strings.Cut(e, "e")
	digits := strings.Replace(mant, ".", "", 1)
	exp, _ := strconv.Atoi(expText)
	if digits == "0" {
		exp = 0
	}
	scale := exp + 1

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	if scale > max(len(digits), precision) || scale < -3 {
		b.WriteByte(digits[0])
		if len(digits) > 1 {
			b.WriteByte('.')
			b.WriteString(digits[1:])
		}
		b.WriteByte('E')
		if exp < 0 {
			b.WriteByte('-')
			exp = -exp
		} else {
			b.WriteByte('+')
		}
		if exp < 10 {
			b.WriteByte('0')
		}
		b.WriteString(strconv.Itoa(exp))
		return b.String()
	}
	switch {
	case scale <= 0:
		b.WriteString("0.")
		b.WriteString(strings.Repeat("0", -scale))
		b.WriteString(digits)
	case scale >= len(digits):
		b.WriteString(digits)
		b.WriteString(strings.Repeat("0", scale-len(digits)))
	default:
		b.WriteString(digits[:scale])
		b.WriteByte('.')
		b.WriteString(digits[scale:])
	}
	return b.String()
}
