package literal

import (
	"math/big"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Char is a UTF-16 code unit, the element type of source char literals.
type Char uint16

// Decimal is a base-10 value Unscaled * 10^-Scale. Trailing zeros are kept.
type Decimal struct {
	Unscaled *big.Int
	Scale    uint8
}

// NewDecimal builds a decimal from an unscaled integer.
func NewDecimal(unscaled int64, scale uint8) Decimal {
	return Decimal{Unscaled: big.NewInt(unscaled), Scale: scale}
}

// ParseDecimal reads a plain decimal literal such as "-12.50".
func ParseDecimal(s string) (Decimal, error) {
	text := strings.TrimSuffix(strings.TrimSuffix(s, "m"), "M")
	digits := text
	scale := 0
	if dot := strings.IndexByte(text, '.'); dot >= 0 {
		digits = text[:dot] + text[dot+1:]
		scale = len(text) - dot - 1
	}
	if scale > 28 {
		return Decimal{}, errors.Errorf("decimal %q: scale %d exceeds 28", s, scale)
	}
	v, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return Decimal{}, errors.Errorf("decimal %q: invalid digits", s)
	}
	return Decimal{Unscaled: v, Scale: uint8(scale)}, nil
}

func (d Decimal) String() string {
	if d.Unscaled == nil {
		return "0"
	}
	neg := d.Unscaled.Sign() < 0
	digits := new(big.Int).Abs(d.Unscaled).String()
	scale := int(d.Scale)
	if scale > 0 {
		if len(digits) <= scale {
			digits = strings.Repeat("0", scale-len(digits)+1) + digits
		}
		digits = digits[:len(digits)-scale] + "." + digits[len(digits)-scale:]
	}
	if neg {
		return "-" + digits
	}
	return digits
}
