package project

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"fortio.org/safecast"
	"gitlab.com/tozd/go/errors"

	"symdisplay/internal/literal"
	"symdisplay/internal/symbols"
	"symdisplay/internal/types"
)

// valueConverter maps TOML scalars (int64, float64, bool, string) onto the
// Go representation of a constant of the target type.
type valueConverter struct {
	tab *symbols.Table
}

func (c valueConverter) convert(target types.TypeID, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	decl := c.tab.Get(c.tab.Decl(target))
	if decl == nil {
		return v, nil
	}
	if decl.Special == symbols.SpecialNullable {
		if args := c.tab.Types.TypeArgs(target); len(args) == 1 {
			return c.convert(args[0], v)
		}
	}
	if decl.Kind == symbols.SymbolNamedType && decl.TypeKind == symbols.TypeEnum {
		return c.enumValue(c.tab.Decl(target), v)
	}
	return c.primitive(decl.Special, v)
}

// enumValue accepts the underlying number or member names joined by '|'.
func (c valueConverter) enumValue(enum symbols.SymbolID, v any) (any, error) {
	underlying := c.underlying(enum)
	text, ok := v.(string)
	if !ok || isNumeric(text) {
		return c.primitive(underlying, v)
	}
	var bits uint64
	for name := range strings.SplitSeq(text, "|") {
		name = strings.TrimSpace(name)
		member := symbols.NoSymbolID
		for _, id := range c.tab.MembersNamed(enum, name) {
			if c.tab.Get(id).Constant != nil {
				member = id
				break
			}
		}
		if !member.IsValid() {
			return nil, errors.WithDetails(ErrManifest, "enum_member", name)
		}
		raw, ok := toUint64(c.tab.Get(member).Constant.Value)
		if !ok {
			return nil, errors.WithDetails(ErrManifest, "enum_member", name)
		}
		bits |= raw
	}
	return c.fromBits(underlying, bits)
}

func (c valueConverter) underlying(enum symbols.SymbolID) symbols.SpecialType {
	sym := c.tab.Get(enum)
	if sym.EnumUnderlying == types.NoTypeID {
		return symbols.SpecialInt32
	}
	if d := c.tab.Get(c.tab.Decl(sym.EnumUnderlying)); d != nil {
		return d.Special
	}
	return symbols.SpecialInt32
}

// fromBits reinterprets an OR-ed bit pattern in the enum's underlying width.
func (c valueConverter) fromBits(st symbols.SpecialType, bits uint64) (any, error) {
	switch st {
	case symbols.SpecialSByte:
		return int8(uint8(bits)), nil
	case symbols.SpecialByte:
		return uint8(bits), nil
	case symbols.SpecialInt16:
		return int16(uint16(bits)), nil
	case symbols.SpecialUInt16:
		return uint16(bits), nil
	case symbols.SpecialUInt32:
		return uint32(bits), nil
	case symbols.SpecialInt64:
		return int64(bits), nil
	case symbols.SpecialUInt64:
		return bits, nil
	default:
		return int32(uint32(bits)), nil
	}
}

func (c valueConverter) primitive(st symbols.SpecialType, v any) (any, error) {
	switch st {
	case symbols.SpecialBoolean:
		switch x := v.(type) {
		case bool:
			return x, nil
		case string:
			b, err := strconv.ParseBool(x)
			if err != nil {
				return nil, errors.WrapWith(err, ErrManifest)
			}
			return b, nil
		}
	case symbols.SpecialChar:
		switch x := v.(type) {
		case string:
			units := utf16.Encode([]rune(x))
			if len(units) != 1 {
				return nil, errors.WithDetails(ErrManifest, "char", x)
			}
			return literal.Char(units[0]), nil
		case int64:
			n, err := conv[uint16](x)
			return literal.Char(n), err
		}
	case symbols.SpecialSByte:
		return integer[int8](v)
	case symbols.SpecialByte:
		return integer[uint8](v)
	case symbols.SpecialInt16:
		return integer[int16](v)
	case symbols.SpecialUInt16:
		return integer[uint16](v)
	case symbols.SpecialInt32:
		return integer[int32](v)
	case symbols.SpecialUInt32:
		return integer[uint32](v)
	case symbols.SpecialInt64:
		return integer[int64](v)
	case symbols.SpecialUInt64:
		return integer[uint64](v)
	case symbols.SpecialSingle:
		f, err := floatValue(v, 32)
		return float32(f), err
	case symbols.SpecialDouble:
		return floatValue(v, 64)
	case symbols.SpecialDecimal:
		switch x := v.(type) {
		case string:
			return literal.ParseDecimal(x)
		case int64:
			return literal.NewDecimal(x, 0), nil
		case float64:
			return literal.ParseDecimal(strconv.FormatFloat(x, 'f', -1, 64))
		}
	case symbols.SpecialString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	default:
		return v, nil
	}
	return nil, errors.WithDetails(ErrManifest, "value", v, "type", st.MetadataName())
}

type integerType interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64
}

func conv[T integerType, F int64 | uint64](x F) (T, error) {
	out, err := safecast.Conv[T](x)
	if err != nil {
		return out, errors.WrapWith(err, ErrManifest)
	}
	return out, nil
}

// integer narrows a TOML integer, or parses a string in any Go base
// notation (0x, 0b, 0o) so values beyond int64 such as ulong max fit.
func integer[T integerType](v any) (any, error) {
	switch x := v.(type) {
	case int64:
		return conv[T](x)
	case string:
		if strings.HasPrefix(x, "-") {
			n, err := strconv.ParseInt(x, 0, 64)
			if err != nil {
				return nil, errors.WrapWith(err, ErrManifest)
			}
			return conv[T](n)
		}
		n, err := strconv.ParseUint(x, 0, 64)
		if err != nil {
			return nil, errors.WrapWith(err, ErrManifest)
		}
		return conv[T](n)
	}
	return nil, errors.WithDetails(ErrManifest, "integer", v)
}

func floatValue(v any, bits int) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int64:
		return float64(x), nil
	case string:
		f, err := strconv.ParseFloat(x, bits)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, errors.WrapWith(err, ErrManifest)
		}
		return f, nil
	}
	return 0, errors.WithDetails(ErrManifest, "float", v)
}

func isNumeric(s string) bool {
	s = strings.TrimPrefix(strings.TrimSpace(s), "-")
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

func toUint64(v any) (uint64, bool) {
	switch x := v.(type) {
	case int8:
		return uint64(x), true
	case uint8:
		return uint64(x), true
	case int16:
		return uint64(x), true
	case uint16:
		return uint64(x), true
	case int32:
		return uint64(x), true
	case uint32:
		return uint64(x), true
	case int64:
		return uint64(x), true
	case uint64:
		return x, true
	}
	return 0, false
}

// ParseLiteral reads text as a constant of the keyword type kind ("int",
// "char", "decimal", ...). The kind "null" yields nil.
func ParseLiteral(kind, text string) (any, error) {
	if kind == "null" {
		return nil, nil
	}
	st, ok := keywordTypes[kind]
	if !ok || st == symbols.SpecialObject || st == symbols.SpecialVoid {
		return nil, errors.WithDetails(ErrManifest, "literal_kind", kind)
	}
	return valueConverter{}.primitive(st, text)
}
