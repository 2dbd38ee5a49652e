package literal

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// numberSymbols are the culture-specific pieces substituted into invariant output.
type numberSymbols struct {
	minus   string
	decimal string
}

var invariantSymbols = numberSymbols{minus: "-", decimal: "."}

var symbolCache sync.Map // language.Tag -> numberSymbols

// symbolsFor probes the culture by formatting a known value without grouping.
func symbolsFor(tag language.Tag) numberSymbols {
	if tag == language.Und {
		return invariantSymbols
	}
	if cached, ok := symbolCache.Load(tag); ok {
		return cached.(numberSymbols)
	}
	p := message.NewPrinter(tag)
	probe := p.Sprint(number.Decimal(-1.5, number.NoSeparator()))
	syms := invariantSymbols
	if one := strings.IndexRune(probe, '1'); one >= 0 {
		if five := strings.LastIndexByte(probe, '5'); five > one+1 {
			syms.decimal = probe[one+1 : five]
		}
		if one > 0 {
			syms.minus = probe[:one]
		}
	}
	symbolCache.Store(tag, syms)
	return syms
}

// localize rewrites an invariant decimal rendering using culture symbols.
// Only the leading sign and the first decimal point are affected.
func (s numberSymbols) localize(text string) string {
	if s == invariantSymbols {
		return text
	}
	var b strings.Builder
	if rest, ok := strings.CutPrefix(text, "-"); ok {
		b.WriteString(s.minus)
		text = rest
	}
	mant, exp, hasExp := cutExponent(text)
	if i := strings.IndexByte(mant, '.'); i >= 0 {
		mant = mant[:i] + s.decimal + mant[i+1:]
	}
	b.WriteString(mant)
	if hasExp {
		b.WriteString(exp)
	}
	return b.String()
}

func cutExponent(text string) (mant, exp string, ok bool) {
	if i := strings.IndexByte(text, 'E'); i >= 0 {
		return text[:i], text[i:], true
	}
	return text, "", false
}
