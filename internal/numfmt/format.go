// Package numfmt formats and reads numbers using numbro-style format strings
// ("0,0", "0,0[.00]", "$0,0.00", "0.0%", "0.0a", "0o") for a given locale.
//
// Both directions are total: Format renders every finite float64 and
// Unformat reports ok=false instead of failing on text it cannot read.
package numfmt

import (
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
)

// DefaultFormat renders integers with thousand separators.
const DefaultFormat = "0,0"

// rawDigits is the number of significant digits kept in the edit form.
const rawDigits = 15

var abbreviationSteps = [4]float64{1e3, 1e6, 1e9, 1e12}

// Formatter renders and reads numbers for one locale. Parsed patterns are
// cached, so a Formatter is cheap to call repeatedly with the same format.
type Formatter struct {
	locale Locale

	mu       sync.Mutex
	patterns map[string]Pattern
}

// New returns a Formatter for locale.
func New(locale Locale) *Formatter {
	if locale.Ordinal == nil {
		locale.Ordinal = constOrdinal("")
	}
	return &Formatter{locale: locale, patterns: make(map[string]Pattern)}
}

// Locale returns the formatter's locale.
func (f *Formatter) Locale() Locale { return f.locale }

func (f *Formatter) pattern(format string) Pattern {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.patterns[format]; ok {
		return p
	}
	p := ParsePattern(format)
	f.patterns[format] = p
	return p
}

// Format renders v with format. An empty format means DefaultFormat.
// NaN and infinities render as the empty string.
func (f *Formatter) Format(v float64, format string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	if strings.TrimSpace(format) == "" {
		format = DefaultFormat
	}
	return f.render(v, f.pattern(format))
}

func (f *Formatter) render(v float64, p Pattern) string {
	if p.Percent {
		v *= 100
	}

	neg := v < 0
	abs := math.Abs(v)
	abbrev := ""
	if p.Abbreviate {
		step := -1
		for i := len(abbreviationSteps) - 1; i >= 0; i-- {
			if abs >= abbreviationSteps[i] {
				step = i
				break
			}
		}
		scaled := abs
		if step >= 0 {
			scaled = abs / abbreviationSteps[step]
		}
		// Rounding may carry into the next unit: 999999 is 1.0m, not 1000.0k.
		for step+1 < len(abbreviationSteps) && roundHalfAway(scaled, p.MaxDecimals) >= 1000 {
			step++
			scaled = abs / abbreviationSteps[step]
		}
		if step >= 0 {
			abs = scaled
			abbrev = f.locale.Abbreviations[step]
		}
	}

	digits := strconv.FormatFloat(roundHalfAway(abs, p.MaxDecimals), 'f', p.MaxDecimals, 64)
	intPart, frac, _ := strings.Cut(digits, ".")
	frac = trimOptional(frac, p)
	if isZero(intPart) && isZero(frac) {
		neg = false
	}

	var b strings.Builder
	if p.Thousands {
		b.WriteString(f.group(intPart))
	} else {
		b.WriteString(intPart)
	}
	if frac != "" {
		b.WriteString(f.locale.Decimal)
		b.WriteString(frac)
	}
	if p.Ordinal {
		n, _ := strconv.ParseInt(intPart, 10, 64)
		b.WriteString(f.locale.Ordinal(n))
	}
	if abbrev != "" {
		if p.AbbrevSpace {
			b.WriteByte(' ')
		}
		b.WriteString(abbrev)
	}
	if p.Percent {
		if p.PercentSpace {
			b.WriteByte(' ')
		}
		b.WriteByte('%')
	}
	out := f.withCurrency(b.String(), p)

	switch {
	case neg && p.Parens:
		return "(" + out + ")"
	case neg:
		return "-" + out
	case p.Sign:
		return "+" + out
	}
	return out
}

func (f *Formatter) withCurrency(num string, p Pattern) string {
	if p.Currency == PositionNone {
		return num
	}
	sym := f.locale.Currency
	if f.locale.CurrencySuffix || p.Currency == PositionSuffix {
		if p.CurrencySpace || f.locale.CurrencySuffix {
			return num + " " + sym
		}
		return num + sym
	}
	if p.CurrencySpace {
		return sym + " " + num
	}
	return sym + num
}

// group inserts the locale's thousands separator into a run of digits.
func (f *Formatter) group(digits string) string {
	grouped := groupDigits(digits)
	if f.locale.Thousands == "," {
		return grouped
	}
	return strings.ReplaceAll(grouped, ",", f.locale.Thousands)
}

func groupDigits(digits string) string {
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return humanize.Comma(n)
	}
	// Beyond int64: group by hand.
	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Raw renders v in the edit form: plain decimal digits, no grouping, the
// locale's decimal separator. v is first cut to 15 significant digits so
// arithmetic noise such as 12.3% read back as 0.12300000000000001 edits as
// 0.123.
func (f *Formatter) Raw(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	if r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', rawDigits, 64), 64); err == nil {
		v = r
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if f.locale.Decimal != "." {
		s = strings.Replace(s, ".", f.locale.Decimal, 1)
	}
	return s
}

func trimOptional(frac string, p Pattern) string {
	if frac == "" {
		return ""
	}
	if p.OptionalDecimals {
		if isZero(frac) {
			return ""
		}
		return frac
	}
	for len(frac) > p.MinDecimals && strings.HasSuffix(frac, "0") {
		frac = frac[:len(frac)-1]
	}
	return frac
}

func roundHalfAway(v float64, decimals int) float64 {
	if decimals > 15 {
		return v
	}
	scale := math.Pow10(decimals)
	r := math.Round(v * scale)
	if math.IsInf(r, 0) {
		return v
	}
	return r / scale
}

func isZero(digits string) bool {
	return strings.Trim(digits, "0") == ""
}
