package numfmt

import "strings"

// Position of the currency symbol relative to the number.
type Position int

const (
	PositionNone Position = iota
	PositionPrefix
	PositionSuffix
)

// Pattern is a parsed format string such as "0,0", "0,0[.00]", "$0,0.00",
// "(0.0%)" or "0.0a".
type Pattern struct {
	Thousands bool
	// MinDecimals digits are always rendered; up to MaxDecimals are rendered
	// when they are not trailing zeros.
	MinDecimals int
	MaxDecimals int
	// OptionalDecimals drops the whole fraction when it rounds to zero
	// ("[.00]").
	OptionalDecimals bool

	Sign   bool
	Parens bool

	Currency      Position
	CurrencySpace bool

	Percent      bool
	PercentSpace bool

	Abbreviate  bool
	AbbrevSpace bool

	Ordinal bool
}

// ParsePattern reads a numbro-style format string. Unknown characters are
// ignored, so every string yields a usable pattern.
func ParsePattern(format string) Pattern {
	var p Pattern
	firstDigit := strings.IndexAny(format, "0#")

	for i, r := range format {
		switch r {
		case '$':
			if firstDigit >= 0 && i > firstDigit {
				p.Currency = PositionSuffix
				p.CurrencySpace = i > 0 && format[i-1] == ' '
			} else {
				p.Currency = PositionPrefix
				p.CurrencySpace = i+1 < len(format) && format[i+1] == ' '
			}
		case '+':
			p.Sign = true
		case '(':
			p.Parens = true
		case '%':
			p.Percent = true
			p.PercentSpace = i > 0 && format[i-1] == ' '
		case 'a':
			p.Abbreviate = true
			p.AbbrevSpace = i > 0 && format[i-1] == ' '
		case 'o':
			p.Ordinal = true
		}
	}

	number := numberPart(format)
	point := strings.Index(number, ".")
	intPart := number
	if point >= 0 {
		intPart = number[:point]
	}
	p.Thousands = strings.Contains(intPart, ",")

	if point < 0 {
		return p
	}
	frac := number[point+1:]
	if strings.HasSuffix(intPart, "[") {
		// "[.00]": every decimal is conditional on the fraction being non-zero.
		p.OptionalDecimals = true
	}
	optional := false
	for _, r := range frac {
		switch r {
		case '[':
			optional = true
		case ']':
			optional = false
		case '0':
			p.MaxDecimals++
			if !optional {
				p.MinDecimals++
			}
		}
	}
	if p.OptionalDecimals {
		p.MinDecimals = p.MaxDecimals
	}
	return p
}

// numberPart returns the run of digit placeholders, separators and brackets
// that describes the numeric body of a format.
func numberPart(format string) string {
	start := strings.IndexAny(format, "0#[")
	if start < 0 {
		return ""
	}
	end := start
	for end < len(format) && strings.ContainsRune("0#,.[]", rune(format[end])) {
		end++
	}
	return format[start:end]
}
