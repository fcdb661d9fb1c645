package numfmt

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale holds the culture-specific pieces used when rendering and reading
// numbers: separators, currency symbol, abbreviation suffixes and ordinals.
type Locale struct {
	Tag       language.Tag
	Thousands string
	Decimal   string
	Currency  string
	// CurrencySuffix places the symbol after the number, separated by a
	// space, regardless of where the pattern puts it.
	CurrencySuffix bool
	// Abbreviations for thousand, million, billion and trillion.
	Abbreviations [4]string
	Ordinal       func(n int64) string
}

func englishOrdinal(n int64) string {
	if n < 0 {
		n = -n
	}
	if n%100 >= 11 && n%100 <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

func constOrdinal(s string) func(int64) string {
	return func(int64) string { return s }
}

var englishAbbreviations = [4]string{"k", "m", "b", "t"}

var locales = []Locale{
	{
		Tag:           language.AmericanEnglish,
		Thousands:     ",",
		Decimal:       ".",
		Currency:      "$",
		Abbreviations: englishAbbreviations,
		Ordinal:       englishOrdinal,
	},
	{
		Tag:           language.MustParse("en-AU"),
		Thousands:     ",",
		Decimal:       ".",
		Currency:      "$",
		Abbreviations: englishAbbreviations,
		Ordinal:       englishOrdinal,
	},
	{
		Tag:           language.BritishEnglish,
		Thousands:     ",",
		Decimal:       ".",
		Currency:      "£",
		Abbreviations: englishAbbreviations,
		Ordinal:       englishOrdinal,
	},
	{
		Tag:            language.MustParse("de-DE"),
		Thousands:      ".",
		Decimal:        ",",
		Currency:       "€",
		CurrencySuffix: true,
		Abbreviations:  [4]string{"k", "m", "b", "t"},
		Ordinal:        constOrdinal("."),
	},
	{
		Tag:           language.MustParse("de-CH"),
		Thousands:     "'",
		Decimal:       ".",
		Currency:      "CHF",
		Abbreviations: [4]string{"k", "m", "b", "t"},
		Ordinal:       constOrdinal("."),
	},
	{
		Tag:            language.MustParse("fr-FR"),
		Thousands:      " ",
		Decimal:        ",",
		Currency:       "€",
		CurrencySuffix: true,
		Abbreviations:  [4]string{"k", "M", "Md", "Bn"},
		Ordinal: func(n int64) string {
			if n == 1 {
				return "er"
			}
			return "e"
		},
	},
	{
		Tag:            language.MustParse("it-IT"),
		Thousands:      ".",
		Decimal:        ",",
		Currency:       "€",
		CurrencySuffix: true,
		Abbreviations:  [4]string{"mila", "mil", "b", "t"},
		Ordinal:        constOrdinal("º"),
	},
	{
		Tag:            language.MustParse("es-ES"),
		Thousands:      ".",
		Decimal:        ",",
		Currency:       "€",
		CurrencySuffix: true,
		Abbreviations:  [4]string{"k", "mm", "b", "t"},
		Ordinal:        constOrdinal("º"),
	},
	{
		Tag:           language.Japanese,
		Thousands:     ",",
		Decimal:       ".",
		Currency:      "¥",
		Abbreviations: [4]string{"千", "百万", "十億", "兆"},
		Ordinal:       constOrdinal(""),
	},
}

var localeMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(locales))
	for i, l := range locales {
		tags[i] = l.Tag
	}
	return language.NewMatcher(tags)
}()

// DefaultLocale returns the en-US locale.
func DefaultLocale() Locale {
	return locales[0]
}

// LocaleFor returns the supported locale closest to tag. Unparseable or
// unsupported tags fall back to en-US.
func LocaleFor(tag string) Locale {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return DefaultLocale()
	}
	_, idx := language.MatchStrings(localeMatcher, tag)
	if idx < 0 || idx >= len(locales) {
		return DefaultLocale()
	}
	return locales[idx]
}

// SupportedLocales lists the tags LocaleFor can resolve to.
func SupportedLocales() []string {
	out := make([]string, len(locales))
	for i, l := range locales {
		out[i] = l.Tag.String()
	}
	return out
}
