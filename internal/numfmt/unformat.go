package numfmt

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Unformat reads a number back from text produced by Format or typed by a
// user. It is lenient the way numbro is: currency symbols, separators and
// stray characters are ignored. It reports ok=false when the text holds no
// digits or more than one decimal separator.
//
// Negative values are written with a minus sign or parentheses. A trailing
// "%" divides by 100 and a trailing abbreviation ("k", "m", ...) multiplies.
func (f *Formatter) Unformat(text string) (float64, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, false
	}

	neg := strings.Count(s, "-")%2 == 1
	if strings.Contains(s, "(") && strings.Contains(s, ")") {
		neg = !neg
	}

	if sym := f.locale.Currency; sym != "" {
		s = strings.ReplaceAll(s, sym, "")
	}
	s = strings.TrimSpace(strings.Trim(s, "()+- "))

	mult, div := 1.0, 1.0
	if rest, ok := strings.CutSuffix(s, "%"); ok {
		div = 100
		s = strings.TrimSpace(rest)
	}
	if rest, ok := f.cutOrdinal(s); ok {
		s = rest
	} else if rest, m, ok := f.cutAbbreviation(s); ok {
		mult = m
		s = rest
	}

	num, ok := f.digits(s)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, false
	}
	v = v * mult / div
	if neg {
		v = -v
	}
	return v, true
}

// digits keeps the digits and the decimal separator of s, normalising the
// separator to ".".
func (f *Formatter) digits(s string) (string, bool) {
	dec := f.locale.Decimal
	var b strings.Builder
	seenDigit, seenPoint := false, false
	for i := 0; i < len(s); {
		if dec != "" && strings.HasPrefix(s[i:], dec) {
			if seenPoint {
				return "", false
			}
			seenPoint = true
			b.WriteByte('.')
			i += len(dec)
			continue
		}
		c := s[i]
		if c >= '0' && c <= '9' {
			seenDigit = true
			b.WriteByte(c)
		}
		i++
	}
	return b.String(), seenDigit
}

func (f *Formatter) cutOrdinal(s string) (string, bool) {
	for _, suffix := range []string{"st", "nd", "rd", "th"} {
		if f.locale.Ordinal == nil {
			break
		}
		rest, ok := strings.CutSuffix(s, suffix)
		if !ok || rest == "" || !endsWithDigit(rest) {
			continue
		}
		n, err := strconv.ParseInt(lastDigits(rest), 10, 64)
		if err == nil && f.locale.Ordinal(n) == suffix {
			return rest, true
		}
	}
	return s, false
}

func (f *Formatter) cutAbbreviation(s string) (string, float64, bool) {
	type candidate struct {
		suffix string
		mult   float64
	}
	cands := make([]candidate, 0, len(f.locale.Abbreviations))
	for i, a := range f.locale.Abbreviations {
		if a != "" {
			cands = append(cands, candidate{a, abbreviationSteps[i]})
		}
	}
	// Longest first so "mm" wins over "m".
	sort.SliceStable(cands, func(i, j int) bool { return len(cands[i].suffix) > len(cands[j].suffix) })

	for _, c := range cands {
		if len(s) < len(c.suffix) || !strings.EqualFold(s[len(s)-len(c.suffix):], c.suffix) {
			continue
		}
		rest := strings.TrimSpace(s[:len(s)-len(c.suffix)])
		if rest == "" || !endsWithDigit(rest) {
			continue
		}
		return rest, c.mult, true
	}
	return s, 1, false
}

func endsWithDigit(s string) bool {
	if s == "" {
		return false
	}
	return unicode.IsDigit(rune(s[len(s)-1]))
}

func lastDigits(s string) string {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	return s[i:]
}
