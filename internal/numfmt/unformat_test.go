package numfmt

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnformatEnglish(t *testing.T) {
	f := New(DefaultLocale())
	cases := []struct {
		text string
		want float64
		ok   bool
	}{
		{"1,000", 1000, true},
		{"0", 0, true},
		{"12", 12, true},
		{"-12", -12, true},
		{"$1,234.50", 1234.5, true},
		{"-$1,234.50", -1234.5, true},
		{"(1,235)", -1235, true},
		{"+5", 5, true},
		{"25.6%", 0.256, true},
		{"1.2k", 1200, true},
		{"2.5 m", 2500000, true},
		{"22nd", 22, true},
		{"1.", 1, true},
		{".5", 0.5, true},
		{"1,000.5x", 1000.5, true},
		{"12abc", 12, true},
		{"5x5", 55, true},
		{"1e5", 15, true},
		{"", 0, false},
		{"   ", 0, false},
		{"-", 0, false},
		{".", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
	}
	for _, tc := range cases {
		got, ok := f.Unformat(tc.text)
		require.Equal(t, tc.ok, ok, "Unformat(%q) ok", tc.text)
		if tc.ok {
			require.InDelta(t, tc.want, got, 1e-9, "Unformat(%q)", tc.text)
		}
	}
}

func TestUnformatGerman(t *testing.T) {
	f := New(LocaleFor("de-DE"))
	got, ok := f.Unformat("1.234,50 €")
	require.True(t, ok)
	require.InDelta(t, 1234.5, got, 1e-9)

	got, ok = f.Unformat("1000,5")
	require.True(t, ok)
	require.InDelta(t, 1000.5, got, 1e-9)
}

func TestRoundTrip(t *testing.T) {
	formats := []string{"0,0", "0,0.00", "$0,0.00", "(0,0.00)", "+0,0", "0.00%"}
	values := []float64{0, 1, -1, 12, 999, 1000, 1234567, -98765.43, 0.25, 42.5}
	for _, tag := range []string{"en-US", "de-DE", "fr-FR", "de-CH"} {
		f := New(LocaleFor(tag))
		for _, format := range formats {
			p := ParsePattern(format)
			for _, v := range values {
				text := f.Format(v, format)
				got, ok := f.Unformat(text)
				require.True(t, ok, "[%s] Unformat(%q)", tag, text)
				want := roundHalfAway(v*percentScale(p), p.MaxDecimals) / percentScale(p)
				if v < 0 {
					want = -roundHalfAway(-v*percentScale(p), p.MaxDecimals) / percentScale(p)
				}
				require.InDelta(t, want, got, 1e-9, "[%s] %v via %q (%q)", tag, v, format, text)
			}
		}
	}
}

func percentScale(p Pattern) float64 {
	if p.Percent {
		return 100
	}
	return 1
}

func TestResolveFormat(t *testing.T) {
	got, err := ResolveFormat("currency")
	require.NoError(t, err)
	require.Equal(t, "$0,0.00", got)

	got, err = ResolveFormat("Decimal")
	require.NoError(t, err)
	require.Equal(t, "0,0[.00]", got)

	got, err = ResolveFormat("0.00")
	require.NoError(t, err)
	require.Equal(t, "0.00", got)

	got, err = ResolveFormat("  ")
	require.NoError(t, err)
	require.Equal(t, DefaultFormat, got)

	_, err = ResolveFormat("curency")
	require.True(t, errors.Is(err, ErrUnknownPreset))
	require.True(t, strings.Contains(err.Error(), `did you mean "currency"`), err.Error())

	_, err = ResolveFormat("zzzzzz")
	require.ErrorIs(t, err, ErrUnknownPreset)
	require.NotContains(t, err.Error(), "did you mean")
}
