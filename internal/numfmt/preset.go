package numfmt

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ErrUnknownPreset is returned by ResolveFormat for a bare word that names
// no preset.
var ErrUnknownPreset = errors.New("unknown format preset")

var presets = map[string]string{
	"integer":  "0,0",
	"decimal":  "0,0[.00]",
	"currency": "$0,0.00",
	"percent":  "0.0%",
	"compact":  "0.0a",
	"ordinal":  "0o",
}

// Presets returns the preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveFormat maps a preset name to its format string. Anything that
// contains a digit placeholder is returned as is. An empty string resolves to
// DefaultFormat.
func ResolveFormat(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultFormat, nil
	}
	if f, ok := presets[strings.ToLower(name)]; ok {
		return f, nil
	}
	if strings.ContainsAny(name, "0#") {
		return name, nil
	}
	if s := suggestPreset(name); s != "" {
		return "", fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownPreset, name, s)
	}
	return "", fmt.Errorf("%w %q", ErrUnknownPreset, name)
}

func suggestPreset(name string) string {
	target := strings.ToLower(name)
	best, bestDist := "", -1
	for _, candidate := range Presets() {
		d := levenshtein.ComputeDistance(target, candidate)
		if bestDist < 0 || d < bestDist {
			best, bestDist = candidate, d
		}
	}
	if bestDist < 0 || bestDist > len(best)/2 {
		return ""
	}
	return best
}
