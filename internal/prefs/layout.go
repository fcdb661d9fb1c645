package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const layoutFile = "envelopes.json"

// ErrInvalidLayout is returned for a layout with blank or repeated names.
var ErrInvalidLayout = errors.New("invalid envelope layout")

// Envelope is one entry of the layout file. Amounts are never stored here.
type Envelope struct {
	Name   string `json:"name"`
	Format string `json:"format,omitempty"`
}

// LayoutPath is where the layout file lives: envelopes.json under the user
// config dir.
func LayoutPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "numentry", layoutFile), nil
}

// normalize trims every entry and rejects blank names and names that differ
// only in case; envelope names are shown to the user as one list.
func normalize(envs []Envelope) ([]Envelope, error) {
	out := make([]Envelope, 0, len(envs))
	seen := make(map[string]int, len(envs))
	for i, env := range envs {
		env.Name = strings.TrimSpace(env.Name)
		env.Format = strings.TrimSpace(env.Format)
		if env.Name == "" {
			return nil, fmt.Errorf("%w: entry %d has no name", ErrInvalidLayout, i+1)
		}
		key := strings.ToLower(env.Name)
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: %q repeats entry %d", ErrInvalidLayout, env.Name, prev+1)
		}
		seen[key] = i
		out = append(out, env)
	}
	return out, nil
}

// SaveLayout writes envs in display order.
func SaveLayout(envs []Envelope) error {
	envs, err := normalize(envs)
	if err != nil {
		return err
	}
	path, err := LayoutPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir layout dir: %w", err)
	}
	data, err := json.MarshalIndent(envs, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadLayout returns nil, nil when there is no layout file. A file that
// exists but is not a usable layout is an error, so a typo never wipes the
// envelope list.
func LoadLayout() ([]Envelope, error) {
	path, err := LayoutPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var envs []Envelope
	if err := json.Unmarshal(data, &envs); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(envs) == 0 {
		return nil, fmt.Errorf("%w: %s lists no envelopes", ErrInvalidLayout, path)
	}
	return normalize(envs)
}
