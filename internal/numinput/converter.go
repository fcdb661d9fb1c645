package numinput

import "github.com/jask/numentry/internal/numfmt"

// DefaultFormat is an integer with thousand separators.
const DefaultFormat = numfmt.DefaultFormat

// Converter bundles the pure conversions the state machine relies on. All
// three functions must be total: no panics, Empty or "" for anything they
// cannot handle.
type Converter struct {
	// Format renders a number. It is never called with Empty.
	Format func(v Value, format string) string
	// Unformat reads text back into a Value.
	Unformat func(text string) Value
	// Raw renders the edit form shown while focused.
	Raw func(v Value) string
	// DefaultFormat is used when neither the caller nor the held state
	// names a format.
	DefaultFormat string
}

// NewConverter adapts a numfmt.Formatter.
func NewConverter(f *numfmt.Formatter) Converter {
	return Converter{
		Format: func(v Value, format string) string {
			n, ok := v.Float()
			if !ok {
				return ""
			}
			return f.Format(n, format)
		},
		Unformat: func(text string) Value {
			n, ok := f.Unformat(text)
			if !ok {
				return Empty
			}
			return Number(n)
		},
		Raw: func(v Value) string {
			n, ok := v.Float()
			if !ok {
				return ""
			}
			return f.Raw(n)
		},
		DefaultFormat: DefaultFormat,
	}
}

// DefaultConverter formats for en-US.
func DefaultConverter() Converter {
	return NewConverter(numfmt.New(numfmt.DefaultLocale()))
}

// withDefaults fills unset fields from the default converter.
func (c Converter) withDefaults() Converter {
	if c.Format != nil && c.Unformat != nil && c.Raw != nil && c.DefaultFormat != "" {
		return c
	}
	d := DefaultConverter()
	if c.Format == nil {
		c.Format = d.Format
	}
	if c.Unformat == nil {
		c.Unformat = d.Unformat
	}
	if c.Raw == nil {
		c.Raw = Value.String
	}
	if c.DefaultFormat == "" {
		c.DefaultFormat = d.DefaultFormat
	}
	return c
}

// format renders v, always "" for Empty whatever the Format func returns.
func (c Converter) format(v Value, format string) string {
	if v.IsEmpty() {
		return ""
	}
	return c.Format(v, format)
}

// canonical is the display form of text under format.
func (c Converter) canonical(text, format string) string {
	return c.format(c.Unformat(text), format)
}

func (c Converter) raw(v Value) string {
	if v.IsEmpty() {
		return ""
	}
	return c.Raw(v)
}
