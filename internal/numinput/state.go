// Package numinput is a number entry field that shows a formatted value when
// idle and the plain number while the user edits it.
//
// The field reconciles three representations: the owner's Value, the text
// buffer, and the string on screen. The rules live in Transition, a pure
// function over State; Input wraps it with callbacks and Model renders it as
// a bubbletea component.
//
// While unfocused the buffer always holds the canonical formatting of its own
// value. While focused it holds exactly what the user typed, and values
// pushed in by the owner are ignored until focus leaves.
package numinput

// State is the field's entire mutable state.
type State struct {
	Focused bool
	RawText string
	// Format is the format currently held; empty means the converter default.
	Format string
}

// NewState builds the initial, unfocused state for value.
func NewState(conv Converter, value Value, format string) State {
	conv = conv.withDefaults()
	format = resolveFormat(conv, format, "")
	return State{RawText: conv.format(value, format), Format: format}
}

// Value is the number the buffer currently denotes.
func (s State) Value(conv Converter) Value {
	return conv.withDefaults().Unformat(s.RawText)
}

// Display is the string shown to the user: the buffer verbatim while focused,
// its canonical formatting otherwise.
func (s State) Display(conv Converter) string {
	if s.Focused {
		return s.RawText
	}
	conv = conv.withDefaults()
	return conv.canonical(s.RawText, resolveFormat(conv, s.Format, ""))
}

// Event is something that happened to the field.
type Event interface{ isEvent() }

// ExternalUpdate carries a new value (and optionally format) from the owner.
type ExternalUpdate struct {
	Value  Value
	Format string
}

// FormatChange carries a new format without a new value.
type FormatChange struct {
	Format string
}

// FocusGained means the field now receives keystrokes.
type FocusGained struct{ Payload any }

// TextChanged carries the complete new contents of the buffer.
type TextChanged struct {
	Text    string
	Payload any
}

// FocusLost means the field no longer receives keystrokes.
type FocusLost struct{ Payload any }

func (ExternalUpdate) isEvent() {}
func (FormatChange) isEvent() {}
func (FocusGained) isEvent() {}
func (TextChanged) isEvent() {}
func (FocusLost) isEvent() {}

// Effect is a notification the owner must receive after a transition.
type Effect interface{ isEffect() }

// NotifyChange reports the value typed so far.
type NotifyChange struct {
	Value   Value
	Payload any
}

type NotifyFocus struct{ Payload any }

type NotifyBlur struct{ Payload any }

func (NotifyChange) isEffect() {}
func (NotifyFocus) isEffect() {}
func (NotifyBlur) isEffect() {}

// Transition applies ev to s. It never fails; unknown events leave s as is.
func Transition(conv Converter, s State, ev Event) (State, []Effect) {
	conv = conv.withDefaults()

	switch e := ev.(type) {
	case ExternalUpdate:
		s.Format = resolveFormat(conv, e.Format, s.Format)
		if !s.Focused {
			s.RawText = conv.format(e.Value, s.Format)
		}
		return s, nil

	case FormatChange:
		format := resolveFormat(conv, e.Format, s.Format)
		if !s.Focused {
			s.RawText = conv.canonical(s.RawText, format)
		}
		s.Format = format
		return s, nil

	case FocusGained:
		if !s.Focused {
			s.Focused = true
			s.RawText = conv.raw(conv.Unformat(s.RawText))
		}
		return s, []Effect{NotifyFocus{Payload: e.Payload}}

	case TextChanged:
		value := conv.Unformat(e.Text)
		if s.Focused {
			s.RawText = e.Text
		} else {
			s.RawText = conv.format(value, resolveFormat(conv, s.Format, ""))
		}
		return s, []Effect{NotifyChange{Value: value, Payload: e.Payload}}

	case FocusLost:
		if s.Focused {
			s.Focused = false
			s.RawText = conv.canonical(s.RawText, resolveFormat(conv, s.Format, ""))
		}
		return s, []Effect{NotifyBlur{Payload: e.Payload}}
	}
	return s, nil
}

// resolveFormat picks next, then held, then the converter default.
func resolveFormat(conv Converter, next, held string) string {
	if next != "" {
		return next
	}
	if held != "" {
		return held
	}
	return conv.DefaultFormat
}
