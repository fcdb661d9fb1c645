package numinput

// Persister is implemented by event payloads that are only valid during the
// call that delivered them. Input calls Persist before touching its state so
// the payload stays usable in callbacks.
type Persister interface {
	Persist()
}

// Props configures an Input.
type Props struct {
	Value  Value
	Format string
	// Converter defaults to en-US numbro-style formatting.
	Converter *Converter

	OnChange func(v Value, payload any)
	OnFocus  func(payload any)
	OnBlur   func(payload any)
}

// Input is the stateful form of the field. It is not safe for concurrent
// use; drive it from a single event loop.
type Input struct {
	conv  Converter
	state State

	onChange func(Value, any)
	onFocus  func(any)
	onBlur   func(any)
}

// New builds an unfocused Input holding p.Value.
func New(p Props) *Input {
	conv := DefaultConverter()
	if p.Converter != nil {
		conv = p.Converter.withDefaults()
	}
	in := &Input{
		conv:     conv,
		state:    NewState(conv, p.Value, p.Format),
		onChange: p.OnChange,
		onFocus:  p.OnFocus,
		onBlur:   p.OnBlur,
	}
	if in.onChange == nil {
		in.onChange = func(Value, any) {}
	}
	if in.onFocus == nil {
		in.onFocus = func(any) {}
	}
	if in.onBlur == nil {
		in.onBlur = func(any) {}
	}
	return in
}

// Focus starts an edit: the buffer switches to the plain number.
func (in *Input) Focus(payload any) {
	in.dispatch(FocusGained{Payload: payload}, payload)
}

// Blur ends an edit: the buffer is reformatted.
func (in *Input) Blur(payload any) {
	in.dispatch(FocusLost{Payload: payload}, payload)
}

// Change replaces the buffer with text and reports its value.
func (in *Input) Change(text string, payload any) {
	in.dispatch(TextChanged{Text: text, Payload: payload}, payload)
}

// Update pushes a value and format from the owner. It is ignored while
// focused, apart from remembering the format for the next blur.
func (in *Input) Update(v Value, format string) {
	in.dispatch(ExternalUpdate{Value: v, Format: format}, nil)
}

// SetValue is Update keeping the current format.
func (in *Input) SetValue(v Value) {
	in.Update(v, "")
}

// SetFormat changes the format without supplying a value.
func (in *Input) SetFormat(format string) {
	in.dispatch(FormatChange{Format: format}, nil)
}

func (in *Input) Display() string { return in.state.Display(in.conv) }
func (in *Input) Value() Value { return in.state.Value(in.conv) }
func (in *Input) Focused() bool { return in.state.Focused }
func (in *Input) Format() string { return in.state.Format }
func (in *Input) Converter() Converter { return in.conv }

// dispatch commits the transition and only then runs its effects, so a
// callback that reads the Input sees the new state.
func (in *Input) dispatch(ev Event, payload any) {
	if p, ok := payload.(Persister); ok {
		p.Persist()
	}
	next, effects := Transition(in.conv, in.state, ev)
	in.state = next
	for _, eff := range effects {
		switch e := eff.(type) {
		case NotifyChange:
			in.onChange(e.Value, e.Payload)
		case NotifyFocus:
			in.onFocus(e.Payload)
		case NotifyBlur:
			in.onBlur(e.Payload)
		}
	}
}
