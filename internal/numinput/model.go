package numinput

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ChangeMsg is emitted after every keystroke that changed the text.
type ChangeMsg struct {
	ID    string
	Value Value
}

// FocusMsg is emitted when the field gains focus.
type FocusMsg struct{ ID string }

// BlurMsg is emitted when the field loses focus, carrying the committed value.
type BlurMsg struct {
	ID    string
	Value Value
}

// FocusEvent and BlurEvent are the payloads handed to Props.OnFocus and
// Props.OnBlur when the field is driven through Model.
type FocusEvent struct{ ID string }

type BlurEvent struct{ ID string }

// Styles controls how the field renders.
type Styles struct {
	Focused     lipgloss.Style
	Blurred     lipgloss.Style
	Placeholder lipgloss.Style
	Prompt      lipgloss.Style
}

// DefaultStyles uses the Catppuccin Mocha palette.
func DefaultStyles() Styles {
	return Styles{
		Focused:     lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")).Bold(true),
		Blurred:     lipgloss.NewStyle().Foreground(lipgloss.Color("#bac2de")),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086")),
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("#b4befe")),
	}
}

// Option configures the rendered field. Options never affect the value.
type Option func(*Model)

func WithPlaceholder(s string) Option {
	return func(m *Model) { m.text.Placeholder = s }
}

func WithPrompt(s string) Option {
	return func(m *Model) { m.text.Prompt = s }
}

// WithWidth limits the visible width in cells; zero means unlimited.
func WithWidth(w int) Option {
	return func(m *Model) {
		m.width = w
		m.text.Width = w
	}
}

func WithCharLimit(n int) Option {
	return func(m *Model) { m.text.CharLimit = n }
}

func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithCursorMode sets the cursor behaviour; tests and headless runs use
// cursor.CursorStatic so no blink ticks are scheduled.
func WithCursorMode(mode cursor.Mode) Option {
	return func(m *Model) { m.cursorMode = mode }
}

// Model renders an Input as a single-line bubbletea text field.
type Model struct {
	id         string
	core       *Input
	text       textinput.Model
	styles     Styles
	width      int
	cursorMode cursor.Mode

	pending []tea.Msg
}

// NewModel builds an unfocused field. Callbacks in props still fire; the
// model additionally emits ChangeMsg, FocusMsg and BlurMsg.
func NewModel(id string, props Props, opts ...Option) *Model {
	m := &Model{
		id:         id,
		text:       textinput.New(),
		styles:     DefaultStyles(),
		cursorMode: cursor.CursorBlink,
	}
	m.text.Prompt = ""

	onChange, onFocus, onBlur := props.OnChange, props.OnFocus, props.OnBlur
	props.OnChange = func(v Value, payload any) {
		if onChange != nil {
			onChange(v, payload)
		}
		m.pending = append(m.pending, ChangeMsg{ID: m.id, Value: v})
	}
	props.OnFocus = func(payload any) {
		if onFocus != nil {
			onFocus(payload)
		}
		m.pending = append(m.pending, FocusMsg{ID: m.id})
	}
	props.OnBlur = func(payload any) {
		if onBlur != nil {
			onBlur(payload)
		}
		m.pending = append(m.pending, BlurMsg{ID: m.id, Value: m.core.Value()})
	}
	m.core = New(props)

	for _, opt := range opts {
		opt(m)
	}
	m.text.Cursor.SetMode(m.cursorMode)
	m.text.PromptStyle = m.styles.Prompt
	m.text.TextStyle = m.styles.Focused
	m.text.PlaceholderStyle = m.styles.Placeholder
	m.sync()
	return m
}

func (m *Model) ID() string { return m.id }
func (m *Model) Value() Value { return m.core.Value() }
func (m *Model) Display() string { return m.core.Display() }
func (m *Model) Focused() bool { return m.core.Focused() }

// Focus gives the field keyboard focus.
func (m *Model) Focus() tea.Cmd {
	m.core.Focus(FocusEvent{ID: m.id})
	cmd := m.text.Focus()
	m.sync()
	m.text.CursorEnd()
	return tea.Batch(cmd, m.flush())
}

// Blur removes keyboard focus and reformats the text.
func (m *Model) Blur() tea.Cmd {
	m.core.Blur(BlurEvent{ID: m.id})
	m.text.Blur()
	m.sync()
	return m.flush()
}

// SetValue pushes a value from the owner. Ignored while focused.
func (m *Model) SetValue(v Value) {
	m.core.SetValue(v)
	m.sync()
}

// UpdateValue pushes a value and format from the owner. Ignored while
// focused except for the format.
func (m *Model) UpdateValue(v Value, format string) {
	m.core.Update(v, format)
	m.sync()
}

func (m *Model) SetFormat(format string) {
	m.core.SetFormat(format)
	m.sync()
}

// Update handles key messages while focused and forwards everything else to
// the underlying text input (cursor blinks).
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.KeyMsg); ok && !m.core.Focused() {
		return nil
	}
	before := m.text.Value()
	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)
	if after := m.text.Value(); after != before {
		m.core.Change(after, msg)
	}
	return tea.Batch(cmd, m.flush())
}

// View renders the field. Blurred fields show the formatted value, or the
// placeholder when Empty.
func (m *Model) View() string {
	if m.core.Focused() {
		return m.text.View()
	}
	prompt := ""
	if m.text.Prompt != "" {
		prompt = m.styles.Prompt.Render(m.text.Prompt)
	}
	display := m.core.Display()
	if display == "" {
		return prompt + m.styles.Placeholder.Render(m.truncate(m.text.Placeholder))
	}
	return prompt + m.styles.Blurred.Render(m.truncate(display))
}

func (m *Model) truncate(s string) string {
	if m.width <= 0 {
		return s
	}
	return ansi.Truncate(s, m.width, "…")
}

// sync copies the derived display into the text input.
func (m *Model) sync() {
	if display := m.core.Display(); m.text.Value() != display {
		m.text.SetValue(display)
	}
}

func (m *Model) flush() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(m.pending))
	for _, msg := range m.pending {
		cmds = append(cmds, func() tea.Msg { return msg })
	}
	m.pending = nil
	return tea.Batch(cmds...)
}
