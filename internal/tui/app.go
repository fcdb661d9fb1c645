package tui

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/numentry/internal/config"
	"github.com/jask/numentry/internal/database/repository"
	"github.com/jask/numentry/internal/logging"
	"github.com/jask/numentry/internal/numinput"
)

// App is the budget screen: one number field per envelope plus a total.
type App struct {
	ctx         context.Context
	repo        *repository.EnvelopeRepo
	log         *slog.Logger
	inputLog    *slog.Logger
	conv        numinput.Converter
	format      string
	totalFormat string
	keys        keyMap
	fieldOpts   []numinput.Option

	envelopes []repository.Envelope
	fields    []*numinput.Model
	focus     int // index into fields, -1 when nothing is focused
	status    string
	statusErr bool
}

// Option customises an App.
type Option func(*App)

// WithFieldOptions appends options applied to every envelope field.
func WithFieldOptions(opts ...numinput.Option) Option {
	return func(a *App) { a.fieldOpts = append(a.fieldOpts, opts...) }
}

// New builds the app. cfg must already be validated so formats are resolved.
func New(ctx context.Context, cfg config.Config, repo *repository.EnvelopeRepo, logger *slog.Logger, opts ...Option) *App {
	a := &App{
		ctx:         ctx,
		repo:        repo,
		log:         logging.Component(logger, logging.ComponentApp),
		inputLog:    logging.Component(logger, logging.ComponentInput),
		conv:        numinput.NewConverter(cfg.Formatter()),
		format:      cfg.Number.Format,
		totalFormat: cfg.Number.TotalFormat,
		keys:        defaultKeyMap(),
		focus:       -1,
		fieldOpts: []numinput.Option{
			numinput.WithPlaceholder("—"),
			numinput.WithWidth(fieldWidth),
			numinput.WithCharLimit(fieldCharLimit),
			numinput.WithStyles(fieldStyles()),
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *App) Init() tea.Cmd {
	return a.loadEnvelopes()
}

func (a *App) loadEnvelopes() tea.Cmd {
	return func() tea.Msg {
		list, err := a.repo.List(a.ctx)
		if err != nil {
			return errMsg{fmt.Errorf("load envelopes: %w", err)}
		}
		return envelopesMsg(list)
	}
}

func (a *App) saveCmd(id string, v numinput.Value) tea.Cmd {
	name := a.envelopeName(id)
	return func() tea.Msg {
		if err := a.repo.SetAmount(a.ctx, id, v.NullFloat64()); err != nil {
			return errMsg{fmt.Errorf("save %s: %w", name, err)}
		}
		return savedMsg{names: []string{name}}
	}
}

func (a *App) saveAllCmd() tea.Cmd {
	amounts := make(map[string]numinput.Value, len(a.fields))
	names := make([]string, 0, len(a.fields))
	for _, f := range a.fields {
		amounts[f.ID()] = f.Value()
		names = append(names, a.envelopeName(f.ID()))
	}
	return func() tea.Msg {
		rows := make(map[string]sql.NullFloat64, len(amounts))
		for id, v := range amounts {
			rows[id] = v.NullFloat64()
		}
		if err := a.repo.SetAmounts(a.ctx, rows); err != nil {
			return errMsg{fmt.Errorf("save all: %w", err)}
		}
		return savedMsg{names: names}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(m)
	case envelopesMsg:
		a.applyEnvelopes(m)
		return a, nil
	case savedMsg:
		a.setStatus(savedStatus(m.names), false)
		a.log.Info("saved", logging.FieldOperation, logging.OpSave, logging.FieldCount, len(m.names))
		return a, nil
	case errMsg:
		a.setStatus(m.Error(), true)
		a.log.Error("operation failed", logging.FieldError, m.error)
		return a, nil
	case numinput.FocusMsg:
		a.inputLog.Debug("focus", logging.FieldOperation, logging.OpFocus, logging.FieldEnvelope, m.ID)
		return a, nil
	case numinput.ChangeMsg:
		a.inputLog.Debug("change", logging.FieldEnvelope, m.ID, logging.FieldValue, m.Value.String())
		return a, nil
	case numinput.BlurMsg:
		a.inputLog.Debug("blur", logging.FieldOperation, logging.OpBlur, logging.FieldEnvelope, m.ID, logging.FieldValue, m.Value.String())
		return a, a.saveCmd(m.ID, m.Value)
	}
	// Anything else (cursor blinks) belongs to the focused field.
	if f := a.focused(); f != nil {
		return a, f.Update(msg)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Force):
		return a, tea.Quit
	case key.Matches(m, a.keys.Next):
		return a, a.moveFocus(1)
	case key.Matches(m, a.keys.Prev):
		return a, a.moveFocus(-1)
	case key.Matches(m, a.keys.Blur):
		return a, a.blurFocused()
	case key.Matches(m, a.keys.Reload):
		a.log.Info("reload", logging.FieldOperation, logging.OpReload)
		return a, a.loadEnvelopes()
	case key.Matches(m, a.keys.Save):
		return a, a.saveAllCmd()
	}
	if f := a.focused(); f != nil {
		return a, f.Update(m)
	}
	if key.Matches(m, a.keys.Quit) {
		return a, tea.Quit
	}
	return a, nil
}

// applyEnvelopes reconciles fields with freshly loaded rows. Existing fields
// receive the stored value as an external update, which a focused field
// ignores.
func (a *App) applyEnvelopes(list []repository.Envelope) {
	byID := make(map[string]*numinput.Model, len(a.fields))
	for _, f := range a.fields {
		byID[f.ID()] = f
	}
	focusedID := ""
	if f := a.focused(); f != nil {
		focusedID = f.ID()
	}

	fields := make([]*numinput.Model, 0, len(list))
	a.focus = -1
	for i, env := range list {
		value := numinput.ValueFromNull(env.Amount)
		f, ok := byID[env.ID]
		if ok {
			f.UpdateValue(value, a.envelopeFormat(env))
		} else {
			f = numinput.NewModel(env.ID, numinput.Props{
				Value:     value,
				Format:    a.envelopeFormat(env),
				Converter: &a.conv,
			}, a.fieldOpts...)
		}
		if env.ID == focusedID {
			a.focus = i
		}
		fields = append(fields, f)
	}
	a.envelopes = list
	a.fields = fields
	a.log.Info("envelopes loaded", logging.FieldOperation, logging.OpLoad, logging.FieldCount, len(list))
}

func (a *App) moveFocus(delta int) tea.Cmd {
	n := len(a.fields)
	if n == 0 {
		return nil
	}
	var cmds []tea.Cmd
	next := 0
	switch {
	case a.focus >= 0:
		cmds = append(cmds, a.fields[a.focus].Blur())
		next = ((a.focus+delta)%n + n) % n
	case delta < 0:
		next = n - 1
	}
	a.focus = next
	cmds = append(cmds, a.fields[next].Focus())
	return tea.Batch(cmds...)
}

func (a *App) blurFocused() tea.Cmd {
	f := a.focused()
	if f == nil {
		return nil
	}
	a.focus = -1
	return f.Blur()
}

func (a *App) focused() *numinput.Model {
	if a.focus < 0 || a.focus >= len(a.fields) {
		return nil
	}
	return a.fields[a.focus]
}

func (a *App) envelopeFormat(env repository.Envelope) string {
	if env.Format != "" {
		return env.Format
	}
	return a.format
}

func (a *App) envelopeName(id string) string {
	for _, env := range a.envelopes {
		if env.ID == id {
			return env.Name
		}
	}
	return id
}

// Total sums every non-empty field, including the one being edited.
func (a *App) Total() numinput.Value {
	sum, seen := 0.0, false
	for _, f := range a.fields {
		if n, ok := f.Value().Float(); ok {
			sum += n
			seen = true
		}
	}
	if !seen {
		return numinput.Empty
	}
	return numinput.Number(sum)
}

func (a *App) setStatus(s string, isErr bool) {
	a.status = s
	a.statusErr = isErr
}

func savedStatus(names []string) string {
	switch len(names) {
	case 0:
		return "nothing to save"
	case 1:
		return "saved " + names[0]
	default:
		return fmt.Sprintf("saved %d envelopes", len(names))
	}
}

type envelopesMsg []repository.Envelope

type savedMsg struct{ names []string }

type errMsg struct{ error }
