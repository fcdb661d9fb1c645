package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/numentry/internal/numinput"
)

// Catppuccin Mocha
const (
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorLavender lipgloss.Color = "#b4befe"
	colorPink     lipgloss.Color = "#f5c2e7"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorRed      lipgloss.Color = "#f38ba8"
)

const (
	nameWidth      = 14
	fieldWidth     = 18
	fieldCharLimit = 32
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPink)
	nameStyle    = lipgloss.NewStyle().Foreground(colorSubtext0).Width(nameWidth)
	activeStyle  = lipgloss.NewStyle().Foreground(colorLavender).Bold(true).Width(nameWidth)
	totalStyle   = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	ruleStyle    = lipgloss.NewStyle().Foreground(colorOverlay0)
	okStyle      = lipgloss.NewStyle().Foreground(colorGreen)
	errStyle     = lipgloss.NewStyle().Foreground(colorRed)
	helpRenderer = help.New()
)

// fieldStyles matches the envelope fields to the screen palette.
func fieldStyles() numinput.Styles {
	return numinput.Styles{
		Focused:     lipgloss.NewStyle().Foreground(colorText).Bold(true),
		Blurred:     lipgloss.NewStyle().Foreground(colorSubtext0),
		Placeholder: lipgloss.NewStyle().Foreground(colorOverlay0),
		Prompt:      lipgloss.NewStyle().Foreground(colorLavender),
	}
}

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Envelopes"))
	b.WriteString("\n\n")

	if len(a.fields) == 0 {
		b.WriteString(ruleStyle.Render("no envelopes"))
		b.WriteString("\n")
	}
	for i, f := range a.fields {
		name := ansi.Truncate(a.envelopeName(f.ID()), nameWidth-1, "…")
		marker := "  "
		style := nameStyle
		if i == a.focus {
			marker = "> "
			style = activeStyle
		}
		b.WriteString(marker)
		b.WriteString(style.Render(name))
		b.WriteString(f.View())
		b.WriteString("\n")
	}

	b.WriteString(ruleStyle.Render("  " + strings.Repeat("─", nameWidth+fieldWidth)))
	b.WriteString("\n  ")
	b.WriteString(nameStyle.Render("Total"))
	b.WriteString(totalStyle.Render(a.totalText()))
	b.WriteString("\n\n")

	if a.status != "" {
		style := okStyle
		if a.statusErr {
			style = errStyle
		}
		b.WriteString(style.Render(a.status))
		b.WriteString("\n")
	}
	b.WriteString(helpRenderer.ShortHelpView(a.keys.help()))
	return b.String()
}

func (a *App) totalText() string {
	total := a.Total()
	if total.IsEmpty() {
		return "—"
	}
	return a.conv.Format(total, a.totalFormat)
}
