package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jackchuka/gitsweep/internal/progress"
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	u := m.current
	label := u.Label
	if label == "" {
		label = "scanning"
	}

	var b strings.Builder
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(styleLabel.Render(fmt.Sprintf("%-10s", label)))
	b.WriteString(" ")
	b.WriteString(m.bar.ViewAs(u.Fraction()))
	b.WriteString(" ")
	b.WriteString(renderCount(u))

	if m.cancelling {
		b.WriteString("  " + styleAmber.Render("stopping…"))
	} else if u.Item != "" {
		used := lipgloss.Width(b.String()) + 2
		b.WriteString("  " + styleDim.Render(ansi.Truncate(u.Item, max(m.width-used, 0), "…")))
	}

	return b.String() + "\n"
}

func renderCount(u progress.Update) string {
	if u.Total == 0 {
		return styleDim.Render("…")
	}
	return styleCount.Render(fmt.Sprintf("%d", u.Index)) + styleDim.Render(fmt.Sprintf("/%d", u.Total))
}
