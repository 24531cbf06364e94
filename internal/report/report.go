// Package report renders a sweep summary for people or for other programs.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/jackchuka/gitsweep/internal/model"
)

// Output formats
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

var Formats = []string{FormatText, FormatYAML, FormatJSON}

func Write(w io.Writer, s *model.Summary, format string) error {
	switch format {
	case FormatText, "":
		_, err := io.WriteString(w, Text(s))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(jsonSummary{Summary: s, Duration: s.Duration.String()})
	default:
		return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// jsonSummary reports the duration as text, matching the YAML output.
type jsonSummary struct {
	*model.Summary
	Duration string `json:"duration"`
}

var (
	colorGreen = lipgloss.Color("71")
	colorAmber = lipgloss.Color("179")
	colorRed   = lipgloss.Color("167")
	colorCyan  = lipgloss.Color("73")
	colorDim   = lipgloss.Color("242")

	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim   = lipgloss.NewStyle().Foreground(colorDim)
	styleBold  = lipgloss.NewStyle().Bold(true)
	styleClean = lipgloss.NewStyle().Foreground(colorGreen)
	styleSkip  = lipgloss.NewStyle().Foreground(colorAmber)
	styleFail  = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
)

const (
	iconCleaned = "○"
	iconSkipped = "●"
	iconFailed  = "⚠"
)

// Text renders the human readable report.
func Text(s *model.Summary) string {
	var b strings.Builder

	title := "gitsweep"
	if s.Simulated {
		title += " (dry run)"
	}
	fmt.Fprintf(&b, "%s  %s  %s\n", styleTitle.Render(title), s.Root, styleDim.Render(fmt.Sprintf("depth %d", s.Depth)))

	cleanedLabel := "cleaned "
	if s.Simulated {
		cleanedLabel = "would clean "
	}
	stats := styleDim.Render("found ") + styleBold.Render(fmt.Sprint(s.Found)) +
		"  " + styleDim.Render(cleanedLabel) + styleClean.Render(fmt.Sprint(len(s.Cleaned))) +
		"  " + styleDim.Render("skipped ") + styleSkip.Render(fmt.Sprint(len(s.Skipped)))
	if len(s.Failed) > 0 {
		stats += "  " + styleDim.Render("failed ") + styleFail.Render(fmt.Sprint(len(s.Failed)))
	}
	b.WriteString(stats + "\n")

	b.WriteString(styleDim.Render("reclaimed ") + FormatBytes(s.Reclaimed) +
		"  " + styleDim.Render("took ") + FormatDuration(s.Duration) + "\n")
	if s.Anomalies > 0 {
		b.WriteString(styleSkip.Render(fmt.Sprintf("%d repositories grew while cleaning", s.Anomalies)) + "\n")
	}

	if len(s.Cleaned) > 0 {
		b.WriteString("\n" + styleDim.Render(cleanedLabel) + "\n")
		for _, p := range s.Cleaned {
			fmt.Fprintf(&b, "  %s %s\n", styleClean.Render(iconCleaned), p)
		}
	}
	if len(s.Skipped) > 0 {
		b.WriteString("\n" + styleDim.Render("skipped") + "\n")
		for _, sk := range s.Skipped {
			fmt.Fprintf(&b, "  %s %s  %s\n", styleSkip.Render(iconSkipped), sk.Path, styleDim.Render(sk.Reason))
		}
	}
	if len(s.Failed) > 0 {
		b.WriteString("\n" + styleDim.Render("failed") + "\n")
		for _, f := range s.Failed {
			fmt.Fprintf(&b, "  %s %s  %s\n", styleFail.Render(iconFailed), f.Path, styleDim.Render(f.Phase+": "+f.Error))
		}
	}
	if len(s.Unreadable) > 0 {
		b.WriteString("\n" + styleDim.Render("unreadable") + "\n")
		for _, p := range s.Unreadable {
			fmt.Fprintf(&b, "  %s\n", p)
		}
	}

	return b.String()
}

func FormatBytes(n model.Bytes) string {
	if !n.Computed() {
		return "not computed"
	}
	return humanize.IBytes(uint64(n))
}

// FormatDuration rounds to a precision that reads well for runs between
// milliseconds and hours.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	case d < time.Minute:
		return d.Round(10 * time.Millisecond).String()
	default:
		return d.Round(time.Second).String()
	}
}
