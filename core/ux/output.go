// Package ux renders the styled terminal output shown around a scaffold run.
package ux

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorPrimary = lipgloss.Color("#20B9B4")
	ColorSuccess = lipgloss.Color("#2CD7C7")
	ColorWarning = lipgloss.Color("#F4D03F")
	ColorError   = lipgloss.Color("#E74C3C")
	ColorMuted   = lipgloss.Color("#6C7A89")
)

var Styles = struct {
	Title      lipgloss.Style
	Muted      lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	Error      lipgloss.Style
	Command    lipgloss.Style
	Box        lipgloss.Style
	WarningBox lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
	Muted:   lipgloss.NewStyle().Foreground(ColorMuted),
	Success: lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning: lipgloss.NewStyle().Foreground(ColorWarning),
	Error:   lipgloss.NewStyle().Foreground(ColorError),
	Command: lipgloss.NewStyle().Bold(true),

	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 1),
	WarningBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorWarning).
		Padding(0, 1),
}

type Icon string

const (
	IconSuccess Icon = "✓"
	IconWarning Icon = "⚠"
	IconError   Icon = "✗"
	IconArrow   Icon = "→"
)

func (i Icon) Render() string {
	switch i {
	case IconSuccess:
		return Styles.Success.Render(string(i))
	case IconWarning:
		return Styles.Warning.Render(string(i))
	case IconError:
		return Styles.Error.Render(string(i))
	default:
		return string(i)
	}
}

func Success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", IconSuccess.Render(), fmt.Sprintf(format, args...))
}

func Warning(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", IconWarning.Render(), Styles.Warning.Render(fmt.Sprintf(format, args...)))
}

func Failure(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", IconError.Render(), Styles.Error.Render(fmt.Sprintf(format, args...)))
}

// Summary is what NextSteps prints after a project was generated.
type Summary struct {
	Name     string
	RelDir   string
	Commands []string
	// Manual holds install commands for packages left uninstalled.
	Manual []string
	// Notes are shown muted under the commands.
	Notes []string
}

// RenderNextSteps formats the summary as a bordered block.
func RenderNextSteps(s Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", Styles.Title.Render(fmt.Sprintf("Success! Created %s", s.Name)))

	if len(s.Manual) > 0 {
		b.WriteString(Styles.Warning.Render("Some packages were not installed. Run:"))
		b.WriteString("\n")
		for _, cmd := range s.Manual {
			fmt.Fprintf(&b, "  %s\n", Styles.Command.Render(cmd))
		}
		b.WriteString("\n")
	}

	b.WriteString("Next steps:\n")
	if s.RelDir != "" && s.RelDir != "." {
		fmt.Fprintf(&b, "  %s %s\n", IconArrow.Render(), Styles.Command.Render("cd "+quoteIfNeeded(s.RelDir)))
	}
	for _, cmd := range s.Commands {
		fmt.Fprintf(&b, "  %s %s\n", IconArrow.Render(), Styles.Command.Render(cmd))
	}

	for _, note := range s.Notes {
		fmt.Fprintf(&b, "\n%s", Styles.Muted.Render(note))
	}

	style := Styles.Box
	if len(s.Manual) > 0 {
		style = Styles.WarningBox
	}
	return style.Render(strings.TrimRight(b.String(), "\n"))
}

func NextSteps(w io.Writer, s Summary) {
	fmt.Fprintln(w, RenderNextSteps(s))
}

func quoteIfNeeded(path string) string {
	if strings.ContainsAny(path, " \t") {
		return `"` + path + `"`
	}
	return path
}
