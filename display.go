package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles used for terminal output
type Styles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
	Code    lipgloss.Style

	CommandPanel lipgloss.Style
	AnswerPanel  lipgloss.Style
	PanelTitle   lipgloss.Style
}

// NewStyles creates the default style set
func NewStyles() *Styles {
	return &Styles{
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")), // Green
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),  // Red
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // Yellow
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")), // Cyan
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),  // Gray
		Code:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")), // White

		CommandPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("10")).
			Padding(0, 1),
		AnswerPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("14")).
			Padding(0, 1),
		PanelTitle: lipgloss.NewStyle().Bold(true),
	}
}

// UI writes status messages and result panels to the terminal.
// Quiet suppresses everything except errors and the final command text,
// so the output stays pipeable.
type UI struct {
	out    io.Writer
	errOut io.Writer
	styles *Styles
	quiet  bool
	debug  bool
}

// NewUI creates a UI writing to stdout/stderr
func NewUI(quiet, debug bool) *UI {
	return &UI{
		out:    os.Stdout,
		errOut: os.Stderr,
		styles: NewStyles(),
		quiet:  quiet,
		debug:  debug,
	}
}

// Error prints an error message to stderr
func (u *UI) Error(format string, args ...interface{}) {
	fmt.Fprintln(u.errOut, u.styles.Error.Render("✗ "+fmt.Sprintf(format, args...)))
}

// Warning prints a warning message to stderr
func (u *UI) Warning(format string, args ...interface{}) {
	if u.quiet {
		return
	}
	fmt.Fprintln(u.errOut, u.styles.Warning.Render("⚠ "+fmt.Sprintf(format, args...)))
}

// Info prints an informational message
func (u *UI) Info(format string, args ...interface{}) {
	if u.quiet {
		return
	}
	fmt.Fprintln(u.out, u.styles.Info.Render(fmt.Sprintf(format, args...)))
}

// Success prints a success message
func (u *UI) Success(format string, args ...interface{}) {
	if u.quiet {
		return
	}
	fmt.Fprintln(u.out, u.styles.Success.Render("✓ "+fmt.Sprintf(format, args...)))
}

// Debug prints a debug message when debug mode is on
func (u *UI) Debug(format string, args ...interface{}) {
	if !u.debug {
		return
	}
	fmt.Fprintln(u.errOut, u.styles.Dim.Render("[debug] "+fmt.Sprintf(format, args...)))
}

// DisplayCommand renders the generated command in a bordered panel.
// In quiet mode only the bare command is printed.
func (u *UI) DisplayCommand(command, description string) {
	if u.quiet {
		fmt.Fprintln(u.out, command)
		return
	}

	var b strings.Builder
	b.WriteString(u.styles.PanelTitle.Render("Command"))
	b.WriteString("\n")
	b.WriteString(u.styles.Code.Render(command))
	if description != "" {
		b.WriteString("\n\n")
		b.WriteString(u.styles.Dim.Render(description))
	}
	fmt.Fprintln(u.out, u.styles.CommandPanel.Render(b.String()))
}

// DisplayAnswer renders a question answer in a bordered panel
func (u *UI) DisplayAnswer(answer string) {
	answer = stripMarkdown(answer)
	if u.quiet {
		fmt.Fprintln(u.out, answer)
		return
	}

	var b strings.Builder
	b.WriteString(u.styles.PanelTitle.Render("Answer"))
	b.WriteString("\n")
	b.WriteString(strings.Join(wrapText(answer, answerWrapWidth), "\n"))
	fmt.Fprintln(u.out, u.styles.AnswerPanel.Render(b.String()))
}

// Quiet reports whether quiet mode is enabled
func (u *UI) Quiet() bool {
	return u.quiet
}
