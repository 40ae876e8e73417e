package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrInputAborted is returned when the user cancels input collection
var ErrInputAborted = errors.New("input collection aborted")

// InputCollector gathers values for the placeholders a command template needs
type InputCollector interface {
	// Collect prompts for each named input in order and returns the values.
	// It returns early when ctx is cancelled.
	Collect(ctx context.Context, inputs []string, description string) (map[string]string, error)
}

// NewInputCollector picks the interactive form when stdin is a terminal,
// falling back to plain line reads otherwise (pipes, CI)
func NewInputCollector(theme *Theme) InputCollector {
	if stat, err := os.Stdin.Stat(); err == nil && stat.Mode()&os.ModeCharDevice != 0 {
		return &FormCollector{theme: theme}
	}
	return &ScannerCollector{theme: theme}
}

// FormCollector collects inputs with an interactive textinput form
type FormCollector struct {
	theme *Theme
}

var _ InputCollector = (*FormCollector)(nil)

// Collect runs a sequential form, one field at a time
func (f *FormCollector) Collect(ctx context.Context, inputs []string, description string) (map[string]string, error) {
	m := newFormModel(inputs, description)
	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	fm, ok := final.(formModel)
	if !ok {
		return nil, ErrInputAborted
	}
	if fm.aborted {
		return nil, ErrInputAborted
	}

	values := make(map[string]string, len(inputs))
	for i, name := range inputs {
		values[name] = fm.values[i]
	}
	return values, nil
}

type formModel struct {
	fields      []string
	description string
	input       textinput.Model
	values      []string
	index       int
	aborted     bool
	done        bool

	labelStyle lipgloss.Style
	descStyle  lipgloss.Style
}

func newFormModel(fields []string, description string) formModel {
	ti := textinput.New()
	ti.Placeholder = "value"
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 60

	return formModel{
		fields:      fields,
		description: description,
		input:       ti,
		values:      make([]string, len(fields)),
		labelStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		descStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func (m formModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyEnter:
			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				return m, nil // require a value for every field
			}
			m.values[m.index] = value
			m.index++
			if m.index >= len(m.fields) {
				m.done = true
				return m, tea.Quit
			}
			m.input.Reset()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m formModel) View() string {
	if m.done || m.aborted {
		return ""
	}

	var b strings.Builder
	if m.description != "" {
		b.WriteString(m.descStyle.Render(m.description))
		b.WriteString("\n\n")
	}
	b.WriteString(m.labelStyle.Render(fmt.Sprintf("%s (%d/%d): ", m.fields[m.index], m.index+1, len(m.fields))))
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.descStyle.Render("enter to confirm · esc to cancel"))
	b.WriteString("\n")
	return b.String()
}

// ScannerCollector reads input values line by line from stdin
type ScannerCollector struct {
	theme *Theme
}

var _ InputCollector = (*ScannerCollector)(nil)

// Collect prompts on stderr and reads one line per input. Reads run in
// a goroutine so a cancelled context unblocks the caller even while
// scanner.Scan is waiting on stdin.
func (s *ScannerCollector) Collect(ctx context.Context, inputs []string, description string) (map[string]string, error) {
	if description != "" {
		fmt.Fprintln(os.Stderr, s.theme.Dim(description))
	}

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			readErr <- err
			return
		}
		readErr <- ErrInputAborted
	}()

	values := make(map[string]string, len(inputs))
	for _, name := range inputs {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		fmt.Fprintf(os.Stderr, "%s: ", s.theme.Prompt(name))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case err := <-readErr:
			return nil, err
		case line := <-lines:
			values[name] = strings.TrimSpace(line)
		}
	}
	return values, nil
}
