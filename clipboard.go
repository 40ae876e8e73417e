package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
)

// ClipboardWriter copies text to the system clipboard
type ClipboardWriter interface {
	Write(text string) error
}

// SystemClipboard writes through the platform clipboard
type SystemClipboard struct{}

var _ ClipboardWriter = (*SystemClipboard)(nil)

// Write copies text to the clipboard
func (SystemClipboard) Write(text string) error {
	return clipboard.WriteAll(text)
}

// NopClipboard discards writes, used with --no-copy
type NopClipboard struct{}

var _ ClipboardWriter = (*NopClipboard)(nil)

// Write does nothing
func (NopClipboard) Write(string) error {
	return nil
}

// stdinConfirm returns a [Y/n] prompt reader over stdin. Empty input
// counts as yes; EOF counts as no.
func stdinConfirm(theme *Theme) func(prompt string) bool {
	reader := bufio.NewReader(os.Stdin)
	return func(prompt string) bool {
		fmt.Fprint(os.Stderr, theme.Prompt(prompt+" [Y/n] "))
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "", "y", "yes":
			return true
		default:
			return false
		}
	}
}
