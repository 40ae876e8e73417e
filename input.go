package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// pasteCollapseThreshold is the minimum number of lines before a
	// pasted block is collapsed in the echo
	pasteCollapseThreshold = 5
	// pasteLineTimeout is the max gap between lines still considered
	// part of one paste
	pasteLineTimeout = 150 * time.Millisecond
)

// InputReader reads interactive requests, collapsing multi-line pastes
// so a pasted script doesn't flood the session echo
type InputReader struct {
	theme    *Theme
	pasteNum int
	lineChan chan string
	errChan  chan error
}

// NewInputReader creates a reader over stdin
func NewInputReader(theme *Theme) *InputReader {
	ir := &InputReader{
		theme:    theme,
		lineChan: make(chan string),
		errChan:  make(chan error),
	}
	go ir.pump()
	return ir
}

func (ir *InputReader) pump() {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		ir.lineChan <- scanner.Text()
	}
	if err := scanner.Err(); err != nil {
		ir.errChan <- err
	}
	close(ir.lineChan)
	close(ir.errChan)
}

// ReadRequest reads one request, merging rapid successive lines into a
// single input. Returns the full text and a collapsed display form.
func (ir *InputReader) ReadRequest() (fullText string, displayText string, err error) {
	var lines []string

	select {
	case line, ok := <-ir.lineChan:
		if !ok {
			return "", "", fmt.Errorf("input closed")
		}
		lines = append(lines, line)
	case err := <-ir.errChan:
		return "", "", err
	}

collecting:
	for {
		select {
		case line, ok := <-ir.lineChan:
			if !ok {
				break collecting
			}
			lines = append(lines, line)
		case <-time.After(pasteLineTimeout):
			break collecting
		}
	}

	fullText = strings.Join(lines, "\n")

	switch {
	case len(lines) > pasteCollapseThreshold:
		ir.pasteNum++
		displayText = ir.collapsedPaste(lines)
	case len(lines) > 1:
		displayText = fmt.Sprintf("%s %s", lines[0], ir.theme.Dim(fmt.Sprintf("+%d lines", len(lines)-1)))
	default:
		displayText = fullText
	}

	return fullText, displayText, nil
}

func (ir *InputReader) collapsedPaste(lines []string) string {
	first := lines[0]
	if len(first) > 50 {
		first = first[:47] + "..."
	}
	return fmt.Sprintf("%s %s %s",
		ir.theme.Accent(fmt.Sprintf("[Pasted text #%d]", ir.pasteNum)),
		first,
		ir.theme.Dim(fmt.Sprintf("+%d lines", len(lines)-1)),
	)
}
