package main

import (
	"regexp"
	"strings"
)

// answerWrapWidth is the line width for wrapped question answers
const answerWrapWidth = 76

var (
	boldRe   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	underRe  = regexp.MustCompile(`__([^_]+)__`)
	italicRe = regexp.MustCompile(`(?:^|[^*])\*([^*\n]+)\*(?:[^*]|$)`)
	codeRe   = regexp.MustCompile("`([^`]+)`")
)

// stripMarkdown removes common markdown formatting for terminal display
func stripMarkdown(text string) string {
	text = boldRe.ReplaceAllString(text, "$1")
	text = underRe.ReplaceAllString(text, "$1")
	text = italicRe.ReplaceAllString(text, "$1")
	text = codeRe.ReplaceAllString(text, "$1")
	return text
}

// wrapText wraps text to a specified width, preserving paragraph breaks
func wrapText(text string, width int) []string {
	var result []string

	for _, para := range strings.Split(text, "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			result = append(result, "")
			continue
		}

		words := strings.Fields(para)
		var line string
		for _, word := range words {
			switch {
			case line == "":
				line = word
			case len(line)+1+len(word) <= width:
				line += " " + word
			default:
				result = append(result, line)
				line = word
			}
		}
		if line != "" {
			result = append(result, line)
		}
	}

	return result
}

// shortModelName extracts a readable model name from a full model ID,
// e.g. global.anthropic.claude-haiku-4-5-20251001-v1:0 -> claude-haiku-4-5
func shortModelName(modelID string) string {
	parts := strings.Split(modelID, ".")
	if len(parts) >= 3 {
		modelPart := parts[2]
		if idx := strings.Index(modelPart, "-202"); idx > 0 {
			return modelPart[:idx]
		}
		return modelPart
	}
	return modelID
}
