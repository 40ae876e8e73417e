package main

import (
	"reflect"
	"testing"
)

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bold", "this is **important** text", "this is important text"},
		{"underscores", "this is __important__ text", "this is important text"},
		{"inline code", "run `ls -la` to list", "run ls -la to list"},
		{"plain", "nothing to strip here", "nothing to strip here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripMarkdown(tt.input); got != tt.want {
				t.Errorf("stripMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four five", 9)
	want := []string{"one two", "three", "four five"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("wrapText = %v, want %v", got, want)
	}
}

func TestWrapTextPreservesParagraphs(t *testing.T) {
	got := wrapText("first paragraph\n\nsecond paragraph", 40)
	want := []string{"first paragraph", "", "second paragraph"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("wrapText = %v, want %v", got, want)
	}
}

func TestWrapTextLongWord(t *testing.T) {
	// A word longer than the width still lands on its own line
	got := wrapText("short reallyreallylongword end", 10)
	want := []string{"short", "reallyreallylongword", "end"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("wrapText = %v, want %v", got, want)
	}
}

func TestShortModelName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"global.anthropic.claude-haiku-4-5-20251001-v1:0", "claude-haiku-4-5"},
		{"us.anthropic.claude-sonnet-4-20250514-v1:0", "claude-sonnet-4"},
		{"gemini-2.0-flash", "gemini-2.0-flash"},
		{"gpt-4o-mini", "gpt-4o-mini"},
	}

	for _, tt := range tests {
		if got := shortModelName(tt.input); got != tt.want {
			t.Errorf("shortModelName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
