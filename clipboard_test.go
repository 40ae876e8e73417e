package main

import (
	"os"
	"testing"
)

// withStdin swaps os.Stdin for the duration of fn
func withStdin(t *testing.T, content string, fn func()) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	if _, err := w.WriteString(content); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = w.Close()

	old := os.Stdin
	os.Stdin = r
	defer func() {
		os.Stdin = old
		_ = r.Close()
	}()
	fn()
}

func TestStdinConfirm(t *testing.T) {
	theme := NewTheme(&ThemeSettings{Name: "default"})

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"empty line means yes", "\n", true},
		{"y", "y\n", true},
		{"yes uppercase", "YES\n", true},
		{"n", "n\n", false},
		{"no", "no\n", false},
		{"garbage", "maybe\n", false},
		{"eof", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withStdin(t, tt.input, func() {
				confirm := stdinConfirm(theme)
				if got := confirm("Copy to clipboard?"); got != tt.want {
					t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.want)
				}
			})
		})
	}
}
