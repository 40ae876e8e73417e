package main

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestUserErrorError(t *testing.T) {
	plain := &UserError{Message: "something broke"}
	if plain.Error() != "something broke" {
		t.Errorf("Error() = %q", plain.Error())
	}

	withCause := &UserError{Message: "request failed", Cause: fmt.Errorf("HTTP 500")}
	if got := withCause.Error(); got != "request failed: HTTP 500" {
		t.Errorf("Error() = %q", got)
	}
}

func TestUserErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &UserError{Message: "outer", Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find the cause through Unwrap")
	}
}

func TestFormatUserError(t *testing.T) {
	err := &UserError{
		Message:    "Gemini API key required",
		Suggestion: "Set the GEMINI_API_KEY environment variable",
	}
	out := FormatUserError(err)
	if !strings.Contains(out, "Gemini API key required") {
		t.Errorf("formatted output missing message: %q", out)
	}
	if !strings.Contains(out, "Suggestion:") || !strings.Contains(out, "GEMINI_API_KEY") {
		t.Errorf("formatted output missing suggestion: %q", out)
	}
}

func TestGetSuggestionForError(t *testing.T) {
	tests := []struct {
		name   string
		errStr string
		want   string // substring of the expected suggestion, "" for none
	}{
		{"api key", "GEMINI API key not set", "API key"},
		{"unauthorized", "request failed with status 401", "not accepted"},
		{"rate limit", "request failed with status 429", "rate-limited"},
		{"quota", "Quota exceeded for model", "rate-limited"},
		{"aws creds", "no valid credential sources found", "aws configure"},
		{"timeout", "context deadline exceeded (timeout)", "timed out"},
		{"dns", "dial tcp: no such host", "network"},
		{"clipboard", "clipboard unavailable", "xclip"},
		{"unclassified", ErrUnclassified.Error(), "rephrasing"},
		{"unknown", "some totally novel failure", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := getSuggestionForError(tt.errStr)
			if tt.want == "" {
				if got != "" {
					t.Errorf("expected no suggestion, got %q", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("suggestion = %q, want substring %q", got, tt.want)
			}
		})
	}
}

func TestErrMissingAPIKey(t *testing.T) {
	err := ErrMissingAPIKey("Gemini", "GEMINI_API_KEY")
	if !strings.Contains(err.Message, "Gemini") {
		t.Errorf("message = %q", err.Message)
	}
	if !strings.Contains(err.Suggestion, "GEMINI_API_KEY") {
		t.Errorf("suggestion = %q", err.Suggestion)
	}
}

func TestErrGeneratorWrapsParseFailures(t *testing.T) {
	fail := &ParseFailure{Err: ErrUnparseable, Raw: "garbage"}
	err := ErrGenerator(fail)

	if !errors.Is(err, ErrUnparseable) {
		t.Error("ErrGenerator should unwrap to the parse sentinel")
	}
	var got *ParseFailure
	if !errors.As(err, &got) || got.Raw != "garbage" {
		t.Error("ParseFailure details lost through wrapping")
	}
}
