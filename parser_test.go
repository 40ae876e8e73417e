package main

import (
	"errors"
	"reflect"
	"testing"
)

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{
			name: "bare object",
			raw:  `{"command": "ls"}`,
			want: `{"command": "ls"}`,
			ok:   true,
		},
		{
			name: "object wrapped in prose",
			raw:  "Sure! Here is the result:\n{\"command\": \"ls\"}\nLet me know if you need more.",
			want: `{"command": "ls"}`,
			ok:   true,
		},
		{
			name: "object in code fence",
			raw:  "```json\n{\"command\": \"ls\"}\n```",
			want: `{"command": "ls"}`,
			ok:   true,
		},
		{
			name: "greedy span across nested braces",
			raw:  `before {"a": {"b": 1}} after`,
			want: `{"a": {"b": 1}}`,
			ok:   true,
		},
		{
			name: "no structure at all",
			raw:  "I cannot help with that.",
			ok:   false,
		},
		{
			name: "empty input",
			raw:  "",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractObject(tt.raw)
			if ok != tt.ok {
				t.Fatalf("ExtractObject(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ExtractObject(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseResponseRecovery(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		key  string
		want any
	}{
		{
			name: "strict json",
			raw:  `{"is_command_request": true, "command": "ls -la"}`,
			key:  "command",
			want: "ls -la",
		},
		{
			name: "single quoted keys and values",
			raw:  `{'command': 'ls -la', 'description': 'list files'}`,
			key:  "description",
			want: "list files",
		},
		{
			name: "python booleans",
			raw:  `{"is_command_request": True, "requires_input": False, "command": "pwd"}`,
			key:  "is_command_request",
			want: true,
		},
		{
			name: "python none",
			raw:  `{"command": "pwd", "answer": None}`,
			key:  "answer",
			want: nil,
		},
		{
			name: "embedded quotes in command",
			raw:  `{"command": "git commit -m "fix the bug"", "description": "commit changes"}`,
			key:  "command",
			want: `git commit -m "fix the bug"`,
		},
		{
			name: "single quoted array items",
			raw:  `{"inputs": ['branch_name', 'remote'], "command": "git push"}`,
			key:  "command",
			want: "git push",
		},
		{
			name: "trailing comma via loose eval",
			raw:  `{'command': 'ls', 'inputs': ['a', 'b',],}`,
			key:  "command",
			want: "ls",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, fail := ParseResponse(tt.raw)
			if fail != nil {
				t.Fatalf("ParseResponse(%q) failed: %v", tt.raw, fail)
			}
			if got := obj[tt.key]; !reflect.DeepEqual(got, tt.want) {
				t.Errorf("obj[%q] = %#v, want %#v", tt.key, got, tt.want)
			}
		})
	}
}

func TestParseResponseFailures(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{
			name:    "prose only",
			raw:     "I am unable to generate a command for that request.",
			wantErr: ErrNoStructure,
		},
		{
			name:    "hopelessly malformed",
			raw:     `{"command": [}{]`,
			wantErr: ErrUnparseable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, fail := ParseResponse(tt.raw)
			if fail == nil {
				t.Fatalf("ParseResponse(%q) succeeded, want error", tt.raw)
			}
			if !errors.Is(fail, tt.wantErr) {
				t.Errorf("error = %v, want %v", fail.Err, tt.wantErr)
			}
			if fail.Raw != tt.raw {
				t.Errorf("Raw = %q, want original input", fail.Raw)
			}
		})
	}
}

func TestParseAnalysis(t *testing.T) {
	raw := `{
		"is_command_request": true,
		"command": "python3 -m venv {env_name}",
		"description": "Create a Python virtual environment",
		"requires_input": true,
		"inputs": ["env_name"],
		"input_description": "Name for the environment directory",
		"is_question": false,
		"answer": ""
	}`

	got, err := ParseAnalysis(raw)
	if err != nil {
		t.Fatalf("ParseAnalysis failed: %v", err)
	}

	want := &AnalysisResult{
		IsCommandRequest: true,
		Command:          "python3 -m venv {env_name}",
		Description:      "Create a Python virtual environment",
		RequiresInput:    true,
		Inputs:           []string{"env_name"},
		InputDescription: "Name for the environment directory",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseAnalysis = %+v, want %+v", got, want)
	}
}

func TestParseAnalysisCoercion(t *testing.T) {
	// Generators sometimes emit the wrong types; string-typed fields
	// must still come back as strings
	raw := `{"is_command_request": "true", "command": 42, "inputs": [1, "two"]}`

	got, err := ParseAnalysis(raw)
	if err != nil {
		t.Fatalf("ParseAnalysis failed: %v", err)
	}
	if !got.IsCommandRequest {
		t.Error("IsCommandRequest: string \"true\" should coerce to true")
	}
	if got.Command != "42" {
		t.Errorf("Command = %q, want \"42\"", got.Command)
	}
	if want := []string{"1", "two"}; !reflect.DeepEqual(got.Inputs, want) {
		t.Errorf("Inputs = %v, want %v", got.Inputs, want)
	}
}

func TestParseFinalization(t *testing.T) {
	got, err := ParseFinalization(`{'command': 'python3 -m venv myenv', 'description': 'Create environment myenv'}`)
	if err != nil {
		t.Fatalf("ParseFinalization failed: %v", err)
	}
	if got.Command != "python3 -m venv myenv" {
		t.Errorf("Command = %q", got.Command)
	}
	if got.Description != "Create environment myenv" {
		t.Errorf("Description = %q", got.Description)
	}
}

func TestRepairJSONValidInputUnchanged(t *testing.T) {
	valid := `{"command": "ls", "inputs": ["a"]}`
	if got := RepairJSON(valid); got != valid {
		t.Errorf("RepairJSON changed already-valid input: %q", got)
	}
}

func TestEvalLoose(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{"double quoted string", `"hello"`, "hello"},
		{"single quoted string", `'hello'`, "hello"},
		{"number", `42`, float64(42)},
		{"negative float", `-3.5`, float64(-3.5)},
		{"python true", `True`, true},
		{"python none", `None`, nil},
		{"bareword string", `hello world`, "hello world"},
		{"escape sequences", `"a\nb\"c"`, "a\nb\"c"},
		{
			"nested object",
			`{'a': [1, 'two', True], 'b': {'c': None}}`,
			map[string]any{
				"a": []any{float64(1), "two", true},
				"b": map[string]any{"c": nil},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := evalLoose(tt.input)
			if err != nil {
				t.Fatalf("evalLoose(%q) failed: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("evalLoose(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEvalLooseErrors(t *testing.T) {
	for _, input := range []string{
		`{"a": 1} trailing`,
		`"unterminated`,
		`{unclosed: `,
	} {
		if _, err := evalLoose(input); err == nil {
			t.Errorf("evalLoose(%q) succeeded, want error", input)
		}
	}
}
