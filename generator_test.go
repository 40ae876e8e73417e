package main

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeProvider returns scripted responses, one per Generate call
type fakeProvider struct {
	responses []string
	prompts   []string
	calls     int
	err       error
}

func (f *fakeProvider) Generate(_ context.Context, _ string, prompt string, _ int) (*GenerateResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.prompts = append(f.prompts, prompt)
	if f.calls >= len(f.responses) {
		return &GenerateResult{Text: ""}, nil
	}
	text := f.responses[f.calls]
	f.calls++
	return &GenerateResult{Text: text, InputTokens: 100, OutputTokens: 50}, nil
}

func (f *fakeProvider) Name() string         { return "fake" }
func (f *fakeProvider) DefaultModel() string { return "fake-model" }

var _ LLMProvider = (*fakeProvider)(nil)

// fakeCollector returns canned values without prompting
type fakeCollector struct {
	values      map[string]string
	err         error
	description string
}

func (f *fakeCollector) Collect(_ context.Context, inputs []string, description string) (map[string]string, error) {
	f.description = description
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]string, len(inputs))
	for _, name := range inputs {
		out[name] = f.values[name]
	}
	return out, nil
}

// recordingClipboard captures what would have been copied
type recordingClipboard struct {
	copied []string
	err    error
}

func (r *recordingClipboard) Write(text string) error {
	if r.err != nil {
		return r.err
	}
	r.copied = append(r.copied, text)
	return nil
}

func testGenerator(t *testing.T, provider *fakeProvider) (*CommandGenerator, *recordingClipboard) {
	t.Helper()
	ui, _ := testUI()
	ui.quiet = true
	cfg := &Config{
		Provider:  ProviderGemini,
		Model:     "fake-model",
		MaxTokens: DefaultMaxTokens,
		ScanDepth: 0,
		Debug:     true, // keeps the spinner off
		Theme:     NewTheme(&ThemeSettings{Name: "default"}),
	}
	clip := &recordingClipboard{}
	gen := &CommandGenerator{
		provider:  provider,
		cfg:       cfg,
		ui:        ui,
		auditor:   NewAuditor(ui),
		collector: &fakeCollector{},
		clip:      clip,
		confirm:   func(string) bool { return true },
		guard:     NewGuardClient(),
	}
	return gen, clip
}

func TestRunSimpleCommand(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"is_command_request": true, "command": "ls -la", "description": "List all files", "requires_input": false, "inputs": [], "is_question": false, "answer": ""}`,
	}}
	gen, clip := testGenerator(t, provider)

	result, err := gen.Run(context.Background(), "show all files including hidden ones")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Outcome != OutcomeDelivered {
		t.Errorf("outcome = %q, want %q", result.Outcome, OutcomeDelivered)
	}
	if result.Command != "ls -la" {
		t.Errorf("command = %q, want \"ls -la\"", result.Command)
	}
	if provider.calls != 1 {
		t.Errorf("provider calls = %d, want 1", provider.calls)
	}
	if len(clip.copied) != 1 || clip.copied[0] != "ls -la" {
		t.Errorf("clipboard = %v, want [\"ls -la\"]", clip.copied)
	}
}

func TestRunInputCollectionFlow(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"is_command_request": true, "command": "python3 -m venv {env_name}", "description": "Create a virtual environment", "requires_input": true, "inputs": ["env_name"], "input_description": "Name for the environment", "is_question": false, "answer": ""}`,
		`{"command": "python3 -m venv myenv", "description": "Create virtual environment myenv"}`,
	}}
	gen, clip := testGenerator(t, provider)
	gen.collector = &fakeCollector{values: map[string]string{"env_name": "myenv"}}

	result, err := gen.Run(context.Background(), "how to create a python virtual environment")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Outcome != OutcomeDelivered {
		t.Errorf("outcome = %q, want %q", result.Outcome, OutcomeDelivered)
	}
	if result.Command != "python3 -m venv myenv" {
		t.Errorf("command = %q", result.Command)
	}
	if provider.calls != 2 {
		t.Fatalf("provider calls = %d, want 2 (analysis + finalization)", provider.calls)
	}
	if !strings.Contains(provider.prompts[1], "env_name: myenv") {
		t.Errorf("finalization prompt missing collected input:\n%s", provider.prompts[1])
	}
	if !strings.Contains(provider.prompts[1], "python3 -m venv {env_name}") {
		t.Errorf("finalization prompt missing command template:\n%s", provider.prompts[1])
	}
	if len(clip.copied) != 1 {
		t.Errorf("clipboard writes = %d, want 1", len(clip.copied))
	}
}

func TestRunCopyDeclined(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"is_command_request": true, "command": "ls -la", "description": "List all files", "is_question": false}`,
	}}
	gen, clip := testGenerator(t, provider)
	asked := false
	gen.confirm = func(string) bool { asked = true; return false }

	result, err := gen.Run(context.Background(), "show all files including hidden ones")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !asked {
		t.Error("clipboard copy was not confirmed before writing")
	}
	if len(clip.copied) != 0 {
		t.Errorf("declined confirmation must not copy, got %v", clip.copied)
	}
	if result.Outcome != OutcomeDelivered {
		t.Errorf("outcome = %q, want %q (declining the copy is not a failure)", result.Outcome, OutcomeDelivered)
	}
}

func TestRunQuietSkipsClipboard(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"is_command_request": true, "command": "ls -la", "description": "List all files", "is_question": false}`,
	}}
	gen, clip := testGenerator(t, provider)
	gen.cfg.Quiet = true
	gen.confirm = func(string) bool {
		t.Error("quiet mode must not prompt for clipboard confirmation")
		return true
	}

	if _, err := gen.Run(context.Background(), "show all files"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(clip.copied) != 0 {
		t.Errorf("quiet mode must not copy, got %v", clip.copied)
	}
}

func TestRunDefaultInputPrompt(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"is_command_request": true, "command": "python3 -m venv {env_name}", "requires_input": true, "inputs": ["env_name"], "input_description": "", "is_question": false}`,
		`{"command": "python3 -m venv myenv", "description": ""}`,
	}}
	gen, _ := testGenerator(t, provider)
	collector := &fakeCollector{values: map[string]string{"env_name": "myenv"}}
	gen.collector = collector

	if _, err := gen.Run(context.Background(), "make a virtual environment"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := "Please provide the following information to complete the command:"
	if collector.description != want {
		t.Errorf("collector description = %q, want the generic default", collector.description)
	}
}

func TestRunPrefersCommandWhenBothFlagsSet(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"is_command_request": true, "command": "df -h", "description": "Show disk usage", "is_question": true, "answer": "df reports disk usage."}`,
	}}
	gen, _ := testGenerator(t, provider)

	result, err := gen.Run(context.Background(), "how much disk space is left")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Outcome != OutcomeDelivered {
		t.Errorf("outcome = %q, want %q (command branch wins over question)", result.Outcome, OutcomeDelivered)
	}
	if result.Command != "df -h" {
		t.Errorf("command = %q, want \"df -h\"", result.Command)
	}
}

func TestRunQuestion(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"is_command_request": false, "command": "", "description": "", "requires_input": false, "inputs": [], "is_question": true, "answer": "chmod changes file permissions."}`,
	}}
	gen, clip := testGenerator(t, provider)

	result, err := gen.Run(context.Background(), "what does chmod do")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Outcome != OutcomeAnswered {
		t.Errorf("outcome = %q, want %q", result.Outcome, OutcomeAnswered)
	}
	if result.Answer == "" {
		t.Error("answer is empty")
	}
	if len(clip.copied) != 0 {
		t.Error("answers must not be copied to the clipboard")
	}
}

func TestRunQuestionWithoutAnswer(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"is_command_request": false, "is_question": true, "answer": ""}`,
	}}
	gen, _ := testGenerator(t, provider)

	result, err := gen.Run(context.Background(), "what is this")
	if !errors.Is(err, ErrEmptyAnswer) {
		t.Errorf("err = %v, want ErrEmptyAnswer", err)
	}
	if result.Outcome != OutcomeFailed {
		t.Errorf("outcome = %q, want %q", result.Outcome, OutcomeFailed)
	}
}

func TestRunUnclassified(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"is_command_request": false, "is_question": false}`,
	}}
	gen, _ := testGenerator(t, provider)

	result, err := gen.Run(context.Background(), "mumble")
	if !errors.Is(err, ErrUnclassified) {
		t.Errorf("err = %v, want ErrUnclassified", err)
	}
	if result.Outcome != OutcomeUnclassified {
		t.Errorf("outcome = %q, want %q", result.Outcome, OutcomeUnclassified)
	}
}

func TestRunEmptyCommand(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"is_command_request": true, "command": "", "is_question": false}`,
	}}
	gen, _ := testGenerator(t, provider)

	_, err := gen.Run(context.Background(), "do the thing")
	if !errors.Is(err, ErrEmptyCommand) {
		t.Errorf("err = %v, want ErrEmptyCommand", err)
	}
}

func TestRunAuditRejection(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"is_command_request": true, "command": "sudo rm -rf /", "description": "delete everything", "is_question": false}`,
	}}
	gen, clip := testGenerator(t, provider)

	result, err := gen.Run(context.Background(), "wipe the disk")
	if !errors.Is(err, ErrAuditRejected) {
		t.Fatalf("err = %v, want ErrAuditRejected", err)
	}
	if result.Outcome != OutcomeRejected {
		t.Errorf("outcome = %q, want %q", result.Outcome, OutcomeRejected)
	}
	if len(clip.copied) != 0 {
		t.Error("rejected command must not reach the clipboard")
	}
}

func TestRunUnsafePrompt(t *testing.T) {
	provider := &fakeProvider{}
	gen, _ := testGenerator(t, provider)

	result, err := gen.Run(context.Background(), "list files in $(cat /etc/passwd)")
	if !errors.Is(err, ErrUnsafeInput) {
		t.Fatalf("err = %v, want ErrUnsafeInput", err)
	}
	if result.Outcome != OutcomeRejected {
		t.Errorf("outcome = %q, want %q", result.Outcome, OutcomeRejected)
	}
	if provider.calls != 0 {
		t.Error("unsafe prompt must never reach the provider")
	}
}

func TestRunUnsafeCollectedInput(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"is_command_request": true, "command": "git push -u origin {branch_name}", "requires_input": true, "inputs": ["branch_name"], "is_question": false}`,
	}}
	gen, _ := testGenerator(t, provider)
	gen.collector = &fakeCollector{values: map[string]string{"branch_name": "main`whoami`"}}

	_, err := gen.Run(context.Background(), "push my branch")
	if !errors.Is(err, ErrUnsafeInput) {
		t.Errorf("err = %v, want ErrUnsafeInput for injected collected value", err)
	}
	if provider.calls != 1 {
		t.Errorf("provider calls = %d, want 1 (finalization must be skipped)", provider.calls)
	}
}

func TestRunUnparseableResponse(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		"Sorry, I can't produce structured output today.",
	}}
	gen, _ := testGenerator(t, provider)

	result, err := gen.Run(context.Background(), "list files")
	if err == nil {
		t.Fatal("Run succeeded on unparseable response")
	}
	if !errors.Is(err, ErrNoStructure) {
		t.Errorf("err = %v, want wrapped ErrNoStructure", err)
	}
	if result.Outcome != OutcomeFailed {
		t.Errorf("outcome = %q, want %q", result.Outcome, OutcomeFailed)
	}
}

func TestRunRecordsHistory(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"is_command_request": true, "command": "df -h", "description": "Show disk usage", "is_question": false}`,
	}}
	gen, _ := testGenerator(t, provider)

	store, err := OpenHistory(t.TempDir() + "/history.db")
	if err != nil {
		t.Fatalf("OpenHistory failed: %v", err)
	}
	defer func() { _ = store.Close() }()
	gen.WithHistory(store)

	if _, err := gen.Run(context.Background(), "how much disk space is left"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	entries, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("history entries = %d, want 1", len(entries))
	}
	if entries[0].Outcome != OutcomeDelivered || entries[0].Command != "df -h" {
		t.Errorf("recorded entry = %+v", entries[0])
	}
}
