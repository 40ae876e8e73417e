package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// RunResult summarizes one cmdgen invocation
type RunResult struct {
	Outcome     string
	Command     string
	Description string
	Answer      string
}

// CommandGenerator orchestrates a request: validate the prompt, snapshot
// the working directory, call the generator, parse and branch on the
// analysis, collect any inputs, finalize, audit, and deliver.
type CommandGenerator struct {
	provider  LLMProvider
	cfg       *Config
	ui        *UI
	auditor   *Auditor
	collector InputCollector
	clip      ClipboardWriter
	confirm   func(prompt string) bool
	guard     *GuardClient
	history   *HistoryStore     // nil disables recording
	retriever *ExampleRetriever // nil disables few-shot examples
}

// NewCommandGenerator wires the orchestrator from its collaborators
func NewCommandGenerator(provider LLMProvider, cfg *Config, ui *UI) *CommandGenerator {
	var clip ClipboardWriter = SystemClipboard{}
	if cfg.NoCopy {
		clip = NopClipboard{}
	}
	return &CommandGenerator{
		provider:  provider,
		cfg:       cfg,
		ui:        ui,
		auditor:   NewAuditor(ui),
		collector: NewInputCollector(cfg.Theme),
		clip:      clip,
		confirm:   stdinConfirm(cfg.Theme),
		guard:     NewGuardClient(),
	}
}

// WithHistory enables invocation recording
func (g *CommandGenerator) WithHistory(store *HistoryStore) *CommandGenerator {
	g.history = store
	return g
}

// WithRetriever enables few-shot example retrieval
func (g *CommandGenerator) WithRetriever(r *ExampleRetriever) *CommandGenerator {
	g.retriever = r
	return g
}

// Run processes a single natural-language request. The returned error is
// user-facing; the RunResult is valid whenever the outcome is known,
// including rejections.
func (g *CommandGenerator) Run(ctx context.Context, prompt string) (*RunResult, error) {
	prompt = strings.TrimSpace(prompt)

	if !ValidateInput(prompt) {
		g.record(prompt, OutcomeRejected, "", "")
		return &RunResult{Outcome: OutcomeRejected}, ErrUnsafeInput
	}
	if !g.scanPrompt(ctx, prompt) {
		g.record(prompt, OutcomeRejected, "", "")
		return &RunResult{Outcome: OutcomeRejected}, ErrUnsafeInput
	}

	structure := DirectorySnapshot(".", g.cfg.ScanDepth)

	analysis, err := g.analyze(ctx, prompt, structure)
	if err != nil {
		g.record(prompt, OutcomeFailed, "", "")
		return &RunResult{Outcome: OutcomeFailed}, err
	}

	switch {
	case analysis.IsCommandRequest:
		return g.deliverCommand(ctx, prompt, structure, analysis)
	case analysis.IsQuestion:
		return g.deliverAnswer(prompt, analysis)
	default:
		g.record(prompt, OutcomeUnclassified, "", "")
		return &RunResult{Outcome: OutcomeUnclassified}, ErrUnclassified
	}
}

// analyze runs the first generator call and parses its response
func (g *CommandGenerator) analyze(ctx context.Context, prompt, structure string) (*AnalysisResult, error) {
	rendered := renderTemplate(AnalysisTemplate, map[string]string{
		"directory_structure": structure,
		"examples":            g.exampleBlock(ctx, prompt),
		"prompt":              prompt,
	})

	raw, err := g.generate(ctx, "Analyzing request…", rendered)
	if err != nil {
		return nil, err
	}

	analysis, err := ParseAnalysis(raw)
	if err != nil {
		var fail *ParseFailure
		if errors.As(err, &fail) {
			g.ui.Debug("analysis raw response: %s", fail.Raw)
			if fail.Repaired != "" {
				g.ui.Debug("after repair: %s", fail.Repaired)
			}
		}
		return nil, ErrGenerator(err)
	}
	return analysis, nil
}

// exampleBlock retrieves few-shot examples, rendered for the analysis
// template. Retrieval is best effort; any failure yields an empty block.
func (g *CommandGenerator) exampleBlock(ctx context.Context, prompt string) string {
	if g.retriever == nil {
		return ""
	}
	examples, err := g.retriever.Retrieve(ctx, prompt, DefaultFewShotCount)
	if err != nil {
		g.ui.Debug("example retrieval failed: %v", err)
		return ""
	}
	block := FormatExamples(examples)
	if block == "" {
		return ""
	}
	return "\nHere are examples of requests and their expected responses:\n\n" + block + "\n"
}

func (g *CommandGenerator) deliverAnswer(prompt string, analysis *AnalysisResult) (*RunResult, error) {
	answer := strings.TrimSpace(analysis.Answer)
	if answer == "" {
		g.record(prompt, OutcomeFailed, "", "")
		return &RunResult{Outcome: OutcomeFailed}, ErrEmptyAnswer
	}

	g.ui.DisplayAnswer(answer)
	g.record(prompt, OutcomeAnswered, "", answer)
	return &RunResult{Outcome: OutcomeAnswered, Answer: answer}, nil
}

func (g *CommandGenerator) deliverCommand(ctx context.Context, prompt, structure string, analysis *AnalysisResult) (*RunResult, error) {
	command := strings.TrimSpace(analysis.Command)
	description := strings.TrimSpace(analysis.Description)

	if analysis.RequiresInput && len(analysis.Inputs) > 0 {
		final, err := g.finalize(ctx, structure, analysis)
		if err != nil {
			g.record(prompt, OutcomeFailed, "", "")
			return &RunResult{Outcome: OutcomeFailed}, err
		}
		command = strings.TrimSpace(final.Command)
		if d := strings.TrimSpace(final.Description); d != "" {
			description = d
		}
	}

	if command == "" {
		g.record(prompt, OutcomeFailed, "", "")
		return &RunResult{Outcome: OutcomeFailed}, ErrEmptyCommand
	}

	verdict := g.auditor.Audit(command, description)
	if !verdict.Safe {
		g.record(prompt, OutcomeRejected, command, description)
		return &RunResult{Outcome: OutcomeRejected, Command: command}, ErrAuditRejected
	}
	if !g.scanCommand(ctx, command) {
		g.record(prompt, OutcomeRejected, command, description)
		return &RunResult{Outcome: OutcomeRejected, Command: command}, ErrAuditRejected
	}

	g.ui.DisplayCommand(verdict.Command, description)
	g.offerClipboard(verdict.Command)

	g.record(prompt, OutcomeDelivered, verdict.Command, description)
	return &RunResult{Outcome: OutcomeDelivered, Command: verdict.Command, Description: description}, nil
}

// offerClipboard copies the command after a default-yes confirmation.
// Quiet runs emit the bare command for piping and never prompt or copy.
func (g *CommandGenerator) offerClipboard(command string) {
	if g.cfg.Quiet {
		return
	}
	if _, nop := g.clip.(NopClipboard); nop {
		return
	}
	if g.confirm == nil || !g.confirm("Copy to clipboard?") {
		return
	}
	if err := g.clip.Write(command); err != nil {
		g.ui.Warning("Could not copy to clipboard: %v", err)
		return
	}
	g.ui.Success("Command copied to clipboard")
}

// finalize collects the template's inputs and runs the second generator
// call to produce the concrete command
func (g *CommandGenerator) finalize(ctx context.Context, structure string, analysis *AnalysisResult) (*FinalizationResult, error) {
	description := strings.TrimSpace(analysis.InputDescription)
	if description == "" {
		description = "Please provide the following information to complete the command:"
	}

	values, err := g.collector.Collect(ctx, analysis.Inputs, description)
	if err != nil {
		return nil, err
	}

	// Collected values pass through the same injection screen as the prompt
	pairs := make([]string, 0, len(analysis.Inputs))
	for _, name := range analysis.Inputs {
		value := values[name]
		if !ValidateInput(value) {
			return nil, ErrUnsafeInput
		}
		pairs = append(pairs, fmt.Sprintf("%s: %s", name, value))
	}

	rendered := renderTemplate(FinalizationTemplate, map[string]string{
		"directory_structure": structure,
		"command_template":    analysis.Command,
		"user_inputs":         strings.Join(pairs, "\n"),
	})

	raw, err := g.generate(ctx, "Finalizing command…", rendered)
	if err != nil {
		return nil, err
	}

	final, err := ParseFinalization(raw)
	if err != nil {
		var fail *ParseFailure
		if errors.As(err, &fail) {
			g.ui.Debug("finalization raw response: %s", fail.Raw)
		}
		return nil, ErrGenerator(err)
	}
	return final, nil
}

// generate runs one provider call behind a spinner
func (g *CommandGenerator) generate(ctx context.Context, message, prompt string) (string, error) {
	spinner := NewThinkingSpinner(message, g.cfg.Theme, !g.cfg.Quiet && !g.cfg.Debug)
	spinner.Start()

	result, err := g.provider.Generate(ctx, g.cfg.Model, prompt, g.cfg.MaxTokens)
	if err != nil {
		spinner.Stop()
		return "", err
	}
	spinner.UpdateTokens(result.OutputTokens)
	spinner.Stop()

	g.ui.Debug("%s/%s: %d in / %d out tokens", g.provider.Name(), shortModelName(g.cfg.Model), result.InputTokens, result.OutputTokens)
	return result.Text, nil
}

// scanPrompt runs the optional llm-guard pass on the request.
// Scan service failures are non-fatal; only a failed scan blocks.
func (g *CommandGenerator) scanPrompt(ctx context.Context, prompt string) bool {
	resp, err := g.guard.ScanPrompt(ctx, prompt)
	if err != nil {
		g.ui.Debug("prompt scan unavailable: %v", err)
		return true
	}
	if issues := FormatScanIssues(resp); issues != "" {
		g.ui.Error("%s", issues)
		return false
	}
	return true
}

// scanCommand runs the optional llm-guard pass on the generated command
func (g *CommandGenerator) scanCommand(ctx context.Context, command string) bool {
	resp, err := g.guard.ScanCommand(ctx, command)
	if err != nil {
		g.ui.Debug("command scan unavailable: %v", err)
		return true
	}
	if issues := FormatScanIssues(resp); issues != "" {
		g.ui.Error("%s", issues)
		return false
	}
	return true
}

// record appends to history when recording is enabled
func (g *CommandGenerator) record(prompt, outcome, command, description string) {
	if g.history == nil {
		return
	}
	entry := &HistoryEntry{
		Prompt:      prompt,
		Outcome:     outcome,
		Command:     command,
		Description: description,
	}
	if err := g.history.Record(entry); err != nil {
		g.ui.Debug("history record failed: %v", err)
	}
}
