package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
)

// Version information (set via ldflags during build)
var (
	Version   = "dev"
	BuildDate = "unknown"
)

// cliOptions holds the parsed command line
type cliOptions struct {
	prompt       string
	quiet        bool
	debug        bool
	noCopy       bool
	showHistory  bool
	historyLimit int
	setup        bool
	interactive  bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'cmdgen --help' for usage.")
		return 1
	}

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprint(os.Stderr, FormatUserError(err))
		return 1
	}
	cfg.Quiet = opts.quiet
	cfg.Debug = opts.debug
	cfg.NoCopy = opts.noCopy

	ui := NewUI(cfg.Quiet, cfg.Debug)

	if opts.setup {
		if err := SetupRetrieval(func(msg string) { ui.Info("%s", msg) }); err != nil {
			ui.Error("Setup failed: %v", err)
			return 1
		}
		ui.Success("Retrieval setup complete")
		return 0
	}

	if opts.showHistory {
		limit := opts.historyLimit
		if limit <= 0 {
			limit = cfg.HistoryLimit
		}
		return showHistory(ui, limit)
	}

	// Ctrl-C cancels in-flight generation; exit code follows shell convention
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := NewProvider(ctx, ProviderConfigFrom(cfg))
	if err != nil {
		fmt.Fprint(os.Stderr, FormatUserError(err))
		return 1
	}

	gen := NewCommandGenerator(provider, cfg, ui)

	if cfg.History {
		if path, err := HistoryPath(); err == nil {
			if store, err := OpenHistory(path); err == nil {
				defer func() { _ = store.Close() }()
				gen.WithHistory(store)
			} else {
				ui.Debug("history disabled: %v", err)
			}
		}
	}

	embedder := NewEmbedder(DefaultModelDir())
	defer func() { _ = embedder.Close() }()
	gen.WithRetriever(NewExampleRetriever(embedder, DefaultFewShots))

	if opts.interactive {
		if err := RunInteractive(ctx, gen, cfg, ui); err != nil {
			if errors.Is(err, context.Canceled) {
				return 130
			}
			fmt.Fprint(os.Stderr, FormatUserError(err))
			return 1
		}
		return 0
	}

	_, err = gen.Run(ctx, opts.prompt)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			ui.Error("Interrupted")
			return 130
		}
		if errors.Is(err, ErrInputAborted) {
			// User backed out of input collection; same status as Ctrl-C
			ui.Error("Cancelled")
			return 130
		}
		if errors.Is(err, ErrUnsafeInput) {
			ui.Error("%v", err)
			return 1
		}
		if errors.Is(err, ErrAuditRejected) {
			// The auditor already printed the reason
			return 1
		}
		fmt.Fprint(os.Stderr, FormatUserError(err))
		return 1
	}
	return 0
}

// parseArgs parses flags and joins the remaining words into the prompt
func parseArgs(args []string) (*cliOptions, error) {
	opts := &cliOptions{historyLimit: 0}
	var words []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help":
			printHelp()
			os.Exit(0)
		case "-v", "--version":
			fmt.Printf("cmdgen %s (built %s)\n", Version, BuildDate)
			fmt.Println("Natural language to shell command generation with safety auditing")
			PrintUpdateNotice()
			os.Exit(0)
		case "--setup":
			opts.setup = true
		case "-i", "--interactive":
			opts.interactive = true
		case "-q", "--quiet":
			opts.quiet = true
		case "-d", "--debug":
			opts.debug = true
		case "--no-copy":
			opts.noCopy = true
		case "--history":
			opts.showHistory = true
			if i+1 < len(args) {
				if n, err := strconv.Atoi(args[i+1]); err == nil {
					opts.historyLimit = n
					i++
				}
			}
		default:
			if strings.HasPrefix(arg, "-") {
				return nil, fmt.Errorf("unknown flag: %s", arg)
			}
			words = append(words, arg)
		}
	}

	opts.prompt = strings.TrimSpace(strings.Join(words, " "))
	if opts.prompt == "" && !opts.showHistory && !opts.setup && !opts.interactive {
		return nil, fmt.Errorf("no request given")
	}
	return opts, nil
}

// showHistory prints recent invocations and exits
func showHistory(ui *UI, limit int) int {
	path, err := HistoryPath()
	if err != nil {
		ui.Error("Cannot locate history: %v", err)
		return 1
	}
	store, err := OpenHistory(path)
	if err != nil {
		ui.Error("Cannot open history: %v", err)
		return 1
	}
	defer func() { _ = store.Close() }()

	entries, err := store.Recent(limit)
	if err != nil {
		ui.Error("Cannot read history: %v", err)
		return 1
	}
	if len(entries) == 0 {
		ui.Info("No history yet")
		return 0
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s  [%s]  %s", e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Outcome, e.Prompt)
		fmt.Println(line)
		if e.Command != "" {
			fmt.Printf("    $ %s\n", e.Command)
		}
	}
	return 0
}

func printHelp() {
	fmt.Println(`cmdgen - natural language to shell command generation with safety auditing

Usage:
  cmdgen [flags] <request...>

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information
  -i, --interactive  Start an interactive session
  -q, --quiet     Print only the final command (for piping)
  -d, --debug     Show raw generator responses and token usage
      --no-copy   Do not copy the command to the clipboard
      --history [n]  Show the n most recent invocations and exit
      --setup     Download the ONNX runtime and embedding model for retrieval

Environment Variables:
  GEMINI_API_KEY       API key for Gemini (default provider)
  OPENAI_API_KEY       API key for OpenAI
  ANTHROPIC_API_KEY    API key for Anthropic
  AWS_REGION           AWS region for Bedrock (default: us-east-1)
  CMDGEN_PROVIDER      gemini | openai | anthropic | bedrock
  CMDGEN_MODEL         Model ID override
  CMDGEN_THEME         default | matrix | solarized | gruvbox | dracula | nord
  CMDGEN_HISTORY       Set to 0 to disable invocation history

Examples:
  $ cmdgen show all files including hidden ones
  $ cmdgen "create a tar archive of my project"
  $ cmdgen -q find large log files | xargs -I{} sh -c '{}'`)
}
