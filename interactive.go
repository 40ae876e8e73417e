package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// RunInteractive starts a session loop: each line is a fresh request
// through the full pipeline. Slash commands control the session.
func RunInteractive(ctx context.Context, gen *CommandGenerator, cfg *Config, ui *UI) error {
	theme := cfg.Theme

	fmt.Printf("cmdgen %s\n", Version)
	fmt.Printf("Provider: %s (%s)\n", cfg.Provider, shortModelName(cfg.Model))
	fmt.Println("Type /help for commands, /quit to exit")
	fmt.Println()

	reader := NewInputReader(theme)

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		fmt.Print(theme.Prompt("cmdgen> "))
		request, display, err := reader.ReadRequest()
		if err != nil {
			// stdin closed, treat as a normal exit
			fmt.Println()
			return nil
		}

		request = strings.TrimSpace(request)
		if request == "" {
			continue
		}
		if display != request {
			fmt.Println(display)
		}

		if strings.HasPrefix(request, "/") {
			if quit := handleSessionCommand(request, gen, ui); quit {
				return nil
			}
			continue
		}

		if _, err := gen.Run(ctx, request); err != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				return ctx.Err()
			}
			switch {
			case errors.Is(err, ErrInputAborted):
				ui.Info("Input cancelled")
			case errors.Is(err, ErrUnsafeInput):
				ui.Error("%v", err)
			case errors.Is(err, ErrAuditRejected):
				// The auditor already printed the reason
			default:
				fmt.Print(FormatUserError(err))
			}
		}
		fmt.Println()
	}
}

// handleSessionCommand runs a slash command; returns true to end the session
func handleSessionCommand(command string, gen *CommandGenerator, ui *UI) bool {
	fields := strings.Fields(command)
	switch fields[0] {
	case "/quit", "/exit", "/q":
		return true
	case "/help":
		fmt.Println(`Session commands:
  /help       Show this message
  /history    Show recent invocations
  /quit       Exit the session`)
	case "/history":
		if gen.history == nil {
			ui.Info("History is disabled")
			return false
		}
		entries, err := gen.history.Recent(10)
		if err != nil {
			ui.Error("Cannot read history: %v", err)
			return false
		}
		for _, e := range entries {
			fmt.Printf("%s  [%s]  %s\n", e.CreatedAt.Local().Format("15:04"), e.Outcome, e.Prompt)
		}
	default:
		ui.Error("Unknown command: %s", fields[0])
	}
	return false
}
