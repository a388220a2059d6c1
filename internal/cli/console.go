// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// console.go - The interactive read-dispatch loop.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/questrun/internal/commands"
)

// =============================================================================
// CONSOLE
// =============================================================================

// Console runs the interactive loop: read a line with history and Tab
// completion, parse it in the current mode, dispatch it to completion,
// render the result. One command finishes before the next line is read, so
// the game context is never touched by two commands at once.
type Console struct {
	line        *liner.State
	historyFile string

	parser     *commands.Parser
	dispatcher *commands.Dispatcher
	completer  *commands.Completer
	game       *commands.Context
}

// New creates a console over the given engine pieces. historyFile may be
// empty to disable persistent history.
func New(registry *commands.Registry, game *commands.Context, historyFile string) *Console {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	c := &Console{
		line:        line,
		historyFile: historyFile,
		parser:      commands.NewParser(registry),
		dispatcher:  commands.NewDispatcher(registry),
		completer:   commands.NewCompleter(registry),
		game:        game,
	}

	// Tab completion runs read-only against the registry and the entity
	// cache; an unambiguous candidate gets a trailing space so the user
	// can keep typing arguments.
	line.SetCompleter(func(partial string) []string {
		comps, unambiguous := c.completer.Complete(context.Background(), partial, c.game)
		out := make([]string, 0, len(comps))
		for _, comp := range comps {
			value := comp.Value
			if unambiguous {
				value += " "
			}
			out = append(out, value)
		}
		return out
	})

	c.loadHistory()
	return c
}

// Run reads and dispatches lines until quit, Ctrl-C, or EOF.
func (c *Console) Run(ctx context.Context) error {
	defer c.Close()

	for {
		input, err := c.line.Prompt(c.prompt())
		if err != nil {
			if err == liner.ErrPromptAborted {
				fmt.Println()
				return nil
			}
			// EOF (Ctrl+D) or a read error ends the session
			fmt.Println()
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		c.line.AppendHistory(input)

		parsed := c.parser.Parse(input, c.game.Mode)
		result := c.dispatcher.Execute(ctx, parsed, c.game)
		c.render(result)

		if result.Quit {
			return nil
		}
	}
}

// Close saves history and restores the terminal.
func (c *Console) Close() {
	c.saveHistory()
	c.line.Close()
}

// prompt renders the mode-dependent prompt.
func (c *Console) prompt() string {
	if c.game.Mode == commands.ModeAdmin {
		return AdminPromptStyle.Render("questrun[admin]> ")
	}
	return PromptStyle.Render("questrun> ")
}

// render prints a command result.
func (c *Console) render(result commands.Result) {
	for _, line := range result.Lines {
		fmt.Println(OutputStyle.Render(line))
	}

	if result.Success || result.Err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("[error]"), result.Err.Message)
	if result.Err.Suggestion != "" {
		fmt.Fprintln(os.Stderr, HintStyle.Render("  "+result.Err.Suggestion))
	}
}

// =============================================================================
// HISTORY
// =============================================================================

// loadHistory reads persisted input history, if any.
func (c *Console) loadHistory() {
	if c.historyFile == "" {
		return
	}
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// saveHistory persists input history with owner-only permissions.
func (c *Console) saveHistory() {
	if c.historyFile == "" {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}
