// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands implements the command interpretation engine for questrun.
package commands

import (
	"context"
	"fmt"
	"strings"
)

// =============================================================================
// DISPATCHER
// =============================================================================

// Dispatcher enforces mode gating and invokes resolved handlers. Every path
// through Execute returns a well-formed Result; handler errors and panics
// are contained at this boundary and never propagate to the caller.
type Dispatcher struct {
	registry  *Registry
	suggester *Suggester
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{
		registry:  registry,
		suggester: NewSuggester(registry),
	}
}

// Execute runs a parsed command against the game context. The caller owns
// the submission loop: one command runs to completion before the next line
// is dispatched, so game state is never touched by two in-flight commands.
func (d *Dispatcher) Execute(ctx context.Context, parsed ParseResult, game *Context) Result {
	if !parsed.Valid {
		return d.failUnresolved(parsed, game)
	}

	// Re-check mode at execution time. The command may have been parsed
	// before a queued mode switch ran, and parsing with a stale mode must
	// not smuggle an admin command into a player session.
	if !parsed.Command.Mode.Allows(game.Mode) {
		return wrongMode(parsed.Command, game.Mode)
	}

	return d.invoke(ctx, parsed, game)
}

// failUnresolved classifies an unresolved line: a command that exists in the
// other mode yields WrongMode; a true miss yields NoMatch with fuzzy
// suggestions.
func (d *Dispatcher) failUnresolved(parsed ParseResult, game *Context) Result {
	tokens := Tokenize(parsed.RawInput)
	if len(tokens) == 0 {
		return Fail(ErrNoMatch, "nothing to do", "type \"help\" to list commands")
	}

	if cmd := d.registry.ResolveAny(tokens); cmd != nil && !cmd.Mode.Allows(game.Mode) {
		return wrongMode(cmd, game.Mode)
	}

	suggestions := d.suggester.Suggest(tokens[0], game.Mode, DefaultSuggestionLimit)
	hint := ""
	if len(suggestions) > 0 {
		hint = "did you mean: " + strings.Join(suggestions, ", ")
	}
	return Fail(ErrNoMatch, fmt.Sprintf("unknown command %q", tokens[0]), hint)
}

// invoke runs the handler, converting returned errors and panics into
// HandlerError results.
func (d *Dispatcher) invoke(ctx context.Context, parsed ParseResult, game *Context) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = Fail(ErrHandler,
				fmt.Sprintf("%s failed: %v", parsed.Command.Name, r), "")
		}
	}()

	if parsed.Command.Handler == nil {
		return Fail(ErrHandler, parsed.Command.Name+" has no handler", "")
	}

	result, err := parsed.Command.Handler(ctx, parsed.Args, game)
	if err != nil {
		return Fail(ErrHandler,
			fmt.Sprintf("%s failed: %v", parsed.Command.Name, err), "")
	}
	return result
}

// wrongMode builds the failure for a command that exists outside the
// current mode.
func wrongMode(cmd *Command, active Mode) Result {
	hint := "switch modes with \"admin\""
	if cmd.Mode == ModePlayer {
		hint = "switch modes with \"leave\""
	}
	return Fail(ErrWrongMode,
		fmt.Sprintf("%q is only available in %s mode", cmd.Name, cmd.Mode), hint)
}
