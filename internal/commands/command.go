// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands implements the command interpretation engine for questrun.
package commands

import (
	"context"
)

// =============================================================================
// MODE
// =============================================================================

// Mode gates which commands are visible and executable.
type Mode int

const (
	// ModePlayer is the initial mode: navigation, inventory, dialogue.
	ModePlayer Mode = iota

	// ModeAdmin is the authoring mode: create/delete/select entities.
	ModeAdmin

	// ModeBoth marks a command as available in either mode.
	// Only valid on a Command, never as a session mode.
	ModeBoth
)

// String returns the mode name as shown to users.
func (m Mode) String() string {
	switch m {
	case ModePlayer:
		return "player"
	case ModeAdmin:
		return "admin"
	case ModeBoth:
		return "both"
	default:
		return "unknown"
	}
}

// Allows reports whether a command restricted to mode m may run in session
// mode active.
func (m Mode) Allows(active Mode) bool {
	return m == ModeBoth || m == active
}

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command represents a registered console command.
//
// Name may contain multiple space-separated words ("create adventure");
// aliases may be shorter forms ("create") or legacy hyphenated forms
// ("create-adventure"). All matching is case-insensitive.
type Command struct {
	// Name is the canonical command name (e.g., "create adventure")
	Name string

	// Aliases are alternative names (e.g., "create", "create-adventure")
	Aliases []string

	// Description is shown in help and completion
	Description string

	// Usage shows argument syntax (e.g., "go <exit>")
	Usage string

	// Args defines the expected arguments
	Args []ArgDef

	// Mode restricts where the command is visible
	Mode Mode

	// Handler is the function that executes the command
	Handler Handler

	// Hidden commands don't appear in help or completion
	Hidden bool

	// Category for grouping in help display
	Category string
}

// Handler executes a resolved command with its leftover argument tokens.
// A returned error is converted to a HandlerError result at the dispatch
// boundary; handlers that want to shape their own failure return a Result
// with Success=false and a nil error.
type Handler func(ctx context.Context, args []string, game *Context) (Result, error)

// ArgDef defines an argument for a command.
type ArgDef struct {
	// Name of the argument
	Name string

	// Required indicates if the argument must be provided
	Required bool

	// Type determines completion behavior
	Type ArgType

	// Description explains the argument
	Description string
}

// ArgType indicates what kind of completion to provide for an argument.
type ArgType int

const (
	ArgTypeString    ArgType = iota // Free-form string, no completion
	ArgTypeAdventure                // Adventure ID from the store
	ArgTypeLocation                 // Location ID within the selected adventure
	ArgTypeItem                     // Item identifier at the current location
	ArgTypeCharacter                // Character identifier at the current location
)

// =============================================================================
// PARSE RESULT
// =============================================================================

// ParseResult contains the result of parsing one input line.
type ParseResult struct {
	// Command is the resolved command (nil if no prefix matched)
	Command *Command

	// Args are the leftover tokens after the matched name prefix
	Args []string

	// Valid is false when no registered name or alias matched
	Valid bool

	// RawInput is the original input line, trimmed
	RawInput string

	// Err holds a human-readable parse error when Valid is false
	Err string
}

// =============================================================================
// COMMAND RESULT
// =============================================================================

// ErrorCode classifies a command failure.
type ErrorCode string

const (
	// ErrNoMatch means no command or alias resolved the input.
	ErrNoMatch ErrorCode = "no_match"

	// ErrWrongMode means the command exists but not in the current mode.
	ErrWrongMode ErrorCode = "wrong_mode"

	// ErrMissingArgument is reported by handlers for absent required args.
	ErrMissingArgument ErrorCode = "missing_argument"

	// ErrHandler means the handler failed or panicked.
	ErrHandler ErrorCode = "handler_error"
)

// CommandError is the structured error carried by a failed Result.
type CommandError struct {
	Code       ErrorCode
	Message    string
	Suggestion string
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	if e.Suggestion != "" {
		return e.Message + " (" + e.Suggestion + ")"
	}
	return e.Message
}

// Result is what every dispatched command produces. Handlers build these;
// the dispatcher passes them through unchanged on success and guarantees a
// well-formed failure Result on every error path.
type Result struct {
	// Success is true when the command completed normally
	Success bool

	// Lines are the output lines to show the user
	Lines []string

	// Err describes the failure when Success is false
	Err *CommandError

	// Quit tells the console loop to stop after rendering this result
	Quit bool
}

// Ok builds a successful result from output lines.
func Ok(lines ...string) Result {
	return Result{Success: true, Lines: lines}
}

// Fail builds a failure result with a structured error.
func Fail(code ErrorCode, message, suggestion string) Result {
	return Result{
		Success: false,
		Err: &CommandError{
			Code:       code,
			Message:    message,
			Suggestion: suggestion,
		},
	}
}

// MissingArg is the conventional handler failure for an absent required
// argument.
func MissingArg(cmd *Command, arg string) Result {
	return Fail(ErrMissingArgument, "missing argument <"+arg+">", "usage: "+cmd.Usage)
}
