// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands implements the command interpretation engine for questrun.
package commands

import (
	"fmt"
	"sort"
	"strings"
)

// =============================================================================
// REGISTRATION ERRORS
// =============================================================================

// ConflictError is returned when a registration would make a name or alias
// ambiguous within a mode-visible set. It is a configuration error: the
// application should fail startup on it, not recover.
type ConflictError struct {
	Name     string // the colliding normalized name or alias
	Existing string // canonical name of the command already holding it
	Incoming string // canonical name of the command being registered
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("command registration conflict: %q is already registered to %q (while registering %q)",
		e.Name, e.Existing, e.Incoming)
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds all registered commands, indexed by every normalized name
// and alias. Registration happens once at startup; after that the index is
// read-only for the lifetime of the engine.
type Registry struct {
	commands []*Command

	// index maps normalized name/alias -> owning commands. A key may own
	// more than one command only when their modes never overlap (e.g. a
	// player "look" and an admin "look" would be legal, though the built-in
	// set doesn't do this).
	index map[string][]*Command

	// maxWords is the word count of the longest registered name or alias,
	// bounding the longest-prefix search.
	maxWords int
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		index: make(map[string][]*Command),
	}
}

// Register adds a command to the registry. It returns a *ConflictError if
// the command's name or any alias is already registered for an overlapping
// mode. Registration is append-only: a conflict never overwrites.
func (r *Registry) Register(cmd *Command) error {
	if cmd == nil || strings.TrimSpace(cmd.Name) == "" {
		return fmt.Errorf("cannot register a command without a name")
	}

	keys := make([]string, 0, len(cmd.Aliases)+1)
	keys = append(keys, normalize(cmd.Name))
	for _, alias := range cmd.Aliases {
		keys = append(keys, normalize(alias))
	}

	// Validate the full key set before touching the index so a failed
	// registration leaves the registry unchanged.
	for _, key := range keys {
		for _, existing := range r.index[key] {
			if modesOverlap(existing.Mode, cmd.Mode) {
				return &ConflictError{
					Name:     key,
					Existing: existing.Name,
					Incoming: cmd.Name,
				}
			}
		}
	}

	r.commands = append(r.commands, cmd)
	for _, key := range keys {
		r.index[key] = append(r.index[key], cmd)
		if n := wordCount(key); n > r.maxWords {
			r.maxWords = n
		}
	}

	return nil
}

// modesOverlap reports whether two command mode restrictions share any
// visible set.
func modesOverlap(a, b Mode) bool {
	return a == b || a == ModeBoth || b == ModeBoth
}

// =============================================================================
// RESOLUTION
// =============================================================================

// Resolve matches the longest possible prefix of tokens against the index,
// restricted to commands visible in mode. Longer names always beat shorter
// aliases sharing the same first word: for input "create adventure Cave",
// the two-word name "create adventure" wins over the one-word alias
// "create", leaving ["Cave"] as arguments.
func (r *Registry) Resolve(tokens []string, mode Mode) ParseResult {
	if len(tokens) == 0 {
		return ParseResult{Valid: false, Err: "empty input"}
	}

	limit := r.maxWords
	if len(tokens) < limit {
		limit = len(tokens)
	}

	for k := limit; k >= 1; k-- {
		key := normalize(strings.Join(tokens[:k], " "))
		if cmd := r.lookup(key, mode); cmd != nil {
			return ParseResult{
				Command: cmd,
				Args:    append([]string(nil), tokens[k:]...),
				Valid:   true,
			}
		}
	}

	return ParseResult{
		Valid: false,
		Err:   fmt.Sprintf("unknown command %q", tokens[0]),
	}
}

// ResolveAny matches the longest possible prefix of tokens ignoring mode
// restrictions. The dispatcher uses it to distinguish a command that exists
// in the other mode (WrongMode) from a true miss (NoMatch).
func (r *Registry) ResolveAny(tokens []string) *Command {
	limit := r.maxWords
	if len(tokens) < limit {
		limit = len(tokens)
	}

	for k := limit; k >= 1; k-- {
		key := normalize(strings.Join(tokens[:k], " "))
		if cmds := r.index[key]; len(cmds) > 0 {
			return cmds[0]
		}
	}
	return nil
}

// lookup returns the command owning the normalized key in the given mode,
// or nil.
func (r *Registry) lookup(key string, mode Mode) *Command {
	for _, cmd := range r.index[key] {
		if cmd.Mode.Allows(mode) {
			return cmd
		}
	}
	return nil
}

// Lookup resolves a single already-normalized name or alias in the given
// mode. Used by the dispatcher to detect wrong-mode inputs.
func (r *Registry) Lookup(name string, mode Mode) *Command {
	return r.lookup(normalize(name), mode)
}

// LookupAnyMode returns the command owning the key in any mode, or nil.
func (r *Registry) LookupAnyMode(key string) *Command {
	cmds := r.index[normalize(key)]
	if len(cmds) == 0 {
		return nil
	}
	return cmds[0]
}

// =============================================================================
// ENUMERATION
// =============================================================================

// Visible returns all commands visible in the given mode, sorted by name.
func (r *Registry) Visible(mode Mode) []*Command {
	var cmds []*Command
	for _, cmd := range r.commands {
		if cmd.Mode.Allows(mode) {
			cmds = append(cmds, cmd)
		}
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// VisibleNames returns every normalized name and alias visible in the given
// mode, excluding hidden commands. Used by the fuzzy matcher and the
// completer.
func (r *Registry) VisibleNames(mode Mode) []string {
	var names []string
	for _, cmd := range r.commands {
		if cmd.Hidden || !cmd.Mode.Allows(mode) {
			continue
		}
		names = append(names, normalize(cmd.Name))
		for _, alias := range cmd.Aliases {
			names = append(names, normalize(alias))
		}
	}
	sort.Strings(names)
	return names
}

// ByCategory returns visible commands grouped by category for help output.
func (r *Registry) ByCategory(mode Mode) map[string][]*Command {
	result := make(map[string][]*Command)
	for _, cmd := range r.Visible(mode) {
		if cmd.Hidden {
			continue
		}
		category := cmd.Category
		if category == "" {
			category = "General"
		}
		result[category] = append(result[category], cmd)
	}
	return result
}

// MaxWords returns the word count of the longest registered name or alias.
func (r *Registry) MaxWords() int {
	return r.maxWords
}
