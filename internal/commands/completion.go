// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands implements the command interpretation engine for questrun.
package commands

import (
	"context"
	"sort"
	"strings"

	"github.com/jeranaias/questrun/internal/entity"
)

// =============================================================================
// COMPLETION TYPE
// =============================================================================

// Completion is one tab-completion candidate.
type Completion struct {
	// Value is the full replacement for the input line
	Value string

	// Display is the candidate itself (command name or entity identifier)
	Display string

	// Description shown alongside in completion listings
	Description string

	// Score for ranking (higher = better match)
	Score int
}

// =============================================================================
// COMPLETER
// =============================================================================

// Completer produces tab-completion candidates for a partial input line.
// Two sources are merged: command names and aliases visible in the current
// mode, and live entity identifiers for commands whose next argument names
// an adventure, location, item, or character. Entity lists come through the
// TTL cache on the game context; the completer itself holds no mutable
// state and may run while a submitted command is still queued.
type Completer struct {
	registry *Registry
}

// NewCompleter creates a completer over the given registry.
func NewCompleter(registry *Registry) *Completer {
	return &Completer{registry: registry}
}

// Complete returns ranked candidates for the partial input. The second
// return value reports an unambiguous completion: exactly one candidate,
// which callers append directly instead of listing.
func (c *Completer) Complete(ctx context.Context, partial string, game *Context) ([]Completion, bool) {
	trailingSpace := strings.HasSuffix(partial, " ")
	tokens := Tokenize(partial)

	var completions []Completion
	if !trailingSpace {
		// A trailing space means the command words are settled; offering
		// command names again would only shadow argument candidates.
		completions = c.completeCommands(partial, game.Mode)
	}
	completions = append(completions, c.completeEntityArg(ctx, tokens, trailingSpace, game)...)

	sortCompletions(completions)
	return completions, len(completions) == 1
}

// =============================================================================
// STATIC SOURCE: COMMAND NAMES
// =============================================================================

// completeCommands matches the normalized partial as a prefix of every
// visible command name and alias. A multi-word partial like "create ad"
// completes to "create adventure".
func (c *Completer) completeCommands(partial string, mode Mode) []Completion {
	prefix := normalize(partial)

	var completions []Completion
	for _, cmd := range c.registry.Visible(mode) {
		if cmd.Hidden {
			continue
		}

		if strings.HasPrefix(normalize(cmd.Name), prefix) {
			completions = append(completions, Completion{
				Value:       cmd.Name,
				Display:     cmd.Name,
				Description: cmd.Description,
				Score:       matchScore(cmd.Name, prefix),
			})
		}

		for _, alias := range cmd.Aliases {
			if strings.HasPrefix(normalize(alias), prefix) {
				completions = append(completions, Completion{
					Value:       alias,
					Display:     alias + " -> " + cmd.Name,
					Description: cmd.Description,
					Score:       matchScore(alias, prefix) - 10, // aliases rank below names
				})
			}
		}
	}

	return completions
}

// =============================================================================
// DYNAMIC SOURCE: ENTITY IDENTIFIERS
// =============================================================================

// completeEntityArg resolves the leading tokens to a command and, when its
// next argument is entity-typed, filters the cached identifier list against
// the trailing partial token.
func (c *Completer) completeEntityArg(ctx context.Context, tokens []string, trailingSpace bool, game *Context) []Completion {
	if game.Entities == nil || len(tokens) == 0 {
		return nil
	}

	// Split the line into the settled part and the token being typed.
	settled := tokens
	partialArg := ""
	if !trailingSpace {
		settled = tokens[:len(tokens)-1]
		partialArg = tokens[len(tokens)-1]
	}
	if len(settled) == 0 {
		return nil
	}

	parsed := c.registry.Resolve(settled, game.Mode)
	if !parsed.Valid {
		return nil
	}

	argIndex := len(parsed.Args)
	if argIndex >= len(parsed.Command.Args) {
		return nil
	}

	kind, ok := entityKind(parsed.Command.Args[argIndex].Type)
	if !ok {
		return nil
	}

	candidates := game.Entities.List(ctx, kind)
	matched := filterCandidates(candidates, partialArg)

	completions := make([]Completion, 0, len(matched))
	for _, candidate := range matched {
		completions = append(completions, Completion{
			Value:       composeLine(settled, candidate),
			Display:     candidate,
			Description: string(kind),
			Score:       matchScore(candidate, strings.ToLower(partialArg)),
		})
	}
	return completions
}

// filterCandidates applies the two matching rules in order: prefix match
// against the whole candidate, then — only when no prefix matched — a
// word-boundary match, so a multi-word item like "Abandoned bottle of wine"
// is reachable by typing any of its words.
func filterCandidates(candidates []string, partial string) []string {
	partial = strings.ToLower(partial)

	var prefixed []string
	for _, candidate := range candidates {
		if strings.HasPrefix(strings.ToLower(candidate), partial) {
			prefixed = append(prefixed, candidate)
		}
	}
	if len(prefixed) > 0 || partial == "" {
		return prefixed
	}

	var byWord []string
	for _, candidate := range candidates {
		for _, word := range strings.Fields(strings.ToLower(candidate)) {
			if strings.HasPrefix(word, partial) {
				byWord = append(byWord, candidate)
				break
			}
		}
	}
	return byWord
}

// entityKind maps an argument type to the entity kind it completes from.
func entityKind(t ArgType) (entity.Kind, bool) {
	switch t {
	case ArgTypeAdventure:
		return entity.KindAdventure, true
	case ArgTypeLocation:
		return entity.KindLocation, true
	case ArgTypeItem:
		return entity.KindItem, true
	case ArgTypeCharacter:
		return entity.KindCharacter, true
	default:
		return "", false
	}
}

// composeLine rebuilds the input line with the candidate substituted for
// the partial argument, quoting identifiers that contain whitespace.
func composeLine(settled []string, candidate string) string {
	parts := make([]string, 0, len(settled)+1)
	for _, token := range settled {
		parts = append(parts, quoteIfNeeded(token))
	}
	parts = append(parts, quoteIfNeeded(candidate))
	return strings.Join(parts, " ")
}

// quoteIfNeeded wraps a token in double quotes when it contains whitespace.
func quoteIfNeeded(token string) string {
	if strings.ContainsAny(token, " \t") {
		return "\"" + token + "\""
	}
	return token
}

// =============================================================================
// RANKING
// =============================================================================

// matchScore ranks a candidate against a partial match. Higher is better.
func matchScore(value, partial string) int {
	value = strings.ToLower(value)

	score := 100

	if value == partial {
		return score + 100
	}

	if strings.HasPrefix(value, partial) {
		score += 50
		// Shorter completions rank higher
		score += 20 - len(value)
	}

	score -= len(value) / 2

	return score
}

// sortCompletions sorts by score (descending), then alphabetically.
func sortCompletions(completions []Completion) {
	sort.Slice(completions, func(i, j int) bool {
		if completions[i].Score != completions[j].Score {
			return completions[i].Score > completions[j].Score
		}
		return completions[i].Value < completions[j].Value
	})
}
