// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// suggest.go - "did you mean" suggestions for unresolved input.
package commands

import (
	"sort"
	"strings"
)

// DefaultSuggestionLimit is how many suggestions are offered by default.
const DefaultSuggestionLimit = 3

// Suggester ranks registered command names and aliases by edit distance to
// an unresolved input. It is read-only over the registry and is only
// consulted after resolution has already failed.
type Suggester struct {
	registry *Registry
}

// NewSuggester creates a suggester backed by the given registry.
func NewSuggester(registry *Registry) *Suggester {
	return &Suggester{registry: registry}
}

// Suggest returns up to limit candidate names visible in mode, sorted by
// ascending edit distance to the first token of input, ties broken by
// shorter name then lexical order. Candidates beyond the cutoff distance
// (half the input length, minimum 2) are excluded so very short or very
// different inputs don't produce nonsense.
func (s *Suggester) Suggest(input string, mode Mode, limit int) []string {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	// Most typos are single-word; compare against the first token only.
	tokens := strings.Fields(strings.ToLower(input))
	if len(tokens) == 0 {
		return nil
	}
	word := tokens[0]

	cutoff := len(word) / 2
	if cutoff < 2 {
		cutoff = 2
	}

	type scored struct {
		name     string
		distance int
	}

	var candidates []scored
	for _, name := range s.registry.VisibleNames(mode) {
		// Compare against the candidate's first word as well, so the typo
		// "creat" still reaches "create adventure".
		target := name
		if i := strings.IndexByte(name, ' '); i >= 0 {
			target = name[:i]
		}

		distance := levenshteinDistance(word, target)
		if full := levenshteinDistance(word, name); full < distance {
			distance = full
		}
		if distance == 0 || distance > cutoff {
			continue
		}
		candidates = append(candidates, scored{name: name, distance: distance})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		if len(candidates[i].name) != len(candidates[j].name) {
			return len(candidates[i].name) < len(candidates[j].name)
		}
		return candidates[i].name < candidates[j].name
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.name
	}
	return names
}

// levenshteinDistance calculates the edit distance between two strings:
// the minimum number of single-character insertions, deletions, or
// substitutions required to change one into the other.
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	rows := len(s1) + 1
	cols := len(s2) + 1

	// Two rows instead of the full matrix for memory efficiency
	prev := make([]int, cols)
	curr := make([]int, cols)

	for j := 0; j < cols; j++ {
		prev[j] = j
	}

	for i := 1; i < rows; i++ {
		curr[0] = i

		for j := 1; j < cols; j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}

			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[cols-1]
}

// min3 returns the minimum of three integers.
func min3(a, b, c int) int {
	if a <= b && a <= c {
		return a
	}
	if b <= c {
		return b
	}
	return c
}
