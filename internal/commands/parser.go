// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands implements the command interpretation engine for questrun.
package commands

import (
	"strings"
	"unicode"
)

// =============================================================================
// TOKENIZER
// =============================================================================

// Tokenize splits an input line into ordered tokens. Whitespace separates
// tokens except inside double quotes, which are stripped and whose enclosed
// whitespace is preserved in a single token. An unbalanced quote never fails:
// the remainder of the line becomes one token and validation happens
// downstream.
func Tokenize(line string) []string {
	var tokens []string
	var current strings.Builder
	var inQuote bool

	for i := 0; i < len(line); i++ {
		char := rune(line[i])

		switch {
		case char == '"':
			// Toggle quote mode; the quote itself is not part of the token.
			inQuote = !inQuote

		case char == '\\' && inQuote && i+1 < len(line):
			// Escape sequence inside quotes
			next := rune(line[i+1])
			if next == '"' || next == '\\' {
				current.WriteRune(next)
				i++
			} else {
				current.WriteRune(char)
			}

		case unicode.IsSpace(char) && !inQuote:
			// Space outside quotes ends the current token
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

		default:
			current.WriteRune(char)
		}
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// =============================================================================
// PARSER
// =============================================================================

// Parser turns raw input lines into ParseResults against a registry.
type Parser struct {
	registry *Registry
}

// NewParser creates a new parser backed by the given registry.
func NewParser(registry *Registry) *Parser {
	return &Parser{registry: registry}
}

// Parse tokenizes the line and resolves it in the given mode. Parsing the
// same line twice with the same mode yields structurally equal results.
func (p *Parser) Parse(line string, mode Mode) ParseResult {
	line = strings.TrimSpace(line)

	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return ParseResult{
			RawInput: line,
			Valid:    false,
			Err:      "empty input",
		}
	}

	result := p.registry.Resolve(tokens, mode)
	result.RawInput = line
	return result
}

// =============================================================================
// NORMALIZATION
// =============================================================================

// normalize lower-cases a name or alias and collapses internal whitespace to
// single spaces, so "Create   Adventure" and "create adventure" index
// identically.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// wordCount returns the number of whitespace-delimited words in a name.
func wordCount(s string) int {
	return len(strings.Fields(s))
}
