// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"reflect"
	"testing"
)

// =============================================================================
// TOKENIZER TESTS
// =============================================================================

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"look", []string{"look"}},
		{"go north", []string{"go", "north"}},
		{"  go   north  ", []string{"go", "north"}},
		{`take "bottle of wine"`, []string{"take", "bottle of wine"}},
		{`talk "Old   Sage"`, []string{"talk", "Old   Sage"}},
		{`create adventure "The Cave"`, []string{"create", "adventure", "The Cave"}},
		{`take "escaped \" quote"`, []string{"take", `escaped " quote`}},
		{"", nil},
		{"   ", nil},
	}

	for _, tc := range tests {
		got := Tokenize(tc.input)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestTokenizeUnbalancedQuote(t *testing.T) {
	// The rest of the line becomes one token; validation happens later.
	got := Tokenize(`take "bottle of`)
	want := []string{"take", "bottle of"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize with unbalanced quote = %v, want %v", got, want)
	}
}

// =============================================================================
// PARSER TESTS
// =============================================================================

func TestParseResolvesCommandAndArgs(t *testing.T) {
	registry := testRegistry(t)
	parser := NewParser(registry)

	parsed := parser.Parse("take lamp", ModePlayer)
	if !parsed.Valid {
		t.Fatalf("Parse(take lamp) invalid: %s", parsed.Err)
	}
	if parsed.Command.Name != "take" {
		t.Errorf("resolved %q, want take", parsed.Command.Name)
	}
	if !reflect.DeepEqual(parsed.Args, []string{"lamp"}) {
		t.Errorf("args = %v, want [lamp]", parsed.Args)
	}
}

func TestParseEmptyLine(t *testing.T) {
	parser := NewParser(testRegistry(t))

	parsed := parser.Parse("   ", ModePlayer)
	if parsed.Valid {
		t.Error("blank line should not be valid")
	}
	if parsed.Command != nil {
		t.Error("blank line should not resolve a command")
	}
}

func TestParseIdempotent(t *testing.T) {
	parser := NewParser(testRegistry(t))

	lines := []string{
		"take lamp",
		"create adventure The Cave",
		"no such command at all",
	}
	for _, line := range lines {
		first := parser.Parse(line, ModeAdmin)
		second := parser.Parse(line, ModeAdmin)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Parse(%q) not idempotent:\n  %+v\n  %+v", line, first, second)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Create  Adventure", "create adventure"},
		{"  LOOK ", "look"},
		{"create-adventure", "create-adventure"},
	}
	for _, tc := range tests {
		if got := normalize(tc.input); got != tc.want {
			t.Errorf("normalize(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
