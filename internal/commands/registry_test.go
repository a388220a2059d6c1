// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

// =============================================================================
// FIXTURES
// =============================================================================

// invocation records a handler call for assertions.
type invocation struct {
	command string
	args    []string
}

// recorder builds handlers that append to a shared call log.
type recorder struct {
	calls []invocation
}

func (r *recorder) handler(name string) Handler {
	return func(ctx context.Context, args []string, game *Context) (Result, error) {
		r.calls = append(r.calls, invocation{command: name, args: args})
		return Ok("done"), nil
	}
}

// testRegistry builds a small fixture set mirroring the built-ins' shape:
// single-word player commands, multi-word admin commands with short and
// hyphenated aliases, and a Both command.
func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r, _ := testRegistryWithRecorder(t)
	return r
}

func testRegistryWithRecorder(t *testing.T) (*Registry, *recorder) {
	t.Helper()

	rec := &recorder{}
	r := NewRegistry()

	specs := []*Command{
		{
			Name:    "take",
			Aliases: []string{"get"},
			Args:    []ArgDef{{Name: "item", Required: true, Type: ArgTypeItem}},
			Mode:    ModePlayer,
			Handler: rec.handler("take"),
		},
		{
			Name:    "look",
			Mode:    ModePlayer,
			Handler: rec.handler("look"),
		},
		{
			Name:    "create adventure",
			Aliases: []string{"create", "create-adventure"},
			Args:    []ArgDef{{Name: "title", Required: true, Type: ArgTypeString}},
			Mode:    ModeAdmin,
			Handler: rec.handler("create adventure"),
		},
		{
			Name:    "delete adventure",
			Aliases: []string{"delete-adventure"},
			Args:    []ArgDef{{Name: "adventure", Required: true, Type: ArgTypeAdventure}},
			Mode:    ModeAdmin,
			Handler: rec.handler("delete adventure"),
		},
		{
			Name:    "select adventure",
			Aliases: []string{"select-adventure"},
			Args:    []ArgDef{{Name: "adventure", Required: true, Type: ArgTypeAdventure}},
			Mode:    ModeAdmin,
			Handler: rec.handler("select adventure"),
		},
		{
			Name:    "select location",
			Aliases: []string{"select-location"},
			Args:    []ArgDef{{Name: "location", Required: true, Type: ArgTypeLocation}},
			Mode:    ModeAdmin,
			Handler: rec.handler("select location"),
		},
		{
			Name:    "help",
			Mode:    ModeBoth,
			Handler: rec.handler("help"),
		},
	}

	for _, spec := range specs {
		if err := r.Register(spec); err != nil {
			t.Fatalf("registering %q: %v", spec.Name, err)
		}
	}
	return r, rec
}

// =============================================================================
// REGISTRATION TESTS
// =============================================================================

func TestRegisterConflictSameMode(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&Command{Name: "look", Mode: ModePlayer}); err != nil {
		t.Fatal(err)
	}

	err := r.Register(&Command{Name: "inspect", Aliases: []string{"look"}, Mode: ModePlayer})
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.Name != "look" {
		t.Errorf("conflict name = %q, want look", conflict.Name)
	}

	// The failed registration must not have touched the index.
	if r.Lookup("inspect", ModePlayer) != nil {
		t.Error("failed registration leaked into the index")
	}
}

func TestRegisterConflictWithBoth(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&Command{Name: "status", Mode: ModeBoth}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&Command{Name: "status", Mode: ModeAdmin}); err == nil {
		t.Error("Both-mode name must conflict with a same-named Admin command")
	}
}

func TestRegisterDisjointModesShareName(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&Command{Name: "list", Mode: ModePlayer}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&Command{Name: "list", Mode: ModeAdmin}); err != nil {
		t.Errorf("disjoint modes may share a name, got %v", err)
	}
}

func TestRegisterRejectsEmptyName(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&Command{Name: "   "}); err == nil {
		t.Error("empty name must be rejected")
	}
}

// =============================================================================
// RESOLUTION TESTS
// =============================================================================

func TestResolveAliasEqualsCanonical(t *testing.T) {
	r, rec := testRegistryWithRecorder(t)

	for _, line := range []string{"create adventure The Cave", "create-adventure The Cave"} {
		parsed := r.Resolve(Tokenize(line), ModeAdmin)
		if !parsed.Valid {
			t.Fatalf("Resolve(%q) invalid", line)
		}
		if _, err := parsed.Command.Handler(context.Background(), parsed.Args, &Context{}); err != nil {
			t.Fatal(err)
		}
	}

	if len(rec.calls) != 2 {
		t.Fatalf("expected 2 handler calls, got %d", len(rec.calls))
	}
	if !reflect.DeepEqual(rec.calls[0], rec.calls[1]) {
		t.Errorf("alias and canonical name invoked differently:\n  %+v\n  %+v", rec.calls[0], rec.calls[1])
	}
	if !reflect.DeepEqual(rec.calls[0].args, []string{"The", "Cave"}) {
		t.Errorf("args = %v, want [The Cave]", rec.calls[0].args)
	}
}

func TestResolveLongestPrefixWins(t *testing.T) {
	r := testRegistry(t)

	// "create adventure X" must resolve the two-word name, not the
	// one-word alias "create" with "adventure" as an argument.
	parsed := r.Resolve([]string{"create", "adventure", "Crypt"}, ModeAdmin)
	if !parsed.Valid {
		t.Fatal("expected a match")
	}
	if parsed.Command.Name != "create adventure" {
		t.Errorf("resolved %q, want the longer name", parsed.Command.Name)
	}
	if !reflect.DeepEqual(parsed.Args, []string{"Crypt"}) {
		t.Errorf("args = %v, want [Crypt]", parsed.Args)
	}

	// With only the shared first word, the alias matches.
	parsed = r.Resolve([]string{"create", "Crypt"}, ModeAdmin)
	if !parsed.Valid || parsed.Command.Name != "create adventure" {
		t.Fatalf("alias resolution failed: %+v", parsed)
	}
	if !reflect.DeepEqual(parsed.Args, []string{"Crypt"}) {
		t.Errorf("args = %v, want [Crypt]", parsed.Args)
	}
}

func TestResolveCaseInsensitive(t *testing.T) {
	r := testRegistry(t)

	parsed := r.Resolve([]string{"CREATE", "Adventure", "x"}, ModeAdmin)
	if !parsed.Valid || parsed.Command.Name != "create adventure" {
		t.Errorf("case-insensitive resolution failed: %+v", parsed)
	}
}

func TestResolveModeIsolation(t *testing.T) {
	r := testRegistry(t)

	// Admin command invisible to players.
	if parsed := r.Resolve([]string{"delete", "adventure", "x"}, ModePlayer); parsed.Valid {
		t.Error("admin command resolved in player mode")
	}
	// Player command invisible to admins.
	if parsed := r.Resolve([]string{"take", "lamp"}, ModeAdmin); parsed.Valid {
		t.Error("player command resolved in admin mode")
	}
	// Both-mode command visible everywhere.
	for _, mode := range []Mode{ModePlayer, ModeAdmin} {
		if parsed := r.Resolve([]string{"help"}, mode); !parsed.Valid {
			t.Errorf("Both command not resolved in %s mode", mode)
		}
	}
}

func TestResolveMiss(t *testing.T) {
	r := testRegistry(t)

	parsed := r.Resolve([]string{"dance"}, ModePlayer)
	if parsed.Valid || parsed.Command != nil {
		t.Errorf("expected a miss, got %+v", parsed)
	}
	if parsed.Err == "" {
		t.Error("miss should carry a parse error")
	}
}

func TestVisibleNamesExcludesOtherMode(t *testing.T) {
	r := testRegistry(t)

	for _, name := range r.VisibleNames(ModePlayer) {
		if name == "delete adventure" || name == "delete-adventure" {
			t.Errorf("admin name %q visible to players", name)
		}
	}
}
