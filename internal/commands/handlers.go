// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// handlers.go - Built-in command handler implementations.
//
// Handlers are thin: argument checks, a store call, output lines. They may
// block on the store; the console queues further input until they return.
package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jeranaias/questrun/internal/entity"
)

// =============================================================================
// SHARED COMMANDS
// =============================================================================

func handleHelp(ctx context.Context, args []string, game *Context) (Result, error) {
	reg := gameRegistry(game)
	if reg == nil {
		return Ok("no commands registered"), nil
	}

	byCategory := reg.ByCategory(game.Mode)
	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var lines []string
	lines = append(lines, fmt.Sprintf("commands available in %s mode:", game.Mode))
	for _, category := range categories {
		lines = append(lines, "", category+":")
		for _, cmd := range byCategory[category] {
			usage := cmd.Usage
			if usage == "" {
				usage = cmd.Name
			}
			lines = append(lines, fmt.Sprintf("  %-36s %s", usage, cmd.Description))
			if len(cmd.Aliases) > 0 {
				lines = append(lines, fmt.Sprintf("  %-36s aliases: %s", "", strings.Join(cmd.Aliases, ", ")))
			}
		}
	}
	return Ok(lines...), nil
}

func handleQuit(ctx context.Context, args []string, game *Context) (Result, error) {
	result := Ok("goodbye")
	result.Quit = true
	return result, nil
}

func handleAdmin(ctx context.Context, args []string, game *Context) (Result, error) {
	if game.Mode == ModeAdmin {
		return Ok("already in admin mode"), nil
	}
	game.Mode = ModeAdmin
	return Ok("admin mode; \"leave\" returns to the game"), nil
}

func handleLeave(ctx context.Context, args []string, game *Context) (Result, error) {
	if game.Mode == ModePlayer {
		return Ok("already in player mode"), nil
	}
	game.Mode = ModePlayer
	return Ok("back to player mode"), nil
}

// =============================================================================
// PLAYER COMMANDS
// =============================================================================

func handlePlay(ctx context.Context, args []string, game *Context) (Result, error) {
	if len(args) == 0 {
		return MissingArg(mustCommand(game, "play"), "adventure"), nil
	}
	if game.Store == nil {
		return Fail(ErrHandler, "no adventure store configured", ""), nil
	}

	adventureID := args[0]
	title, err := game.Store.AdventureTitle(ctx, adventureID)
	if err != nil {
		return Result{}, err
	}

	startID, err := game.Store.StartLocation(ctx, adventureID)
	if err != nil {
		return Result{}, err
	}

	game.AdventureID = adventureID
	game.LocationID = startID
	game.Inventory = nil
	invalidateWorld(game)

	lines := []string{fmt.Sprintf("now playing %q", title)}
	look, err := describeLocation(ctx, game)
	if err != nil {
		return Result{}, err
	}
	return Ok(append(lines, look...)...), nil
}

func handleLook(ctx context.Context, args []string, game *Context) (Result, error) {
	if game.LocationID == "" {
		return Fail(ErrHandler, "you are nowhere", "start with \"play <adventure>\""), nil
	}
	lines, err := describeLocation(ctx, game)
	if err != nil {
		return Result{}, err
	}
	return Ok(lines...), nil
}

func handleGo(ctx context.Context, args []string, game *Context) (Result, error) {
	if len(args) == 0 {
		return MissingArg(mustCommand(game, "go"), "direction"), nil
	}
	if game.LocationID == "" {
		return Fail(ErrHandler, "you are nowhere", "start with \"play <adventure>\""), nil
	}

	view, err := game.Store.Location(ctx, game.LocationID)
	if err != nil {
		return Result{}, err
	}

	direction := strings.ToLower(args[0])
	for _, exit := range view.Exits {
		if strings.ToLower(exit.Direction) == direction {
			game.LocationID = exit.LocationID
			lines, err := describeLocation(ctx, game)
			if err != nil {
				return Result{}, err
			}
			return Ok(lines...), nil
		}
	}

	return Fail(ErrHandler, fmt.Sprintf("there is no exit %q here", args[0]),
		"\"look\" lists the exits"), nil
}

func handleTake(ctx context.Context, args []string, game *Context) (Result, error) {
	if len(args) == 0 {
		return MissingArg(mustCommand(game, "take"), "item"), nil
	}
	if game.LocationID == "" {
		return Fail(ErrHandler, "you are nowhere", "start with \"play <adventure>\""), nil
	}

	name := strings.Join(args, " ")
	if err := game.Store.TakeItem(ctx, game.LocationID, name); err != nil {
		return Fail(ErrHandler, fmt.Sprintf("cannot take %q: %v", name, err), ""), nil
	}

	game.Inventory = append(game.Inventory, name)
	invalidate(game, entity.KindItem)
	return Ok(fmt.Sprintf("taken: %s", name)), nil
}

func handleDrop(ctx context.Context, args []string, game *Context) (Result, error) {
	if len(args) == 0 {
		return MissingArg(mustCommand(game, "drop"), "item"), nil
	}

	if game.LocationID == "" {
		return Fail(ErrHandler, "there is nowhere to drop anything", ""), nil
	}

	name := strings.Join(args, " ")
	if !game.Carrying(name) {
		return Fail(ErrHandler, fmt.Sprintf("you are not carrying %q", name), "\"inventory\" lists carried items"), nil
	}

	if err := game.Store.DropItem(ctx, game.LocationID, name); err != nil {
		return Result{}, err
	}

	game.RemoveFromInventory(name)
	invalidate(game, entity.KindItem)
	return Ok(fmt.Sprintf("dropped: %s", name)), nil
}

func handleInventory(ctx context.Context, args []string, game *Context) (Result, error) {
	if len(game.Inventory) == 0 {
		return Ok("you are carrying nothing"), nil
	}
	lines := []string{"you are carrying:"}
	for _, item := range game.Inventory {
		lines = append(lines, "  "+item)
	}
	return Ok(lines...), nil
}

func handleTalk(ctx context.Context, args []string, game *Context) (Result, error) {
	if len(args) == 0 {
		return MissingArg(mustCommand(game, "talk"), "character"), nil
	}
	if game.LocationID == "" {
		return Fail(ErrHandler, "there is nobody here", ""), nil
	}

	name := strings.Join(args, " ")
	greeting, err := game.Store.CharacterGreeting(ctx, game.LocationID, name)
	if err != nil {
		return Fail(ErrHandler, fmt.Sprintf("%q is not here", name), "\"look\" lists who is around"), nil
	}
	if greeting == "" {
		greeting = "..."
	}
	return Ok(fmt.Sprintf("%s says: %s", name, greeting)), nil
}

// =============================================================================
// ADMIN COMMANDS
// =============================================================================

func handleCreateAdventure(ctx context.Context, args []string, game *Context) (Result, error) {
	if len(args) == 0 {
		return MissingArg(mustCommand(game, "create adventure"), "title"), nil
	}

	if game.Store == nil {
		return Fail(ErrHandler, "no adventure store configured", ""), nil
	}

	title := strings.Join(args, " ")
	id, err := game.Store.CreateAdventure(ctx, title)
	if err != nil {
		return Result{}, err
	}

	game.AdventureID = id
	invalidate(game, entity.KindAdventure)
	return Ok(
		fmt.Sprintf("created adventure %q (%s)", title, id),
		"it is now selected; \"create location\" adds its first location",
	), nil
}

func handleDeleteAdventure(ctx context.Context, args []string, game *Context) (Result, error) {
	if len(args) == 0 {
		return MissingArg(mustCommand(game, "delete adventure"), "adventure"), nil
	}

	if game.Store == nil {
		return Fail(ErrHandler, "no adventure store configured", ""), nil
	}

	id := args[0]
	if err := game.Store.DeleteAdventure(ctx, id); err != nil {
		return Result{}, err
	}

	if game.AdventureID == id {
		game.AdventureID = ""
		game.LocationID = ""
	}
	invalidateWorld(game)
	return Ok(fmt.Sprintf("deleted adventure %s", id)), nil
}

func handleSelectAdventure(ctx context.Context, args []string, game *Context) (Result, error) {
	if len(args) == 0 {
		return MissingArg(mustCommand(game, "select adventure"), "adventure"), nil
	}

	if game.Store == nil {
		return Fail(ErrHandler, "no adventure store configured", ""), nil
	}

	id := args[0]
	title, err := game.Store.AdventureTitle(ctx, id)
	if err != nil {
		return Result{}, err
	}

	game.AdventureID = id
	game.LocationID = ""
	invalidateWorld(game)
	return Ok(fmt.Sprintf("selected adventure %q (%s)", title, id)), nil
}

func handleListAdventures(ctx context.Context, args []string, game *Context) (Result, error) {
	if game.Store == nil {
		return Fail(ErrHandler, "no adventure store configured", ""), nil
	}

	ids, err := game.Store.List(ctx, entity.KindAdventure)
	if err != nil {
		return Result{}, err
	}
	if len(ids) == 0 {
		return Ok("no adventures yet; \"create adventure <title>\" starts one"), nil
	}

	lines := []string{"adventures:"}
	for _, id := range ids {
		title, err := game.Store.AdventureTitle(ctx, id)
		if err != nil {
			title = "?"
		}
		marker := "  "
		if id == game.AdventureID {
			marker = "* "
		}
		lines = append(lines, fmt.Sprintf("%s%s  %s", marker, id, title))
	}
	return Ok(lines...), nil
}

func handleCreateLocation(ctx context.Context, args []string, game *Context) (Result, error) {
	if len(args) == 0 {
		return MissingArg(mustCommand(game, "create location"), "name"), nil
	}
	if game.AdventureID == "" {
		return Fail(ErrHandler, "no adventure selected", "\"select adventure <id>\" first"), nil
	}

	name := args[0]
	description := strings.Join(args[1:], " ")
	id, err := game.Store.CreateLocation(ctx, game.AdventureID, name, description)
	if err != nil {
		return Result{}, err
	}

	game.LocationID = id
	invalidate(game, entity.KindLocation)
	return Ok(fmt.Sprintf("created location %q (%s); it is now selected", name, id)), nil
}

func handleSelectLocation(ctx context.Context, args []string, game *Context) (Result, error) {
	if len(args) == 0 {
		return MissingArg(mustCommand(game, "select location"), "location"), nil
	}

	if game.Store == nil {
		return Fail(ErrHandler, "no adventure store configured", ""), nil
	}

	id := args[0]
	view, err := game.Store.Location(ctx, id)
	if err != nil {
		return Result{}, err
	}

	game.AdventureID = view.AdventureID
	game.LocationID = view.ID
	return Ok(fmt.Sprintf("selected location %q (%s)", view.Name, view.ID)), nil
}

func handleLink(ctx context.Context, args []string, game *Context) (Result, error) {
	cmd := mustCommand(game, "link")
	if len(args) < 1 {
		return MissingArg(cmd, "direction"), nil
	}
	if len(args) < 2 {
		return MissingArg(cmd, "location"), nil
	}
	if game.LocationID == "" {
		return Fail(ErrHandler, "no location selected", "\"select location <id>\" first"), nil
	}

	direction, to := args[0], args[1]
	if err := game.Store.LinkLocations(ctx, game.LocationID, direction, to); err != nil {
		return Result{}, err
	}
	return Ok(fmt.Sprintf("linked %s -> %s", direction, to)), nil
}

func handleCreateItem(ctx context.Context, args []string, game *Context) (Result, error) {
	if len(args) == 0 {
		return MissingArg(mustCommand(game, "create item"), "name"), nil
	}
	if game.AdventureID == "" || game.LocationID == "" {
		return Fail(ErrHandler, "no location selected", "\"select location <id>\" first"), nil
	}

	name := strings.Join(args, " ")
	if _, err := game.Store.CreateItem(ctx, game.AdventureID, game.LocationID, name); err != nil {
		return Result{}, err
	}

	invalidate(game, entity.KindItem)
	return Ok(fmt.Sprintf("created item %q", name)), nil
}

func handleCreateCharacter(ctx context.Context, args []string, game *Context) (Result, error) {
	if len(args) == 0 {
		return MissingArg(mustCommand(game, "create character"), "name"), nil
	}
	if game.AdventureID == "" || game.LocationID == "" {
		return Fail(ErrHandler, "no location selected", "\"select location <id>\" first"), nil
	}

	name := args[0]
	greeting := strings.Join(args[1:], " ")
	if _, err := game.Store.CreateCharacter(ctx, game.AdventureID, game.LocationID, name, greeting); err != nil {
		return Result{}, err
	}

	invalidate(game, entity.KindCharacter)
	return Ok(fmt.Sprintf("created character %q", name)), nil
}

// =============================================================================
// HELPERS
// =============================================================================

// describeLocation renders the current location for look/go/play output.
func describeLocation(ctx context.Context, game *Context) ([]string, error) {
	view, err := game.Store.Location(ctx, game.LocationID)
	if err != nil {
		return nil, err
	}

	lines := []string{view.Name}
	if view.Description != "" {
		lines = append(lines, view.Description)
	}

	if len(view.Exits) > 0 {
		directions := make([]string, len(view.Exits))
		for i, exit := range view.Exits {
			directions[i] = exit.Direction
		}
		lines = append(lines, "exits: "+strings.Join(directions, ", "))
	} else {
		lines = append(lines, "there are no exits")
	}

	for _, item := range view.Items {
		lines = append(lines, "you see: "+item)
	}
	for _, character := range view.Characters {
		lines = append(lines, "here is: "+character)
	}
	return lines, nil
}

// invalidate drops one cached entity kind after a mutation so the next
// completion reflects it immediately instead of after the TTL.
func invalidate(game *Context, kind entity.Kind) {
	if game.Entities != nil {
		game.Entities.Invalidate(kind)
	}
}

// invalidateWorld drops every cached entity kind.
func invalidateWorld(game *Context) {
	if game.Entities != nil {
		game.Entities.InvalidateAll()
	}
}

// mustCommand looks up a built-in by name for usage strings in failures.
func mustCommand(game *Context, name string) *Command {
	if reg := gameRegistry(game); reg != nil {
		if cmd := reg.LookupAnyMode(name); cmd != nil {
			return cmd
		}
	}
	return &Command{Name: name, Usage: name}
}

// gameRegistry returns the registry handlers run under.
func gameRegistry(game *Context) *Registry {
	return game.Registry
}
