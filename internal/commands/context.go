// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands implements the command interpretation engine for questrun.
package commands

import (
	"context"

	"github.com/jeranaias/questrun/internal/entity"
	"github.com/jeranaias/questrun/internal/store"
)

// =============================================================================
// GAME CONTEXT
// =============================================================================

// Context carries the session state and injected services that handlers
// need. It is owned by the caller and passed by reference into dispatch;
// the engine itself never mutates it — only handlers do (mode switches,
// movement, inventory changes). One command runs to completion before the
// next is dispatched, so no locking is needed here.
//
// Service fields may be nil; handlers check before use.
type Context struct {
	// Mode is the current privilege mode (player or admin)
	Mode Mode

	// AdventureID is the adventure currently selected/being played
	AdventureID string

	// LocationID is the player's current location within the adventure
	LocationID string

	// Inventory holds the names of carried items
	Inventory []string

	// Entities serves identifier lists for autocomplete through the TTL
	// cache
	Entities *entity.Cache

	// Store is the adventure data store
	Store Store

	// Registry lets handlers enumerate the commands they run under (help)
	Registry *Registry
}

// Store is the game-world data collaborator as seen by handlers. The local
// SQLite implementation lives in internal/store; the engine depends only on
// this surface.
type Store interface {
	entity.Lister

	// Adventure authoring
	CreateAdventure(ctx context.Context, title string) (id string, err error)
	DeleteAdventure(ctx context.Context, id string) error
	AdventureTitle(ctx context.Context, id string) (string, error)

	// Location authoring and navigation
	CreateLocation(ctx context.Context, adventureID, name, description string) (id string, err error)
	LinkLocations(ctx context.Context, from, direction, to string) error
	Location(ctx context.Context, locationID string) (store.LocationView, error)
	StartLocation(ctx context.Context, adventureID string) (string, error)

	// Item and character authoring
	CreateItem(ctx context.Context, adventureID, locationID, name string) (id string, err error)
	CreateCharacter(ctx context.Context, adventureID, locationID, name, greeting string) (id string, err error)

	// Player actions
	TakeItem(ctx context.Context, locationID, name string) error
	DropItem(ctx context.Context, locationID, name string) error
	CharacterGreeting(ctx context.Context, locationID, name string) (string, error)
}

// Carrying reports whether the named item is in the inventory.
func (c *Context) Carrying(item string) bool {
	for _, held := range c.Inventory {
		if held == item {
			return true
		}
	}
	return false
}

// RemoveFromInventory drops an item from the inventory, reporting whether
// it was held.
func (c *Context) RemoveFromInventory(item string) bool {
	for i, held := range c.Inventory {
		if held == item {
			c.Inventory = append(c.Inventory[:i], c.Inventory[i+1:]...)
			return true
		}
	}
	return false
}
