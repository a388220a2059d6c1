// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands implements the command interpretation engine for questrun.
package commands

// NewGameRegistry creates a registry with the built-in player and admin
// command set. A registration conflict here is a programming error and
// aborts startup.
func NewGameRegistry() (*Registry, error) {
	r := NewRegistry()

	builtins := []*Command{
		// Shared commands
		{
			Name:        "help",
			Aliases:     []string{"h", "?"},
			Description: "Show available commands",
			Usage:       "help",
			Mode:        ModeBoth,
			Category:    "General",
			Handler:     handleHelp,
		},
		{
			Name:        "quit",
			Aliases:     []string{"exit", "q"},
			Description: "Leave the console",
			Usage:       "quit",
			Mode:        ModeBoth,
			Category:    "General",
			Handler:     handleQuit,
		},
		{
			Name:        "admin",
			Aliases:     []string{"elevate"},
			Description: "Switch to admin mode",
			Usage:       "admin",
			Mode:        ModeBoth,
			Category:    "General",
			Handler:     handleAdmin,
		},
		{
			Name:        "leave",
			Aliases:     []string{"player"},
			Description: "Return to player mode",
			Usage:       "leave",
			Mode:        ModeBoth,
			Category:    "General",
			Handler:     handleLeave,
		},

		// Player commands
		{
			Name:        "play",
			Aliases:     []string{"start"},
			Description: "Start playing an adventure",
			Usage:       "play <adventure>",
			Args: []ArgDef{
				{Name: "adventure", Required: true, Type: ArgTypeAdventure, Description: "Adventure ID"},
			},
			Mode:     ModePlayer,
			Category: "Playing",
			Handler:  handlePlay,
		},
		{
			Name:        "look",
			Aliases:     []string{"l"},
			Description: "Describe the current location",
			Usage:       "look",
			Mode:        ModePlayer,
			Category:    "Playing",
			Handler:     handleLook,
		},
		{
			Name:        "go",
			Aliases:     []string{"walk"},
			Description: "Move through an exit",
			Usage:       "go <direction>",
			Args: []ArgDef{
				{Name: "direction", Required: true, Type: ArgTypeString, Description: "Exit direction"},
			},
			Mode:     ModePlayer,
			Category: "Playing",
			Handler:  handleGo,
		},
		{
			Name:        "take",
			Aliases:     []string{"get", "pick up"},
			Description: "Pick up an item",
			Usage:       "take <item>",
			Args: []ArgDef{
				{Name: "item", Required: true, Type: ArgTypeItem, Description: "Item name"},
			},
			Mode:     ModePlayer,
			Category: "Playing",
			Handler:  handleTake,
		},
		{
			Name:        "drop",
			Description: "Put down a carried item",
			Usage:       "drop <item>",
			Args: []ArgDef{
				{Name: "item", Required: true, Type: ArgTypeItem, Description: "Item name"},
			},
			Mode:     ModePlayer,
			Category: "Playing",
			Handler:  handleDrop,
		},
		{
			Name:        "inventory",
			Aliases:     []string{"inv", "i"},
			Description: "List carried items",
			Usage:       "inventory",
			Mode:        ModePlayer,
			Category:    "Playing",
			Handler:     handleInventory,
		},
		{
			Name:        "talk",
			Aliases:     []string{"talk to", "speak"},
			Description: "Talk to a character",
			Usage:       "talk <character>",
			Args: []ArgDef{
				{Name: "character", Required: true, Type: ArgTypeCharacter, Description: "Character name"},
			},
			Mode:     ModePlayer,
			Category: "Playing",
			Handler:  handleTalk,
		},

		// Admin commands
		{
			Name:        "create adventure",
			Aliases:     []string{"create", "create-adventure"},
			Description: "Create a new adventure",
			Usage:       "create adventure <title>",
			Args: []ArgDef{
				{Name: "title", Required: true, Type: ArgTypeString, Description: "Adventure title"},
			},
			Mode:     ModeAdmin,
			Category: "Authoring",
			Handler:  handleCreateAdventure,
		},
		{
			Name:        "delete adventure",
			Aliases:     []string{"delete-adventure"},
			Description: "Delete an adventure and everything in it",
			Usage:       "delete adventure <adventure>",
			Args: []ArgDef{
				{Name: "adventure", Required: true, Type: ArgTypeAdventure, Description: "Adventure ID"},
			},
			Mode:     ModeAdmin,
			Category: "Authoring",
			Handler:  handleDeleteAdventure,
		},
		{
			Name:        "select adventure",
			Aliases:     []string{"select-adventure"},
			Description: "Select the adventure to author",
			Usage:       "select adventure <adventure>",
			Args: []ArgDef{
				{Name: "adventure", Required: true, Type: ArgTypeAdventure, Description: "Adventure ID"},
			},
			Mode:     ModeAdmin,
			Category: "Authoring",
			Handler:  handleSelectAdventure,
		},
		{
			Name:        "list adventures",
			Aliases:     []string{"ls", "list-adventures"},
			Description: "List all adventures",
			Usage:       "list adventures",
			Mode:        ModeAdmin,
			Category:    "Authoring",
			Handler:     handleListAdventures,
		},
		{
			Name:        "create location",
			Aliases:     []string{"create-location"},
			Description: "Add a location to the selected adventure",
			Usage:       "create location <name> [description]",
			Args: []ArgDef{
				{Name: "name", Required: true, Type: ArgTypeString, Description: "Location name"},
				{Name: "description", Required: false, Type: ArgTypeString, Description: "Shown on look"},
			},
			Mode:     ModeAdmin,
			Category: "Authoring",
			Handler:  handleCreateLocation,
		},
		{
			Name:        "select location",
			Aliases:     []string{"select-location"},
			Description: "Select the location to author",
			Usage:       "select location <location>",
			Args: []ArgDef{
				{Name: "location", Required: true, Type: ArgTypeLocation, Description: "Location ID"},
			},
			Mode:     ModeAdmin,
			Category: "Authoring",
			Handler:  handleSelectLocation,
		},
		{
			Name:        "link",
			Aliases:     []string{"link-location"},
			Description: "Add an exit from the selected location",
			Usage:       "link <direction> <location>",
			Args: []ArgDef{
				{Name: "direction", Required: true, Type: ArgTypeString, Description: "Exit direction"},
				{Name: "location", Required: true, Type: ArgTypeLocation, Description: "Destination location ID"},
			},
			Mode:     ModeAdmin,
			Category: "Authoring",
			Handler:  handleLink,
		},
		{
			Name:        "create item",
			Aliases:     []string{"create-item"},
			Description: "Place an item at the selected location",
			Usage:       "create item <name>",
			Args: []ArgDef{
				{Name: "name", Required: true, Type: ArgTypeString, Description: "Item name"},
			},
			Mode:     ModeAdmin,
			Category: "Authoring",
			Handler:  handleCreateItem,
		},
		{
			Name:        "create character",
			Aliases:     []string{"create-character"},
			Description: "Place a character at the selected location",
			Usage:       "create character <name> [greeting]",
			Args: []ArgDef{
				{Name: "name", Required: true, Type: ArgTypeString, Description: "Character name"},
				{Name: "greeting", Required: false, Type: ArgTypeString, Description: "What they say when talked to"},
			},
			Mode:     ModeAdmin,
			Category: "Authoring",
			Handler:  handleCreateCharacter,
		},
	}

	for _, cmd := range builtins {
		if err := r.Register(cmd); err != nil {
			return nil, err
		}
	}
	return r, nil
}
