// questrun - An interactive console for the quest adventure service.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jeranaias/questrun/internal/cli"
	"github.com/jeranaias/questrun/internal/commands"
	"github.com/jeranaias/questrun/internal/config"
	"github.com/jeranaias/questrun/internal/entity"
	"github.com/jeranaias/questrun/internal/store"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

func main() {
	var (
		remote      = flag.Bool("remote", false, "use the remote adventure service instead of the local database")
		configPath  = flag.String("config", "", "path to config.toml (default ~/.questrun/config.toml)")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("questrun %s (%s)\n", Version, GitCommit)
		return
	}

	if err := run(*remote, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "questrun: %v\n", err)
		os.Exit(1)
	}
}

func run(remote bool, configPath string) error {
	if err := config.EnsureConfigDir(); err != nil {
		return err
	}

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	// Entity lookups come either from the local database or the remote
	// service; the engine only sees the Lister.
	var lister entity.Lister
	var gameStore commands.Store

	if remote {
		client := entity.NewClient(&entity.ClientConfig{
			BaseURL: cfg.Server.URL,
			Timeout: cfg.ServerTimeout(),
		})
		lister = client
	} else {
		db, err := store.Open(cfg.Store.DatabasePath)
		if err != nil {
			return err
		}
		defer db.Close()
		lister = db
		gameStore = db
	}

	cache := entity.NewCache(lister, cfg.CacheTTL())

	// Out-of-band database writes (web admin, another console) invalidate
	// the cache early; the TTL bounds staleness either way.
	if db, ok := gameStore.(*store.Store); ok && cfg.Store.WatchDatabase {
		watcher, err := store.NewWatcher(db, cache, 0)
		if err == nil {
			if err := watcher.Watch(); err == nil {
				defer watcher.Close()
			}
		}
	}

	registry, err := commands.NewGameRegistry()
	if err != nil {
		// A registration conflict is a build defect; nothing to recover.
		return err
	}

	game := &commands.Context{
		Mode:     commands.ModePlayer,
		Entities: cache,
		Store:    gameStore,
		Registry: registry,
	}

	console := cli.New(registry, game, cfg.Console.HistoryFile)
	return console.Run(context.Background())
}
