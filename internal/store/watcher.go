// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store provides the local SQLite-backed adventure store.
package store

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// DATABASE WATCHER
// =============================================================================

// Invalidator receives change notifications from the watcher. Satisfied by
// entity.Cache.
type Invalidator interface {
	InvalidateAll()
}

// Watcher invalidates cached entity lists when the database file is
// modified outside this process (another console, the web admin, a manual
// sqlite session). Events are debounced: SQLite touches the file several
// times per transaction.
type Watcher struct {
	store    *Store
	target   Invalidator
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	pending bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewWatcher creates a watcher over the store's database file. It does
// nothing for in-memory stores.
func NewWatcher(store *Store, target Invalidator, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Watcher{
		store:    store,
		target:   target,
		watcher:  fw,
		debounce: debounce,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Watch starts watching for database file changes.
func (w *Watcher) Watch() error {
	if w.store.Path() == ":memory:" {
		return nil
	}

	// Watch the directory, not the file: SQLite renames journal files in
	// and out of existence next to the database.
	if err := w.watcher.Add(filepath.Dir(w.store.Path())); err != nil {
		return err
	}

	go w.processEvents()
	return nil
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.cancel()
	return w.watcher.Close()
}

// processEvents consumes fsnotify events until closed.
func (w *Watcher) processEvents() {
	base := filepath.Base(w.store.Path())

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.concernsDatabase(event.Name, base) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			w.scheduleInvalidate()

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are not fatal; the TTL still bounds staleness.
		}
	}
}

// concernsDatabase reports whether an event path is the database file or
// one of its journal siblings (-wal, -journal, -shm).
func (w *Watcher) concernsDatabase(path, base string) bool {
	name := filepath.Base(path)
	return name == base || strings.HasPrefix(name, base+"-")
}

// scheduleInvalidate coalesces bursts of events into one invalidation.
func (w *Watcher) scheduleInvalidate() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending {
		return
	}
	w.pending = true

	time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		w.pending = false
		w.mu.Unlock()
		w.target.InvalidateAll()
	})
}
