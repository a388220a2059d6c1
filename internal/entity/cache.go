// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package entity

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL is how long a cached identifier list stays fresh.
const DefaultTTL = 5 * time.Second

// =============================================================================
// TTL CACHE
// =============================================================================

// Cache fronts a Lister with a per-kind TTL cache. Entries are immutable
// once stored and replaced wholesale on refresh, so a reader running
// alongside a queued command never observes a partially written list. A
// failed refresh falls back to the last known list; a kind that has never
// been fetched successfully yields no candidates without erroring.
type Cache struct {
	source Lister
	ttl    time.Duration

	mu      sync.Mutex
	entries map[Kind]*cacheEntry

	// now is replaceable in tests
	now func() time.Time

	// Statistics
	hits    int
	misses  int
	fetches int
}

// cacheEntry is one immutable snapshot of a kind's identifier list.
type cacheEntry struct {
	ids       []string
	fetchedAt time.Time
}

// Stats holds cache statistics.
type Stats struct {
	Hits    int
	Misses  int
	Fetches int
	Entries int
}

// NewCache creates a cache over the given source. A non-positive ttl uses
// DefaultTTL.
func NewCache(source Lister, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		source:  source,
		ttl:     ttl,
		entries: make(map[Kind]*cacheEntry),
		now:     time.Now,
	}
}

// List returns the current identifier list for a kind, refreshing from the
// source when the stored entry is older than the TTL. The returned slice is
// the cache's own immutable snapshot; callers must not modify it.
func (c *Cache) List(ctx context.Context, kind Kind) []string {
	c.mu.Lock()
	entry, ok := c.entries[kind]
	if ok && c.now().Sub(entry.fetchedAt) < c.ttl {
		c.hits++
		c.mu.Unlock()
		return entry.ids
	}
	c.misses++
	c.mu.Unlock()

	// Fetch outside the lock; readers keep seeing the old entry until the
	// new one is swapped in whole.
	ids, err := c.source.List(ctx, kind)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetches++

	if err != nil {
		// Stale beats empty: keep serving the last known list, but bump
		// its timestamp so a flapping source isn't hammered every call.
		if entry != nil {
			c.entries[kind] = &cacheEntry{ids: entry.ids, fetchedAt: c.now()}
			return entry.ids
		}
		return nil
	}

	fresh := &cacheEntry{
		ids:       append([]string(nil), ids...),
		fetchedAt: c.now(),
	}
	c.entries[kind] = fresh
	return fresh.ids
}

// Invalidate drops the entry for a kind so the next List refetches.
func (c *Cache) Invalidate(kind Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, kind)
}

// InvalidateAll drops every entry. Called when the underlying store changes
// out of band (adventure switch, database file modified).
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Kind]*cacheEntry)
}

// TTL returns the configured entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Stats returns cache statistics.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:    c.hits,
		Misses:  c.misses,
		Fetches: c.fetches,
		Entries: len(c.entries),
	}
}
