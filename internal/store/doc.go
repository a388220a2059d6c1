// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store provides the local SQLite-backed adventure store: the
// adventures, locations, items, and characters the console authors and
// plays, plus the entity listing that feeds autocomplete.
package store
