// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store provides the local SQLite-backed adventure store.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/questrun/internal/entity"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotFound     = errors.New("not found")
	ErrNoStart      = errors.New("adventure has no start location")
	ErrItemNotHere  = errors.New("item is not at this location")
	ErrDatabase     = errors.New("database error")
	ErrInvalidInput = errors.New("invalid input")
)

// =============================================================================
// STORE
// =============================================================================

// Store is the SQLite adventure store.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the store at the given path and initializes the
// schema. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty database path", ErrInvalidInput)
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	// The console is single-writer; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	s := &Store{db: db, path: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// initSchema creates the tables if they don't exist.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS adventures (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS locations (
		id           TEXT PRIMARY KEY,
		adventure_id TEXT NOT NULL REFERENCES adventures(id) ON DELETE CASCADE,
		name         TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		is_start     INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS exits (
		from_location TEXT NOT NULL REFERENCES locations(id) ON DELETE CASCADE,
		direction     TEXT NOT NULL,
		to_location   TEXT NOT NULL REFERENCES locations(id) ON DELETE CASCADE,
		PRIMARY KEY (from_location, direction)
	);

	CREATE TABLE IF NOT EXISTS items (
		id           TEXT PRIMARY KEY,
		adventure_id TEXT NOT NULL REFERENCES adventures(id) ON DELETE CASCADE,
		location_id  TEXT REFERENCES locations(id) ON DELETE CASCADE,
		name         TEXT NOT NULL,
		carried      INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS characters (
		id           TEXT PRIMARY KEY,
		adventure_id TEXT NOT NULL REFERENCES adventures(id) ON DELETE CASCADE,
		location_id  TEXT NOT NULL REFERENCES locations(id) ON DELETE CASCADE,
		name         TEXT NOT NULL,
		greeting     TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_locations_adventure ON locations(adventure_id);
	CREATE INDEX IF NOT EXISTS idx_items_location ON items(location_id);
	CREATE INDEX IF NOT EXISTS idx_characters_location ON characters(location_id);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// =============================================================================
// VIEWS
// =============================================================================

// LocationView is the read model for "look" and movement.
type LocationView struct {
	ID          string
	AdventureID string
	Name        string
	Description string
	Exits       []ExitView
	Items       []string
	Characters  []string
}

// ExitView names a traversable connection out of a location.
type ExitView struct {
	Direction  string
	LocationID string
}

// =============================================================================
// ENTITY LISTING
// =============================================================================

// List implements entity.Lister: adventures and locations complete by ID,
// items and characters by display name. Carried items are excluded; they
// are completed from the session inventory, not the world.
func (s *Store) List(ctx context.Context, kind entity.Kind) ([]string, error) {
	var query string
	switch kind {
	case entity.KindAdventure:
		query = `SELECT id FROM adventures ORDER BY title`
	case entity.KindLocation:
		query = `SELECT id FROM locations ORDER BY name`
	case entity.KindItem:
		query = `SELECT name FROM items WHERE carried = 0 ORDER BY name`
	case entity.KindCharacter:
		query = `SELECT name FROM characters ORDER BY name`
	default:
		return nil, fmt.Errorf("%w: unknown entity kind %q", ErrInvalidInput, kind)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// =============================================================================
// ADVENTURE AUTHORING
// =============================================================================

// CreateAdventure inserts a new adventure and returns its generated ID.
func (s *Store) CreateAdventure(ctx context.Context, title string) (string, error) {
	if title == "" {
		return "", fmt.Errorf("%w: adventure title is required", ErrInvalidInput)
	}

	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO adventures (id, title, created_at) VALUES (?, ?, ?)`,
		id, title, time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("failed to create adventure: %w", err)
	}
	return id, nil
}

// DeleteAdventure removes an adventure and, via cascade, everything in it.
func (s *Store) DeleteAdventure(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM adventures WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete adventure: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("adventure %q: %w", id, ErrNotFound)
	}
	return nil
}

// AdventureTitle returns the title of an adventure.
func (s *Store) AdventureTitle(ctx context.Context, id string) (string, error) {
	var title string
	err := s.db.QueryRowContext(ctx,
		`SELECT title FROM adventures WHERE id = ?`, id).Scan(&title)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("adventure %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	return title, nil
}

// =============================================================================
// LOCATION AUTHORING AND NAVIGATION
// =============================================================================

// CreateLocation inserts a location; the first location of an adventure
// becomes its start location.
func (s *Store) CreateLocation(ctx context.Context, adventureID, name, description string) (string, error) {
	if adventureID == "" || name == "" {
		return "", fmt.Errorf("%w: adventure and name are required", ErrInvalidInput)
	}

	var existing int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM locations WHERE adventure_id = ?`, adventureID).Scan(&existing); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	id := uuid.NewString()
	isStart := 0
	if existing == 0 {
		isStart = 1
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO locations (id, adventure_id, name, description, is_start) VALUES (?, ?, ?, ?, ?)`,
		id, adventureID, name, description, isStart)
	if err != nil {
		return "", fmt.Errorf("failed to create location: %w", err)
	}
	return id, nil
}

// LinkLocations records a one-way exit between two locations.
func (s *Store) LinkLocations(ctx context.Context, from, direction, to string) error {
	if from == "" || direction == "" || to == "" {
		return fmt.Errorf("%w: from, direction, and to are required", ErrInvalidInput)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO exits (from_location, direction, to_location) VALUES (?, ?, ?)`,
		from, direction, to)
	if err != nil {
		return fmt.Errorf("failed to link locations: %w", err)
	}
	return nil
}

// Location loads the full read model for a location: description, exits,
// visible items, characters.
func (s *Store) Location(ctx context.Context, locationID string) (LocationView, error) {
	var view LocationView
	err := s.db.QueryRowContext(ctx,
		`SELECT id, adventure_id, name, description FROM locations WHERE id = ?`, locationID).
		Scan(&view.ID, &view.AdventureID, &view.Name, &view.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return LocationView{}, fmt.Errorf("location %q: %w", locationID, ErrNotFound)
	}
	if err != nil {
		return LocationView{}, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	exits, err := s.db.QueryContext(ctx,
		`SELECT direction, to_location FROM exits WHERE from_location = ? ORDER BY direction`, locationID)
	if err != nil {
		return LocationView{}, fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	defer exits.Close()
	for exits.Next() {
		var e ExitView
		if err := exits.Scan(&e.Direction, &e.LocationID); err != nil {
			return LocationView{}, fmt.Errorf("%w: %v", ErrDatabase, err)
		}
		view.Exits = append(view.Exits, e)
	}
	if err := exits.Err(); err != nil {
		return LocationView{}, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	view.Items, err = s.scanNames(ctx,
		`SELECT name FROM items WHERE location_id = ? AND carried = 0 ORDER BY name`, locationID)
	if err != nil {
		return LocationView{}, err
	}

	view.Characters, err = s.scanNames(ctx,
		`SELECT name FROM characters WHERE location_id = ? ORDER BY name`, locationID)
	if err != nil {
		return LocationView{}, err
	}

	return view, nil
}

// StartLocation returns the ID of an adventure's start location.
func (s *Store) StartLocation(ctx context.Context, adventureID string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM locations WHERE adventure_id = ? AND is_start = 1`, adventureID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoStart
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	return id, nil
}

// =============================================================================
// ITEM AND CHARACTER AUTHORING
// =============================================================================

// CreateItem places a new item at a location.
func (s *Store) CreateItem(ctx context.Context, adventureID, locationID, name string) (string, error) {
	if adventureID == "" || locationID == "" || name == "" {
		return "", fmt.Errorf("%w: adventure, location, and name are required", ErrInvalidInput)
	}

	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO items (id, adventure_id, location_id, name) VALUES (?, ?, ?, ?)`,
		id, adventureID, locationID, name)
	if err != nil {
		return "", fmt.Errorf("failed to create item: %w", err)
	}
	return id, nil
}

// CreateCharacter places a new character at a location.
func (s *Store) CreateCharacter(ctx context.Context, adventureID, locationID, name, greeting string) (string, error) {
	if adventureID == "" || locationID == "" || name == "" {
		return "", fmt.Errorf("%w: adventure, location, and name are required", ErrInvalidInput)
	}

	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO characters (id, adventure_id, location_id, name, greeting) VALUES (?, ?, ?, ?, ?)`,
		id, adventureID, locationID, name, greeting)
	if err != nil {
		return "", fmt.Errorf("failed to create character: %w", err)
	}
	return id, nil
}

// =============================================================================
// PLAYER ACTIONS
// =============================================================================

// TakeItem marks an item at the location as carried.
func (s *Store) TakeItem(ctx context.Context, locationID, name string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE items SET carried = 1, location_id = NULL
		 WHERE location_id = ? AND carried = 0 AND name = ? COLLATE NOCASE`,
		locationID, name)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%q: %w", name, ErrItemNotHere)
	}
	return nil
}

// DropItem puts a carried item back at the given location.
func (s *Store) DropItem(ctx context.Context, locationID, name string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE items SET carried = 0, location_id = ?
		 WHERE carried = 1 AND name = ? COLLATE NOCASE`,
		locationID, name)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return nil
}

// CharacterGreeting returns what a character at the location says when
// spoken to.
func (s *Store) CharacterGreeting(ctx context.Context, locationID, name string) (string, error) {
	var greeting string
	err := s.db.QueryRowContext(ctx,
		`SELECT greeting FROM characters WHERE location_id = ? AND name = ? COLLATE NOCASE`,
		locationID, name).Scan(&greeting)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("character %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	return greeting, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// scanNames runs a single-column string query.
func (s *Store) scanNames(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
