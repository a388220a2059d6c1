// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/questrun/internal/entity"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// seedWorld builds a two-room adventure with an item and a character.
func seedWorld(t *testing.T, s *Store) (adventureID, hallID, cellarID string) {
	t.Helper()
	ctx := context.Background()

	adventureID, err := s.CreateAdventure(ctx, "The Demo")
	require.NoError(t, err)

	hallID, err = s.CreateLocation(ctx, adventureID, "Great Hall", "A vast hall.")
	require.NoError(t, err)
	cellarID, err = s.CreateLocation(ctx, adventureID, "Cellar", "Dark and damp.")
	require.NoError(t, err)

	require.NoError(t, s.LinkLocations(ctx, hallID, "down", cellarID))

	_, err = s.CreateItem(ctx, adventureID, hallID, "rusty lamp")
	require.NoError(t, err)
	_, err = s.CreateCharacter(ctx, adventureID, cellarID, "Old Keeper", "Mind the stairs.")
	require.NoError(t, err)

	return adventureID, hallID, cellarID
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateAndListAdventures(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateAdventure(ctx, "The Demo")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	title, err := s.AdventureTitle(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "The Demo", title)

	ids, err := s.List(ctx, entity.KindAdventure)
	require.NoError(t, err)
	assert.Equal(t, []string{id}, ids)
}

func TestAdventureTitleNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AdventureTitle(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFirstLocationBecomesStart(t *testing.T) {
	s := newTestStore(t)
	advID, hallID, _ := seedWorld(t, s)

	startID, err := s.StartLocation(context.Background(), advID)
	require.NoError(t, err)
	assert.Equal(t, hallID, startID)
}

func TestStartLocationMissing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	advID, err := s.CreateAdventure(ctx, "Empty World")
	require.NoError(t, err)

	_, err = s.StartLocation(ctx, advID)
	assert.ErrorIs(t, err, ErrNoStart)
}

func TestLocationView(t *testing.T) {
	s := newTestStore(t)
	_, hallID, cellarID := seedWorld(t, s)
	ctx := context.Background()

	view, err := s.Location(ctx, hallID)
	require.NoError(t, err)
	assert.Equal(t, "Great Hall", view.Name)
	assert.Equal(t, []string{"rusty lamp"}, view.Items)
	require.Len(t, view.Exits, 1)
	assert.Equal(t, "down", view.Exits[0].Direction)
	assert.Equal(t, cellarID, view.Exits[0].LocationID)

	view, err = s.Location(ctx, cellarID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Old Keeper"}, view.Characters)
	assert.Empty(t, view.Items)
}

func TestTakeAndDropItem(t *testing.T) {
	s := newTestStore(t)
	_, hallID, cellarID := seedWorld(t, s)
	ctx := context.Background()

	// Case-insensitive take removes the item from the room.
	require.NoError(t, s.TakeItem(ctx, hallID, "Rusty Lamp"))
	view, err := s.Location(ctx, hallID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	// Carried items do not autocomplete from the world.
	ids, err := s.List(ctx, entity.KindItem)
	require.NoError(t, err)
	assert.Empty(t, ids)

	// Taking it again fails; it is no longer here.
	assert.ErrorIs(t, s.TakeItem(ctx, hallID, "rusty lamp"), ErrItemNotHere)

	// Dropping in another room moves it there.
	require.NoError(t, s.DropItem(ctx, cellarID, "rusty lamp"))
	view, err = s.Location(ctx, cellarID)
	require.NoError(t, err)
	assert.Equal(t, []string{"rusty lamp"}, view.Items)
}

func TestDropNotCarried(t *testing.T) {
	s := newTestStore(t)
	_, hallID, _ := seedWorld(t, s)

	err := s.DropItem(context.Background(), hallID, "rusty lamp")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCharacterGreeting(t *testing.T) {
	s := newTestStore(t)
	_, hallID, cellarID := seedWorld(t, s)
	ctx := context.Background()

	greeting, err := s.CharacterGreeting(ctx, cellarID, "old keeper")
	require.NoError(t, err)
	assert.Equal(t, "Mind the stairs.", greeting)

	// Right name, wrong room.
	_, err = s.CharacterGreeting(ctx, hallID, "old keeper")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAdventureCascades(t *testing.T) {
	s := newTestStore(t)
	advID, _, _ := seedWorld(t, s)
	ctx := context.Background()

	require.NoError(t, s.DeleteAdventure(ctx, advID))

	for _, kind := range entity.Kinds {
		ids, err := s.List(ctx, kind)
		require.NoError(t, err)
		assert.Empty(t, ids, "cascade left %s behind", kind)
	}

	assert.ErrorIs(t, s.DeleteAdventure(ctx, advID), ErrNotFound)
}

func TestListUnknownKind(t *testing.T) {
	s := newTestStore(t)

	_, err := s.List(context.Background(), entity.Kind("dragons"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLinkLocationsValidation(t *testing.T) {
	s := newTestStore(t)

	err := s.LinkLocations(context.Background(), "", "north", "somewhere")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
