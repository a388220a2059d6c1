// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package entity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	config := DefaultClientConfig()
	config.BaseURL = serverURL
	config.FetchesPerSecond = 1000 // tests should not sit in the limiter
	return NewClient(config)
}

func TestClientListAdventuresByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/adventures", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"demo-adventure","name":"The Demo"},{"id":"haunted-keep"}]`))
	}))
	defer server.Close()

	ids, err := newTestClient(server.URL).List(context.Background(), KindAdventure)
	require.NoError(t, err)
	assert.Equal(t, []string{"demo-adventure", "haunted-keep"}, ids)
}

func TestClientListItemsByName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/items", r.URL.Path)
		w.Write([]byte(`[{"id":"itm-1","name":"rusty lamp"},{"id":"itm-2"}]`))
	}))
	defer server.Close()

	// Items complete by display name; an item missing one falls back to ID.
	ids, err := newTestClient(server.URL).List(context.Background(), KindItem)
	require.NoError(t, err)
	assert.Equal(t, []string{"rusty lamp", "itm-2"}, ids)
}

func TestClientListServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).List(context.Background(), KindLocation)
	require.Error(t, err)

	var clientErr *ClientError
	require.True(t, errors.As(err, &clientErr))
	assert.Equal(t, ErrTypeServer, clientErr.Type)
}

func TestClientListMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"a list"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).List(context.Background(), KindCharacter)
	require.Error(t, err)

	var clientErr *ClientError
	require.True(t, errors.As(err, &clientErr))
	assert.Equal(t, ErrTypeInvalidResponse, clientErr.Type)
}

func TestClientListConnectionRefused(t *testing.T) {
	// A port nothing listens on.
	_, err := newTestClient("http://127.0.0.1:1").List(context.Background(), KindAdventure)
	require.Error(t, err)

	var clientErr *ClientError
	require.True(t, errors.As(err, &clientErr))
	assert.Equal(t, ErrTypeConnection, clientErr.Type)
}

func TestClientImplementsLister(t *testing.T) {
	var _ Lister = (*Client)(nil)
}
