// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package entity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the entity lookup client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeInvalidResponse
	ErrTypeServer
)

// ErrServiceUnavailable is returned when the adventure service cannot be
// reached.
var ErrServiceUnavailable = &ClientError{
	Type:    ErrTypeConnection,
	Message: "adventure service is not reachable",
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration for the entity lookup client.
type ClientConfig struct {
	// BaseURL of the adventure service (default: http://127.0.0.1:8311)
	BaseURL string

	// Timeout for list requests (default: 5s)
	Timeout time.Duration

	// FetchesPerSecond caps refresh traffic; cache misses on every
	// keystroke must not turn into a request storm (default: 4)
	FetchesPerSecond float64
}

// DefaultClientConfig returns the default client configuration.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:          "http://127.0.0.1:8311",
		Timeout:          5 * time.Second,
		FetchesPerSecond: 4,
	}
}

// =============================================================================
// HTTP CLIENT
// =============================================================================

// Client implements Lister over the adventure service's REST API.
type Client struct {
	config  *ClientConfig
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates an entity lookup client. A nil config uses defaults.
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultClientConfig()
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	if config.FetchesPerSecond <= 0 {
		config.FetchesPerSecond = 4
	}
	return &Client{
		config:  config,
		http:    &http.Client{Timeout: config.Timeout},
		limiter: rate.NewLimiter(rate.Limit(config.FetchesPerSecond), 1),
	}
}

// listResponse is the wire shape of GET /api/<kind>.
type listResponse []struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// List fetches the current identifiers of a kind from the service. Items
// and characters complete by display name, everything else by ID.
func (c *Client) List(ctx context.Context, kind Kind) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &ClientError{Type: ErrTypeTimeout, Message: "rate limit wait cancelled", Cause: err}
	}

	url := c.config.BaseURL + "/api/" + string(kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeUnknown, Message: "building request failed", Cause: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &ClientError{Type: ErrTypeTimeout, Message: "list request timed out", Cause: err}
		}
		return nil, &ClientError{Type: ErrTypeConnection, Message: ErrServiceUnavailable.Message, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ClientError{
			Type:    ErrTypeServer,
			Message: fmt.Sprintf("listing %s failed: %s", kind, resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "reading response failed", Cause: err}
	}

	var parsed listResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "decoding response failed", Cause: err}
	}

	ids := make([]string, 0, len(parsed))
	for _, item := range parsed {
		switch {
		case (kind == KindItem || kind == KindCharacter) && item.Name != "":
			ids = append(ids, item.Name)
		case item.ID != "":
			ids = append(ids, item.ID)
		}
	}
	return ids, nil
}
