// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package entity provides the entity lookup collaborator for autocomplete:
// the Lister interface over identifier lists, a short-TTL cache in front of
// it, and an HTTP client implementation against the adventure service.
package entity
