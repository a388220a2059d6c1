// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the interactive questrun console: the line-input
// loop with history and Tab completion, wired to the command engine.
package cli
