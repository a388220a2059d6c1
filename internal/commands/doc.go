// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands implements the command interpretation engine for the
// questrun console: tokenizing raw input lines, resolving multi-word command
// names and legacy aliases with longest-prefix matching, ranking "did you
// mean" suggestions for typos, mode-gated dispatch, and tab completion over
// both command names and live entity identifiers.
package commands
