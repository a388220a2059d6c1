// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the questrun console:
// TOML file with built-in defaults and environment variable overrides.
package config
