// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package entity

import "context"

// Kind names a class of completable identifiers.
type Kind string

const (
	KindAdventure Kind = "adventures"
	KindLocation  Kind = "locations"
	KindItem      Kind = "items"
	KindCharacter Kind = "characters"
)

// Kinds lists every entity kind.
var Kinds = []Kind{KindAdventure, KindLocation, KindItem, KindCharacter}

// Lister is the external lookup service that supplies the current
// identifier list for a kind. Backed by the local SQLite store or by REST
// calls to the adventure service.
type Lister interface {
	List(ctx context.Context, kind Kind) ([]string, error)
}

// ListerFunc adapts a function to the Lister interface.
type ListerFunc func(ctx context.Context, kind Kind) ([]string, error)

// List implements Lister.
func (f ListerFunc) List(ctx context.Context, kind Kind) ([]string, error) {
	return f(ctx, kind)
}
