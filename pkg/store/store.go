// Package store persists the entry list between CLI invocations.
//
// Two backends implement [Store]:
//
//   - [FileStore]: a JSON entry document on disk (the default)
//   - [MongoStore]: one MongoDB document per entry, ordered by position
//
// Both save the list wholesale; entry order is preserved.
package store

import (
	"context"

	"github.com/matzehuels/clevacompass/pkg/compass"
)

// Store loads and saves an ordered entry list.
type Store interface {
	Load(ctx context.Context) ([]compass.Entry, error)
	Save(ctx context.Context, entries []compass.Entry) error
	Close() error
}
