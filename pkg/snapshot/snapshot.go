// Package snapshot persists named tree documents for later reload.
//
// A snapshot is a [render.Document]: the frequency table, code table, and
// positioned tree of one build, stored under its UUID. Two backends
// implement the [Store] interface:
//   - file: one JSON file per snapshot under the user data directory,
//     the default for CLI use
//   - mongo: a MongoDB collection, for shared deployments behind the
//     serve command
//
// # Usage
//
//	store, err := snapshot.NewFileStore("")
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	if err := store.Put(ctx, doc); err != nil {
//	    return err
//	}
//
//	doc, err := store.Get(ctx, id)  // nil, nil when missing
package snapshot

import (
	"context"
	"time"

	"github.com/chidanandgowda/huffman-coding/pkg/render"
)

// Info is the listing summary of a stored snapshot.
type Info struct {
	ID         string    `json:"id" bson:"id"`
	Name       string    `json:"name" bson:"name"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	Source     string    `json:"source,omitempty" bson:"source,omitempty"`
	Symbols    int       `json:"symbols" bson:"symbols"`
	TotalBytes int64     `json:"total_bytes" bson:"total_bytes"`
}

// infoOf derives the listing summary from a full document.
func infoOf(d *render.Document) Info {
	return Info{
		ID:         d.ID,
		Name:       d.Name,
		CreatedAt:  d.CreatedAt,
		Source:     d.Source,
		Symbols:    len(d.Frequencies),
		TotalBytes: d.TotalBytes,
	}
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// Get retrieves a snapshot by ID.
	// Returns nil, nil if the snapshot doesn't exist.
	Get(ctx context.Context, id string) (*render.Document, error)

	// Put stores a snapshot, replacing any existing one with the same ID.
	Put(ctx context.Context, doc *render.Document) error

	// Delete removes a snapshot. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns summaries of all stored snapshots, newest first.
	List(ctx context.Context) ([]Info, error)

	// Close releases backend resources.
	Close() error
}
