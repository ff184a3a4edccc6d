package store

import "context"

// Direction controls Query result ordering.
type Direction int

// Query orderings.
const (
	Ascending Direction = iota
	Descending
)

// DocumentStore is the document database consumed by the services.
//
// Semantics:
//   - Get returns ErrNotFound for a missing document.
//   - Set is an upsert that fully replaces the document.
//   - Update merges fields into an existing document and returns
//     ErrNotFound if the document does not exist.
//   - Delete is idempotent; deleting a missing document is not an error.
//   - Query returns every document in a collection, ordered by the named
//     field when orderBy is non-empty.
type DocumentStore interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	Set(ctx context.Context, collection, id string, doc Document) error
	Update(ctx context.Context, collection, id string, fields Document) error
	Delete(ctx context.Context, collection, id string) error
	Query(ctx context.Context, collection, orderBy string, dir Direction) ([]Document, error)
}
