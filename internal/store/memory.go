package store

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-memory DocumentStore for tests. It supports
// per-collection failure injection and a controllable clock.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
	failures    map[string]error
	now         func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		collections: make(map[string]map[string]Document),
		failures:    make(map[string]error),
		now:         time.Now,
	}
}

// SetNow overrides the clock used to resolve ServerTimestamp sentinels.
func (m *Memory) SetNow(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// FailCollection makes every operation on the collection return err.
// A nil err clears the injected failure.
func (m *Memory) FailCollection(collection string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, collection)
		return
	}
	m.failures[collection] = err
}

// Len reports the number of documents in a collection.
func (m *Memory) Len(collection string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.collections[collection])
}

func (m *Memory) check(ctx context.Context, collection string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.failures[collection]; err != nil {
		return err
	}
	return nil
}

// Get retrieves a document by ID.
func (m *Memory) Get(ctx context.Context, collection, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.check(ctx, collection); err != nil {
		return nil, err
	}
	doc, ok := m.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return doc.Clone(), nil
}

// Set fully replaces the document, creating it if needed.
func (m *Memory) Set(ctx context.Context, collection, id string, doc Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check(ctx, collection); err != nil {
		return err
	}
	if m.collections[collection] == nil {
		m.collections[collection] = make(map[string]Document)
	}
	m.collections[collection][id] = resolveTimestamps(doc, m.now)
	return nil
}

// Update merges fields into an existing document.
func (m *Memory) Update(ctx context.Context, collection, id string, fields Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check(ctx, collection); err != nil {
		return err
	}
	doc, ok := m.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	merged := doc.Clone()
	for k, v := range resolveTimestamps(fields, m.now) {
		merged[k] = v
	}
	m.collections[collection][id] = merged
	return nil
}

// Delete removes a document. Deleting a missing document is a no-op.
func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check(ctx, collection); err != nil {
		return err
	}
	delete(m.collections[collection], id)
	return nil
}

// Query returns all documents in a collection, ordered by orderBy when set.
func (m *Memory) Query(ctx context.Context, collection, orderBy string, dir Direction) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.check(ctx, collection); err != nil {
		return nil, err
	}
	docs := make([]Document, 0, len(m.collections[collection]))
	for _, doc := range m.collections[collection] {
		docs = append(docs, doc.Clone())
	}
	sortDocuments(docs, orderBy, dir)
	return docs, nil
}
