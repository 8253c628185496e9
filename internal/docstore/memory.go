package docstore

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process Store. It backs the test suite and the
// zero-config "memory" backend, where the library only lives for the
// duration of one command.
//
// Every write notifies all subscriptions on the written collection by
// re-running their query and pushing the fresh result set, which is the
// same contract the Redis driver provides via pub/sub.
type Memory struct {
	mu          sync.Mutex
	collections map[string]map[string]map[string]any
	subs        map[*Subscription]memQuery
	now         func() time.Time
}

type memQuery struct {
	collection string
	field      string
	value      any
}

// NewMemory returns an empty in-process store.
func NewMemory() *Memory {
	return &Memory{
		collections: make(map[string]map[string]map[string]any),
		subs:        make(map[*Subscription]memQuery),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// SetClock overrides the timestamp source. Test hook.
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Query returns all documents in the collection whose field equals value.
func (m *Memory) Query(ctx context.Context, collection, field string, value any) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queryLocked(collection, field, value), nil
}

// Subscribe registers a live query. The current result set is pushed
// immediately, then again after every write to the collection.
func (m *Memory) Subscribe(collection, field string, value any) (*Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var sub *Subscription
	sub = newSubscription(func() {
		m.mu.Lock()
		delete(m.subs, sub)
		m.mu.Unlock()
	})
	m.subs[sub] = memQuery{collection: collection, field: field, value: value}
	sub.push(m.queryLocked(collection, field, value))
	return sub, nil
}

// Create stores a new document, assigning id, addedAt and updatedAt.
func (m *Memory) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	docs := m.collections[collection]
	if docs == nil {
		docs = make(map[string]map[string]any)
		m.collections[collection] = docs
	}

	id := newID()
	stored := cloneFields(fields)
	now := m.now()
	stored["addedAt"] = now
	stored["updatedAt"] = now
	docs[id] = stored

	m.notifyLocked(collection)
	return id, nil
}

// Update merges fields into an existing document and refreshes updatedAt.
func (m *Memory) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range cloneFields(fields) {
		stored[k] = v
	}
	stored["updatedAt"] = m.now()

	m.notifyLocked(collection)
	return nil
}

// Delete removes a document. Deleting a missing id is a no-op.
func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	docs, ok := m.collections[collection]
	if !ok {
		return nil
	}
	if _, exists := docs[id]; !exists {
		return nil
	}
	delete(docs, id)

	m.notifyLocked(collection)
	return nil
}

func (m *Memory) queryLocked(collection, field string, value any) []Document {
	var out []Document
	for id, fields := range m.collections[collection] {
		if fields[field] != value {
			continue
		}
		out = append(out, Document{ID: id, Fields: cloneFields(fields)})
	}
	return out
}

func (m *Memory) notifyLocked(collection string) {
	for sub, q := range m.subs {
		if q.collection != collection {
			continue
		}
		sub.push(m.queryLocked(q.collection, q.field, q.value))
	}
}
