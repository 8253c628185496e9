// Package docstore defines the remote document store boundary: a
// multi-tenant collection of schemaless documents queryable by a single
// equality filter, with per-query change subscriptions.
//
// The store assigns document ids and owns the addedAt/updatedAt
// timestamps. Callers never write those fields themselves.
package docstore

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
)

// ErrNotFound is returned when an update targets a document id that does
// not exist in the collection.
var ErrNotFound = errors.New("docstore: document not found")

// Document is one stored record: the store-assigned id plus its fields.
type Document struct {
	ID     string
	Fields map[string]any
}

// Store is the remote document store consumed by the sync core.
//
// Query and Subscribe take one equality filter (field == value) —
// deliberately never a compound one, so no driver needs secondary
// indexes. Create returns the assigned id and stamps addedAt/updatedAt;
// Update merges the given fields and refreshes updatedAt; Delete is
// idempotent for missing ids.
type Store interface {
	Query(ctx context.Context, collection, field string, value any) ([]Document, error)
	Subscribe(collection, field string, value any) (*Subscription, error)
	Create(ctx context.Context, collection string, fields map[string]any) (string, error)
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
}

// Subscription is a live change feed for one equality query. Each push on
// Snapshots carries the full current result set. Errors carries stream
// failures; a stream error does not end the subscription.
//
// Close is safe to call at any time and more than once. After Close no
// further pushes are delivered.
type Subscription struct {
	snapshots chan []Document
	errs      chan error
	done      chan struct{}
	stop      func()
	once      sync.Once
}

func newSubscription(stop func()) *Subscription {
	return &Subscription{
		snapshots: make(chan []Document, 16),
		errs:      make(chan error, 4),
		done:      make(chan struct{}),
		stop:      stop,
	}
}

// Snapshots returns the channel delivering full query result sets.
func (s *Subscription) Snapshots() <-chan []Document {
	return s.snapshots
}

// Errors returns the channel delivering stream errors.
func (s *Subscription) Errors() <-chan error {
	return s.errs
}

// Done is closed when the subscription has been released.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close releases the subscription. Idempotent.
func (s *Subscription) Close() {
	s.once.Do(func() {
		close(s.done)
		if s.stop != nil {
			s.stop()
		}
	})
}

// push delivers a snapshot unless the subscription is closed. A full
// buffer sheds the oldest pending snapshot: every push carries the whole
// result set, so a slow consumer only ever needs the latest.
func (s *Subscription) push(docs []Document) {
	for {
		select {
		case <-s.done:
			return
		default:
		}
		select {
		case s.snapshots <- docs:
			return
		default:
		}
		select {
		case <-s.snapshots:
		default:
		}
	}
}

// fail delivers a stream error unless the subscription is closed. A full
// error buffer sheds the new error; the consumer only ever shows the
// latest anyway.
func (s *Subscription) fail(err error) {
	select {
	case <-s.done:
		return
	default:
	}
	select {
	case s.errs <- err:
	default:
	}
}

// newID returns a fresh document id: 20 hex chars of random.
func newID() string {
	var b [10]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("docstore: rand failed: " + err.Error())
	}
	return hex.EncodeToString(b[:])
}

// cloneFields copies a field map one level deep, with fresh slices for
// list values so callers cannot alias stored state.
func cloneFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		switch t := v.(type) {
		case []string:
			out[k] = append([]string(nil), t...)
		case []any:
			out[k] = append([]any(nil), t...)
		default:
			out[k] = v
		}
	}
	return out
}
