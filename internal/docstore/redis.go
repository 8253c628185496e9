package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by a Redis server. Each collection is one hash
// (key "readctl:<collection>", field = document id, value = JSON fields).
// Equality queries scan the whole hash and filter client-side — the same
// trade the sync core makes everywhere: a larger read instead of a
// secondary index.
//
// Change feeds ride pub/sub: every write publishes the document id on
// "readctl:<collection>:changes", and each subscriber re-runs its query
// and pushes the fresh snapshot.
type Redis struct {
	rdb    *redis.Client
	prefix string
}

// NewRedis wraps an existing client. The caller owns the client's
// lifecycle.
func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb, prefix: "readctl:"}
}

func (r *Redis) key(collection string) string {
	return r.prefix + collection
}

func (r *Redis) channel(collection string) string {
	return r.key(collection) + ":changes"
}

// Query returns all documents in the collection whose field equals value.
func (r *Redis) Query(ctx context.Context, collection, field string, value any) ([]Document, error) {
	raw, err := r.rdb.HGetAll(ctx, r.key(collection)).Result()
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", collection, err)
	}

	var out []Document
	for id, blob := range raw {
		var fields map[string]any
		if err := json.Unmarshal([]byte(blob), &fields); err != nil {
			return nil, fmt.Errorf("decoding document %s/%s: %w", collection, id, err)
		}
		if fields[field] != value {
			continue
		}
		out = append(out, Document{ID: id, Fields: fields})
	}
	return out, nil
}

// Subscribe opens a pub/sub listener on the collection's change channel
// and re-queries on every message. The current result set is pushed
// before any change arrives.
func (r *Redis) Subscribe(collection, field string, value any) (*Subscription, error) {
	ps := r.rdb.Subscribe(context.Background(), r.channel(collection))
	// Force the SUBSCRIBE handshake so a dead server fails here, not
	// silently inside the feed goroutine.
	if _, err := ps.Receive(context.Background()); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribing to %s: %w", collection, err)
	}

	sub := newSubscription(func() { _ = ps.Close() })

	go func() {
		refresh := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			docs, err := r.Query(ctx, collection, field, value)
			cancel()
			if err != nil {
				sub.fail(err)
				return
			}
			sub.push(docs)
		}

		refresh()
		ch := ps.Channel()
		for {
			select {
			case <-sub.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				refresh()
			}
		}
	}()

	return sub, nil
}

// Create stores a new document, assigning id, addedAt and updatedAt.
func (r *Redis) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	id := newID()
	stored := cloneFields(fields)
	now := time.Now().UTC().Format(time.RFC3339Nano)
	stored["addedAt"] = now
	stored["updatedAt"] = now

	blob, err := json.Marshal(stored)
	if err != nil {
		return "", fmt.Errorf("encoding document: %w", err)
	}
	if err := r.rdb.HSet(ctx, r.key(collection), id, blob).Err(); err != nil {
		return "", fmt.Errorf("creating document in %s: %w", collection, err)
	}
	r.publish(ctx, collection, id)
	return id, nil
}

// Update merges fields into an existing document and refreshes updatedAt.
func (r *Redis) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	blob, err := r.rdb.HGet(ctx, r.key(collection), id).Result()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("reading document %s/%s: %w", collection, id, err)
	}

	var stored map[string]any
	if err := json.Unmarshal([]byte(blob), &stored); err != nil {
		return fmt.Errorf("decoding document %s/%s: %w", collection, id, err)
	}
	for k, v := range cloneFields(fields) {
		stored[k] = v
	}
	stored["updatedAt"] = time.Now().UTC().Format(time.RFC3339Nano)

	out, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	if err := r.rdb.HSet(ctx, r.key(collection), id, out).Err(); err != nil {
		return fmt.Errorf("updating document %s/%s: %w", collection, id, err)
	}
	r.publish(ctx, collection, id)
	return nil
}

// Delete removes a document. Deleting a missing id is a no-op.
func (r *Redis) Delete(ctx context.Context, collection, id string) error {
	n, err := r.rdb.HDel(ctx, r.key(collection), id).Result()
	if err != nil {
		return fmt.Errorf("deleting document %s/%s: %w", collection, id, err)
	}
	if n > 0 {
		r.publish(ctx, collection, id)
	}
	return nil
}

// publish is best-effort: subscribers re-query on the next change anyway,
// and a failed publish must not fail the write that already landed.
func (r *Redis) publish(_ context.Context, collection, id string) {
	short, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	_ = r.rdb.Publish(short, r.channel(collection), id).Err()
}
