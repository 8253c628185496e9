package docstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blackwell-systems/readctl/internal/docstore"
)

func TestMemoryCreateAndQuery(t *testing.T) {
	mem := docstore.NewMemory()
	ctx := context.Background()

	id, err := mem.Create(ctx, "books", map[string]any{"ownerId": "u1", "title": "Foo"})
	if err != nil {
		t.Fatal(err)
	}
	if len(id) != 20 {
		t.Errorf("id %q has length %d, want 20", id, len(id))
	}
	if _, err := mem.Create(ctx, "books", map[string]any{"ownerId": "u2", "title": "Bar"}); err != nil {
		t.Fatal(err)
	}

	docs, err := mem.Query(ctx, "books", "ownerId", "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d documents, want 1", len(docs))
	}
	if docs[0].ID != id || docs[0].Fields["title"] != "Foo" {
		t.Errorf("unexpected document %+v", docs[0])
	}
	if _, ok := docs[0].Fields["addedAt"].(time.Time); !ok {
		t.Error("addedAt not stamped")
	}
}

func TestMemoryQueryResultIsDetached(t *testing.T) {
	mem := docstore.NewMemory()
	ctx := context.Background()

	if _, err := mem.Create(ctx, "books", map[string]any{"ownerId": "u1", "title": "Foo"}); err != nil {
		t.Fatal(err)
	}
	docs, _ := mem.Query(ctx, "books", "ownerId", "u1")
	docs[0].Fields["title"] = "scribbled"

	again, _ := mem.Query(ctx, "books", "ownerId", "u1")
	if again[0].Fields["title"] != "Foo" {
		t.Error("query result aliases stored fields")
	}
}

func TestMemoryUpdate(t *testing.T) {
	mem := docstore.NewMemory()
	ctx := context.Background()

	id, err := mem.Create(ctx, "books", map[string]any{"ownerId": "u1", "status": "want-to-read"})
	if err != nil {
		t.Fatal(err)
	}
	created, _ := mem.Query(ctx, "books", "ownerId", "u1")
	addedAt := created[0].Fields["addedAt"].(time.Time)

	mem.SetClock(func() time.Time { return addedAt.Add(time.Hour) })
	if err := mem.Update(ctx, "books", id, map[string]any{"status": "read"}); err != nil {
		t.Fatal(err)
	}

	docs, _ := mem.Query(ctx, "books", "ownerId", "u1")
	f := docs[0].Fields
	if f["status"] != "read" {
		t.Errorf("status = %v", f["status"])
	}
	if f["addedAt"].(time.Time) != addedAt {
		t.Error("update touched addedAt")
	}
	if !f["updatedAt"].(time.Time).After(addedAt) {
		t.Error("update did not refresh updatedAt")
	}

	if err := mem.Update(ctx, "books", "missing", map[string]any{"x": 1}); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("update of missing id = %v, want ErrNotFound", err)
	}
}

func TestMemoryDeleteIdempotent(t *testing.T) {
	mem := docstore.NewMemory()
	ctx := context.Background()

	id, err := mem.Create(ctx, "books", map[string]any{"ownerId": "u1"})
	if err != nil {
		t.Fatal(err)
	}
	if err := mem.Delete(ctx, "books", id); err != nil {
		t.Fatal(err)
	}
	if err := mem.Delete(ctx, "books", id); err != nil {
		t.Errorf("second delete = %v, want nil", err)
	}
	if err := mem.Delete(ctx, "nosuch", "x"); err != nil {
		t.Errorf("delete in missing collection = %v, want nil", err)
	}
}

func recv(t *testing.T, sub *docstore.Subscription) []docstore.Document {
	t.Helper()
	select {
	case docs := <-sub.Snapshots():
		return docs
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot before deadline")
		return nil
	}
}

func TestMemorySubscribe(t *testing.T) {
	mem := docstore.NewMemory()
	ctx := context.Background()

	sub, err := mem.Subscribe("books", "ownerId", "u1")
	if err != nil {
		t.Fatal(err)
	}
	defer sub.Close()

	if docs := recv(t, sub); len(docs) != 0 {
		t.Fatalf("initial snapshot holds %d documents, want 0", len(docs))
	}

	id, err := mem.Create(ctx, "books", map[string]any{"ownerId": "u1", "title": "Foo"})
	if err != nil {
		t.Fatal(err)
	}
	if docs := recv(t, sub); len(docs) != 1 || docs[0].ID != id {
		t.Fatalf("snapshot after create = %+v", docs)
	}

	// Another user's write still notifies the collection; the result set
	// stays filtered.
	if _, err := mem.Create(ctx, "books", map[string]any{"ownerId": "u2"}); err != nil {
		t.Fatal(err)
	}
	if docs := recv(t, sub); len(docs) != 1 {
		t.Fatalf("snapshot leaked another owner's documents: %+v", docs)
	}

	if err := mem.Delete(ctx, "books", id); err != nil {
		t.Fatal(err)
	}
	if docs := recv(t, sub); len(docs) != 0 {
		t.Fatalf("snapshot after delete holds %d documents", len(docs))
	}
}

func TestMemorySubscriptionClose(t *testing.T) {
	mem := docstore.NewMemory()
	ctx := context.Background()

	sub, err := mem.Subscribe("books", "ownerId", "u1")
	if err != nil {
		t.Fatal(err)
	}
	recv(t, sub)

	sub.Close()
	sub.Close() // idempotent

	select {
	case <-sub.Done():
	default:
		t.Fatal("Done not closed after Close")
	}

	if _, err := mem.Create(ctx, "books", map[string]any{"ownerId": "u1"}); err != nil {
		t.Fatal(err)
	}
	select {
	case docs := <-sub.Snapshots():
		t.Fatalf("received snapshot after Close: %+v", docs)
	case <-time.After(50 * time.Millisecond):
	}
}
