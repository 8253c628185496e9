package library

import (
	"context"
	"fmt"
	"time"

	"github.com/blackwell-systems/readctl/internal/catalog"
)

// Fetch populates the cache with a one-shot query, used before the
// subscription is up or for an explicit refresh. With no signed-in user
// it is a no-op. On failure the cache is emptied: stale or partial data
// is worse than none.
func (l *Library) Fetch(ctx context.Context) error {
	uid, ok := l.ids.CurrentUserID()
	if !ok {
		return nil
	}

	l.mu.Lock()
	gen := l.gen
	l.mu.Unlock()

	l.setLoading(true)
	docs, err := l.store.Query(ctx, l.collection, "ownerId", uid)
	if err != nil {
		if l.discardIfStale(gen) {
			return nil
		}
		l.recordError("fetching books from library", err)
		l.mu.Lock()
		l.books = nil
		l.mu.Unlock()
		l.changed()
		return fmt.Errorf("fetching books from library: %w", err)
	}

	books := make([]Book, 0, len(docs))
	for _, doc := range docs {
		books = append(books, bookFromDoc(doc))
	}
	sortBooks(books)

	// A sign-out or teardown during the query wins: the result set must
	// not repopulate a cleared library.
	cur, stillOk := l.ids.CurrentUserID()
	l.mu.Lock()
	if l.gen != gen || !stillOk || cur != uid {
		l.loading = false
		l.mu.Unlock()
		l.changed()
		return nil
	}
	l.books = books
	l.loading = false
	l.mu.Unlock()
	l.changed()
	return nil
}

// Save adds a catalog item to the current user's library. Saving an item
// that is already saved is a success and writes nothing.
//
// The duplicate check fetches every record the user owns and scans for
// the catalog id client-side — a single equality query on ownerId,
// deliberately not a compound one, so the store never needs a composite
// index. The check-then-create sequence runs under saveMu so concurrent
// saves of the same item create at most one record.
func (l *Library) Save(ctx context.Context, item catalog.Item) error {
	uid, ok := l.ids.CurrentUserID()
	if !ok {
		return ErrNotAuthenticated
	}

	l.saveMu.Lock()
	defer l.saveMu.Unlock()

	l.setLoading(true)
	defer l.setLoading(false)

	docs, err := l.store.Query(ctx, l.collection, "ownerId", uid)
	if err != nil {
		l.recordError("saving book to library", err)
		return fmt.Errorf("saving book to library: %w", err)
	}
	for _, doc := range docs {
		if id, _ := doc.Fields["catalogId"].(string); id == item.ID {
			l.note.Info("This book is already in your library")
			return nil
		}
	}

	if _, err := l.store.Create(ctx, l.collection, fieldsFromItem(uid, item)); err != nil {
		l.recordError("saving book to library", err)
		return fmt.Errorf("saving book to library: %w", err)
	}
	l.note.Success("Book added to your library")

	// Without a subscription nothing else will reflect the new record
	// locally; fetch errors are already recorded and do not undo the
	// successful save.
	if !l.subscribed() {
		_ = l.Fetch(ctx)
	}
	return nil
}

// UpdateNotes replaces a saved book's free-text notes.
func (l *Library) UpdateNotes(ctx context.Context, id, notes string) error {
	err := l.mutate(ctx, id, "updating book notes",
		map[string]any{"notes": notes},
		func(b *Book) { b.Notes = notes })
	if err != nil {
		return err
	}
	l.note.Success("Notes updated")
	return nil
}

// UpdateStatus moves a saved book to another reading state. The status
// is validated before any remote call.
func (l *Library) UpdateStatus(ctx context.Context, id string, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	err := l.mutate(ctx, id, "updating book status",
		map[string]any{"status": string(status)},
		func(b *Book) { b.Status = status })
	if err != nil {
		return err
	}
	l.note.Success("Book status updated to %q", status)
	return nil
}

// UpdateRating sets a saved book's star rating. The rating is validated
// before any remote call.
func (l *Library) UpdateRating(ctx context.Context, id string, rating int) error {
	if err := ValidateRating(rating); err != nil {
		return err
	}
	err := l.mutate(ctx, id, "updating book rating",
		map[string]any{"rating": rating},
		func(b *Book) { b.Rating = rating })
	if err != nil {
		return err
	}
	l.note.Success("Book rating updated to %d stars", rating)
	return nil
}

// Remove deletes a saved book.
func (l *Library) Remove(ctx context.Context, id string) error {
	if _, ok := l.ids.CurrentUserID(); !ok {
		return ErrNotAuthenticated
	}

	l.setLoading(true)
	defer l.setLoading(false)

	if err := l.store.Delete(ctx, l.collection, id); err != nil {
		l.recordError("removing book from library", err)
		return fmt.Errorf("removing book from library: %w", err)
	}

	if !l.subscribed() {
		l.mu.Lock()
		kept := l.books[:0]
		for _, b := range l.books {
			if b.ID != id {
				kept = append(kept, b)
			}
		}
		l.books = kept
		l.mu.Unlock()
		l.changed()
	}

	l.note.Success("Book removed from your library")
	return nil
}

// mutate writes one field remotely and, with no live subscription,
// mirrors the change into the cached record. The mirrored updatedAt is
// local clock time — not guaranteed identical to the server's, accepted
// for this fallback path only.
func (l *Library) mutate(ctx context.Context, id, op string, fields map[string]any, mirror func(*Book)) error {
	if _, ok := l.ids.CurrentUserID(); !ok {
		return ErrNotAuthenticated
	}

	l.setLoading(true)
	defer l.setLoading(false)

	if err := l.store.Update(ctx, l.collection, id, fields); err != nil {
		l.recordError(op, err)
		return fmt.Errorf("%s: %w", op, err)
	}

	if !l.subscribed() {
		l.mu.Lock()
		for i := range l.books {
			if l.books[i].ID == id {
				mirror(&l.books[i])
				l.books[i].UpdatedAt = time.Now()
				break
			}
		}
		l.mu.Unlock()
		l.changed()
	}
	return nil
}
