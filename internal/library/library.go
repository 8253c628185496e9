package library

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/blackwell-systems/readctl/internal/docstore"
	"github.com/blackwell-systems/readctl/internal/identity"
	"github.com/blackwell-systems/readctl/internal/notify"
)

// DefaultCollection is the document collection holding saved books.
const DefaultCollection = "books"

// Library is the synchronization core. It holds the only writable copy
// of the in-memory book list; consumers read through the accessor
// methods and drive all changes through the operations.
//
// While a live subscription is active the store is the source of truth:
// every mutation waits for the next push to reconcile local state. With
// no subscription, successful mutations are mirrored into the cache
// directly.
type Library struct {
	store      docstore.Store
	ids        identity.Provider
	note       notify.Notifier
	collection string

	// saveMu serializes the duplicate-check-then-create sequence so two
	// concurrent saves of one catalog id cannot both pass the existence
	// check.
	saveMu sync.Mutex

	mu         sync.Mutex
	books      []Book
	loading    bool
	lastErr    string
	sub        *docstore.Subscription
	cancelAuth func()
	listeners  map[int]func()
	nextKey    int

	// gen counts teardowns and re-subscribes. An operation that was
	// suspended on a remote call compares the generation it started
	// under before installing its result, so a Stop that lands during
	// the suspension wins: the stale result is discarded instead of
	// resurrecting a torn-down state.
	gen int
}

// New builds a Library against the given store and identity provider.
// A nil notifier is replaced with a no-op one; an empty collection name
// falls back to DefaultCollection.
func New(store docstore.Store, ids identity.Provider, note notify.Notifier, collection string) *Library {
	if note == nil {
		note = notify.Nop{}
	}
	if collection == "" {
		collection = DefaultCollection
	}
	return &Library{
		store:      store,
		ids:        ids,
		note:       note,
		collection: collection,
		listeners:  make(map[int]func()),
	}
}

// Start wires the library to identity transitions and, if a user is
// already signed in, performs the initial fetch and opens the live
// subscription. Call Close when done.
func (l *Library) Start(ctx context.Context) error {
	l.mu.Lock()
	if l.cancelAuth == nil {
		l.cancelAuth = l.ids.OnChange(func(_ string, ok bool) {
			if ok {
				_ = l.Subscribe()
				return
			}
			l.Stop()
			l.clear()
		})
	}
	l.mu.Unlock()

	if _, ok := l.ids.CurrentUserID(); !ok {
		return nil
	}
	_ = l.Fetch(ctx)
	return l.Subscribe()
}

// Close detaches from identity changes and releases any subscription.
func (l *Library) Close() {
	l.mu.Lock()
	cancel := l.cancelAuth
	l.cancelAuth = nil
	l.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	l.Stop()
}

// Subscribe opens the live subscription for the current user, tearing
// down any previous one first so at most one listener is ever active.
func (l *Library) Subscribe() error {
	uid, ok := l.ids.CurrentUserID()
	if !ok {
		return ErrNotAuthenticated
	}

	l.mu.Lock()
	if l.sub != nil {
		l.sub.Close()
		l.sub = nil
	}
	l.gen++
	gen := l.gen
	l.loading = true
	l.lastErr = ""
	l.mu.Unlock()
	l.changed()

	sub, err := l.store.Subscribe(l.collection, "ownerId", uid)
	if err != nil {
		if l.discardIfStale(gen) {
			return nil
		}
		l.recordError("setting up library subscription", err)
		return fmt.Errorf("setting up library subscription: %w", err)
	}

	// A Stop (or newer Subscribe) that landed while the handshake was in
	// flight has already won; the fresh handle must not outlive it.
	l.mu.Lock()
	if l.gen != gen {
		l.loading = false
		l.mu.Unlock()
		sub.Close()
		l.changed()
		return nil
	}
	l.sub = sub
	l.mu.Unlock()

	go l.consume(sub)
	return nil
}

// Stop releases the live subscription. Safe to call at any time,
// including while a Subscribe or Fetch is suspended on the store: the
// generation bump makes the in-flight call discard its result.
func (l *Library) Stop() {
	l.mu.Lock()
	sub := l.sub
	l.sub = nil
	l.gen++
	l.mu.Unlock()
	if sub != nil {
		sub.Close()
	}
}

// consume is the only writer of snapshot state. It exits when the
// subscription it was started for is released.
func (l *Library) consume(sub *docstore.Subscription) {
	for {
		select {
		case <-sub.Done():
			return
		case docs := <-sub.Snapshots():
			l.applySnapshot(sub, docs)
		case err := <-sub.Errors():
			l.applyStreamError(sub, err)
		}
	}
}

// applySnapshot replaces the whole in-memory collection. Pushes from a
// subscription that is no longer current are discarded: they may arrive
// after a sign-out or a re-subscribe and must not resurrect stale data.
func (l *Library) applySnapshot(sub *docstore.Subscription, docs []docstore.Document) {
	books := make([]Book, 0, len(docs))
	for _, doc := range docs {
		books = append(books, bookFromDoc(doc))
	}
	sortBooks(books)

	l.mu.Lock()
	if l.sub != sub {
		l.mu.Unlock()
		return
	}
	l.books = books
	l.loading = false
	l.lastErr = ""
	l.mu.Unlock()
	l.changed()
}

// applyStreamError records the error for observers but keeps the
// subscription open — the stream may recover, or the caller restarts it.
func (l *Library) applyStreamError(sub *docstore.Subscription, err error) {
	l.mu.Lock()
	if l.sub != sub {
		l.mu.Unlock()
		return
	}
	l.lastErr = err.Error()
	l.loading = false
	l.mu.Unlock()
	l.note.Errorf("Database error: %v", err)
	l.changed()
}

// clear empties the collection. Runs on sign-out: a logged-out state
// must never retain another user's data.
func (l *Library) clear() {
	l.mu.Lock()
	l.books = nil
	l.loading = false
	l.lastErr = ""
	l.mu.Unlock()
	l.changed()
}

// OnChange registers a listener invoked after every observable state
// change. The returned func cancels the registration.
func (l *Library) OnChange(fn func()) (cancel func()) {
	l.mu.Lock()
	key := l.nextKey
	l.nextKey++
	l.listeners[key] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.listeners, key)
		l.mu.Unlock()
	}
}

func (l *Library) changed() {
	l.mu.Lock()
	fns := make([]func(), 0, len(l.listeners))
	for _, fn := range l.listeners {
		fns = append(fns, fn)
	}
	l.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// subscribed reports whether a live subscription is active.
func (l *Library) subscribed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sub != nil
}

// discardIfStale reports whether a teardown or re-subscribe has happened
// since gen was captured, clearing the loading flag if so. Callers that
// install state must still recheck the generation under mu themselves.
func (l *Library) discardIfStale(gen int) bool {
	l.mu.Lock()
	if l.gen == gen {
		l.mu.Unlock()
		return false
	}
	l.loading = false
	l.mu.Unlock()
	l.changed()
	return true
}

func (l *Library) setLoading(v bool) {
	l.mu.Lock()
	l.loading = v
	if v {
		l.lastErr = ""
	}
	l.mu.Unlock()
	l.changed()
}

// recordError stores the message for observers and raises a notice.
func (l *Library) recordError(op string, err error) {
	l.mu.Lock()
	l.lastErr = err.Error()
	l.loading = false
	l.mu.Unlock()
	l.note.Errorf("Database error (%s): %v", op, err)
	l.changed()
}

// sortBooks orders newest-first by addedAt; records without a timestamp
// sort as oldest.
func sortBooks(books []Book) {
	sort.SliceStable(books, func(i, j int) bool {
		return books[i].AddedAt.After(books[j].AddedAt)
	})
}
