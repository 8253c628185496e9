// Package identity supplies the current user id and change
// notifications. The sync core consumes only "a user id, or none" — how
// that id came to be (config file, flag, sign-in flow) is not its
// business.
package identity

import "sync"

// Provider is the identity boundary consumed by the sync core.
type Provider interface {
	// CurrentUserID returns the signed-in user's id, or ok=false when
	// nobody is signed in.
	CurrentUserID() (id string, ok bool)

	// OnChange registers a listener invoked on every sign-in and
	// sign-out. The returned func cancels the registration.
	OnChange(fn func(id string, ok bool)) (cancel func())
}

// Session is the concrete Provider: it holds one user id and notifies
// listeners when it changes. Safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	id        string
	signedIn  bool
	listeners map[int]func(id string, ok bool)
	nextKey   int
}

// NewSession returns a session signed in as id, or signed out if id is
// empty.
func NewSession(id string) *Session {
	return &Session{
		id:        id,
		signedIn:  id != "",
		listeners: make(map[int]func(string, bool)),
	}
}

// CurrentUserID implements Provider.
func (s *Session) CurrentUserID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, s.signedIn
}

// OnChange implements Provider.
func (s *Session) OnChange(fn func(id string, ok bool)) func() {
	s.mu.Lock()
	key := s.nextKey
	s.nextKey++
	s.listeners[key] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, key)
		s.mu.Unlock()
	}
}

// SignIn sets the current user and notifies listeners. Signing in as the
// already-current user still notifies; deduplicating auth events is the
// consumer's job, not the session's.
func (s *Session) SignIn(id string) {
	s.mu.Lock()
	s.id = id
	s.signedIn = true
	fns := s.snapshotListeners()
	s.mu.Unlock()

	for _, fn := range fns {
		fn(id, true)
	}
}

// SignOut clears the current user and notifies listeners.
func (s *Session) SignOut() {
	s.mu.Lock()
	s.id = ""
	s.signedIn = false
	fns := s.snapshotListeners()
	s.mu.Unlock()

	for _, fn := range fns {
		fn("", false)
	}
}

// snapshotListeners must be called with mu held. Listeners run outside
// the lock so they may call back into the session.
func (s *Session) snapshotListeners() []func(string, bool) {
	fns := make([]func(string, bool), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	return fns
}
