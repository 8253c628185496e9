package library

// Books returns a copy of the current collection, sorted newest-first.
func (l *Library) Books() []Book {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Book(nil), l.books...)
}

// Loading reports whether an operation or initial snapshot is in flight.
func (l *Library) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// LastError returns the retained message from the most recent failure,
// or "" after a successful operation cleared it.
func (l *Library) LastError() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// IsInLibrary reports whether any cached record carries the catalog id.
// Pure local lookup; may trail a concurrent remote mutation.
func (l *Library) IsInLibrary(catalogID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, b := range l.books {
		if b.CatalogID == catalogID {
			return true
		}
	}
	return false
}

// GetByCatalogID returns the first cached record with the catalog id.
func (l *Library) GetByCatalogID(catalogID string) (Book, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, b := range l.books {
		if b.CatalogID == catalogID {
			return b, true
		}
	}
	return Book{}, false
}

// CategoryCounts maps category name to the number of cached records
// carrying it. Recomputed from current state on every call.
func (l *Library) CategoryCounts() map[string]int {
	l.mu.Lock()
	defer l.mu.Unlock()
	counts := make(map[string]int)
	for _, b := range l.books {
		for _, c := range b.Categories {
			counts[c]++
		}
	}
	return counts
}
