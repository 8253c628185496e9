package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/blackwell-systems/readctl/internal/library"
)

// resolveBook maps a user-supplied reference to a saved book. Accepted
// forms, in order: exact record id, exact catalog id, unique record id
// prefix. The library is fetched first so references work without a
// running watch session.
func resolveBook(ctx context.Context, ref string) (library.Book, error) {
	if err := lib.Fetch(ctx); err != nil {
		return library.Book{}, err
	}

	books := lib.Books()
	for _, b := range books {
		if b.ID == ref {
			return b, nil
		}
	}
	if b, found := lib.GetByCatalogID(ref); found {
		return b, nil
	}

	var matches []library.Book
	for _, b := range books {
		if strings.HasPrefix(b.ID, ref) {
			matches = append(matches, b)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return library.Book{}, fmt.Errorf("no saved book matches %q", ref)
	default:
		return library.Book{}, fmt.Errorf("%q is ambiguous: matches %d books", ref, len(matches))
	}
}
