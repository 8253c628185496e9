// Package library is the synchronization core: it owns the in-memory
// view of the current user's saved books, keeps it live-synced with the
// remote document store, and exposes every mutation the app performs on
// a saved book.
package library

import (
	"errors"
	"fmt"
	"time"

	"github.com/blackwell-systems/readctl/internal/catalog"
	"github.com/blackwell-systems/readctl/internal/docstore"
)

// Status is a book's reading state.
type Status string

const (
	StatusWantToRead Status = "want-to-read"
	StatusReading    Status = "reading"
	StatusRead       Status = "read"
)

// Valid reports whether s is one of the three reading states.
func (s Status) Valid() bool {
	switch s {
	case StatusWantToRead, StatusReading, StatusRead:
		return true
	}
	return false
}

// ParseStatus validates a user-supplied status string.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q (want %s, %s or %s)",
			ErrInvalidStatus, raw, StatusWantToRead, StatusReading, StatusRead)
	}
	return s, nil
}

// Rating bounds. Zero means unrated.
const (
	MinRating = 0
	MaxRating = 5
)

// ValidateRating rejects ratings outside [MinRating, MaxRating] before
// any remote call is attempted.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("%w: %d (want %d–%d)", ErrInvalidRating, rating, MinRating, MaxRating)
	}
	return nil
}

var (
	// ErrNotAuthenticated is returned by every operation invoked with no
	// signed-in user. The remote store is never contacted in that case.
	ErrNotAuthenticated = errors.New("not signed in")

	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidRating = errors.New("invalid rating")
)

// Book is one saved library entry. Descriptive fields are copied from
// the catalog item at save time and never change; Notes, Status and
// Rating are the mutable ones. AddedAt and UpdatedAt are assigned by the
// store.
type Book struct {
	ID            string
	OwnerID       string
	CatalogID     string
	Title         string
	Authors       []string
	Description   string
	Thumbnail     string
	Categories    []string
	Publisher     string
	PublishedDate string
	PageCount     int
	Language      string
	PreviewLink   string
	Notes         string
	Status        Status
	Rating        int
	AddedAt       time.Time
	UpdatedAt     time.Time
}

// bookFromDoc converts a stored document into a Book. This is the single
// normalization point: every optional or malformed field falls back to
// the same defaults the save path writes, so records saved by older
// versions of the app still come out whole.
func bookFromDoc(doc docstore.Document) Book {
	f := doc.Fields
	b := Book{
		ID:            doc.ID,
		OwnerID:       stringField(f, "ownerId", ""),
		CatalogID:     stringField(f, "catalogId", ""),
		Title:         stringField(f, "title", "Unknown Title"),
		Authors:       stringsField(f, "authors"),
		Description:   stringField(f, "description", "No description available"),
		Thumbnail:     stringField(f, "thumbnail", ""),
		Categories:    stringsField(f, "categories"),
		Publisher:     stringField(f, "publisher", "Unknown Publisher"),
		PublishedDate: stringField(f, "publishedDate", "Unknown Date"),
		PageCount:     intField(f, "pageCount"),
		Language:      stringField(f, "language", "unknown"),
		PreviewLink:   stringField(f, "previewLink", ""),
		Notes:         stringField(f, "notes", ""),
		Status:        Status(stringField(f, "status", string(StatusWantToRead))),
		Rating:        intField(f, "rating"),
		AddedAt:       timeField(f, "addedAt"),
		UpdatedAt:     timeField(f, "updatedAt"),
	}
	if len(b.Authors) == 0 {
		b.Authors = []string{"Unknown Author"}
	}
	if b.Categories == nil {
		b.Categories = []string{}
	}
	if !b.Status.Valid() {
		b.Status = StatusWantToRead
	}
	if b.PageCount < 0 {
		b.PageCount = 0
	}
	if b.Rating < MinRating {
		b.Rating = MinRating
	} else if b.Rating > MaxRating {
		b.Rating = MaxRating
	}
	return b
}

// fieldsFromItem builds the document written when a catalog item is
// saved. Items are already normalized by the catalog package, so no
// defaulting happens here beyond the fresh mutable fields.
func fieldsFromItem(ownerID string, item catalog.Item) map[string]any {
	return map[string]any{
		"ownerId":       ownerID,
		"catalogId":     item.ID,
		"title":         item.Title,
		"authors":       append([]string(nil), item.Authors...),
		"description":   item.Description,
		"thumbnail":     item.Thumbnail,
		"categories":    append([]string(nil), item.Categories...),
		"publisher":     item.Publisher,
		"publishedDate": item.PublishedDate,
		"pageCount":     item.PageCount,
		"language":      item.Language,
		"previewLink":   item.PreviewLink,
		"notes":         "",
		"status":        string(StatusWantToRead),
		"rating":        0,
	}
}

func stringField(f map[string]any, key, fallback string) string {
	if v, ok := f[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// stringsField accepts both []string (memory driver) and []any (JSON
// round-trip through the Redis driver).
func stringsField(f map[string]any, key string) []string {
	switch v := f[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func intField(f map[string]any, key string) int {
	switch v := f[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// timeField accepts time.Time (memory driver) and RFC 3339 strings
// (Redis driver). Anything else reads as the zero time, which sorts as
// oldest.
func timeField(f map[string]any, key string) time.Time {
	switch v := f[key].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
