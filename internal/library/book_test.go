package library

import (
	"reflect"
	"testing"
	"time"

	"github.com/blackwell-systems/readctl/internal/catalog"
	"github.com/blackwell-systems/readctl/internal/docstore"
)

func TestBookFromDocDefaults(t *testing.T) {
	b := bookFromDoc(docstore.Document{ID: "d1", Fields: map[string]any{
		"ownerId": "u1",
	}})

	if b.Title != "Unknown Title" {
		t.Errorf("Title = %q", b.Title)
	}
	if !reflect.DeepEqual(b.Authors, []string{"Unknown Author"}) {
		t.Errorf("Authors = %v", b.Authors)
	}
	if b.Description != "No description available" {
		t.Errorf("Description = %q", b.Description)
	}
	if b.Categories == nil || len(b.Categories) != 0 {
		t.Errorf("Categories = %#v, want empty non-nil slice", b.Categories)
	}
	if b.Publisher != "Unknown Publisher" {
		t.Errorf("Publisher = %q", b.Publisher)
	}
	if b.PublishedDate != "Unknown Date" {
		t.Errorf("PublishedDate = %q", b.PublishedDate)
	}
	if b.Language != "unknown" {
		t.Errorf("Language = %q", b.Language)
	}
	if b.Status != StatusWantToRead {
		t.Errorf("Status = %q", b.Status)
	}
	if b.Rating != 0 || b.PageCount != 0 {
		t.Errorf("Rating/PageCount = %d/%d, want 0/0", b.Rating, b.PageCount)
	}
	if !b.AddedAt.IsZero() {
		t.Errorf("AddedAt = %v, want zero", b.AddedAt)
	}
}

func TestBookFromDocSanitizesBadValues(t *testing.T) {
	b := bookFromDoc(docstore.Document{ID: "d1", Fields: map[string]any{
		"status":    "finished",
		"rating":    float64(9),
		"pageCount": -3,
	}})
	if b.Status != StatusWantToRead {
		t.Errorf("Status = %q, want fallback", b.Status)
	}
	if b.Rating != MaxRating {
		t.Errorf("Rating = %d, want clamped to %d", b.Rating, MaxRating)
	}
	if b.PageCount != 0 {
		t.Errorf("PageCount = %d, want 0", b.PageCount)
	}
}

// Documents that crossed a JSON round trip carry []any, float64 and
// RFC 3339 strings instead of the native types.
func TestBookFromDocJSONTypes(t *testing.T) {
	b := bookFromDoc(docstore.Document{ID: "d1", Fields: map[string]any{
		"authors":   []any{"Foo", "Bar"},
		"pageCount": float64(321),
		"rating":    float64(4),
		"addedAt":   "2026-03-01T10:00:00Z",
	}})
	if !reflect.DeepEqual(b.Authors, []string{"Foo", "Bar"}) {
		t.Errorf("Authors = %v", b.Authors)
	}
	if b.PageCount != 321 {
		t.Errorf("PageCount = %d", b.PageCount)
	}
	if b.Rating != 4 {
		t.Errorf("Rating = %d", b.Rating)
	}
	want := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if !b.AddedAt.Equal(want) {
		t.Errorf("AddedAt = %v, want %v", b.AddedAt, want)
	}
}

func TestFieldsFromItem(t *testing.T) {
	item := catalog.Item{ID: "gb-1", Title: "Foo", Authors: []string{"Bar"}}
	f := fieldsFromItem("u1", item)

	if f["ownerId"] != "u1" || f["catalogId"] != "gb-1" {
		t.Errorf("owner/catalog = %v/%v", f["ownerId"], f["catalogId"])
	}
	if f["status"] != string(StatusWantToRead) || f["rating"] != 0 || f["notes"] != "" {
		t.Errorf("fresh mutable fields = %v/%v/%v", f["status"], f["rating"], f["notes"])
	}

	// The stored slice must not alias the item's.
	f["authors"].([]string)[0] = "changed"
	if item.Authors[0] != "Bar" {
		t.Error("fieldsFromItem aliased the item's authors slice")
	}
}

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"want-to-read", "reading", "read"} {
		if _, err := ParseStatus(raw); err != nil {
			t.Errorf("ParseStatus(%q) = %v", raw, err)
		}
	}
	for _, raw := range []string{"", "Read", "finished", "want to read"} {
		if _, err := ParseStatus(raw); err == nil {
			t.Errorf("ParseStatus(%q) accepted", raw)
		}
	}
}

func TestSortBooksZeroTimeLast(t *testing.T) {
	now := time.Now()
	books := []Book{
		{ID: "a"},
		{ID: "b", AddedAt: now.Add(-time.Hour)},
		{ID: "c", AddedAt: now},
	}
	sortBooks(books)
	got := []string{books[0].ID, books[1].ID, books[2].ID}
	want := []string{"c", "b", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}
