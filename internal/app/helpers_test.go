package app

import (
	"context"
	"strings"
	"testing"

	"github.com/blackwell-systems/readctl/internal/catalog"
	"github.com/blackwell-systems/readctl/internal/docstore"
	"github.com/blackwell-systems/readctl/internal/identity"
	"github.com/blackwell-systems/readctl/internal/library"
	"github.com/blackwell-systems/readctl/internal/notify"
)

// seedLibrary points the package globals at an in-process store with two
// saved books and returns their records.
func seedLibrary(t *testing.T) (library.Book, library.Book) {
	t.Helper()
	mem := docstore.NewMemory()
	session = identity.NewSession("u1")
	lib = library.New(mem, session, notify.Nop{}, "")
	t.Cleanup(func() { lib.Close(); lib = nil; session = nil })

	ctx := context.Background()
	if err := lib.Save(ctx, catalog.Item{ID: "gb-1", Title: "Foo"}); err != nil {
		t.Fatal(err)
	}
	if err := lib.Save(ctx, catalog.Item{ID: "gb-2", Title: "Bar"}); err != nil {
		t.Fatal(err)
	}

	a, _ := lib.GetByCatalogID("gb-1")
	b, _ := lib.GetByCatalogID("gb-2")
	return a, b
}

func TestResolveBook(t *testing.T) {
	a, _ := seedLibrary(t)
	ctx := context.Background()

	got, err := resolveBook(ctx, a.ID)
	if err != nil || got.ID != a.ID {
		t.Errorf("by exact id: %+v, %v", got, err)
	}

	got, err = resolveBook(ctx, "gb-1")
	if err != nil || got.CatalogID != "gb-1" {
		t.Errorf("by catalog id: %+v, %v", got, err)
	}

	got, err = resolveBook(ctx, a.ID[:10])
	if err != nil || got.ID != a.ID {
		t.Errorf("by unique prefix: %+v, %v", got, err)
	}

	if _, err = resolveBook(ctx, "zzz-not-there"); err == nil {
		t.Error("unknown reference resolved")
	}

	// The empty prefix matches every record.
	if _, err = resolveBook(ctx, ""); err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Errorf("ambiguous reference: %v", err)
	}
}

func TestStars(t *testing.T) {
	cases := []struct {
		rating int
		want   string
	}{
		{0, "unrated"},
		{1, "★☆☆☆☆"},
		{3, "★★★☆☆"},
		{5, "★★★★★"},
	}
	for _, tc := range cases {
		if got := stars(tc.rating); got != tc.want {
			t.Errorf("stars(%d) = %q, want %q", tc.rating, got, tc.want)
		}
	}
}
