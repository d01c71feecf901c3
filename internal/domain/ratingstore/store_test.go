package ratingstore

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/recodex/internal/domain"
	"github.com/kailas-cloud/recodex/internal/domain/catalog"
	"github.com/kailas-cloud/recodex/internal/domain/rating"
	"github.com/kailas-cloud/recodex/internal/domain/restaurant"
)

func testCatalog(t *testing.T, ids ...int) *catalog.Catalog {
	t.Helper()
	items := make([]restaurant.Restaurant, len(ids))
	for i, id := range ids {
		items[i] = restaurant.Reconstruct(id, "r", "Italian", 100, "Rome", 4)
	}
	c, err := catalog.New(items)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

func TestNew_UnknownRestaurant(t *testing.T) {
	cat := testCatalog(t, 1, 2)
	_, err := New(cat, []rating.Rating{rating.MustNew(101, 3, 5)})
	if !errors.Is(err, domain.ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
}

func TestHistoryAndUsers(t *testing.T) {
	cat := testCatalog(t, 1, 2, 3)
	s, err := New(cat, []rating.Rating{
		rating.MustNew(102, 1, 4),
		rating.MustNew(101, 1, 5),
		rating.MustNew(102, 2, 5),
		rating.MustNew(101, 1, 2),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4 (duplicates kept)", s.Len())
	}
	if users := s.Users(); len(users) != 2 || users[0] != 101 || users[1] != 102 {
		t.Errorf("Users() = %v", users)
	}
	if !s.HasUser(101) || s.HasUser(999) {
		t.Error("HasUser mismatch")
	}

	h := s.History(101)
	if len(h) != 2 || h[0].Value() != 5 || h[1].Value() != 2 {
		t.Errorf("History(101) = %+v", h)
	}
	if s.History(999) != nil {
		t.Error("History of unknown user should be nil")
	}

	ids := s.RatedIDs(102)
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("RatedIDs(102) = %v", ids)
	}
	if got := s.RatedIDs(101); len(got) != 1 {
		t.Errorf("RatedIDs(101) = %v, want one distinct id", got)
	}
}

func TestPivot_LastWriteWins(t *testing.T) {
	s, err := New(nil, []rating.Rating{
		rating.MustNew(101, 1, 5),
		rating.MustNew(102, 1, 4),
		rating.MustNew(102, 2, 5),
		rating.MustNew(101, 1, 3),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	p := s.Pivot()
	if len(p.Users) != 2 || len(p.Restaurants) != 2 {
		t.Fatalf("pivot shape = %dx%d", len(p.Users), len(p.Restaurants))
	}

	row, ok := p.UserRow(101)
	if !ok {
		t.Fatal("user 101 missing from pivot")
	}
	got := p.Row(row)
	if got[0] != 3 || got[1] != 0 {
		t.Errorf("row 101 = %v, want [3 0]", got)
	}

	row, _ = p.UserRow(102)
	got = p.Row(row)
	if got[0] != 4 || got[1] != 5 {
		t.Errorf("row 102 = %v, want [4 5]", got)
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	s, _ := New(nil, []rating.Rating{rating.MustNew(1, 1, 1)})
	all := s.All()
	all[0] = rating.MustNew(9, 9, 5)
	if s.All()[0].UserID() != 1 {
		t.Error("All() exposed internal slice")
	}
}
