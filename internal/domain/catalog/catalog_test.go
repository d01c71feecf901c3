package catalog

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/kailas-cloud/recodex/internal/domain"
	"github.com/kailas-cloud/recodex/internal/domain/restaurant"
)

func makeCatalog(t *testing.T, n int) *Catalog {
	t.Helper()
	items := make([]restaurant.Restaurant, n)
	for i := range items {
		items[i] = restaurant.Reconstruct(i, string(rune('A'+i)), "Italian", 100, "Rome", 4)
	}
	c, err := New(items)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNew_DuplicateID(t *testing.T) {
	items := []restaurant.Restaurant{
		restaurant.Reconstruct(1, "A", "Italian", 100, "Rome", 4),
		restaurant.Reconstruct(1, "B", "Chinese", 200, "Rome", 4),
	}
	_, err := New(items)
	if !errors.Is(err, domain.ErrDuplicateRestaurant) {
		t.Fatalf("expected ErrDuplicateRestaurant, got %v", err)
	}
}

func TestNew_CopiesInput(t *testing.T) {
	items := []restaurant.Restaurant{restaurant.Reconstruct(0, "A", "Italian", 100, "Rome", 4)}
	c, err := New(items)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	items[0] = restaurant.Reconstruct(0, "mutated", "Thai", 1, "x", 0)

	got, _ := c.Get(0)
	if got.Name() != "A" {
		t.Errorf("input mutation leaked into catalog: %q", got.Name())
	}
}

func TestGet(t *testing.T) {
	c := makeCatalog(t, 3)

	r, err := c.Get(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Name() != "C" {
		t.Errorf("Name() = %q, want C", r.Name())
	}

	_, err = c.Get(42)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if c.Name(42) != "" {
		t.Errorf("Name(42) = %q, want empty", c.Name(42))
	}
}

func TestPosition(t *testing.T) {
	items := []restaurant.Restaurant{
		restaurant.Reconstruct(10, "A", "Italian", 100, "Rome", 4),
		restaurant.Reconstruct(20, "B", "Italian", 100, "Rome", 4),
	}
	c, _ := New(items)

	pos, ok := c.Position(20)
	if !ok || pos != 1 {
		t.Errorf("Position(20) = %d, %v", pos, ok)
	}
	if c.Contains(15) {
		t.Error("Contains(15) = true")
	}
}

func TestSample(t *testing.T) {
	c := makeCatalog(t, 5)

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"fewer than catalog", 3, 3},
		{"exact", 5, 5},
		{"more than catalog", 9, 5},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := c.Sample(rand.New(rand.NewSource(1)), tt.n)
			if len(ids) != tt.want {
				t.Fatalf("len = %d, want %d", len(ids), tt.want)
			}
			seen := make(map[int]bool)
			for _, id := range ids {
				if !c.Contains(id) {
					t.Errorf("sampled id %d not in catalog", id)
				}
				if seen[id] {
					t.Errorf("duplicate id %d", id)
				}
				seen[id] = true
			}
		})
	}
}

func TestSample_SeededIsReproducible(t *testing.T) {
	c := makeCatalog(t, 10)
	a := c.Sample(rand.New(rand.NewSource(7)), 4)
	b := c.Sample(rand.New(rand.NewSource(7)), 4)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("samples differ: %v vs %v", a, b)
		}
	}
}
