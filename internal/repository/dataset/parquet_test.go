package dataset

import (
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/kailas-cloud/recodex/internal/domain/restaurant"
)

func ptr[T any](v T) *T { return &v }

func TestLoadParquet_DropRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.parquet")
	rows := []parquetRow{
		{Name: "A", Cuisines: ptr("Italian, Pizza"), Rating: ptr(4.1), Cost: 500, City: "Rome"},
		{Name: "no cuisine", Cuisines: nil, Rating: ptr(3.0), Cost: 100, City: "Rome"},
		{Name: "no rating", Cuisines: ptr("Thai"), Rating: nil, Cost: 100, City: "Rome"},
		{Name: "B", Cuisines: ptr("Chinese"), Rating: ptr(3.5), Cost: 300, City: "Milan"},
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	items, stats, err := LoadParquet(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Rows != 4 || stats.Kept != 2 || stats.Dropped != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 restaurants, got %d", len(items))
	}
	if items[0].ID() != 0 || items[0].PrimaryCuisine() != "Italian" || items[0].CostForTwo() != 500 {
		t.Errorf("item 0 = %d/%q/%v", items[0].ID(), items[0].PrimaryCuisine(), items[0].CostForTwo())
	}
	if items[1].ID() != 1 || items[1].Name() != "B" || items[1].City() != "Milan" {
		t.Errorf("item 1 = %d/%q/%q", items[1].ID(), items[1].Name(), items[1].City())
	}
}

func TestWriteParquet_LoadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.parquet")
	src := []restaurant.Restaurant{
		restaurant.Reconstruct(0, "A", "Italian", 500, "Rome", 4.1),
		restaurant.Reconstruct(1, "B", "Chinese", 300, "Rome", 3.5),
	}
	if err := WriteParquet(path, src); err != nil {
		t.Fatalf("WriteParquet: %v", err)
	}

	items, _, err := Load(path, FormatParquet, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != len(src) {
		t.Fatalf("expected %d restaurants, got %d", len(src), len(items))
	}
	if items[1].PrimaryCuisine() != "Chinese" || items[1].AggregateRating() != 3.5 {
		t.Errorf("item 1 = %q/%v", items[1].PrimaryCuisine(), items[1].AggregateRating())
	}
}

func TestLoadParquet_MissingFile(t *testing.T) {
	if _, _, err := LoadParquet(filepath.Join(t.TempDir(), "nope.parquet")); err == nil {
		t.Fatal("expected error")
	}
}
