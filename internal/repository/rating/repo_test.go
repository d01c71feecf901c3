package rating

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/recodex/internal/db"
	"github.com/kailas-cloud/recodex/internal/domain"
	domrating "github.com/kailas-cloud/recodex/internal/domain/rating"
)

func TestAppend(t *testing.T) {
	ms := newMemStore()
	repo := New(ms)
	ctx := context.Background()

	seq, err := repo.Append(ctx, domrating.MustNew(101, 7, 4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seq != 1 {
		t.Errorf("seq = %d, want 1", seq)
	}

	h := ms.hashes["recodex:rating:1"]
	if h["user"] != "101" || h["restaurant"] != "7" || h["rating"] != "4" {
		t.Errorf("unexpected hash: %v", h)
	}

	got, err := repo.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.UserID() != 101 || got.RestaurantID() != 7 || got.Value() != 4 {
		t.Errorf("Get() = %+v", got)
	}
}

func TestAppend_IncrError(t *testing.T) {
	ms := newMemStore()
	ms.incrErr = errors.New("READONLY")

	if _, err := New(ms).Append(context.Background(), domrating.MustNew(1, 1, 1)); err == nil {
		t.Fatal("expected error")
	}
	if len(ms.hashes) != 0 {
		t.Error("no hash should be written when sequence allocation fails")
	}
}

func TestAppendBatch_PreservesOrder(t *testing.T) {
	ms := newMemStore()
	repo := New(ms)
	ctx := context.Background()

	if _, err := repo.Append(ctx, domrating.MustNew(100, 0, 1)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	batch := []domrating.Rating{
		domrating.MustNew(101, 1, 5),
		domrating.MustNew(102, 1, 4),
		domrating.MustNew(101, 1, 2),
	}
	if err := repo.AppendBatch(ctx, batch); err != nil {
		t.Fatalf("AppendBatch: %v", err)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("len = %d, want 4", len(all))
	}
	if all[0].UserID() != 100 {
		t.Errorf("first = %+v", all[0])
	}
	// Duplicates are kept in order so the last write wins downstream.
	if all[1].Value() != 5 || all[3].Value() != 2 {
		t.Errorf("batch order lost: %+v", all)
	}
}

func TestAppendBatch_Empty(t *testing.T) {
	ms := newMemStore()
	ms.incrErr = errors.New("must not be called")
	if err := New(ms).AppendBatch(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestList_Empty(t *testing.T) {
	repo := New(newMemStore())

	all, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected empty list, got %v", all)
	}

	empty, err := repo.Empty(context.Background())
	if err != nil || !empty {
		t.Errorf("Empty() = %v, %v", empty, err)
	}
}

func TestList_SpansChunks(t *testing.T) {
	ms := newMemStore()
	repo := New(ms)
	ctx := context.Background()

	batch := make([]domrating.Rating, listChunk+7)
	for i := range batch {
		batch[i] = domrating.MustNew(101+i%5, i, 1+i%5)
	}
	if err := repo.AppendBatch(ctx, batch); err != nil {
		t.Fatalf("AppendBatch: %v", err)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != len(batch) {
		t.Fatalf("len = %d, want %d", len(all), len(batch))
	}
	if last := all[len(all)-1]; last.RestaurantID() != len(batch)-1 {
		t.Errorf("last restaurant = %d", last.RestaurantID())
	}
}

func TestList_SkipsGaps(t *testing.T) {
	ms := newMemStore()
	repo := New(ms)
	ctx := context.Background()

	_, _ = repo.Append(ctx, domrating.MustNew(101, 1, 5))
	// Sequence allocated but hash not written yet.
	_, _ = ms.IncrBy(ctx, seqKey, 1)
	_, _ = repo.Append(ctx, domrating.MustNew(102, 2, 3))

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("len = %d, want 2", len(all))
	}
}

func TestList_CorruptHash(t *testing.T) {
	ms := newMemStore()
	repo := New(ms)
	ctx := context.Background()

	_, _ = repo.Append(ctx, domrating.MustNew(101, 1, 5))
	ms.hashes["recodex:rating:1"]["rating"] = "9"

	_, err := repo.List(ctx)
	if !errors.Is(err, domain.ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
}

func TestGet_Missing(t *testing.T) {
	repo := New(newMemStore())
	_, err := repo.Get(context.Background(), 42)
	if !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestParseHashFields(t *testing.T) {
	tests := []struct {
		name    string
		in      map[string]string
		wantErr bool
	}{
		{"valid", map[string]string{"user": "1", "restaurant": "2", "rating": "3"}, false},
		{"missing user", map[string]string{"restaurant": "2", "rating": "3"}, true},
		{"not a number", map[string]string{"user": "x", "restaurant": "2", "rating": "3"}, true},
		{"out of range", map[string]string{"user": "1", "restaurant": "2", "rating": "0"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseHashFields(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
