// Package rating persists the append-only rating log in Redis/Valkey.
//
// Layout: an INCRBY sequence at recodex:rating:seq and one hash per rating at
// recodex:rating:<seq> with user, restaurant and rating fields.
package rating

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/recodex/internal/db"
	domrating "github.com/kailas-cloud/recodex/internal/domain/rating"
)

const (
	keyPrefix = "recodex:rating:"
	seqKey    = keyPrefix + "seq"

	// listChunk bounds the number of HGETALLs pipelined in one round-trip.
	listChunk = 500
)

// store is the consumer interface for the rating log (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) ([]byte, error)
	IncrBy(ctx context.Context, key string, val int64) (int64, error)
}

// Repo is the durable rating log.
type Repo struct {
	store store
}

// New creates a rating log repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Append records one rating and returns its sequence number.
func (r *Repo) Append(ctx context.Context, rt domrating.Rating) (int64, error) {
	seq, err := r.store.IncrBy(ctx, seqKey, 1)
	if err != nil {
		return 0, fmt.Errorf("allocate sequence: %w", err)
	}
	key := ratingKey(seq)
	if err := r.store.HSet(ctx, key, buildHashFields(rt)); err != nil {
		return 0, fmt.Errorf("hset %s: %w", key, err)
	}
	return seq, nil
}

// AppendBatch records ratings under a contiguous sequence range, preserving order.
func (r *Repo) AppendBatch(ctx context.Context, ratings []domrating.Rating) error {
	if len(ratings) == 0 {
		return nil
	}

	last, err := r.store.IncrBy(ctx, seqKey, int64(len(ratings)))
	if err != nil {
		return fmt.Errorf("allocate sequence: %w", err)
	}
	first := last - int64(len(ratings)) + 1

	items := make([]db.HashSetItem, len(ratings))
	for i, rt := range ratings {
		items[i] = db.HashSetItem{Key: ratingKey(first + int64(i)), Fields: buildHashFields(rt)}
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("hset batch: %w", err)
	}
	return nil
}

// Get returns the rating stored under a sequence number.
func (r *Repo) Get(ctx context.Context, seq int64) (domrating.Rating, error) {
	key := ratingKey(seq)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domrating.Rating{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 {
		return domrating.Rating{}, db.ErrKeyNotFound
	}
	rt, err := parseHashFields(m)
	if err != nil {
		return domrating.Rating{}, fmt.Errorf("parse %s: %w", key, err)
	}
	return rt, nil
}

// Empty reports whether nothing was ever appended.
func (r *Repo) Empty(ctx context.Context) (bool, error) {
	exists, err := r.store.Exists(ctx, seqKey)
	if err != nil {
		return false, fmt.Errorf("check %s: %w", seqKey, err)
	}
	return !exists, nil
}

// List returns every rating ordered by sequence number.
// Sequence slots without a hash (an append in flight) are skipped.
func (r *Repo) List(ctx context.Context) ([]domrating.Rating, error) {
	last, err := r.lastSeq(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domrating.Rating, 0, last)
	for from := int64(1); from <= last; from += listChunk {
		to := min(from+listChunk-1, last)

		keys := make([]string, 0, to-from+1)
		for seq := from; seq <= to; seq++ {
			keys = append(keys, ratingKey(seq))
		}

		hashes, err := r.store.HGetAllMulti(ctx, keys)
		if err != nil {
			return nil, fmt.Errorf("list ratings: %w", err)
		}
		for i, m := range hashes {
			if len(m) == 0 {
				continue
			}
			rt, err := parseHashFields(m)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", keys[i], err)
			}
			out = append(out, rt)
		}
	}
	return out, nil
}

func (r *Repo) lastSeq(ctx context.Context) (int64, error) {
	raw, err := r.store.Get(ctx, seqKey)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("get %s: %w", seqKey, err)
	}
	n, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", seqKey, err)
	}
	return n, nil
}

func ratingKey(seq int64) string {
	return keyPrefix + strconv.FormatInt(seq, 10)
}
