package similarity

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/recodex/internal/domain"
	"github.com/kailas-cloud/recodex/internal/domain/ratingstore"
)

// CollaborativeIndex is the user x user cosine similarity over rating rows.
type CollaborativeIndex struct {
	pivot  *ratingstore.Pivot
	matrix *Matrix
}

// BuildCollaborative pivots the store and computes user similarities.
func BuildCollaborative(ctx context.Context, store *ratingstore.Store) (*CollaborativeIndex, error) {
	p := store.Pivot()
	rows := make([][]float64, len(p.Users))
	for i := range rows {
		rows[i] = p.Row(i)
	}

	m, err := pairwise(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("build collaborative index: %w", err)
	}
	return &CollaborativeIndex{pivot: p, matrix: m}, nil
}

// Pivot returns the user x restaurant rating matrix the index was built from.
func (x *CollaborativeIndex) Pivot() *ratingstore.Pivot { return x.pivot }

// Users returns the number of indexed users.
func (x *CollaborativeIndex) Users() int { return x.matrix.Size() }

// Row returns the user's similarity against every user, aligned with Pivot().Users.
func (x *CollaborativeIndex) Row(userID int) ([]float64, error) {
	i, ok := x.pivot.UserRow(userID)
	if !ok {
		return nil, domain.NewNotFound("user", userID)
	}
	return x.matrix.Row(i), nil
}

// Similar maps every other user to their similarity with userID.
func (x *CollaborativeIndex) Similar(userID int) (map[int]float64, error) {
	row, err := x.Row(userID)
	if err != nil {
		return nil, err
	}
	out := make(map[int]float64, len(row)-1)
	for j, s := range row {
		if other := x.pivot.Users[j]; other != userID {
			out[other] = s
		}
	}
	return out, nil
}
