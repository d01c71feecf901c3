package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/recodex/internal/domain/catalog"
	"github.com/kailas-cloud/recodex/internal/domain/ratingstore"
	"github.com/kailas-cloud/recodex/internal/domain/similarity"
)

// Snapshot is an immutable view of the data and both similarity indexes.
// Rebuilding produces a new Snapshot; an existing one is never mutated.
type Snapshot struct {
	Catalog       *catalog.Catalog
	Ratings       *ratingstore.Store
	Content       *similarity.ContentIndex
	Collaborative *similarity.CollaborativeIndex
	BuiltAt       time.Time
}

// BuildSnapshot computes both similarity indexes.
func BuildSnapshot(ctx context.Context, cat *catalog.Catalog, ratings *ratingstore.Store) (*Snapshot, error) {
	content, err := similarity.BuildContent(ctx, cat)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	collab, err := similarity.BuildCollaborative(ctx, ratings)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return &Snapshot{
		Catalog:       cat,
		Ratings:       ratings,
		Content:       content,
		Collaborative: collab,
		BuiltAt:       time.Now(),
	}, nil
}
