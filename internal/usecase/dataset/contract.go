package dataset

import (
	"context"

	"github.com/kailas-cloud/recodex/internal/domain/rating"
	"github.com/kailas-cloud/recodex/internal/domain/restaurant"
)

// CatalogReader reads the restaurant table.
type CatalogReader interface {
	ReadCatalog(ctx context.Context) ([]restaurant.Restaurant, error)
}

// RatingLog is the durable, append-only rating history.
type RatingLog interface {
	Append(ctx context.Context, r rating.Rating) (int64, error)
	AppendBatch(ctx context.Context, ratings []rating.Rating) error
	List(ctx context.Context) ([]rating.Rating, error)
	Empty(ctx context.Context) (bool, error)
}
