package recommend

import (
	"context"
	"time"

	"github.com/kailas-cloud/recodex/internal/domain/catalog"
	"github.com/kailas-cloud/recodex/internal/domain/ratingstore"
)

// Source loads the catalog and rating history a snapshot is built from.
type Source interface {
	Load(ctx context.Context) (*catalog.Catalog, *ratingstore.Store, error)
}

// Recorder receives engine metrics. A nil Recorder disables them.
type Recorder interface {
	ObserveRequest(strategy, outcome string, d time.Duration)
	ObserveColdStart()
	ObserveBuild(d time.Duration, restaurants, users, ratings int)
}
