// Package dataset assembles the catalog and rating history the engine is
// built from.
package dataset

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/recodex/internal/domain"
	"github.com/kailas-cloud/recodex/internal/domain/catalog"
	"github.com/kailas-cloud/recodex/internal/domain/rating"
	"github.com/kailas-cloud/recodex/internal/domain/ratingstore"
	"github.com/kailas-cloud/recodex/internal/logger"
)

// Service loads snapshots' input data and records new ratings.
type Service struct {
	catalog   CatalogReader
	log       RatingLog
	synthetic SyntheticConfig
}

// New creates a Service. log can be nil: ratings are then synthesized in
// memory on every load and Record is unavailable.
func New(catalog CatalogReader, log RatingLog, synthetic SyntheticConfig) *Service {
	return &Service{catalog: catalog, log: log, synthetic: synthetic}
}

// Load reads the catalog and the rating history.
func (s *Service) Load(ctx context.Context) (*catalog.Catalog, *ratingstore.Store, error) {
	items, err := s.catalog.ReadCatalog(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("read catalog: %w", err)
	}
	cat, err := catalog.New(items)
	if err != nil {
		return nil, nil, fmt.Errorf("build catalog: %w", err)
	}

	ratings, err := s.loadRatings(ctx, cat)
	if err != nil {
		return nil, nil, err
	}
	store, err := ratingstore.New(cat, ratings)
	if err != nil {
		return nil, nil, fmt.Errorf("build rating store: %w", err)
	}
	return cat, store, nil
}

func (s *Service) loadRatings(ctx context.Context, cat *catalog.Catalog) ([]rating.Rating, error) {
	log := logger.FromContext(ctx)

	if s.log == nil {
		ratings := SyntheticRatings(cat, s.synthetic)
		log.Info("Using synthetic ratings", zap.Int("count", len(ratings)))
		return ratings, nil
	}

	empty, err := s.log.Empty(ctx)
	if err != nil {
		return nil, fmt.Errorf("check rating log: %w", err)
	}
	if empty {
		seed := SyntheticRatings(cat, s.synthetic)
		if err := s.log.AppendBatch(ctx, seed); err != nil {
			return nil, fmt.Errorf("seed rating log: %w", err)
		}
		log.Info("Seeded rating log", zap.Int("count", len(seed)))
	}

	all, err := s.log.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rating log: %w", err)
	}

	// The catalog file may have changed since the ratings were recorded.
	kept := all[:0]
	for _, r := range all {
		if cat.Contains(r.RestaurantID()) {
			kept = append(kept, r)
		}
	}
	if skipped := len(all) - len(kept); skipped > 0 {
		log.Warn("Skipped ratings of unknown restaurants", zap.Int("skipped", skipped))
	}
	return kept, nil
}

// Persistent reports whether ratings are kept in a durable log.
func (s *Service) Persistent() bool { return s.log != nil }

// Record appends a rating to the durable log. It takes effect on the next
// rebuild.
func (s *Service) Record(ctx context.Context, userID, restaurantID, value int) (int64, error) {
	r, err := rating.New(userID, restaurantID, value)
	if err != nil {
		return 0, err
	}
	if s.log == nil {
		return 0, fmt.Errorf("%w: rating log is disabled", domain.ErrNotReady)
	}
	seq, err := s.log.Append(ctx, r)
	if err != nil {
		return 0, fmt.Errorf("record rating: %w", err)
	}
	return seq, nil
}
