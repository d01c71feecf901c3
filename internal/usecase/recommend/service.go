// Package recommend implements the content, collaborative and hybrid
// recommenders over an immutable similarity snapshot.
package recommend

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/recodex/internal/domain"
	"github.com/kailas-cloud/recodex/internal/domain/catalog"
	"github.com/kailas-cloud/recodex/internal/domain/ranking"
	"github.com/kailas-cloud/recodex/internal/domain/rating"
	"github.com/kailas-cloud/recodex/internal/domain/ratingstore"
	"github.com/kailas-cloud/recodex/internal/domain/restaurant"
)

// Strategy labels used in logs and metrics.
const (
	StrategyContent       = "content"
	StrategyCollaborative = "collaborative"
	StrategyHybrid        = "hybrid"
)

// Recommendation is a ranked restaurant.
type Recommendation struct {
	RestaurantID int
	Name         string
	Score        float64
}

// Config tunes the engine.
type Config struct {
	// Oversample is the minimum candidate count pulled from each recommender
	// before a hybrid blend. Zero means DefaultOversample.
	Oversample int
	// Seed drives the cold-start sampler. Zero seeds from the clock.
	Seed int64
}

// Service serves recommendations from the current snapshot.
type Service struct {
	source   Source
	cfg      Config
	logger   *zap.Logger
	recorder Recorder

	snap atomic.Pointer[Snapshot]

	rngMu sync.Mutex
	rng   *rand.Rand

	rebuildMu sync.Mutex
}

// New creates a recommendation service. The service is not ready until
// Rebuild or Install succeeds.
func New(source Source, cfg Config, logger *zap.Logger, recorder Recorder) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Service{
		source:   source,
		cfg:      cfg,
		logger:   logger,
		recorder: recorder,
		rng:      rand.New(rand.NewSource(seed)), //nolint:gosec // sampling, not security
	}
}

// Rebuild loads fresh data from the source and swaps in a new snapshot.
func (s *Service) Rebuild(ctx context.Context) error {
	if s.source == nil {
		return fmt.Errorf("rebuild: no data source configured")
	}
	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	cat, ratings, err := s.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("rebuild: load: %w", err)
	}
	return s.install(ctx, cat, ratings)
}

// Install builds a snapshot from the given data and swaps it in.
func (s *Service) Install(ctx context.Context, cat *catalog.Catalog, ratings *ratingstore.Store) error {
	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()
	return s.install(ctx, cat, ratings)
}

func (s *Service) install(ctx context.Context, cat *catalog.Catalog, ratings *ratingstore.Store) error {
	start := time.Now()
	snap, err := BuildSnapshot(ctx, cat, ratings)
	if err != nil {
		s.logger.Error("Snapshot build failed", zap.Error(err))
		return err
	}
	s.snap.Store(snap)

	elapsed := time.Since(start)
	users := snap.Collaborative.Users()
	if s.recorder != nil {
		s.recorder.ObserveBuild(elapsed, cat.Len(), users, ratings.Len())
	}
	s.logger.Info("Snapshot built",
		zap.Int("restaurants", cat.Len()),
		zap.Int("users", users),
		zap.Int("ratings", ratings.Len()),
		zap.Int("cuisines", len(snap.Content.Vocabulary())),
		zap.Duration("duration", elapsed),
	)
	return nil
}

// Snapshot returns the current snapshot or domain.ErrNotReady.
func (s *Service) Snapshot() (*Snapshot, error) {
	snap := s.snap.Load()
	if snap == nil {
		return nil, domain.ErrNotReady
	}
	return snap, nil
}

// Ready reports whether a snapshot is installed.
func (s *Service) Ready() bool { return s.snap.Load() != nil }

// ContentBased recommends restaurants similar to the rated ones.
// An empty rated set yields an empty list.
func (s *Service) ContentBased(ctx context.Context, rated []int, topN int) ([]Recommendation, error) {
	start := time.Now()
	recs, err := s.contentBased(rated, topN)
	s.observe(ctx, StrategyContent, start, err)
	return recs, err
}

func (s *Service) contentBased(rated []int, topN int) ([]Recommendation, error) {
	if err := validateTopN(topN); err != nil {
		return nil, err
	}
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	ranked, err := rankContent(snap, rated, topN)
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	return toRecommendations(snap, ranked), nil
}

// Collaborative recommends restaurants liked by similar users. Users without
// any rating get a random sample of the catalog.
func (s *Service) Collaborative(ctx context.Context, userID, topN int) ([]Recommendation, error) {
	start := time.Now()
	recs, err := s.collaborative(ctx, userID, topN)
	s.observe(ctx, StrategyCollaborative, start, err)
	return recs, err
}

func (s *Service) collaborative(ctx context.Context, userID, topN int) ([]Recommendation, error) {
	if err := validateTopN(topN); err != nil {
		return nil, err
	}
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	ranked, err := s.rankCollaborative(ctx, snap, userID, topN)
	if err != nil {
		return nil, err
	}
	return toRecommendations(snap, ranked), nil
}

func (s *Service) rankCollaborative(
	ctx context.Context, snap *Snapshot, userID, topN int,
) ([]ranking.Scored, error) {
	if !snap.Ratings.HasUser(userID) {
		s.rngMu.Lock()
		ids := snap.Catalog.Sample(s.rng, topN)
		s.rngMu.Unlock()

		if s.recorder != nil {
			s.recorder.ObserveColdStart()
		}
		loggerFrom(ctx, s.logger).Debug("Cold start fallback",
			zap.Int("user_id", userID),
			zap.Int("sampled", len(ids)),
		)
		return coldStart(ids), nil
	}

	ranked, err := rankCollaborative(snap, userID, topN)
	if err != nil {
		return nil, fmt.Errorf("collaborative: %w", err)
	}
	return ranked, nil
}

// Hybrid blends the content and collaborative rankings for a user.
// alpha weighs the content side and must be within [0, 1].
func (s *Service) Hybrid(ctx context.Context, userID, topN int, alpha float64) ([]Recommendation, error) {
	start := time.Now()
	recs, err := s.hybrid(ctx, userID, topN, alpha)
	s.observe(ctx, StrategyHybrid, start, err)
	return recs, err
}

func (s *Service) hybrid(ctx context.Context, userID, topN int, alpha float64) ([]Recommendation, error) {
	if err := validateTopN(topN); err != nil {
		return nil, err
	}
	if math.IsNaN(alpha) || alpha < 0 || alpha > 1 {
		return nil, domain.NewInvalidParameter("alpha", fmt.Sprintf("must be within [0, 1], got %v", alpha))
	}
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	n := oversample(s.cfg.Oversample, topN)

	contentRanked, err := rankContent(snap, snap.Ratings.RatedIDs(userID), n)
	if err != nil {
		return nil, fmt.Errorf("hybrid content: %w", err)
	}
	collabRanked, err := s.rankCollaborative(ctx, snap, userID, n)
	if err != nil {
		return nil, fmt.Errorf("hybrid: %w", err)
	}

	blended := blend(ranking.IDs(contentRanked), ranking.IDs(collabRanked), alpha, topN)
	return toRecommendations(snap, blended), nil
}

// Restaurant returns a catalog entry.
func (s *Service) Restaurant(_ context.Context, id int) (restaurant.Restaurant, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return restaurant.Restaurant{}, err
	}
	return snap.Catalog.Get(id)
}

// UserRatings returns the user's rating history in insertion order.
// Unknown users have an empty history.
func (s *Service) UserRatings(_ context.Context, userID int) ([]rating.Rating, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Ratings.History(userID), nil
}

// Users returns every user with at least one rating, ascending.
func (s *Service) Users(_ context.Context) ([]int, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Ratings.Users(), nil
}

func (s *Service) observe(ctx context.Context, strategy string, start time.Time, err error) {
	outcome := outcomeOf(err)
	if s.recorder != nil {
		s.recorder.ObserveRequest(strategy, outcome, time.Since(start))
	}
	if err != nil && outcome == "error" {
		loggerFrom(ctx, s.logger).Error("Recommendation failed",
			zap.String("strategy", strategy),
			zap.Error(err),
		)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case isClientError(err):
		return "rejected"
	default:
		return "error"
	}
}

func validateTopN(topN int) error {
	if topN <= 0 {
		return domain.NewInvalidParameter("top_n", fmt.Sprintf("must be positive, got %d", topN))
	}
	return nil
}

func toRecommendations(snap *Snapshot, ranked []ranking.Scored) []Recommendation {
	out := make([]Recommendation, len(ranked))
	for i, r := range ranked {
		out[i] = Recommendation{
			RestaurantID: r.ID,
			Name:         snap.Catalog.Name(r.ID),
			Score:        r.Score,
		}
	}
	return out
}
