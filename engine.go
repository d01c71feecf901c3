package recodex

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/recodex/internal/domain/catalog"
	"github.com/kailas-cloud/recodex/internal/domain/rating"
	"github.com/kailas-cloud/recodex/internal/domain/ratingstore"
	"github.com/kailas-cloud/recodex/internal/domain/restaurant"
	"github.com/kailas-cloud/recodex/internal/metrics"
	datasetrepo "github.com/kailas-cloud/recodex/internal/repository/dataset"
	datasetuc "github.com/kailas-cloud/recodex/internal/usecase/dataset"
	recommenduc "github.com/kailas-cloud/recodex/internal/usecase/recommend"
)

// Engine serves recommendations over a fixed catalog and rating history.
type Engine struct {
	svc *recommenduc.Service
}

// New validates the input and builds both similarity indexes.
// Restaurant ids must be unique; every rating must reference a restaurant.
func New(restaurants []Restaurant, ratings []Rating, opts ...Option) (*Engine, error) {
	cfg := &engineConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	cat, err := toCatalog(restaurants)
	if err != nil {
		return nil, err
	}
	store, err := toStore(cat, ratings)
	if err != nil {
		return nil, err
	}

	var recorder recommenduc.Recorder
	if cfg.metricsReg != nil {
		m, err := metrics.NewRecommend(cfg.metricsReg)
		if err != nil {
			return nil, fmt.Errorf("recodex: register metrics: %w", err)
		}
		recorder = m
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	svc := recommenduc.New(nil, recommenduc.Config{
		Oversample: cfg.oversample,
		Seed:       cfg.seed,
	}, logger, recorder)
	if err := svc.Install(context.Background(), cat, store); err != nil {
		return nil, fmt.Errorf("recodex: build: %w", err)
	}
	return &Engine{svc: svc}, nil
}

func toCatalog(restaurants []Restaurant) (*catalog.Catalog, error) {
	items := make([]restaurant.Restaurant, len(restaurants))
	for i, r := range restaurants {
		item, err := restaurant.New(r.ID, r.Name, r.Cuisines, r.CostForTwo, r.City, r.AggregateRating)
		if err != nil {
			return nil, fmt.Errorf("recodex: restaurant %d: %w", i, err)
		}
		items[i] = item
	}
	cat, err := catalog.New(items)
	if err != nil {
		return nil, fmt.Errorf("recodex: %w", err)
	}
	return cat, nil
}

func toStore(cat *catalog.Catalog, ratings []Rating) (*ratingstore.Store, error) {
	rs := make([]rating.Rating, len(ratings))
	for i, r := range ratings {
		rt, err := rating.New(r.UserID, r.RestaurantID, r.Value)
		if err != nil {
			return nil, fmt.Errorf("recodex: rating %d: %w", i, err)
		}
		rs[i] = rt
	}
	store, err := ratingstore.New(cat, rs)
	if err != nil {
		return nil, fmt.Errorf("recodex: %w", err)
	}
	return store, nil
}

// ContentBased recommends restaurants similar to the rated ones, excluding
// them. An empty rated set yields an empty list.
func (e *Engine) ContentBased(ctx context.Context, rated []int, topN int) ([]Recommendation, error) {
	recs, err := e.svc.ContentBased(ctx, rated, topN)
	return fromRecommendations(recs), err
}

// Collaborative recommends restaurants rated by similar users. Users without
// ratings get a random catalog sample.
func (e *Engine) Collaborative(ctx context.Context, userID, topN int) ([]Recommendation, error) {
	recs, err := e.svc.Collaborative(ctx, userID, topN)
	return fromRecommendations(recs), err
}

// Hybrid blends the content and collaborative rankings. alpha in [0, 1]
// weighs the content side.
func (e *Engine) Hybrid(ctx context.Context, userID, topN int, alpha float64) ([]Recommendation, error) {
	recs, err := e.svc.Hybrid(ctx, userID, topN, alpha)
	return fromRecommendations(recs), err
}

// Restaurant returns a catalog entry; Cuisines holds the primary cuisine.
func (e *Engine) Restaurant(ctx context.Context, id int) (Restaurant, error) {
	r, err := e.svc.Restaurant(ctx, id)
	if err != nil {
		return Restaurant{}, err
	}
	return fromRestaurant(r), nil
}

// Users returns every user with at least one rating, ascending.
func (e *Engine) Users(ctx context.Context) ([]int, error) {
	return e.svc.Users(ctx)
}

// UserRatings returns a user's ratings in input order.
func (e *Engine) UserRatings(ctx context.Context, userID int) ([]Rating, error) {
	history, err := e.svc.UserRatings(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]Rating, len(history))
	for i, r := range history {
		out[i] = Rating{UserID: r.UserID(), RestaurantID: r.RestaurantID(), Value: r.Value()}
	}
	return out, nil
}

// LoadCatalog reads a Zomato-style export. Files ending in .parquet are read
// as parquet, everything else as latin-1 CSV. Rows without cuisines or
// aggregate rating are dropped; survivors get ids 0..n-1 in file order.
func LoadCatalog(path string) ([]Restaurant, error) {
	format := datasetrepo.FormatCSV
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		format = datasetrepo.FormatParquet
	}
	items, _, err := datasetrepo.Load(path, format, datasetrepo.EncodingLatin1)
	if err != nil {
		return nil, fmt.Errorf("recodex: load catalog: %w", err)
	}
	out := make([]Restaurant, len(items))
	for i, it := range items {
		out[i] = fromRestaurant(it)
	}
	return out, nil
}

// SyntheticRatings draws count random ratings by users 101-105, reproducible
// for a non-zero seed.
func SyntheticRatings(restaurants []Restaurant, count int, seed int64) ([]Rating, error) {
	cat, err := toCatalog(restaurants)
	if err != nil {
		return nil, err
	}
	rs := datasetuc.SyntheticRatings(cat, datasetuc.SyntheticConfig{Count: count, Seed: seed})
	out := make([]Rating, len(rs))
	for i, r := range rs {
		out[i] = Rating{UserID: r.UserID(), RestaurantID: r.RestaurantID(), Value: r.Value()}
	}
	return out, nil
}

func fromRestaurant(r restaurant.Restaurant) Restaurant {
	return Restaurant{
		ID:              r.ID(),
		Name:            r.Name(),
		Cuisines:        r.PrimaryCuisine(),
		CostForTwo:      r.CostForTwo(),
		City:            r.City(),
		AggregateRating: r.AggregateRating(),
	}
}

func fromRecommendations(recs []recommenduc.Recommendation) []Recommendation {
	if recs == nil {
		return nil
	}
	out := make([]Recommendation, len(recs))
	for i, r := range recs {
		out[i] = Recommendation{RestaurantID: r.RestaurantID, Name: r.Name, Score: r.Score}
	}
	return out
}
