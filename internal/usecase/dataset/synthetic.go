package dataset

import (
	"math/rand"
	"time"

	"github.com/kailas-cloud/recodex/internal/domain/catalog"
	"github.com/kailas-cloud/recodex/internal/domain/rating"
)

// Demo rating history defaults.
const (
	DefaultSyntheticCount = 100
)

// DefaultSyntheticUsers are the demo user ids.
var DefaultSyntheticUsers = []int{101, 102, 103, 104, 105}

// SyntheticConfig shapes the generated rating history.
type SyntheticConfig struct {
	Count int   // zero means DefaultSyntheticCount
	Users []int // empty means DefaultSyntheticUsers
	Seed  int64 // zero seeds from the clock
}

// SyntheticRatings draws Count ratings: a random user, a random catalog
// restaurant and a uniform 1..5 star value each. The same seed and catalog
// give the same history.
func SyntheticRatings(cat *catalog.Catalog, cfg SyntheticConfig) []rating.Rating {
	if cat == nil || cat.Len() == 0 {
		return nil
	}
	count := cfg.Count
	if count <= 0 {
		count = DefaultSyntheticCount
	}
	users := cfg.Users
	if len(users) == 0 {
		users = DefaultSyntheticUsers
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // demo data

	out := make([]rating.Rating, count)
	for i := range out {
		user := users[rng.Intn(len(users))]
		rest := cat.At(rng.Intn(cat.Len())).ID()
		stars := rating.MinValue + rng.Intn(rating.MaxValue-rating.MinValue+1)
		out[i] = rating.MustNew(user, rest, stars)
	}
	return out
}
