package restaurant

import (
	"fmt"
	"math"
	"strings"

	"github.com/kailas-cloud/recodex/internal/domain"
)

// Restaurant is a catalog entry (immutable value object).
type Restaurant struct {
	id              int
	name            string
	primaryCuisine  string
	costForTwo      float64
	city            string
	aggregateRating float64
}

// New validates and creates a Restaurant.
// cuisines is the raw comma-separated cuisine list; only its first token is kept.
func New(id int, name, cuisines string, costForTwo float64, city string, aggregateRating float64) (Restaurant, error) {
	if id < 0 {
		return Restaurant{}, fmt.Errorf("%w: id must be non-negative, got %d", domain.ErrInvalidRestaurant, id)
	}
	primary := PrimaryCuisine(cuisines)
	if primary == "" {
		return Restaurant{}, fmt.Errorf("%w: restaurant %d has no cuisine", domain.ErrInvalidRestaurant, id)
	}
	if math.IsNaN(aggregateRating) {
		return Restaurant{}, fmt.Errorf("%w: restaurant %d has no aggregate rating", domain.ErrInvalidRestaurant, id)
	}
	if math.IsNaN(costForTwo) || math.IsInf(costForTwo, 0) || costForTwo < 0 {
		return Restaurant{}, fmt.Errorf("%w: restaurant %d has invalid cost %v", domain.ErrInvalidRestaurant, id, costForTwo)
	}

	return Restaurant{
		id:              id,
		name:            name,
		primaryCuisine:  primary,
		costForTwo:      costForTwo,
		city:            city,
		aggregateRating: aggregateRating,
	}, nil
}

// Reconstruct creates a Restaurant without validation (storage hydration).
func Reconstruct(
	id int, name, primaryCuisine string, costForTwo float64, city string, aggregateRating float64,
) Restaurant {
	return Restaurant{
		id: id, name: name, primaryCuisine: primaryCuisine,
		costForTwo: costForTwo, city: city, aggregateRating: aggregateRating,
	}
}

// PrimaryCuisine returns the first comma-separated token of a raw cuisine list.
func PrimaryCuisine(cuisines string) string {
	first, _, _ := strings.Cut(cuisines, ",")
	return strings.TrimSpace(first)
}

// ID returns the dense catalog identifier.
func (r Restaurant) ID() int { return r.id }

// Name returns the restaurant name.
func (r Restaurant) Name() string { return r.name }

// PrimaryCuisine returns the cuisine used for content similarity.
func (r Restaurant) PrimaryCuisine() string { return r.primaryCuisine }

// CostForTwo returns the average cost for two.
func (r Restaurant) CostForTwo() float64 { return r.costForTwo }

// City returns the restaurant city.
func (r Restaurant) City() string { return r.city }

// AggregateRating returns the aggregate rating from the source dataset.
func (r Restaurant) AggregateRating() float64 { return r.aggregateRating }
