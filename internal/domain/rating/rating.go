package rating

import (
	"fmt"

	"github.com/kailas-cloud/recodex/internal/domain"
)

// Star rating bounds.
const (
	MinValue = 1
	MaxValue = 5
)

// Rating is one explicit (user, restaurant, stars) observation.
type Rating struct {
	userID       int
	restaurantID int
	value        int
}

// New validates and creates a Rating.
func New(userID, restaurantID, value int) (Rating, error) {
	if value < MinValue || value > MaxValue {
		return Rating{}, fmt.Errorf("%w: value must be between %d and %d, got %d",
			domain.ErrInvalidRating, MinValue, MaxValue, value)
	}
	if restaurantID < 0 {
		return Rating{}, fmt.Errorf("%w: restaurant id must be non-negative, got %d",
			domain.ErrInvalidRating, restaurantID)
	}
	return Rating{userID: userID, restaurantID: restaurantID, value: value}, nil
}

// MustNew is New for fixtures and literals; it panics on invalid input.
func MustNew(userID, restaurantID, value int) Rating {
	r, err := New(userID, restaurantID, value)
	if err != nil {
		panic(err)
	}
	return r
}

// UserID returns the rating author.
func (r Rating) UserID() int { return r.userID }

// RestaurantID returns the rated restaurant.
func (r Rating) RestaurantID() int { return r.restaurantID }

// Value returns the star value (1-5).
func (r Rating) Value() int { return r.value }
