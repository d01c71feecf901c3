package rating

import (
	"fmt"
	"strconv"

	domrating "github.com/kailas-cloud/recodex/internal/domain/rating"
)

const (
	fieldUser       = "user"
	fieldRestaurant = "restaurant"
	fieldRating     = "rating"
)

// buildHashFields converts a rating into a flat map[string]string for HSET.
func buildHashFields(r domrating.Rating) map[string]string {
	return map[string]string{
		fieldUser:       strconv.Itoa(r.UserID()),
		fieldRestaurant: strconv.Itoa(r.RestaurantID()),
		fieldRating:     strconv.Itoa(r.Value()),
	}
}

// parseHashFields converts a stored hash back into a validated rating.
func parseHashFields(m map[string]string) (domrating.Rating, error) {
	user, err := intField(m, fieldUser)
	if err != nil {
		return domrating.Rating{}, err
	}
	restaurant, err := intField(m, fieldRestaurant)
	if err != nil {
		return domrating.Rating{}, err
	}
	value, err := intField(m, fieldRating)
	if err != nil {
		return domrating.Rating{}, err
	}
	return domrating.New(user, restaurant, value)
}

func intField(m map[string]string, name string) (int, error) {
	raw, ok := m[name]
	if !ok {
		return 0, fmt.Errorf("missing field %q", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", name, err)
	}
	return v, nil
}
