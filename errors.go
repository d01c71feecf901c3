package recodex

import "github.com/kailas-cloud/recodex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound            = domain.ErrNotFound
	ErrInvalidParameter    = domain.ErrInvalidParameter
	ErrInvalidRating       = domain.ErrInvalidRating
	ErrInvalidRestaurant   = domain.ErrInvalidRestaurant
	ErrDuplicateRestaurant = domain.ErrDuplicateRestaurant
)
