package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a similarity or catalog lookup for an unknown id.
	ErrNotFound = errors.New("not found")
	// ErrInvalidParameter signals a rejected request parameter (top_n, alpha).
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrInvalidRating signals a rating outside the 1-5 range or with a bad reference.
	ErrInvalidRating = errors.New("invalid rating")
	// ErrInvalidRestaurant signals a restaurant row missing required attributes.
	ErrInvalidRestaurant = errors.New("invalid restaurant")
	// ErrDuplicateRestaurant signals two catalog rows sharing an id.
	ErrDuplicateRestaurant = errors.New("duplicate restaurant id")
	// ErrNotReady signals that no recommendation snapshot has been built yet.
	ErrNotReady = errors.New("recommendation engine not ready")
)

// InvalidParameterError wraps ErrInvalidParameter with the offending parameter.
type InvalidParameterError struct {
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidParameter.Error(), e.Param, e.Reason)
}

func (e *InvalidParameterError) Unwrap() error { return ErrInvalidParameter }

// NewInvalidParameter creates an invalid parameter error.
func NewInvalidParameter(param, reason string) error {
	return &InvalidParameterError{Param: param, Reason: reason}
}

// NotFoundError wraps ErrNotFound with the kind and id of the missing entity.
type NotFoundError struct {
	Kind string
	ID   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d %s", e.Kind, e.ID, ErrNotFound.Error())
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFound creates a not found error for the given entity kind.
func NewNotFound(kind string, id int) error {
	return &NotFoundError{Kind: kind, ID: id}
}
