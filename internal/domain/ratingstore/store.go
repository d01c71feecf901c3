// Package ratingstore holds the flat, ordered rating history.
package ratingstore

import (
	"fmt"
	"sort"

	"github.com/kailas-cloud/recodex/internal/domain"
	"github.com/kailas-cloud/recodex/internal/domain/catalog"
	"github.com/kailas-cloud/recodex/internal/domain/rating"
)

// Store is an immutable sequence of ratings. Duplicates are kept.
type Store struct {
	ratings []rating.Rating
	byUser  map[int][]int // user id -> positions in ratings, in insertion order
}

// New creates a store. Every rating must reference a restaurant in cat.
func New(cat *catalog.Catalog, ratings []rating.Rating) (*Store, error) {
	s := &Store{
		ratings: make([]rating.Rating, len(ratings)),
		byUser:  make(map[int][]int),
	}
	copy(s.ratings, ratings)
	for i, r := range s.ratings {
		if cat != nil && !cat.Contains(r.RestaurantID()) {
			return nil, fmt.Errorf("%w: rating %d references unknown restaurant %d",
				domain.ErrInvalidRating, i, r.RestaurantID())
		}
		s.byUser[r.UserID()] = append(s.byUser[r.UserID()], i)
	}
	return s, nil
}

// Len returns the number of recorded ratings, duplicates included.
func (s *Store) Len() int { return len(s.ratings) }

// All returns a copy of every rating in insertion order.
func (s *Store) All() []rating.Rating {
	out := make([]rating.Rating, len(s.ratings))
	copy(out, s.ratings)
	return out
}

// HasUser reports whether the user rated anything.
func (s *Store) HasUser(userID int) bool {
	_, ok := s.byUser[userID]
	return ok
}

// History returns the user's ratings in insertion order (nil if none).
func (s *Store) History(userID int) []rating.Rating {
	positions := s.byUser[userID]
	if len(positions) == 0 {
		return nil
	}
	out := make([]rating.Rating, len(positions))
	for i, p := range positions {
		out[i] = s.ratings[p]
	}
	return out
}

// RatedIDs returns the distinct restaurant ids the user rated, ascending.
func (s *Store) RatedIDs(userID int) []int {
	seen := make(map[int]struct{})
	for _, p := range s.byUser[userID] {
		seen[s.ratings[p].RestaurantID()] = struct{}{}
	}
	return sortedKeys(seen)
}

// Users returns the distinct user ids, ascending.
func (s *Store) Users() []int {
	ids := make([]int, 0, len(s.byUser))
	for id := range s.byUser {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Pivot is a dense user x restaurant rating matrix (unrated = 0).
type Pivot struct {
	Users       []int     // row ids, ascending
	Restaurants []int     // column ids, ascending
	Values      []float64 // row-major, len(Users)*len(Restaurants)
	userIndex   map[int]int
}

// Row returns the rating vector of the user at row i.
func (p *Pivot) Row(i int) []float64 {
	n := len(p.Restaurants)
	return p.Values[i*n : (i+1)*n]
}

// UserRow returns the row index of a user id.
func (p *Pivot) UserRow(userID int) (int, bool) {
	i, ok := p.userIndex[userID]
	return i, ok
}

// Pivot builds the user x restaurant matrix. When a (user, restaurant) pair
// occurs more than once the last rating wins.
func (s *Store) Pivot() *Pivot {
	restSet := make(map[int]struct{})
	for _, r := range s.ratings {
		restSet[r.RestaurantID()] = struct{}{}
	}

	p := &Pivot{
		Users:       s.Users(),
		Restaurants: sortedKeys(restSet),
	}
	p.userIndex = make(map[int]int, len(p.Users))
	for i, id := range p.Users {
		p.userIndex[id] = i
	}
	colIndex := make(map[int]int, len(p.Restaurants))
	for j, id := range p.Restaurants {
		colIndex[id] = j
	}

	n := len(p.Restaurants)
	p.Values = make([]float64, len(p.Users)*n)
	for _, r := range s.ratings {
		p.Values[p.userIndex[r.UserID()]*n+colIndex[r.RestaurantID()]] = float64(r.Value())
	}
	return p
}

func sortedKeys(m map[int]struct{}) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
