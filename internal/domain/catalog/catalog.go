// Package catalog holds the immutable in-memory restaurant table.
//
// Restaurants live in a dense arena; id -> position translation is kept here so
// similarity code can work on plain numeric arrays.
package catalog

import (
	"fmt"
	"math/rand"

	"github.com/kailas-cloud/recodex/internal/domain"
	"github.com/kailas-cloud/recodex/internal/domain/restaurant"
)

// Catalog is a read-only restaurant table.
type Catalog struct {
	items []restaurant.Restaurant
	index map[int]int // restaurant id -> position in items
}

// New creates a catalog. Restaurant ids must be unique.
func New(items []restaurant.Restaurant) (*Catalog, error) {
	c := &Catalog{
		items: make([]restaurant.Restaurant, len(items)),
		index: make(map[int]int, len(items)),
	}
	copy(c.items, items)
	for i := range c.items {
		id := c.items[i].ID()
		if _, dup := c.index[id]; dup {
			return nil, fmt.Errorf("%w: %d", domain.ErrDuplicateRestaurant, id)
		}
		c.index[id] = i
	}
	return c, nil
}

// Len returns the number of restaurants.
func (c *Catalog) Len() int { return len(c.items) }

// At returns the restaurant at arena position i.
func (c *Catalog) At(i int) restaurant.Restaurant { return c.items[i] }

// Position returns the arena position of a restaurant id.
func (c *Catalog) Position(id int) (int, bool) {
	pos, ok := c.index[id]
	return pos, ok
}

// Contains reports whether the id is in the catalog.
func (c *Catalog) Contains(id int) bool {
	_, ok := c.index[id]
	return ok
}

// Get returns a restaurant by id.
func (c *Catalog) Get(id int) (restaurant.Restaurant, error) {
	pos, ok := c.index[id]
	if !ok {
		return restaurant.Restaurant{}, domain.NewNotFound("restaurant", id)
	}
	return c.items[pos], nil
}

// Name returns the restaurant name, or "" for unknown ids.
func (c *Catalog) Name(id int) string {
	pos, ok := c.index[id]
	if !ok {
		return ""
	}
	return c.items[pos].Name()
}

// Sample draws min(n, Len()) distinct restaurant ids uniformly at random.
func (c *Catalog) Sample(rng *rand.Rand, n int) []int {
	if n > len(c.items) {
		n = len(c.items)
	}
	if n <= 0 {
		return nil
	}
	perm := rng.Perm(len(c.items))
	ids := make([]int, n)
	for i := 0; i < n; i++ {
		ids[i] = c.items[perm[i]].ID()
	}
	return ids
}
