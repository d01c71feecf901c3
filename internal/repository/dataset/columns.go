// Package dataset reads the restaurant catalog from Zomato-style exports.
//
// Surviving rows get dense ids 0..n-1 in file order. Rows without a cuisine
// list or a parseable aggregate rating are dropped.
package dataset

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/recodex/internal/domain/restaurant"
)

// Column names of the source export.
const (
	ColName            = "Restaurant Name"
	ColCuisines        = "Cuisines"
	ColAggregateRating = "Aggregate rating"
	ColCostForTwo      = "Average Cost for two"
	ColCity            = "City"
)

// Format of a catalog file.
type Format string

// Supported catalog formats.
const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// Stats summarizes a catalog read.
type Stats struct {
	Rows    int // rows read, header excluded
	Kept    int
	Dropped int
}

// rawRow is one source row before validation.
type rawRow struct {
	name     string
	cuisines string
	rating   *float64
	cost     *float64
	city     string
}

// collector assigns dense ids and applies the drop rules.
type collector struct {
	items []restaurant.Restaurant
	stats Stats
}

func (c *collector) add(r rawRow) {
	c.stats.Rows++
	if strings.TrimSpace(r.cuisines) == "" || r.rating == nil {
		c.stats.Dropped++
		return
	}
	cost := 0.0
	if r.cost != nil {
		cost = *r.cost
	}
	item, err := restaurant.New(len(c.items), strings.TrimSpace(r.name), r.cuisines, cost, strings.TrimSpace(r.city), *r.rating)
	if err != nil {
		c.stats.Dropped++
		return
	}
	c.items = append(c.items, item)
	c.stats.Kept++
}

// Load reads a catalog file in the given format.
func Load(path string, format Format, enc Encoding) ([]restaurant.Restaurant, Stats, error) {
	switch format {
	case FormatCSV, "":
		return LoadCSV(path, enc)
	case FormatParquet:
		return LoadParquet(path)
	default:
		return nil, Stats{}, fmt.Errorf("unsupported catalog format %q", format)
	}
}
