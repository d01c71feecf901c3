package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/kailas-cloud/recodex/internal/domain/restaurant"
)

// Encoding of a CSV export.
type Encoding string

// Supported encodings. The public Zomato dump is latin-1.
const (
	EncodingLatin1 Encoding = "latin1"
	EncodingUTF8   Encoding = "utf8"
)

// LoadCSV reads a catalog CSV file.
func LoadCSV(path string, enc Encoding) ([]restaurant.Restaurant, Stats, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadCSV(f, enc)
}

// ReadCSV parses a catalog CSV stream. Columns are located by header name.
func ReadCSV(r io.Reader, enc Encoding) ([]restaurant.Restaurant, Stats, error) {
	switch enc {
	case EncodingLatin1, "":
		r = charmap.ISO8859_1.NewDecoder().Reader(r)
	case EncodingUTF8:
	default:
		return nil, Stats{}, fmt.Errorf("unsupported encoding %q", enc)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, Stats{}, fmt.Errorf("read header: %w", err)
	}
	cols, err := resolveCSVColumns(header)
	if err != nil {
		return nil, Stats{}, err
	}

	var c collector
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, c.stats, fmt.Errorf("read row %d: %w", c.stats.Rows+1, err)
		}
		c.add(cols.row(rec))
	}
	return c.items, c.stats, nil
}

// csvColumns holds header positions, -1 when absent.
type csvColumns struct {
	name, cuisines, rating, cost, city int
}

func resolveCSVColumns(header []string) (csvColumns, error) {
	cols := csvColumns{name: -1, cuisines: -1, rating: -1, cost: -1, city: -1}
	for i, h := range header {
		switch strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) {
		case ColName:
			cols.name = i
		case ColCuisines:
			cols.cuisines = i
		case ColAggregateRating:
			cols.rating = i
		case ColCostForTwo:
			cols.cost = i
		case ColCity:
			cols.city = i
		}
	}
	if cols.cuisines < 0 || cols.rating < 0 {
		return cols, fmt.Errorf("catalog header must contain %q and %q", ColCuisines, ColAggregateRating)
	}
	return cols, nil
}

func (c csvColumns) row(rec []string) rawRow {
	return rawRow{
		name:     field(rec, c.name),
		cuisines: field(rec, c.cuisines),
		rating:   number(field(rec, c.rating)),
		cost:     number(field(rec, c.cost)),
		city:     field(rec, c.city),
	}
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

// number parses a float, nil when empty or malformed.
func number(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
