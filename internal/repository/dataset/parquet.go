package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/kailas-cloud/recodex/internal/domain/restaurant"
)

// parquetRow is the write-side schema; the reader resolves columns by name.
type parquetRow struct {
	Name     string   `parquet:"Restaurant Name"`
	Cuisines *string  `parquet:"Cuisines"`
	Rating   *float64 `parquet:"Aggregate rating"`
	Cost     float64  `parquet:"Average Cost for two"`
	City     string   `parquet:"City"`
}

// WriteParquet exports a catalog with the source column names.
func WriteParquet(path string, items []restaurant.Restaurant) error {
	rows := make([]parquetRow, len(items))
	for i, it := range items {
		cuisine := it.PrimaryCuisine()
		rating := it.AggregateRating()
		rows[i] = parquetRow{
			Name:     it.Name(),
			Cuisines: &cuisine,
			Rating:   &rating,
			Cost:     it.CostForTwo(),
			City:     it.City(),
		}
	}
	if err := parquet.WriteFile(filepath.Clean(path), rows); err != nil {
		return fmt.Errorf("write parquet: %w", err)
	}
	return nil
}

// LoadParquet reads a catalog parquet file.
func LoadParquet(path string) ([]restaurant.Restaurant, Stats, error) {
	h, err := openParquet(path)
	if err != nil {
		return nil, Stats{}, err
	}
	defer h.Close()

	cols := resolveParquetColumns(h.pf)
	if cols.cuisines < 0 || cols.rating < 0 {
		return nil, Stats{}, fmt.Errorf("catalog schema must contain %q and %q", ColCuisines, ColAggregateRating)
	}

	var c collector
	buf := make([]parquet.Row, 1000)
	for _, rg := range h.pf.RowGroups() {
		rows := parquet.NewRowGroupReader(rg)
		for {
			n, readErr := rows.ReadRows(buf)
			for i := 0; i < n; i++ {
				c.add(cols.row(buf[i]))
			}
			if readErr != nil {
				if errors.Is(readErr, io.EOF) {
					break
				}
				return nil, c.stats, fmt.Errorf("read rows: %w", readErr)
			}
		}
	}
	return c.items, c.stats, nil
}

// parquetColumns holds leaf column indexes, -1 when absent.
type parquetColumns struct {
	name, cuisines, rating, cost, city int
}

func resolveParquetColumns(pf *parquet.File) parquetColumns {
	cols := parquetColumns{name: -1, cuisines: -1, rating: -1, cost: -1, city: -1}
	for i, path := range pf.Schema().Columns() {
		if len(path) == 0 {
			continue
		}
		switch path[0] {
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
	return cols
}

func (c parquetColumns) row(row parquet.Row) rawRow {
	var r rawRow
	for _, v := range row {
		if v.IsNull() {
			continue
		}
		switch v.Column() {
		case c.name:
			r.name = v.String()
		case c.cuisines:
			r.cuisines = v.String()
		case c.rating:
			r.rating = numericValue(v)
		case c.cost:
			r.cost = numericValue(v)
		case c.city:
			r.city = v.String()
		}
	}
	return r
}

// numericValue accepts integer and floating point physical types.
func numericValue(v parquet.Value) *float64 {
	var f float64
	switch v.Kind() {
	case parquet.Double:
		f = v.Double()
	case parquet.Float:
		f = float64(v.Float())
	case parquet.Int32:
		f = float64(v.Int32())
	case parquet.Int64:
		f = float64(v.Int64())
	case parquet.ByteArray:
		return number(v.String())
	default:
		return nil
	}
	return &f
}

// parquetHandle wraps parquet.File + underlying os.File for proper cleanup.
type parquetHandle struct {
	pf   *parquet.File
	file *os.File
}

func (h *parquetHandle) Close() {
	_ = h.file.Close()
}

func openParquet(path string) (*parquetHandle, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	return &parquetHandle{pf: pf, file: f}, nil
}
