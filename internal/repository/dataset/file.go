package dataset

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/recodex/internal/domain/restaurant"
	"github.com/kailas-cloud/recodex/internal/logger"
)

// File reads the catalog from a file on every call.
type File struct {
	path   string
	format Format
	enc    Encoding
}

// NewFile creates a file-backed catalog reader.
func NewFile(path string, format Format, enc Encoding) *File {
	return &File{path: path, format: format, enc: enc}
}

// ReadCatalog loads and validates the catalog file.
func (f *File) ReadCatalog(ctx context.Context) ([]restaurant.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items, stats, err := Load(f.path, f.format, f.enc)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("Catalog loaded",
		zap.String("path", f.path),
		zap.String("format", string(f.format)),
		zap.Int("rows", stats.Rows),
		zap.Int("kept", stats.Kept),
		zap.Int("dropped", stats.Dropped),
	)
	return items, nil
}
