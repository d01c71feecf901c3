package recommend

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/kailas-cloud/recodex/internal/domain"
	"github.com/kailas-cloud/recodex/internal/logger"
)

// isClientError reports errors caused by the request rather than the engine.
func isClientError(err error) bool {
	return errors.Is(err, domain.ErrInvalidParameter) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrNotReady)
}

func loggerFrom(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	return logger.FromContextOr(ctx, fallback)
}
