package repository

import (
	"context"

	"github.com/diillson/cancer-stats-dashboard-go/internal/domain/entity"
)

// DatasetRepository loads the cancer statistics table from a source path or URL.
type DatasetRepository interface {
	// LoadObservations reads every usable row of source. Skipped is the number of
	// rows dropped because their value was suppressed (empty).
	LoadObservations(ctx context.Context, source string) (observations []entity.Observation, skipped int, err error)
}
