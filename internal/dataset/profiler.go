package dataset

import (
	"context"

	"github.com/datadynamo/dynamo/internal/models"
	"gorm.io/gorm"
)

// Profiler computes type-specific statistics for a freshly uploaded dataset
// and writes the matching sub-profile row. Implementations live outside this
// backend; an absent or no-op profiler leaves the sub-profile unpopulated,
// which is a valid state.
type Profiler interface {
	Profile(ctx context.Context, db *gorm.DB, profile *models.DataProfile) error
}

// NoopProfiler skips profiling entirely.
type NoopProfiler struct{}

// Profile implements Profiler as a no-op.
func (NoopProfiler) Profile(ctx context.Context, db *gorm.DB, profile *models.DataProfile) error {
	return nil
}
