package v1

import (
	"github.com/kopilka/backend/internal/cache"
	"github.com/kopilka/backend/internal/models"
)

// summaryCache holds computed month summaries. It is invalidated on every
// write because nearly every resource feeds into the aggregation and the
// recomputation is cheap enough that precise per-month tracking would not
// pay for its complexity.
var summaryCache = cache.New[models.MonthSummary]()

func invalidateSummaries() {
	summaryCache.InvalidateAll()
}
