// Package imagery defines the contract against the remote satellite
// imagery/analysis service. The production HTTP client lives outside this
// repository; the core only consumes already-resolved statistics.
package imagery

import (
	"context"

	"cropwatch/entities"
)

// RawAnalysis is what the remote service returns for one polygon: a flat
// statistics map keyed <INDEX>_<stat> plus tile layer references.
type RawAnalysis struct {
	DateRange entities.DateRange `json:"date_range"`
	Stats     map[string]any     `json:"stats"`
	TileURLs  map[string]string  `json:"tile_urls,omitempty"`
}

type Client interface {
	FetchStatistics(ctx context.Context, geometry entities.Ring, dateRange entities.DateRange) (RawAnalysis, error)
}
