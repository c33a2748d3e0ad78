package imagery

import (
	"context"
	"fmt"
	"hash/fnv"

	"cropwatch/entities"
)

type mockClient struct{}

// NewMock returns a deterministic stand-in for the remote service: the same
// polygon always yields the same statistics, which keeps evaluation flows
// reproducible without network access.
func NewMock() Client { return &mockClient{} }

func (m *mockClient) FetchStatistics(_ context.Context, geometry entities.Ring, dateRange entities.DateRange) (RawAnalysis, error) {
	h := fnv.New32a()
	for _, p := range geometry {
		fmt.Fprintf(h, "%.6f,%.6f;", p[0], p[1])
	}
	seed := float64(h.Sum32()%1000) / 1000.0 // [0,1)

	ndvi := 0.35 + seed*0.5
	ndmi := 0.10 + seed*0.3
	ndre := 0.05 + seed*0.25

	return RawAnalysis{
		DateRange: dateRange,
		Stats: map[string]any{
			"NDVI_mean": ndvi, "NDVI_min": ndvi - 0.15, "NDVI_max": ndvi + 0.12, "NDVI_stdDev": 0.06,
			"NDMI_mean": ndmi, "NDMI_min": ndmi - 0.10, "NDMI_max": ndmi + 0.08, "NDMI_stdDev": 0.05,
			"NDRE_mean": ndre, "NDRE_min": ndre - 0.08, "NDRE_max": ndre + 0.06, "NDRE_stdDev": 0.04,
		},
		TileURLs: map[string]string{
			"NDVI": fmt.Sprintf("https://tiles.invalid/ndvi/%d", h.Sum32()),
			"NDMI": fmt.Sprintf("https://tiles.invalid/ndmi/%d", h.Sum32()),
			"NDRE": fmt.Sprintf("https://tiles.invalid/ndre/%d", h.Sum32()),
		},
	}, nil
}
