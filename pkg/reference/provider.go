package reference

import "go.uber.org/zap"

// Provider fetches reference records for a crop and index from some
// external source.
type Provider interface {
	FetchReferences(crop, index string) ([]Record, error)
}

// fallbackAverages backs the reference-database record handed out when the
// external fetch fails. Values mirror the default threshold midpoints.
var fallbackAverages = map[string]float64{
	"NDVI": 0.62,
	"NDMI": 0.28,
	"NDRE": 0.20,
}

// FallbackRecord is the synthetic reference used when no external source is
// reachable. It is tagged SourceFallback so callers can tell it apart from
// genuine data.
func FallbackRecord(crop, index string) Record {
	avg, ok := fallbackAverages[index]
	if !ok {
		avg = 0.5
	}
	return Record{
		Name:        "Reference database baseline",
		Average:     avg,
		Reliability: TierMedium,
		CropType:    crop,
		Source:      SourceFallback,
	}
}

// Resolver wraps a Provider and degrades to the fallback record instead of
// failing when the provider errors or returns nothing.
type Resolver struct {
	provider Provider
	log      *zap.Logger
}

func NewResolver(p Provider, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{provider: p, log: log}
}

func (r *Resolver) Fetch(crop, index string) []Record {
	if r.provider != nil {
		recs, err := r.provider.FetchReferences(crop, index)
		if err == nil && len(recs) > 0 {
			return recs
		}
		if err != nil {
			r.log.Warn("reference fetch failed, using fallback",
				zap.String("crop", crop), zap.String("index", index), zap.Error(err))
		}
	}
	return []Record{FallbackRecord(crop, index)}
}
