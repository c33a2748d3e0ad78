package vegetation

import (
	"strings"

	"cropwatch/entities"
)

// IndexSet groups the per-index statistics of one analysis run. Indices the
// imagery service did not deliver stay nil and classify as unknown.
type IndexSet struct {
	NDVI *entities.IndexStats
	NDMI *entities.IndexStats
	NDRE *entities.IndexStats
}

// ParseStats consumes the imagery service's flat statistics map, keyed
// <INDEX>_<stat> (NDVI_mean, NDMI_stdDev, ...). Unknown keys are ignored and
// absent keys leave the stat nil rather than zero.
func ParseStats(raw map[string]any) IndexSet {
	var set IndexSet
	for key, val := range raw {
		parts := strings.SplitN(key, "_", 2)
		if len(parts) != 2 {
			continue
		}
		num, ok := toFloat(val)
		if !ok {
			continue
		}
		stat := strings.ToLower(parts[1])
		switch stat {
		case "mean", "min", "max", "stddev":
		default:
			continue
		}
		var stats **entities.IndexStats
		switch strings.ToUpper(parts[0]) {
		case "NDVI":
			stats = &set.NDVI
		case "NDMI":
			stats = &set.NDMI
		case "NDRE":
			stats = &set.NDRE
		default:
			continue
		}
		if *stats == nil {
			*stats = &entities.IndexStats{}
		}
		v := num
		switch stat {
		case "mean":
			(*stats).Mean = &v
		case "min":
			(*stats).Min = &v
		case "max":
			(*stats).Max = &v
		case "stddev":
			(*stats).StdDev = &v
		}
	}
	return set
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Classify buckets a mean against the cutoffs. Both boundaries are
// inclusive; a missing mean is unknown, never an error.
func Classify(mean *float64, c Cutoffs) entities.HealthStatus {
	if mean == nil {
		return entities.StatusUnknown
	}
	switch {
	case *mean >= c.Good:
		return entities.StatusGood
	case *mean >= c.Moderate:
		return entities.StatusModerate
	default:
		return entities.StatusPoor
	}
}

// EvaluateIndices classifies each index against the crop's thresholds and
// aggregates the simple overall status. Pure: same inputs, same output.
func (t *ThresholdTable) EvaluateIndices(set IndexSet, crop string) entities.HealthEvaluation {
	cuts := t.For(crop)
	ndvi := Classify(mean(set.NDVI), cuts.NDVI)
	ndmi := Classify(mean(set.NDMI), cuts.NDMI)
	ndre := Classify(mean(set.NDRE), cuts.NDRE)

	overall := AggregateSimpleStatus(ndvi, ndmi, ndre)
	return entities.HealthEvaluation{
		Overall: indexHealth(overall, describeOverall(overall)),
		NDVI:    indexHealth(ndvi, describeNDVI(ndvi)),
		NDMI:    indexHealth(ndmi, describeNDMI(ndmi)),
		NDRE:    indexHealth(ndre, describeNDRE(ndre)),
	}
}

func mean(s *entities.IndexStats) *float64 {
	if s == nil {
		return nil
	}
	return s.Mean
}

// AggregateSimpleStatus maps each status to a score (good 3, moderate 2,
// poor 1, unknown 0), averages the three and thresholds the average.
func AggregateSimpleStatus(statuses ...entities.HealthStatus) entities.HealthStatus {
	total := 0.0
	for _, st := range statuses {
		total += score(st)
	}
	avg := total / float64(len(statuses))
	switch {
	case avg >= 2.5:
		return entities.StatusGood
	case avg >= 1.5:
		return entities.StatusModerate
	default:
		return entities.StatusPoor
	}
}

func score(st entities.HealthStatus) float64 {
	switch st {
	case entities.StatusGood:
		return 3
	case entities.StatusModerate:
		return 2
	case entities.StatusPoor:
		return 1
	default:
		return 0
	}
}

func indexHealth(st entities.HealthStatus, desc string) entities.IndexHealth {
	return entities.IndexHealth{Status: st, StyleClass: "status-" + string(st), Description: desc}
}

func describeOverall(st entities.HealthStatus) string {
	switch st {
	case entities.StatusGood:
		return "Crop condition is healthy across the measured indices"
	case entities.StatusModerate:
		return "Crop condition shows early signs of stress"
	case entities.StatusPoor:
		return "Crop condition needs attention"
	default:
		return "Not enough data to assess crop condition"
	}
}

func describeNDVI(st entities.HealthStatus) string {
	switch st {
	case entities.StatusGood:
		return "Dense, vigorous canopy"
	case entities.StatusModerate:
		return "Thinning or uneven canopy"
	case entities.StatusPoor:
		return "Sparse or stressed vegetation"
	default:
		return "No vegetation reading"
	}
}

func describeNDMI(st entities.HealthStatus) string {
	switch st {
	case entities.StatusGood:
		return "Adequate canopy moisture"
	case entities.StatusModerate:
		return "Moisture slightly below optimum"
	case entities.StatusPoor:
		return "Canopy is water stressed"
	default:
		return "No moisture reading"
	}
}

func describeNDRE(st entities.HealthStatus) string {
	switch st {
	case entities.StatusGood:
		return "Chlorophyll level in the healthy range"
	case entities.StatusModerate:
		return "Chlorophyll slightly low"
	case entities.StatusPoor:
		return "Possible nitrogen deficiency"
	default:
		return "No red-edge reading"
	}
}
