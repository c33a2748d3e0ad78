package reference

import (
	"fmt"
	"math"

	"cropwatch/entities"
)

// ReliabilityTier labels the confidence of an external reference source.
// Lower reliability widens the accepted tolerance.
type ReliabilityTier string

const (
	TierHigh   ReliabilityTier = "high"
	TierMedium ReliabilityTier = "medium"
	TierLow    ReliabilityTier = "low"
)

// Source tags let callers tell genuine external data from the built-in
// fallback handed out when every external fetch fails.
const (
	SourceExternal = "external"
	SourceFallback = "reference-database"
)

// Record is one external reference value for an index.
type Record struct {
	Name        string          `json:"name"`
	Average     float64         `json:"average"`
	Reliability ReliabilityTier `json:"reliability"`
	CropType    string          `json:"crop_type"`
	Source      string          `json:"source"`
}

// MatchStatus buckets how close a measurement sits to one reference.
type MatchStatus string

const (
	MatchExcellent    MatchStatus = "excellent"
	MatchGood         MatchStatus = "good"
	MatchQuestionable MatchStatus = "questionable"
	MatchPoor         MatchStatus = "poor"
)

// Comparison is the outcome against a single reference record.
type Comparison struct {
	Reference            Record      `json:"reference"`
	AbsoluteDifference   float64     `json:"absolute_difference"`
	PercentageDifference float64     `json:"percentage_difference"`
	ToleranceThreshold   float64     `json:"tolerance_threshold"`
	Status               MatchStatus `json:"status"`
	WithinTolerance      bool        `json:"within_tolerance"`
}

// Summary aggregates all per-reference comparisons.
type Summary struct {
	Comparisons     []Comparison          `json:"comparisons"`
	MatchPercentage int                   `json:"match_percentage"`
	OverallStatus   entities.HealthStatus `json:"overall_status"`
	Message         string                `json:"message"`
}

// tolerancePercent maps a reliability tier to its tolerance threshold in
// percent of the reference value.
func tolerancePercent(tier ReliabilityTier) float64 {
	switch tier {
	case TierHigh:
		return 10
	case TierMedium:
		return 15
	case TierLow:
		return 20
	default:
		return 20
	}
}

// Compare evaluates a measured mean against one reference record.
func Compare(measured float64, ref Record) Comparison {
	threshold := tolerancePercent(ref.Reliability)
	abs := math.Abs(measured - ref.Average)
	pct := 0.0
	if ref.Average != 0 {
		pct = abs / math.Abs(ref.Average) * 100
	}
	var status MatchStatus
	switch {
	case pct <= threshold*0.5:
		status = MatchExcellent
	case pct <= threshold:
		status = MatchGood
	case pct <= threshold*1.5:
		status = MatchQuestionable
	default:
		status = MatchPoor
	}
	return Comparison{
		Reference:            ref,
		AbsoluteDifference:   abs,
		PercentageDifference: pct,
		ToleranceThreshold:   threshold,
		Status:               status,
		WithinTolerance:      pct <= threshold,
	}
}

// CompareAll runs the measured mean against every reference and summarizes
// the match rate. References with a zero average are skipped.
func CompareAll(measured float64, refs []Record) Summary {
	comparisons := make([]Comparison, 0, len(refs))
	within := 0
	for _, ref := range refs {
		if ref.Average == 0 {
			continue
		}
		c := Compare(measured, ref)
		if c.WithinTolerance {
			within++
		}
		comparisons = append(comparisons, c)
	}

	s := Summary{Comparisons: comparisons}
	if len(comparisons) == 0 {
		s.OverallStatus = entities.StatusUnknown
		s.Message = "No usable reference data to compare against"
		return s
	}
	s.MatchPercentage = int(math.Round(100 * float64(within) / float64(len(comparisons))))
	switch {
	case s.MatchPercentage >= 70:
		s.OverallStatus = entities.StatusGood
		s.Message = fmt.Sprintf("Measurement agrees with %d%% of reference sources", s.MatchPercentage)
	case s.MatchPercentage >= 40:
		s.OverallStatus = entities.StatusModerate
		s.Message = fmt.Sprintf("Measurement partially agrees with reference sources (%d%%)", s.MatchPercentage)
	default:
		s.OverallStatus = entities.StatusPoor
		s.Message = fmt.Sprintf("Measurement deviates from most reference sources (%d%% match)", s.MatchPercentage)
	}
	return s
}
