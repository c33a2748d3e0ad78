package entities

import "time"

// HealthStatus classifies a vegetation index reading or an overall diagnosis.
type HealthStatus string

const (
	StatusGood     HealthStatus = "good"
	StatusModerate HealthStatus = "moderate"
	StatusPoor     HealthStatus = "poor"
	StatusUnknown  HealthStatus = "unknown"
)

// IndexStats holds the pre-aggregated statistics the imagery service returns
// for one index. Absent stats stay nil rather than defaulting to zero.
type IndexStats struct {
	Mean   *float64 `json:"mean,omitempty"`
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
	StdDev *float64 `json:"std_dev,omitempty"`
}

type DateRange struct {
	Start string `json:"start"` // YYYY-MM-DD
	End   string `json:"end"`
}

// IndexHealth is the classified state of a single index.
type IndexHealth struct {
	Status      HealthStatus `json:"status"`
	StyleClass  string       `json:"style_class"`
	Description string       `json:"description,omitempty"`
}

// HealthEvaluation is derived from raw statistics, never persisted on its own.
type HealthEvaluation struct {
	Overall IndexHealth `json:"overall"`
	NDVI    IndexHealth `json:"ndvi"`
	NDMI    IndexHealth `json:"ndmi"`
	NDRE    IndexHealth `json:"ndre"`
}

// AnalysisSnapshot is the outcome of one analysis run, embedded in the Field
// that was analyzed and archived independently as an AnalysisResult.
type AnalysisSnapshot struct {
	DateRange  DateRange         `json:"date_range"`
	NDVI       *IndexStats       `json:"ndvi,omitempty"`
	NDMI       *IndexStats       `json:"ndmi,omitempty"`
	NDRE       *IndexStats       `json:"ndre,omitempty"`
	TileURLs   map[string]string `json:"tile_urls,omitempty"`
	Evaluation *HealthEvaluation `json:"evaluation,omitempty"`
	Advisory   string            `json:"advisory,omitempty"`
	AnalyzedAt time.Time         `json:"analyzed_at"`
}

type AnalysisResult struct {
	ID        string           `json:"id"`
	FieldID   string           `json:"field_id"`
	FieldName string           `json:"field_name"`
	Snapshot  AnalysisSnapshot `json:"snapshot"`
}

// AnalysisHistoryEntry is the lightweight log line recorded alongside every
// archived result.
type AnalysisHistoryEntry struct {
	ID            string       `json:"id"`
	Timestamp     time.Time    `json:"timestamp"`
	FieldName     string       `json:"field_name"`
	OverallStatus HealthStatus `json:"overall_status"`
	NDVIMean      *float64     `json:"ndvi_mean,omitempty"`
}
