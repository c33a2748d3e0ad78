package service

import (
	"context"

	"cropwatch/entities"
	"cropwatch/pkg/reference"
	"cropwatch/pkg/vegetation"
)

// Outcome bundles everything one analysis run produced.
type Outcome struct {
	Field     entities.Field          `json:"field"`
	Result    entities.AnalysisResult `json:"result"`
	Diagnosis vegetation.Diagnosis    `json:"diagnosis"`
}

type AnalysisService interface {
	// Analyze fetches statistics for the field's polygon, classifies them,
	// renders advisory text and persists both the inline snapshot and the
	// archived result.
	Analyze(ctx context.Context, fieldID string, dateRange entities.DateRange) (Outcome, error)

	// Compare runs an archived result's measured mean for one index against
	// external reference values, degrading to the tagged fallback record
	// when no external source is reachable.
	Compare(resultID, index string) (reference.Summary, error)
}
