package serviceImp

import (
	"context"
	"fmt"
	"strings"

	"cropwatch/entities"
	"cropwatch/pkg/advisor"
	"cropwatch/pkg/analysis/service"
	"cropwatch/pkg/imagery"
	"cropwatch/pkg/reference"
	"cropwatch/pkg/store"
	"cropwatch/pkg/vegetation"
)

type analysisSvc struct {
	store      *store.Store
	imagery    imagery.Client
	thresholds *vegetation.ThresholdTable
	advisor    advisor.Client
	refs       *reference.Resolver
}

func New(st *store.Store, img imagery.Client, thresholds *vegetation.ThresholdTable, adv advisor.Client, refs *reference.Resolver) service.AnalysisService {
	return &analysisSvc{store: st, imagery: img, thresholds: thresholds, advisor: adv, refs: refs}
}

func (s *analysisSvc) Analyze(ctx context.Context, fieldID string, dateRange entities.DateRange) (service.Outcome, error) {
	field, err := s.store.GetFieldByID(fieldID)
	if err != nil {
		return service.Outcome{}, err
	}

	raw, err := s.imagery.FetchStatistics(ctx, field.Geometry, dateRange)
	if err != nil {
		return service.Outcome{}, fmt.Errorf("fetch statistics: %w", err)
	}

	set := vegetation.ParseStats(raw.Stats)
	eval := s.thresholds.EvaluateIndices(set, field.Crop)
	diag := vegetation.Diagnose(eval.NDVI.Status, eval.NDMI.Status, eval.NDRE.Status)
	advisory := s.advisor.Advise(&field, eval, diag)

	snap := entities.AnalysisSnapshot{
		DateRange:  raw.DateRange,
		NDVI:       set.NDVI,
		NDMI:       set.NDMI,
		NDRE:       set.NDRE,
		TileURLs:   raw.TileURLs,
		Evaluation: &eval,
		Advisory:   advisory,
	}

	field, err = s.store.SaveFieldAnalysis(field.ID, snap)
	if err != nil {
		return service.Outcome{}, err
	}
	result, err := s.store.RecordAnalysisResult(entities.AnalysisResult{
		FieldID:   field.ID,
		FieldName: field.Name,
		Snapshot:  *field.LastAnalysis,
	})
	if err != nil {
		return service.Outcome{}, err
	}
	return service.Outcome{Field: field, Result: result, Diagnosis: diag}, nil
}

func (s *analysisSvc) Compare(resultID, index string) (reference.Summary, error) {
	result, err := s.store.GetAnalysisResult(resultID)
	if err != nil {
		return reference.Summary{}, err
	}

	var stats *entities.IndexStats
	index = strings.ToUpper(strings.TrimSpace(index))
	switch index {
	case "NDVI":
		stats = result.Snapshot.NDVI
	case "NDMI":
		stats = result.Snapshot.NDMI
	case "NDRE":
		stats = result.Snapshot.NDRE
	default:
		return reference.Summary{}, fmt.Errorf("%w: unknown index %q", entities.ErrInvalidFormat, index)
	}
	if stats == nil || stats.Mean == nil {
		return reference.Summary{
			OverallStatus: entities.StatusUnknown,
			Message:       fmt.Sprintf("Result has no %s measurement to compare", index),
		}, nil
	}

	crop := ""
	if field, err := s.store.GetFieldByID(result.FieldID); err == nil {
		crop = field.Crop
	}
	refs := s.refs.Fetch(crop, index)
	return reference.CompareAll(*stats.Mean, refs), nil
}
