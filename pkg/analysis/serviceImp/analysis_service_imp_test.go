package serviceImp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cropwatch/entities"
	"cropwatch/pkg/advisor"
	"cropwatch/pkg/imagery"
	"cropwatch/pkg/reference"
	"cropwatch/pkg/storage"
	"cropwatch/pkg/store"
	"cropwatch/pkg/vegetation"
)

type stubRefProvider struct{ recs []reference.Record }

func (s stubRefProvider) FetchReferences(crop, index string) ([]reference.Record, error) {
	return s.recs, nil
}

func newTestService(t *testing.T) (*analysisSvc, *store.Store) {
	t.Helper()
	st := store.New(storage.NewMemory(), store.Limits{
		MaxFields: 10, MaxDirectories: 5, MaxResults: 10, MaxHistory: 10,
	}, nil)
	refs := reference.NewResolver(stubRefProvider{recs: []reference.Record{
		{Name: "survey", Average: 0.60, Reliability: reference.TierHigh, Source: reference.SourceExternal},
	}}, nil)
	svc := New(st, imagery.NewMock(), vegetation.DefaultTable(), advisor.NewMock(), refs)
	return svc.(*analysisSvc), st
}

func testRing() entities.Ring {
	return entities.Ring{{139.0, 35.0}, {139.1, 35.0}, {139.1, 35.1}, {139.0, 35.0}}
}

func TestAnalyzePersistsSnapshotAndArchivesResult(t *testing.T) {
	svc, st := newTestService(t)
	f, err := st.AddField(entities.Field{Name: "north plot", Geometry: testRing()})
	require.NoError(t, err)

	dr := entities.DateRange{Start: "2025-05-01", End: "2025-05-31"}
	out, err := svc.Analyze(context.Background(), f.ID, dr)
	require.NoError(t, err)

	require.NotNil(t, out.Field.LastAnalysis)
	assert.Equal(t, dr, out.Field.LastAnalysis.DateRange)
	assert.NotNil(t, out.Field.LastAnalysis.Evaluation)
	assert.NotEmpty(t, out.Field.LastAnalysis.Advisory)
	assert.False(t, out.Field.LastAnalysis.AnalyzedAt.IsZero())

	assert.Equal(t, f.ID, out.Result.FieldID)
	assert.Equal(t, "north plot", out.Result.FieldName)
	assert.NotEmpty(t, out.Result.ID)

	stored, err := st.GetFieldByID(f.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastAnalysis)

	results, err := st.ListAnalysisResults()
	require.NoError(t, err)
	require.Len(t, results, 1)
	history, err := st.ListAnalysisHistory()
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, results[0].ID, history[0].ID)
}

func TestAnalyzeIsDeterministicForSameGeometry(t *testing.T) {
	svc, st := newTestService(t)
	f, err := st.AddField(entities.Field{Name: "plot", Geometry: testRing()})
	require.NoError(t, err)

	dr := entities.DateRange{Start: "2025-05-01", End: "2025-05-31"}
	first, err := svc.Analyze(context.Background(), f.ID, dr)
	require.NoError(t, err)
	second, err := svc.Analyze(context.Background(), f.ID, dr)
	require.NoError(t, err)

	assert.Equal(t, first.Field.LastAnalysis.NDVI, second.Field.LastAnalysis.NDVI)
	assert.Equal(t, first.Field.LastAnalysis.Evaluation, second.Field.LastAnalysis.Evaluation)
}

func TestAnalyzeUnknownField(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Analyze(context.Background(), "field_missing", entities.DateRange{})
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestCompareResolvesReferences(t *testing.T) {
	svc, st := newTestService(t)
	f, err := st.AddField(entities.Field{Name: "plot", Geometry: testRing()})
	require.NoError(t, err)

	out, err := svc.Analyze(context.Background(), f.ID, entities.DateRange{Start: "2025-05-01", End: "2025-05-31"})
	require.NoError(t, err)

	summary, err := svc.Compare(out.Result.ID, "ndvi")
	require.NoError(t, err)
	require.Len(t, summary.Comparisons, 1)
	assert.Equal(t, reference.SourceExternal, summary.Comparisons[0].Reference.Source)
}

func TestCompareMissingMeasurementIsNotAnError(t *testing.T) {
	svc, st := newTestService(t)
	r, err := st.RecordAnalysisResult(entities.AnalysisResult{FieldID: "field_x", FieldName: "bare"})
	require.NoError(t, err)

	summary, err := svc.Compare(r.ID, "NDVI")
	require.NoError(t, err)
	assert.Equal(t, entities.StatusUnknown, summary.OverallStatus)
	assert.Empty(t, summary.Comparisons)
}

func TestCompareRejectsUnknownIndex(t *testing.T) {
	svc, st := newTestService(t)
	r, err := st.RecordAnalysisResult(entities.AnalysisResult{FieldID: "field_x"})
	require.NoError(t, err)

	_, err = svc.Compare(r.ID, "EVI")
	assert.ErrorIs(t, err, entities.ErrInvalidFormat)

	_, err = svc.Compare("analysis_missing", "NDVI")
	assert.ErrorIs(t, err, entities.ErrNotFound)
}
