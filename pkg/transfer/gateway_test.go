package transfer

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cropwatch/entities"
	"cropwatch/pkg/storage"
	"cropwatch/pkg/store"
)

func newTestStore(t *testing.T, lim store.Limits) *store.Store {
	t.Helper()
	return store.New(storage.NewMemory(), lim, nil)
}

func newTestGateway(t *testing.T, lim store.Limits) (*Gateway, *store.Store) {
	t.Helper()
	st := newTestStore(t, lim)
	g := New(st)
	g.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return g, st
}

func testRing() entities.Ring {
	return entities.Ring{{139.0, 35.0}, {139.1, 35.0}, {139.1, 35.1}, {139.0, 35.0}}
}

func defaultLimits() store.Limits {
	return store.Limits{MaxFields: 10, MaxDirectories: 5, MaxResults: 10, MaxHistory: 10}
}

func TestExportAllStampsDocument(t *testing.T) {
	g, st := newTestGateway(t, defaultLimits())
	_, err := st.AddField(entities.Field{Name: "north plot", Geometry: testRing()})
	require.NoError(t, err)

	doc, err := g.ExportAll()
	require.NoError(t, err)

	assert.Equal(t, FormatVersion, doc.Version)
	assert.Equal(t, "2025-06-01T12:00:00Z", doc.ExportDate)
	assert.Len(t, doc.Fields, 1)
	require.Len(t, doc.Directories, 1)
	assert.Equal(t, entities.DefaultDirectoryID, doc.Directories[0].ID)
}

func TestExportImportRoundTrip(t *testing.T) {
	g, st := newTestGateway(t, defaultLimits())

	dir, err := st.AddDirectory(entities.Directory{Name: "wheat fields", Crop: "wheat"})
	require.NoError(t, err)
	f1, err := st.AddField(entities.Field{Name: "north plot", DirectoryID: dir.ID, Geometry: testRing()})
	require.NoError(t, err)
	f2, err := st.AddField(entities.Field{Name: "south plot", Geometry: testRing()})
	require.NoError(t, err)

	doc, err := g.ExportFieldData()
	require.NoError(t, err)
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	g2, st2 := newTestGateway(t, defaultLimits())
	report, err := g2.Import(raw)
	require.NoError(t, err)

	assert.Equal(t, 2, report.FieldsAdded)
	assert.Equal(t, 2, report.FieldsTotal)
	// the exported default directory is reserved and never imported
	assert.Equal(t, 1, report.DirectoriesAdded)
	assert.Equal(t, 2, report.DirectoriesTotal)

	got1, err := st2.GetFieldByID(f1.ID)
	require.NoError(t, err)
	assert.Equal(t, "north plot", got1.Name)
	assert.Equal(t, dir.ID, got1.DirectoryID)
	assert.Equal(t, f1.Geometry, got1.Geometry)
	assert.True(t, got1.CreatedAt.Equal(f1.CreatedAt))

	got2, err := st2.GetFieldByID(f2.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.DefaultDirectoryID, got2.DirectoryID)
}

func TestImportExistingRecordsWin(t *testing.T) {
	g, st := newTestGateway(t, defaultLimits())
	f, err := st.AddField(entities.Field{Name: "original", Geometry: testRing()})
	require.NoError(t, err)

	doc, err := g.ExportFieldData()
	require.NoError(t, err)
	doc.Fields[0].Name = "renamed elsewhere"
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	report, err := g.Import(raw)
	require.NoError(t, err)
	assert.Equal(t, 0, report.FieldsAdded)

	got, err := st.GetFieldByID(f.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Name)

	fields, err := st.ListFields()
	require.NoError(t, err)
	assert.Len(t, fields, 1)
}

func TestImportRejectsMalformedDocuments(t *testing.T) {
	g, _ := newTestGateway(t, defaultLimits())

	_, err := g.Import([]byte("not json"))
	assert.ErrorIs(t, err, entities.ErrInvalidFormat)

	_, err = g.Import([]byte(`{"version":"1.0"}`))
	assert.ErrorIs(t, err, entities.ErrInvalidFormat)
}

func TestImportEmptyFieldsArrayIsValid(t *testing.T) {
	g, _ := newTestGateway(t, defaultLimits())

	report, err := g.Import([]byte(`{"version":"1.0","fields":[]}`))
	require.NoError(t, err)
	assert.Equal(t, 0, report.FieldsAdded)
}

func TestImportToleratesUnknownProperties(t *testing.T) {
	g, st := newTestGateway(t, defaultLimits())

	raw := `{"version":"1.0","someFutureKey":true,` +
		`"fields":[{"id":"field_1","name":"imported","geometry":[[0,0],[1,0],[1,1],[0,0]],"novel":"x"}]}`
	report, err := g.Import([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, 1, report.FieldsAdded)

	got, err := st.GetFieldByID("field_1")
	require.NoError(t, err)
	assert.Equal(t, "imported", got.Name)
}

func TestImportCapacityIsAllOrNothing(t *testing.T) {
	g, st := newTestGateway(t, store.Limits{MaxFields: 2, MaxDirectories: 5, MaxResults: 5, MaxHistory: 5})

	doc := Document{
		Fields: []entities.Field{
			{ID: "field_a", Name: "a", Geometry: testRing()},
			{ID: "field_b", Name: "b", Geometry: testRing()},
			{ID: "field_c", Name: "c", Geometry: testRing()},
		},
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	_, err = g.Import(raw)
	assert.ErrorIs(t, err, entities.ErrCapacityExceeded)

	fields, err := st.ListFields()
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestImportRepairsDanglingDirectoryReference(t *testing.T) {
	g, st := newTestGateway(t, defaultLimits())

	doc := Document{
		Fields: []entities.Field{
			{ID: "field_d", Name: "orphan", DirectoryID: "dir_gone", Geometry: testRing()},
		},
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	_, err = g.Import(raw)
	require.NoError(t, err)

	got, err := st.GetFieldByID("field_d")
	require.NoError(t, err)
	assert.Equal(t, entities.DefaultDirectoryID, got.DirectoryID)
}

func TestExportAnalysisSingleResult(t *testing.T) {
	g, st := newTestGateway(t, defaultLimits())

	mean := 0.61
	r, err := st.RecordAnalysisResult(entities.AnalysisResult{
		FieldID:   "field_x",
		FieldName: "east plot",
		Snapshot: entities.AnalysisSnapshot{
			DateRange: entities.DateRange{Start: "2025-05-01", End: "2025-05-31"},
			NDVI:      &entities.IndexStats{Mean: &mean},
		},
	})
	require.NoError(t, err)
	_, err = st.RecordAnalysisResult(entities.AnalysisResult{FieldID: "field_y", FieldName: "west plot"})
	require.NoError(t, err)

	doc, err := g.ExportAnalysis(r.ID)
	require.NoError(t, err)

	require.Len(t, doc.Results, 1)
	assert.Equal(t, r.ID, doc.Results[0].ID)
	require.Len(t, doc.History, 1)
	assert.Equal(t, r.ID, doc.History[0].ID)
	assert.Empty(t, doc.Fields)

	_, err = g.ExportAnalysis("analysis_missing")
	assert.ErrorIs(t, err, entities.ErrNotFound)
}
