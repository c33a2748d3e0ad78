package vegetation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cropwatch/entities"
)

func fptr(v float64) *float64 { return &v }

func TestParseStats(t *testing.T) {
	set := ParseStats(map[string]any{
		"NDVI_mean":   0.65,
		"NDVI_stdDev": 0.05,
		"NDMI_mean":   0.3,
		"SAVI_mean":   0.4,     // unknown index ignored
		"NDRE_bogus":  0.1,     // unknown stat ignored
		"NDVI_min":    "oops",  // non-numeric ignored
		"garbage":     "value", // unkeyed ignored
	})

	require.NotNil(t, set.NDVI)
	require.NotNil(t, set.NDVI.Mean)
	assert.InDelta(t, 0.65, *set.NDVI.Mean, 1e-9)
	assert.InDelta(t, 0.05, *set.NDVI.StdDev, 1e-9)
	assert.Nil(t, set.NDVI.Min, "non-numeric values stay absent")

	require.NotNil(t, set.NDMI)
	assert.Nil(t, set.NDRE, "absent index stays nil, never zero")
}

func TestClassifyBoundariesAreInclusive(t *testing.T) {
	cut := Cutoffs{Good: 0.6, Moderate: 0.4}

	tests := []struct {
		name string
		mean *float64
		want entities.HealthStatus
	}{
		{"exactly good cutoff", fptr(0.6), entities.StatusGood},
		{"just below good", fptr(0.5999999999), entities.StatusModerate},
		{"exactly moderate cutoff", fptr(0.4), entities.StatusModerate},
		{"just below moderate", fptr(0.3999999999), entities.StatusPoor},
		{"well above good", fptr(0.9), entities.StatusGood},
		{"missing mean", nil, entities.StatusUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.mean, cut))
		})
	}
}

func TestEvaluateIndicesDefaultThresholds(t *testing.T) {
	table := DefaultTable()
	set := ParseStats(map[string]any{
		"NDVI_mean": 0.65,
		"NDMI_mean": 0.3,
		"NDRE_mean": 0.2,
	})

	eval := table.EvaluateIndices(set, "default")
	assert.Equal(t, entities.StatusGood, eval.NDVI.Status)
	assert.Equal(t, entities.StatusGood, eval.NDMI.Status)
	assert.Equal(t, entities.StatusGood, eval.NDRE.Status)
	assert.Equal(t, entities.StatusGood, eval.Overall.Status)
	assert.Equal(t, "status-good", eval.Overall.StyleClass)

	// deterministic: same input, same output
	again := table.EvaluateIndices(set, "default")
	assert.Equal(t, eval, again)
}

func TestEvaluateIndicesUnknownCropFallsBack(t *testing.T) {
	table := DefaultTable()
	set := IndexSet{NDVI: &entities.IndexStats{Mean: fptr(0.65)}}

	eval := table.EvaluateIndices(set, "dragonfruit")
	assert.Equal(t, entities.StatusGood, eval.NDVI.Status)
	assert.Equal(t, entities.StatusUnknown, eval.NDMI.Status)
	assert.Equal(t, entities.StatusUnknown, eval.NDRE.Status)
}

func TestAggregateSimpleStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []entities.HealthStatus
		want     entities.HealthStatus
	}{
		{"all good", []entities.HealthStatus{entities.StatusGood, entities.StatusGood, entities.StatusGood}, entities.StatusGood},
		{"two good one moderate", []entities.HealthStatus{entities.StatusGood, entities.StatusGood, entities.StatusModerate}, entities.StatusGood},
		{"middling", []entities.HealthStatus{entities.StatusGood, entities.StatusModerate, entities.StatusPoor}, entities.StatusModerate},
		{"mostly poor", []entities.HealthStatus{entities.StatusPoor, entities.StatusPoor, entities.StatusModerate}, entities.StatusPoor},
		{"all unknown", []entities.HealthStatus{entities.StatusUnknown, entities.StatusUnknown, entities.StatusUnknown}, entities.StatusPoor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AggregateSimpleStatus(tt.statuses...))
		})
	}
}
