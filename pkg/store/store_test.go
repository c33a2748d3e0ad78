package store

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"cropwatch/entities"
	"cropwatch/pkg/storage"
)

func testLimits() Limits {
	return Limits{MaxFields: 5, MaxDirectories: 3, MaxResults: 3, MaxHistory: 3}
}

func newTestStore(t *testing.T, lim Limits) *Store {
	t.Helper()
	s := New(storage.NewMemory(), lim, zap.NewNop())
	// fixed wall clock keeps records comparable across JSON round trips
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return s
}

func testRing() entities.Ring {
	return entities.Ring{{102.1, 14.9}, {102.1, 15.0}, {102.2, 15.0}, {102.1, 14.9}}
}

func mustAddField(t *testing.T, s *Store, name string) entities.Field {
	t.Helper()
	f, err := s.AddField(entities.Field{Name: name, Geometry: testRing()})
	if err != nil {
		t.Fatalf("add field %s: %v", name, err)
	}
	return f
}
