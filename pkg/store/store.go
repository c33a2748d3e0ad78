package store

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cropwatch/pkg/storage"
)

// Limits carries the configured collection maxima. MaxDirectories excludes
// the reserved default directory.
type Limits struct {
	MaxFields      int
	MaxDirectories int
	MaxResults     int
	MaxHistory     int
}

// Store owns every persisted collection: fields, directories, the analysis
// archive and the history log. Each operation is a full read-modify-write of
// the affected collection through the storage adapter; the mutex serializes
// writers because the adapter has no transactions.
type Store struct {
	mu  sync.Mutex
	kv  storage.Adapter
	lim Limits
	log *zap.Logger
	now func() time.Time
}

func New(kv storage.Adapter, lim Limits, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{kv: kv, lim: lim, log: log, now: time.Now}
}

// newID builds a time-based id with a random suffix so two records created
// in the same millisecond cannot collide.
func (s *Store) newID(prefix string) string {
	return fmt.Sprintf("%s_%d_%s", prefix, s.now().UnixMilli(), uuid.NewString()[:8])
}

// decode unmarshals a collection blob. Corrupt content is recovered as an
// empty collection and logged, never raised.
func decode[T any](log *zap.Logger, key, raw string) []T {
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		log.Warn("corrupt collection blob, treating as empty",
			zap.String("key", key), zap.Error(err))
		return nil
	}
	return out
}

func load[T any](s *Store, key string) ([]T, error) {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, nil
	}
	return decode[T](s.log, key, raw), nil
}

func persist[T any](s *Store, key string, records []T) error {
	if records == nil {
		records = []T{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.kv.Set(key, string(b))
}
