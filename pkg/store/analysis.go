package store

import (
	"fmt"

	"cropwatch/entities"
	"cropwatch/pkg/storage"
)

// SaveFieldAnalysis stores the snapshot inline on the field as its latest
// analysis, stamping AnalyzedAt.
func (s *Store) SaveFieldAnalysis(fieldID string, snap entities.AnalysisSnapshot) (entities.Field, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields, _, err := s.listFieldsLocked()
	if err != nil {
		return entities.Field{}, err
	}
	idx := fieldIndex(fields, fieldID)
	if idx < 0 {
		return entities.Field{}, fmt.Errorf("%w: field %s", entities.ErrNotFound, fieldID)
	}
	now := s.now()
	snap.AnalyzedAt = now
	fields[idx].LastAnalysis = &snap
	fields[idx].UpdatedAt = now
	if err := persist(s, storage.KeyFields, fields); err != nil {
		return entities.Field{}, err
	}
	return fields[idx], nil
}

// RecordAnalysisResult appends to the full-result archive and writes the
// derived history entry in the same operation. Both collections are capped
// with oldest-first eviction; a result never exists without its history line.
func (s *Store) RecordAnalysisResult(r entities.AnalysisResult) (entities.AnalysisResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results, err := load[entities.AnalysisResult](s, storage.KeyResults)
	if err != nil {
		return entities.AnalysisResult{}, err
	}
	history, err := load[entities.AnalysisHistoryEntry](s, storage.KeyHistory)
	if err != nil {
		return entities.AnalysisResult{}, err
	}

	if r.ID == "" {
		r.ID = s.newID("analysis")
	}
	if r.Snapshot.AnalyzedAt.IsZero() {
		r.Snapshot.AnalyzedAt = s.now()
	}

	entry := entities.AnalysisHistoryEntry{
		ID:            r.ID,
		Timestamp:     r.Snapshot.AnalyzedAt,
		FieldName:     r.FieldName,
		OverallStatus: entities.StatusUnknown,
	}
	if r.Snapshot.Evaluation != nil {
		entry.OverallStatus = r.Snapshot.Evaluation.Overall.Status
	}
	if r.Snapshot.NDVI != nil {
		entry.NDVIMean = r.Snapshot.NDVI.Mean
	}

	results = append(results, r)
	if over := len(results) - s.lim.MaxResults; over > 0 {
		results = results[over:]
	}
	history = append(history, entry)
	if over := len(history) - s.lim.MaxHistory; over > 0 {
		history = history[over:]
	}

	if err := persist(s, storage.KeyResults, results); err != nil {
		return entities.AnalysisResult{}, err
	}
	if err := persist(s, storage.KeyHistory, history); err != nil {
		return entities.AnalysisResult{}, err
	}
	return r, nil
}

func (s *Store) ListAnalysisResults() ([]entities.AnalysisResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return load[entities.AnalysisResult](s, storage.KeyResults)
}

func (s *Store) ListAnalysisHistory() ([]entities.AnalysisHistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return load[entities.AnalysisHistoryEntry](s, storage.KeyHistory)
}

func (s *Store) GetAnalysisResult(id string) (entities.AnalysisResult, error) {
	results, err := s.ListAnalysisResults()
	if err != nil {
		return entities.AnalysisResult{}, err
	}
	for _, r := range results {
		if r.ID == id {
			return r, nil
		}
	}
	return entities.AnalysisResult{}, fmt.Errorf("%w: analysis result %s", entities.ErrNotFound, id)
}

// DeleteAnalysisResult removes the result and its history entry together.
// A missing id is not an error; the method just reports false.
func (s *Store) DeleteAnalysisResult(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results, err := load[entities.AnalysisResult](s, storage.KeyResults)
	if err != nil {
		return false, err
	}
	found := false
	kept := results[:0]
	for _, r := range results {
		if r.ID == id {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return false, nil
	}
	if err := persist(s, storage.KeyResults, kept); err != nil {
		return false, err
	}

	history, err := load[entities.AnalysisHistoryEntry](s, storage.KeyHistory)
	if err != nil {
		return false, err
	}
	keptHist := history[:0]
	for _, h := range history {
		if h.ID == id {
			continue
		}
		keptHist = append(keptHist, h)
	}
	if err := persist(s, storage.KeyHistory, keptHist); err != nil {
		return false, err
	}
	return true, nil
}

// ClearAnalysisResults drops the archive and the history log together.
func (s *Store) ClearAnalysisResults() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Remove(storage.KeyResults); err != nil {
		return err
	}
	return s.kv.Remove(storage.KeyHistory)
}
