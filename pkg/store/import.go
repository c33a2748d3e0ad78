package store

import (
	"fmt"

	"cropwatch/entities"
	"cropwatch/pkg/storage"
)

// MergeReport counts what an import actually added versus what the document
// carried.
type MergeReport struct {
	FieldsAdded      int `json:"fields_added"`
	FieldsTotal      int `json:"fields_total"`
	DirectoriesAdded int `json:"directories_added"`
	DirectoriesTotal int `json:"directories_total"`
}

// MergeImport merges imported records into the store. Existing records win
// on id collision, the reserved default directory is never imported, and the
// whole merge is rejected with ErrCapacityExceeded before any write when a
// merged collection would exceed its maximum.
func (s *Store) MergeImport(fields []entities.Field, dirs []entities.Directory) (MergeReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := MergeReport{FieldsTotal: len(fields), DirectoriesTotal: len(dirs)}

	curFields, curDirs, err := s.listFieldsLocked()
	if err != nil {
		return report, err
	}

	mergedDirs := curDirs
	for _, d := range dirs {
		if d.ID == "" || d.ID == entities.DefaultDirectoryID || directoryExists(mergedDirs, d.ID) {
			continue
		}
		mergedDirs = append(mergedDirs, d)
		report.DirectoriesAdded++
	}
	if countNonDefault(mergedDirs) > s.lim.MaxDirectories {
		return MergeReport{}, fmt.Errorf("%w: import would exceed directory limit %d", entities.ErrCapacityExceeded, s.lim.MaxDirectories)
	}

	mergedFields := curFields
	for _, f := range fields {
		if f.ID == "" || fieldIndex(mergedFields, f.ID) >= 0 {
			continue
		}
		if !f.Geometry.Closed() {
			return MergeReport{}, fmt.Errorf("%w: field %s geometry is not a closed ring", entities.ErrInvalidFormat, f.ID)
		}
		// repair dangling directory references instead of importing them
		if !directoryExists(mergedDirs, f.DirectoryID) {
			f.DirectoryID = entities.DefaultDirectoryID
		}
		mergedFields = append(mergedFields, f)
		report.FieldsAdded++
	}
	if len(mergedFields) > s.lim.MaxFields {
		return MergeReport{}, fmt.Errorf("%w: import would exceed field limit %d", entities.ErrCapacityExceeded, s.lim.MaxFields)
	}

	if err := persist(s, storage.KeyDirectories, mergedDirs); err != nil {
		return report, err
	}
	if err := persist(s, storage.KeyFields, mergedFields); err != nil {
		return report, err
	}
	return report, nil
}
