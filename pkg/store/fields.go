package store

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"cropwatch/entities"
	"cropwatch/pkg/storage"
)

// FieldSortKey selects the field ordering for SortFields.
type FieldSortKey string

const (
	SortByName      FieldSortKey = "name"
	SortByCreatedAt FieldSortKey = "createdAt"
	SortByUpdatedAt FieldSortKey = "updatedAt"
	SortByOrder     FieldSortKey = "order"
)

const defaultFieldColor = "#22c55e"

// FieldPatch is a partial update. Nil members leave the current value alone;
// ID and CreatedAt are not patchable.
type FieldPatch struct {
	Name        *string          `json:"name,omitempty"`
	Memo        *string          `json:"memo,omitempty"`
	Crop        *string          `json:"crop,omitempty"`
	Color       *string          `json:"color,omitempty"`
	Order       *int             `json:"order,omitempty"`
	DirectoryID *string          `json:"directory_id,omitempty"`
	Center      *entities.LatLng `json:"center,omitempty"`
	Geometry    *entities.Ring   `json:"geometry,omitempty"`
}

// ListFields returns every field. Loading runs the default-directory
// bootstrap and the legacy crop migration first, so callers always see a
// consistent collection.
func (s *Store) ListFields() ([]entities.Field, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fields, _, err := s.listFieldsLocked()
	return fields, err
}

func (s *Store) listFieldsLocked() ([]entities.Field, []entities.Directory, error) {
	dirs, err := s.listDirectoriesLocked()
	if err != nil {
		return nil, nil, err
	}
	fields, err := load[entities.Field](s, storage.KeyFields)
	if err != nil {
		return nil, nil, err
	}
	if migrated, out := migrateFieldCrops(fields, dirs); migrated {
		if err := persist(s, storage.KeyFields, out); err != nil {
			return nil, nil, err
		}
		s.log.Info("backfilled legacy field crops", zap.Int("fields", len(out)))
		return out, dirs, nil
	}
	return fields, dirs, nil
}

// AddField assigns a fresh id and timestamps, defaults the optional
// attributes and appends. Fails with ErrCapacityExceeded once the collection
// already holds the configured maximum.
func (s *Store) AddField(f entities.Field) (entities.Field, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields, dirs, err := s.listFieldsLocked()
	if err != nil {
		return entities.Field{}, err
	}
	if len(fields) >= s.lim.MaxFields {
		return entities.Field{}, fmt.Errorf("%w: field limit %d reached", entities.ErrCapacityExceeded, s.lim.MaxFields)
	}
	if !f.Geometry.Closed() {
		return entities.Field{}, fmt.Errorf("%w: geometry must be a closed ring of at least 4 points", entities.ErrInvalidFormat)
	}
	if f.DirectoryID == "" {
		f.DirectoryID = entities.DefaultDirectoryID
	} else if !directoryExists(dirs, f.DirectoryID) {
		return entities.Field{}, fmt.Errorf("%w: directory %s", entities.ErrNotFound, f.DirectoryID)
	}
	if f.Color == "" {
		f.Color = defaultFieldColor
	}
	if f.Crop == "" {
		if d, ok := findDirectory(dirs, f.DirectoryID); ok {
			f.Crop = d.Crop
		}
	}

	now := s.now()
	f.ID = s.newID("field")
	f.CreatedAt = now
	f.UpdatedAt = now
	f.LastAnalysis = nil

	fields = append(fields, f)
	if err := persist(s, storage.KeyFields, fields); err != nil {
		return entities.Field{}, err
	}
	return f, nil
}

// UpdateField merges the patch over the stored record and refreshes
// UpdatedAt. Fails with ErrNotFound when the id is absent.
func (s *Store) UpdateField(id string, p FieldPatch) (entities.Field, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields, dirs, err := s.listFieldsLocked()
	if err != nil {
		return entities.Field{}, err
	}
	idx := fieldIndex(fields, id)
	if idx < 0 {
		return entities.Field{}, fmt.Errorf("%w: field %s", entities.ErrNotFound, id)
	}

	f := fields[idx]
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Memo != nil {
		f.Memo = *p.Memo
	}
	if p.Crop != nil {
		f.Crop = *p.Crop
	}
	if p.Color != nil {
		f.Color = *p.Color
	}
	if p.Order != nil {
		f.Order = p.Order
	}
	if p.DirectoryID != nil {
		if !directoryExists(dirs, *p.DirectoryID) {
			return entities.Field{}, fmt.Errorf("%w: directory %s", entities.ErrNotFound, *p.DirectoryID)
		}
		f.DirectoryID = *p.DirectoryID
	}
	if p.Center != nil {
		f.Center = *p.Center
	}
	if p.Geometry != nil {
		if !p.Geometry.Closed() {
			return entities.Field{}, fmt.Errorf("%w: geometry must be a closed ring of at least 4 points", entities.ErrInvalidFormat)
		}
		f.Geometry = *p.Geometry
	}
	f.UpdatedAt = s.now()

	fields[idx] = f
	if err := persist(s, storage.KeyFields, fields); err != nil {
		return entities.Field{}, err
	}
	return f, nil
}

func (s *Store) DeleteField(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields, _, err := s.listFieldsLocked()
	if err != nil {
		return err
	}
	idx := fieldIndex(fields, id)
	if idx < 0 {
		return fmt.Errorf("%w: field %s", entities.ErrNotFound, id)
	}
	fields = append(fields[:idx], fields[idx+1:]...)
	return persist(s, storage.KeyFields, fields)
}

func (s *Store) GetFieldByID(id string) (entities.Field, error) {
	fields, err := s.ListFields()
	if err != nil {
		return entities.Field{}, err
	}
	if idx := fieldIndex(fields, id); idx >= 0 {
		return fields[idx], nil
	}
	return entities.Field{}, fmt.Errorf("%w: field %s", entities.ErrNotFound, id)
}

// FilterFieldsByIDs keeps the stored order and skips unknown ids.
func (s *Store) FilterFieldsByIDs(ids []string) ([]entities.Field, error) {
	fields, err := s.ListFields()
	if err != nil {
		return nil, err
	}
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make([]entities.Field, 0, len(ids))
	for _, f := range fields {
		if _, ok := want[f.ID]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

// SearchFields matches the query case-insensitively against name and memo.
func (s *Store) SearchFields(query string) ([]entities.Field, error) {
	fields, err := s.ListFields()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return fields, nil
	}
	var out []entities.Field
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f.Name), q) || strings.Contains(strings.ToLower(f.Memo), q) {
			out = append(out, f)
		}
	}
	return out, nil
}

// SortFields orders a copy of the collection. An explicit Order value wins
// over the requested key whenever both compared records carry one; those
// comparisons are always ascending because Order encodes a user-arranged
// position.
func (s *Store) SortFields(by FieldSortKey, ascending bool) ([]entities.Field, error) {
	fields, err := s.ListFields()
	if err != nil {
		return nil, err
	}
	out := make([]entities.Field, len(fields))
	copy(out, fields)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Order != nil && b.Order != nil && *a.Order != *b.Order {
			return *a.Order < *b.Order
		}
		if by == SortByOrder {
			// records without an explicit order sink to the end
			if a.Order != nil && b.Order == nil {
				return true
			}
			if a.Order == nil && b.Order != nil {
				return false
			}
		}
		cmp := compareFields(a, b, by)
		if !ascending {
			return cmp > 0
		}
		return cmp < 0
	})
	return out, nil
}

func compareFields(a, b entities.Field, by FieldSortKey) int {
	switch by {
	case SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case SortByUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	}
}

func fieldIndex(fields []entities.Field, id string) int {
	for i := range fields {
		if fields[i].ID == id {
			return i
		}
	}
	return -1
}
