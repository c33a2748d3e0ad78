package store

import (
	"fmt"
	"sort"
	"strings"

	"cropwatch/entities"
	"cropwatch/pkg/storage"
)

// DirectoryPatch is a partial directory update; nil members are untouched.
type DirectoryPatch struct {
	Name *string `json:"name,omitempty"`
	Crop *string `json:"crop,omitempty"`
}

// ListDirectories returns every directory, synthesizing and persisting the
// reserved default on first access.
func (s *Store) ListDirectories() ([]entities.Directory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listDirectoriesLocked()
}

func (s *Store) listDirectoriesLocked() ([]entities.Directory, error) {
	dirs, err := load[entities.Directory](s, storage.KeyDirectories)
	if err != nil {
		return nil, err
	}
	if directoryExists(dirs, entities.DefaultDirectoryID) {
		return dirs, nil
	}
	dirs = append(dirs, s.defaultDirectory())
	if err := persist(s, storage.KeyDirectories, dirs); err != nil {
		return nil, err
	}
	s.log.Info("synthesized default directory")
	return dirs, nil
}

func (s *Store) defaultDirectory() entities.Directory {
	now := s.now()
	return entities.Directory{
		ID:        entities.DefaultDirectoryID,
		Name:      "My Fields",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddDirectory counts capacity against the non-default directories only.
func (s *Store) AddDirectory(d entities.Directory) (entities.Directory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dirs, err := s.listDirectoriesLocked()
	if err != nil {
		return entities.Directory{}, err
	}
	if countNonDefault(dirs) >= s.lim.MaxDirectories {
		return entities.Directory{}, fmt.Errorf("%w: directory limit %d reached", entities.ErrCapacityExceeded, s.lim.MaxDirectories)
	}

	now := s.now()
	d.ID = s.newID("dir")
	d.CreatedAt = now
	d.UpdatedAt = now

	dirs = append(dirs, d)
	if err := persist(s, storage.KeyDirectories, dirs); err != nil {
		return entities.Directory{}, err
	}
	return d, nil
}

func (s *Store) UpdateDirectory(id string, p DirectoryPatch) (entities.Directory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dirs, err := s.listDirectoriesLocked()
	if err != nil {
		return entities.Directory{}, err
	}
	idx := directoryIndex(dirs, id)
	if idx < 0 {
		return entities.Directory{}, fmt.Errorf("%w: directory %s", entities.ErrNotFound, id)
	}
	d := dirs[idx]
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Crop != nil {
		d.Crop = *p.Crop
	}
	d.UpdatedAt = s.now()

	dirs[idx] = d
	if err := persist(s, storage.KeyDirectories, dirs); err != nil {
		return entities.Directory{}, err
	}
	return d, nil
}

// DeleteDirectory refuses to remove the reserved default. Fields referencing
// the removed directory are reassigned to the first remaining one so no field
// is ever left pointing at a missing directory.
func (s *Store) DeleteDirectory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == entities.DefaultDirectoryID {
		return fmt.Errorf("%w: default directory cannot be deleted", entities.ErrProtected)
	}
	fields, dirs, err := s.listFieldsLocked()
	if err != nil {
		return err
	}
	idx := directoryIndex(dirs, id)
	if idx < 0 {
		return fmt.Errorf("%w: directory %s", entities.ErrNotFound, id)
	}
	dirs = append(dirs[:idx], dirs[idx+1:]...)
	if len(dirs) == 0 {
		dirs = append(dirs, s.defaultDirectory())
	}
	if err := persist(s, storage.KeyDirectories, dirs); err != nil {
		return err
	}

	target := dirs[0].ID
	changed := false
	for i := range fields {
		if fields[i].DirectoryID == id {
			fields[i].DirectoryID = target
			fields[i].UpdatedAt = s.now()
			changed = true
		}
	}
	if changed {
		return persist(s, storage.KeyFields, fields)
	}
	return nil
}

// SortDirectories pins the reserved default first and orders the rest
// alphabetically by name.
func (s *Store) SortDirectories() ([]entities.Directory, error) {
	dirs, err := s.ListDirectories()
	if err != nil {
		return nil, err
	}
	out := make([]entities.Directory, len(dirs))
	copy(out, dirs)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsDefault() != out[j].IsDefault() {
			return out[i].IsDefault()
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func directoryIndex(dirs []entities.Directory, id string) int {
	for i := range dirs {
		if dirs[i].ID == id {
			return i
		}
	}
	return -1
}

func directoryExists(dirs []entities.Directory, id string) bool {
	return directoryIndex(dirs, id) >= 0
}

func findDirectory(dirs []entities.Directory, id string) (entities.Directory, bool) {
	if idx := directoryIndex(dirs, id); idx >= 0 {
		return dirs[idx], true
	}
	return entities.Directory{}, false
}

func countNonDefault(dirs []entities.Directory) int {
	n := 0
	for _, d := range dirs {
		if !d.IsDefault() {
			n++
		}
	}
	return n
}
