package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cropwatch/entities"
)

func TestDefaultDirectorySynthesizedOnFirstRead(t *testing.T) {
	s := newTestStore(t, testLimits())

	dirs, err := s.ListDirectories()
	require.NoError(t, err)
	require.Len(t, dirs, 1)
	assert.Equal(t, entities.DefaultDirectoryID, dirs[0].ID)

	// survives every later operation, even from an empty store
	_, err = s.AddDirectory(entities.Directory{Name: "rice"})
	require.NoError(t, err)
	dirs, err = s.ListDirectories()
	require.NoError(t, err)
	assert.True(t, directoryExists(dirs, entities.DefaultDirectoryID))
}

func TestAddDirectoryCapacityExcludesDefault(t *testing.T) {
	lim := testLimits()
	lim.MaxDirectories = 2
	s := newTestStore(t, lim)

	_, err := s.AddDirectory(entities.Directory{Name: "a"})
	require.NoError(t, err)
	_, err = s.AddDirectory(entities.Directory{Name: "b"})
	require.NoError(t, err)

	_, err = s.AddDirectory(entities.Directory{Name: "c"})
	require.ErrorIs(t, err, entities.ErrCapacityExceeded)
}

func TestDeleteDefaultDirectoryIsProtected(t *testing.T) {
	s := newTestStore(t, testLimits())
	err := s.DeleteDirectory(entities.DefaultDirectoryID)
	require.ErrorIs(t, err, entities.ErrProtected)
}

func TestDeleteDirectoryReassignsFields(t *testing.T) {
	s := newTestStore(t, testLimits())
	d, err := s.AddDirectory(entities.Directory{Name: "rented plots", Crop: "maize"})
	require.NoError(t, err)

	f, err := s.AddField(entities.Field{Name: "leased", DirectoryID: d.ID, Geometry: testRing()})
	require.NoError(t, err)
	require.Equal(t, d.ID, f.DirectoryID)

	require.NoError(t, s.DeleteDirectory(d.ID))

	fields, err := s.ListFields()
	require.NoError(t, err)
	dirs, err := s.ListDirectories()
	require.NoError(t, err)
	for _, f := range fields {
		assert.True(t, directoryExists(dirs, f.DirectoryID),
			"field %s must reference an existing directory", f.ID)
	}
	got, err := s.GetFieldByID(f.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.DefaultDirectoryID, got.DirectoryID)
}

func TestDeleteDirectoryNotFound(t *testing.T) {
	s := newTestStore(t, testLimits())
	require.ErrorIs(t, s.DeleteDirectory("dir_missing"), entities.ErrNotFound)
}

func TestUpdateDirectory(t *testing.T) {
	s := newTestStore(t, testLimits())
	d, err := s.AddDirectory(entities.Directory{Name: "old", Crop: "rice"})
	require.NoError(t, err)

	name := "renamed"
	got, err := s.UpdateDirectory(d.ID, DirectoryPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
	assert.Equal(t, "rice", got.Crop)
	assert.True(t, got.UpdatedAt.After(d.UpdatedAt))
}

func TestSortDirectoriesPinsDefaultFirst(t *testing.T) {
	s := newTestStore(t, testLimits())
	_, err := s.AddDirectory(entities.Directory{Name: "zeta"})
	require.NoError(t, err)
	_, err = s.AddDirectory(entities.Directory{Name: "Alpha"})
	require.NoError(t, err)

	dirs, err := s.SortDirectories()
	require.NoError(t, err)
	require.Len(t, dirs, 3)
	assert.Equal(t, entities.DefaultDirectoryID, dirs[0].ID)
	assert.Equal(t, "Alpha", dirs[1].Name)
	assert.Equal(t, "zeta", dirs[2].Name)
}
