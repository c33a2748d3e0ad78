package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"cropwatch/entities"
)

// Blob is one persisted collection. The store keeps whole collections as
// JSON text, so a single key/value table is all the schema there is.
type Blob struct {
	Key       string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}

func (Blob) TableName() string { return "blobs" }

type sqliteAdapter struct{ db *gorm.DB }

// NewSQLite wraps an opened gorm DB as an Adapter. The blobs table must be
// migrated already (database.OpenSQLite does that).
func NewSQLite(db *gorm.DB) Adapter { return &sqliteAdapter{db: db} }

func (a *sqliteAdapter) Get(key string) (string, bool, error) {
	var b Blob
	if err := a.db.First(&b, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: get %s: %v", entities.ErrStorageUnavailable, key, err)
	}
	return b.Value, true, nil
}

func (a *sqliteAdapter) Set(key, value string) error {
	b := Blob{Key: key, Value: value, UpdatedAt: time.Now()}
	if err := a.db.Save(&b).Error; err != nil {
		return fmt.Errorf("%w: set %s: %v", entities.ErrStorageUnavailable, key, err)
	}
	return nil
}

func (a *sqliteAdapter) Remove(key string) error {
	if err := a.db.Delete(&Blob{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("%w: remove %s: %v", entities.ErrStorageUnavailable, key, err)
	}
	return nil
}
