package database

import (
	"log"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"

	"cropwatch/pkg/storage"
)

// OpenSQLite opens the blob database and migrates the single key/value
// table every collection is stored in.
func OpenSQLite(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&storage.Blob{}); err != nil {
		log.Fatalf("automigrate: %v", err)
	}
	return db
}
