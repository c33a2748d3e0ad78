package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"cropwatch/pkg/storage"
)

var appStart = time.Now()

type HealthCtrl struct {
	db *gorm.DB
	kv storage.Adapter
}

func NewHealthCtrl(db *gorm.DB, kv storage.Adapter) *HealthCtrl {
	return &HealthCtrl{db: db, kv: kv}
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	type check struct {
		OK  bool   `json:"ok"`
		Err string `json:"err,omitempty"`
	}

	dbCheck := check{OK: true}
	if h.db == nil {
		dbCheck = check{Err: "gorm db is nil"}
	} else if sqlDB, err := h.db.DB(); err != nil {
		dbCheck = check{Err: "db.DB(): " + err.Error()}
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbCheck = check{Err: "ping: " + err.Error()}
	}

	storeCheck := check{OK: true}
	if _, _, err := h.kv.Get(storage.KeyFields); err != nil {
		storeCheck = check{Err: err.Error()}
	}

	allOK := dbCheck.OK && storeCheck.OK
	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]any{
		"ok":         allOK,
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database": dbCheck,
			"blobs":    storeCheck,
		},
		"time": time.Now().Format(time.RFC3339),
	})
}
