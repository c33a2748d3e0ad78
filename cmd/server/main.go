package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"cropwatch/config"
	"cropwatch/database"
	"cropwatch/router"

	analysisCtrlImp "cropwatch/pkg/analysis/controllerImp"
	analysisSvcImp "cropwatch/pkg/analysis/serviceImp"
	dirCtrlImp "cropwatch/pkg/directory/controllerImp"
	fieldCtrlImp "cropwatch/pkg/field/controllerImp"
	healthCtrlImp "cropwatch/pkg/health/controllerImp"

	"cropwatch/pkg/advisor"
	"cropwatch/pkg/imagery"
	"cropwatch/pkg/reference"
	"cropwatch/pkg/storage"
	"cropwatch/pkg/store"
	"cropwatch/pkg/transfer"
	"cropwatch/pkg/vegetation"
)

func main() {
	// 1) Config
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	// 2) DB (sqlite blobs) + entity store
	db := database.OpenSQLite(cfg.DBPath)
	kv := storage.NewSQLite(db)
	st := store.New(kv, store.Limits{
		MaxFields:      cfg.MaxFields,
		MaxDirectories: cfg.MaxDirs,
		MaxResults:     cfg.MaxResults,
		MaxHistory:     cfg.MaxHistory,
	}, logger)

	// 3) Crop thresholds (built-in defaults when no files configured)
	thresholds, err := vegetation.LoadFromFiles(cfg.ThresholdCSV, cfg.ThresholdXLSX)
	if err != nil {
		logger.Warn("threshold config", zap.Error(err))
		thresholds = vegetation.DefaultTable()
	}

	// 4) Advisory client (mock fallback)
	var llm advisor.Client
	if cfg.LLMEndpoint != "" && cfg.LLMAPIKey != "" {
		llm = advisor.NewOpenAI(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel)
	} else {
		llm = advisor.NewMock()
	}

	// 5) Reference provider (nil provider means fallback records only)
	var provider reference.Provider
	if cfg.ReferenceURL != "" {
		provider = reference.NewHTMLProvider(cfg.ReferenceURL)
	}
	refs := reference.NewResolver(provider, logger)

	// 6) Services + controllers
	gateway := transfer.New(st)
	analysisSvc := analysisSvcImp.New(st, imagery.NewMock(), thresholds, llm, refs)

	fCtrl := fieldCtrlImp.New(st)
	dCtrl := dirCtrlImp.New(st)
	aCtrl := analysisCtrlImp.New(analysisSvc, st, gateway)
	hCtrl := healthCtrlImp.NewHealthCtrl(db, kv)

	// 7) Echo + routes
	e := echo.New()
	e.Use(echoMiddleware.Recover())
	r := router.New(e, fCtrl, dCtrl, aCtrl, hCtrl)

	logger.Info("listening", zap.String("port", cfg.Port))
	if err := r.Start(":" + cfg.Port); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
