package controllerImp

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"cropwatch/entities"
	"cropwatch/pkg/analysis/service"
	"cropwatch/pkg/httperr"
	"cropwatch/pkg/store"
	"cropwatch/pkg/transfer"
)

type AnalysisCtrl struct {
	svc     service.AnalysisService
	store   *store.Store
	gateway *transfer.Gateway
}

func New(svc service.AnalysisService, st *store.Store, gw *transfer.Gateway) *AnalysisCtrl {
	return &AnalysisCtrl{svc: svc, store: st, gateway: gw}
}

type analyzeReq struct {
	DateRange entities.DateRange `json:"date_range"`
}

func (h *AnalysisCtrl) Analyze(c echo.Context) error {
	var req analyzeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.svc.Analyze(c.Request().Context(), c.Param("id"), req.DateRange)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AnalysisCtrl) ListResults(c echo.Context) error {
	results, err := h.store.ListAnalysisResults()
	if err != nil {
		return httperr.JSON(c, err)
	}
	if results == nil {
		results = []entities.AnalysisResult{}
	}
	return c.JSON(http.StatusOK, results)
}

func (h *AnalysisCtrl) ListHistory(c echo.Context) error {
	history, err := h.store.ListAnalysisHistory()
	if err != nil {
		return httperr.JSON(c, err)
	}
	if history == nil {
		history = []entities.AnalysisHistoryEntry{}
	}
	return c.JSON(http.StatusOK, history)
}

func (h *AnalysisCtrl) DeleteResult(c echo.Context) error {
	deleted, err := h.store.DeleteAnalysisResult(c.Param("id"))
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": deleted})
}

func (h *AnalysisCtrl) ClearResults(c echo.Context) error {
	if err := h.store.ClearAnalysisResults(); err != nil {
		return httperr.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Compare runs ?index=NDVI|NDMI|NDRE against external references.
func (h *AnalysisCtrl) Compare(c echo.Context) error {
	index := c.QueryParam("index")
	if index == "" {
		index = "NDVI"
	}
	summary, err := h.svc.Compare(c.Param("id"), index)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// Export serves ?scope=all|fields; the per-result export has its own route.
func (h *AnalysisCtrl) Export(c echo.Context) error {
	var (
		doc transfer.Document
		err error
	)
	if c.QueryParam("scope") == "fields" {
		doc, err = h.gateway.ExportFieldData()
	} else {
		doc, err = h.gateway.ExportAll()
	}
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *AnalysisCtrl) ExportResult(c echo.Context) error {
	doc, err := h.gateway.ExportAnalysis(c.Param("id"))
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *AnalysisCtrl) Import(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "read body: " + err.Error()})
	}
	report, err := h.gateway.Import(raw)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, report)
}
