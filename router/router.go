package router

import (
	"github.com/labstack/echo/v4"
)

func New(
	e *echo.Echo,
	fieldCtrl interface {
		Create(echo.Context) error
		List(echo.Context) error
		Get(echo.Context) error
		Update(echo.Context) error
		Delete(echo.Context) error
		Search(echo.Context) error
	},
	dirCtrl interface {
		Create(echo.Context) error
		List(echo.Context) error
		Update(echo.Context) error
		Delete(echo.Context) error
	},
	analysisCtrl interface {
		Analyze(echo.Context) error
		ListResults(echo.Context) error
		ListHistory(echo.Context) error
		DeleteResult(echo.Context) error
		ClearResults(echo.Context) error
		Compare(echo.Context) error
		Export(echo.Context) error
		ExportResult(echo.Context) error
		Import(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)

	e.POST("/fields", fieldCtrl.Create)
	e.GET("/fields", fieldCtrl.List)
	e.GET("/fields/search", fieldCtrl.Search)
	e.GET("/fields/:id", fieldCtrl.Get)
	e.PATCH("/fields/:id", fieldCtrl.Update)
	e.DELETE("/fields/:id", fieldCtrl.Delete)

	e.POST("/directories", dirCtrl.Create)
	e.GET("/directories", dirCtrl.List)
	e.PATCH("/directories/:id", dirCtrl.Update)
	e.DELETE("/directories/:id", dirCtrl.Delete)

	e.POST("/fields/:id/analyze", analysisCtrl.Analyze)

	g := e.Group("/analysis")
	g.GET("/results", analysisCtrl.ListResults)
	g.GET("/history", analysisCtrl.ListHistory)
	g.DELETE("/results/:id", analysisCtrl.DeleteResult)
	g.DELETE("/results", analysisCtrl.ClearResults)
	g.GET("/results/:id/compare", analysisCtrl.Compare)
	g.GET("/results/:id/export", analysisCtrl.ExportResult)

	e.GET("/export", analysisCtrl.Export)
	e.POST("/import", analysisCtrl.Import)
	return e
}
