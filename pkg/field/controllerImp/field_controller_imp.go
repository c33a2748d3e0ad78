package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cropwatch/entities"
	"cropwatch/pkg/field/controller"
	"cropwatch/pkg/httperr"
	"cropwatch/pkg/store"
)

type FieldCtrl struct{ store *store.Store }

func New(st *store.Store) controller.FieldController { return &FieldCtrl{store: st} }

type createReq struct {
	Name        string          `json:"name"`
	Memo        string          `json:"memo"`
	Crop        string          `json:"crop"`
	Color       string          `json:"color"`
	DirectoryID string          `json:"directory_id"`
	Center      entities.LatLng `json:"center"`
	Geometry    entities.Ring   `json:"geometry"`
}

func (h *FieldCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	f, err := h.store.AddField(entities.Field{
		Name:        req.Name,
		Memo:        req.Memo,
		Crop:        req.Crop,
		Color:       req.Color,
		DirectoryID: req.DirectoryID,
		Center:      req.Center,
		Geometry:    req.Geometry,
	})
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, f)
}

// List accepts sort=name|createdAt|updatedAt|order and order=asc|desc.
func (h *FieldCtrl) List(c echo.Context) error {
	by := store.FieldSortKey(c.QueryParam("sort"))
	if by == "" {
		by = store.SortByName
	}
	ascending := c.QueryParam("order") != "desc"
	fields, err := h.store.SortFields(by, ascending)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, fields)
}

func (h *FieldCtrl) Get(c echo.Context) error {
	f, err := h.store.GetFieldByID(c.Param("id"))
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FieldCtrl) Update(c echo.Context) error {
	var patch store.FieldPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	f, err := h.store.UpdateField(c.Param("id"), patch)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FieldCtrl) Delete(c echo.Context) error {
	if err := h.store.DeleteField(c.Param("id")); err != nil {
		return httperr.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *FieldCtrl) Search(c echo.Context) error {
	fields, err := h.store.SearchFields(c.QueryParam("q"))
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, fields)
}
