package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cropwatch/entities"
	"cropwatch/pkg/httperr"
	"cropwatch/pkg/store"
)

type DirectoryCtrl struct{ store *store.Store }

func New(st *store.Store) *DirectoryCtrl { return &DirectoryCtrl{store: st} }

type createReq struct {
	Name string `json:"name"`
	Crop string `json:"crop"`
}

func (h *DirectoryCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	d, err := h.store.AddDirectory(entities.Directory{Name: req.Name, Crop: req.Crop})
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, d)
}

// List returns directories with the reserved default pinned first.
func (h *DirectoryCtrl) List(c echo.Context) error {
	dirs, err := h.store.SortDirectories()
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, dirs)
}

func (h *DirectoryCtrl) Update(c echo.Context) error {
	var patch store.DirectoryPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	d, err := h.store.UpdateDirectory(c.Param("id"), patch)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *DirectoryCtrl) Delete(c echo.Context) error {
	if err := h.store.DeleteDirectory(c.Param("id")); err != nil {
		return httperr.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
