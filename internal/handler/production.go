package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/agri-supply-ledger/internal/logging"
	"github.com/iliyamo/agri-supply-ledger/internal/model"
	"github.com/iliyamo/agri-supply-ledger/internal/repository"
)

// ProductionStore is the persistence used by ProductionHandler.
// Production runs cannot be updated once recorded.
type ProductionStore interface {
	List(ctx context.Context) ([]model.Production, error)
	GetByID(ctx context.Context, id string) (*model.Production, error)
	Create(ctx context.Context, p *model.Production) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

type ProductionHandler struct {
	Store ProductionStore
	Log   logging.Logger
}

func NewProductionHandler(store ProductionStore, log logging.Logger) *ProductionHandler {
	return &ProductionHandler{Store: store, Log: log}
}

type createProductionReq struct {
	ID       string `json:"id_produksi"`
	Status   string `json:"status_produksi"`
	SupplyID string `json:"id_produk"`
}

func (r createProductionReq) Validate() error {
	return withID("id_produksi", r.ID, validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required, validation.Length(1, 15)),
		validation.Field(&r.SupplyID, validation.Required, validation.Length(1, 8)),
	))
}

func (h *ProductionHandler) List(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()
	items, err := h.Store.List(ctx)
	if err != nil {
		return storeError(c, h.Log, err, "No Productions were found")
	}
	if len(items) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No Productions were found"})
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductionHandler) Get(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()
	p, err := h.Store.GetByID(ctx, c.Param("id"))
	if err != nil {
		return storeError(c, h.Log, err, "Production not found")
	}
	return c.JSON(http.StatusOK, p)
}

// Create records a production run.  The referenced supply must exist;
// otherwise nothing is written and 404 is returned.
func (h *ProductionHandler) Create(c echo.Context) error {
	var req createProductionReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	p := &model.Production{ID: req.ID, Status: req.Status, SupplyID: req.SupplyID}

	ctx, cancel := dbContext(c)
	defer cancel()
	if err := h.Store.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrReferenceNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product ID Not found"})
		}
		return storeError(c, h.Log, err, "Production not found")
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductionHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	ctx, cancel := dbContext(c)
	defer cancel()
	if err := h.Store.Delete(ctx, id); err != nil {
		return storeError(c, h.Log, err, "Production not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("Production %s successfully deleted", id)})
}

func (h *ProductionHandler) DeleteAll(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()
	n, err := h.Store.DeleteAll(ctx)
	if err != nil {
		return storeError(c, h.Log, err, "No Productions were found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "All production successfully deleted", "deleted": n})
}
