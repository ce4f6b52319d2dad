package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/agri-supply-ledger/internal/logging"
	"github.com/iliyamo/agri-supply-ledger/internal/model"
)

// SaleStore is the persistence used by SaleHandler.
type SaleStore interface {
	List(ctx context.Context) ([]model.Sale, error)
	GetByID(ctx context.Context, id string) (*model.Sale, error)
	Create(ctx context.Context, s *model.Sale) error
	Update(ctx context.Context, s *model.Sale) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

// SaleHandler serves the selling endpoints.
type SaleHandler struct {
	Store SaleStore
	Log   logging.Logger
}

func NewSaleHandler(store SaleStore, log logging.Logger) *SaleHandler {
	return &SaleHandler{Store: store, Log: log}
}

// status is an opaque code and is stored as given.  Every field is
// required.
type saleFields struct {
	Quantity *int             `json:"jumlah_penjualan"`
	Revenue  *decimal.Decimal `json:"pendapatan"`
	Status   *int             `json:"status"`
}

type createSaleReq struct {
	ID string `json:"id_transaksi"`
	saleFields
}

func (r createSaleReq) Validate() error {
	return withID("id_transaksi", r.ID, r.saleFields.Validate())
}

func (r saleFields) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Quantity, validation.NotNil, validation.Min(0)),
		validation.Field(&r.Revenue, validation.NotNil, validation.By(nonNegativeDecimal)),
		validation.Field(&r.Status, validation.NotNil),
	)
}

func nonNegativeDecimal(v interface{}) error {
	var d decimal.Decimal
	switch x := v.(type) {
	case decimal.Decimal:
		d = x
	case *decimal.Decimal:
		if x == nil {
			return nil
		}
		d = *x
	default:
		return errors.New("must be a decimal")
	}
	if d.IsNegative() {
		return errors.New("must be no less than 0")
	}
	return nil
}

func (r saleFields) apply(s *model.Sale) {
	s.Quantity = *r.Quantity
	s.Revenue = *r.Revenue
	s.Status = *r.Status
}

func (h *SaleHandler) List(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()
	items, err := h.Store.List(ctx)
	if err != nil {
		return storeError(c, h.Log, err, "No Sellings were found")
	}
	if len(items) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No Sellings were found"})
	}
	return c.JSON(http.StatusOK, items)
}

func (h *SaleHandler) Get(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()
	s, err := h.Store.GetByID(ctx, c.Param("id"))
	if err != nil {
		return storeError(c, h.Log, err, "Selling not found")
	}
	return c.JSON(http.StatusOK, s)
}

func (h *SaleHandler) Create(c echo.Context) error {
	var req createSaleReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	s := &model.Sale{ID: req.ID}
	req.apply(s)

	ctx, cancel := dbContext(c)
	defer cancel()
	if err := h.Store.Create(ctx, s); err != nil {
		return storeError(c, h.Log, err, "Selling not found")
	}
	return c.JSON(http.StatusCreated, s)
}

// Update replaces quantity, revenue and status; the store stamps the
// shipment time.
func (h *SaleHandler) Update(c echo.Context) error {
	var req saleFields
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	s := &model.Sale{ID: c.Param("id")}
	req.apply(s)

	ctx, cancel := dbContext(c)
	defer cancel()
	if err := h.Store.Update(ctx, s); err != nil {
		return storeError(c, h.Log, err, "Selling not found")
	}
	return c.JSON(http.StatusOK, s)
}

func (h *SaleHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	ctx, cancel := dbContext(c)
	defer cancel()
	if err := h.Store.Delete(ctx, id); err != nil {
		return storeError(c, h.Log, err, "Selling not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("Selling %s successfully deleted", id)})
}

func (h *SaleHandler) DeleteAll(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()
	n, err := h.Store.DeleteAll(ctx)
	if err != nil {
		return storeError(c, h.Log, err, "No Sellings were found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "All sellings successfully deleted", "deleted": n})
}
