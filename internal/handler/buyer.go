package handler

import (
	"context"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/agri-supply-ledger/internal/logging"
	"github.com/iliyamo/agri-supply-ledger/internal/model"
)

// BuyerStore is the persistence used by BuyerHandler.
type BuyerStore interface {
	List(ctx context.Context) ([]model.Buyer, error)
	GetByID(ctx context.Context, id string) (*model.Buyer, error)
	Create(ctx context.Context, b *model.Buyer) error
	Update(ctx context.Context, b *model.Buyer) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

type BuyerHandler struct {
	Store BuyerStore
	Log   logging.Logger
}

func NewBuyerHandler(store BuyerStore, log logging.Logger) *BuyerHandler {
	return &BuyerHandler{Store: store, Log: log}
}

type buyerFields struct {
	Name    string  `json:"nama_pembeli"`
	Age     *int    `json:"umur"`
	Gender  *string `json:"gender"`
	Address string  `json:"alamat"`
	Phone   string  `json:"no_telp"`
	Email   string  `json:"email"`
}

type createBuyerReq struct {
	ID string `json:"id_pembeli"`
	buyerFields
}

func (r createBuyerReq) Validate() error {
	return withID("id_pembeli", r.ID, r.buyerFields.Validate())
}

func (r buyerFields) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.Age, validation.Min(0)),
		validation.Field(&r.Gender, validation.Length(0, 10)),
		validation.Field(&r.Address, validation.Required),
		validation.Field(&r.Phone, validation.Required, validation.Length(1, 20)),
		validation.Field(&r.Email, validation.Required, validation.Length(1, 100), is.Email),
	)
}

// apply overwrites every field, so omitted optional fields are cleared.
func (r buyerFields) apply(b *model.Buyer) {
	b.Name = r.Name
	b.Age = r.Age
	b.Gender = r.Gender
	b.Address = r.Address
	b.Phone = r.Phone
	b.Email = r.Email
}

func (h *BuyerHandler) List(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()
	items, err := h.Store.List(ctx)
	if err != nil {
		return storeError(c, h.Log, err, "No Buyers were found")
	}
	if len(items) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No Buyers were found"})
	}
	return c.JSON(http.StatusOK, items)
}

func (h *BuyerHandler) Get(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()
	b, err := h.Store.GetByID(ctx, c.Param("id"))
	if err != nil {
		return storeError(c, h.Log, err, "Buyer not found")
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BuyerHandler) Create(c echo.Context) error {
	var req createBuyerReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	b := &model.Buyer{ID: req.ID}
	req.apply(b)

	ctx, cancel := dbContext(c)
	defer cancel()
	if err := h.Store.Create(ctx, b); err != nil {
		return storeError(c, h.Log, err, "Buyer not found")
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *BuyerHandler) Update(c echo.Context) error {
	var req buyerFields
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	b := &model.Buyer{ID: c.Param("id")}
	req.apply(b)

	ctx, cancel := dbContext(c)
	defer cancel()
	if err := h.Store.Update(ctx, b); err != nil {
		return storeError(c, h.Log, err, "Buyer not found")
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BuyerHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	ctx, cancel := dbContext(c)
	defer cancel()
	if err := h.Store.Delete(ctx, id); err != nil {
		return storeError(c, h.Log, err, "Buyer not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("Buyer %s successfully deleted", id)})
}

func (h *BuyerHandler) DeleteAll(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()
	n, err := h.Store.DeleteAll(ctx)
	if err != nil {
		return storeError(c, h.Log, err, "No Buyers were found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "All buyers successfully deleted", "deleted": n})
}
