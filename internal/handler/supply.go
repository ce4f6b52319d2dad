package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/agri-supply-ledger/internal/logging"
	"github.com/iliyamo/agri-supply-ledger/internal/middleware"
	"github.com/iliyamo/agri-supply-ledger/internal/model"
	"github.com/iliyamo/agri-supply-ledger/internal/queue"
	"github.com/iliyamo/agri-supply-ledger/internal/service"
)

// SupplyStore is the persistence used by SupplyHandler.
type SupplyStore interface {
	List(ctx context.Context) ([]model.Supply, error)
	GetByID(ctx context.Context, id string) (*model.Supply, error)
	Create(ctx context.Context, s *model.Supply) error
	Update(ctx context.Context, s *model.Supply) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

// SupplyHandler serves the supply endpoints and announces availability
// changes on the event publisher.
type SupplyHandler struct {
	Store  SupplyStore
	Events service.EventPublisher
	Log    logging.Logger
}

func NewSupplyHandler(store SupplyStore, events service.EventPublisher, log logging.Logger) *SupplyHandler {
	if events == nil {
		events = service.NoopPublisher{}
	}
	return &SupplyHandler{Store: store, Events: events, Log: log}
}

// status is accepted for compatibility but always recomputed from jumlah.
// jumlah must be present; zero is allowed.
type supplyFields struct {
	Name        string  `json:"nama_produk"`
	Quantity    *int    `json:"jumlah"`
	Description *string `json:"deskripsi"`
	Category    string  `json:"jenis"`
	Status      string  `json:"status"`
}

type createSupplyReq struct {
	ID string `json:"id_produk"`
	supplyFields
}

func (r createSupplyReq) Validate() error {
	return withID("id_produk", r.ID, r.supplyFields.Validate())
}

func (r supplyFields) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.Quantity, validation.NotNil, validation.Min(0)),
		validation.Field(&r.Category, validation.Required, validation.Length(1, 25)),
	)
}

func (r supplyFields) apply(s *model.Supply) {
	s.Name = r.Name
	s.Quantity = *r.Quantity
	s.Description = r.Description
	s.Category = r.Category
}

func (h *SupplyHandler) List(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()
	items, err := h.Store.List(ctx)
	if err != nil {
		return storeError(c, h.Log, err, "No Supplies were found")
	}
	if len(items) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No Supplies were found"})
	}
	return c.JSON(http.StatusOK, items)
}

func (h *SupplyHandler) Get(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()
	s, err := h.Store.GetByID(ctx, c.Param("id"))
	if err != nil {
		return storeError(c, h.Log, err, "Supply not found")
	}
	return c.JSON(http.StatusOK, s)
}

func (h *SupplyHandler) Create(c echo.Context) error {
	var req createSupplyReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	s := &model.Supply{ID: req.ID}
	req.apply(s)

	ctx, cancel := dbContext(c)
	defer cancel()
	if err := h.Store.Create(ctx, s); err != nil {
		return storeError(c, h.Log, err, "Supply not found")
	}
	h.publish(c, s, "")
	return c.JSON(http.StatusCreated, s)
}

// Update replaces every mutable field.  The status is recomputed and an
// event is published only when it actually changes.
func (h *SupplyHandler) Update(c echo.Context) error {
	var req supplyFields
	if ok, err := bindValid(c, &req); !ok {
		return err
	}

	ctx, cancel := dbContext(c)
	defer cancel()
	s, err := h.Store.GetByID(ctx, c.Param("id"))
	if err != nil {
		return storeError(c, h.Log, err, "Supply not found")
	}
	previous := s.Status
	req.apply(s)
	if err := h.Store.Update(ctx, s); err != nil {
		return storeError(c, h.Log, err, "Supply not found")
	}
	if s.Status != previous {
		h.publish(c, s, previous)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *SupplyHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	ctx, cancel := dbContext(c)
	defer cancel()
	if err := h.Store.Delete(ctx, id); err != nil {
		return storeError(c, h.Log, err, "Supply not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("Supply %s successfully deleted", id)})
}

func (h *SupplyHandler) DeleteAll(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()
	n, err := h.Store.DeleteAll(ctx)
	if err != nil {
		return storeError(c, h.Log, err, "No Supplies were found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "All supplies successfully deleted", "deleted": n})
}

// publish sends the status event.  Failures are logged and never affect
// the response.
func (h *SupplyHandler) publish(c echo.Context, s *model.Supply, previous string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request().Context()), 5*time.Second)
	defer cancel()
	ev := queue.SupplyStatusChangedEvent{
		SupplyID:       s.ID,
		Name:           s.Name,
		Quantity:       s.Quantity,
		PreviousStatus: previous,
		Status:         s.Status,
		ChangedBy:      middleware.Username(c),
		ChangedAt:      time.Now().UTC(),
	}
	if err := h.Events.PublishSupplyStatusChanged(ctx, ev); err != nil {
		h.Log.Warn(ctx, "supply status event not published", "id_produk", s.ID, "err", err)
	}
}
