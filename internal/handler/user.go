package handler

import (
	"context"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/agri-supply-ledger/internal/logging"
	"github.com/iliyamo/agri-supply-ledger/internal/model"
)

// UserStore is the persistence used by UserHandler.  Principals can be
// listed, fetched and added; there is no update or delete endpoint.
type UserStore interface {
	List(ctx context.Context) ([]model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
}

// PasswordHasher produces the digest stored for a new principal.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type UserHandler struct {
	Store  UserStore
	Hasher PasswordHasher
	Log    logging.Logger
}

func NewUserHandler(store UserStore, hasher PasswordHasher, log logging.Logger) *UserHandler {
	return &UserHandler{Store: store, Hasher: hasher, Log: log}
}

type createUserReq struct {
	Username string `json:"id_username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   *bool  `json:"status"`
}

func (r createUserReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 20)),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 72)),
		validation.Field(&r.Email, validation.Required, validation.Length(1, 100), is.Email),
		validation.Field(&r.Role, validation.Required, validation.Length(1, 15)),
	)
}

func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()
	items, err := h.Store.List(ctx)
	if err != nil {
		return storeError(c, h.Log, err, "No Users were found")
	}
	if len(items) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No Users were found"})
	}
	return c.JSON(http.StatusOK, items)
}

func (h *UserHandler) Get(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()
	u, err := h.Store.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		return storeError(c, h.Log, err, "User not found")
	}
	return c.JSON(http.StatusOK, u)
}

// Create stores a new principal.  The password is hashed before it
// reaches the store and never appears in the response; status defaults to
// active.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	digest, err := h.Hasher.Hash(req.Password)
	if err != nil {
		h.Log.Error(c.Request().Context(), "hash password", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	u := &model.User{
		Username:     req.Username,
		PasswordHash: digest,
		Email:        req.Email,
		Role:         req.Role,
		IsActive:     req.Status == nil || *req.Status,
	}

	ctx, cancel := dbContext(c)
	defer cancel()
	if err := h.Store.Create(ctx, u); err != nil {
		return storeError(c, h.Log, err, "User not found")
	}
	return c.JSON(http.StatusCreated, u)
}
