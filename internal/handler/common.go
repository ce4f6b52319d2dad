package handler // handler defines http handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/agri-supply-ledger/internal/logging"
	"github.com/iliyamo/agri-supply-ledger/internal/repository"
)

// dbTimeout bounds every store call made while serving a request.
const dbTimeout = 5 * time.Second

func dbContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// bindValid decodes the request body into v and runs its validation rules.
// On failure the response has already been written and ok is false; the
// returned error is what the handler should return.
func bindValid(c echo.Context, v validation.Validatable) (ok bool, err error) {
	if err := c.Bind(v); err != nil {
		return false, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := v.Validate(); err != nil {
		var fields validation.Errors
		if errors.As(err, &fields) {
			return false, c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "validation failed", "fields": fields})
		}
		return false, c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}
	return true, nil
}

// withID validates a create request's primary key under the JSON name key
// and merges the result with the field errors in rest.  Keys are at most
// eight characters.
func withID(key, id string, rest error) error {
	errs := validation.Errors{key: validation.Validate(id, validation.Required, validation.Length(1, 8))}
	if rest != nil {
		fields, ok := rest.(validation.Errors)
		if !ok {
			return rest
		}
		for k, v := range fields {
			errs[k] = v
		}
	}
	return errs.Filter()
}

// storeError maps a repository error onto an HTTP response.  notFound is
// the message used for ErrNotFound.  Unclassified errors are logged and
// answered with 500.
func storeError(c echo.Context, log logging.Logger, err error, notFound string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": notFound})
	case errors.Is(err, repository.ErrReferenceNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "referenced record not found"})
	case errors.Is(err, repository.ErrDuplicate):
		return c.JSON(http.StatusConflict, echo.Map{"error": "record already exists"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "record is still referenced"})
	case errors.Is(err, repository.ErrInvalidData):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid data"})
	case errors.Is(err, context.DeadlineExceeded):
		log.Warn(c.Request().Context(), "store call timed out", "path", c.Path())
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "store timeout"})
	}
	log.Error(c.Request().Context(), "store call failed", "path", c.Path(), "err", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
