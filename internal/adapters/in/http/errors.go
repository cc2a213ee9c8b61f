package http

import (
	"errors"
	"log/slog"
	"net/http"

	"shipment/internal/generated/servers"
	"shipment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const internalErrorMessage = "Internal server error"

// StatusOf maps an application error to its HTTP status.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrContract):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeDomainError(ctx echo.Context, err error) error {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(ctx.Request().Context(), "Request failed", "path", ctx.Path(), "error", err)
		return writeError(ctx, status, internalErrorMessage)
	}
	return writeError(ctx, status, err.Error())
}

func writeError(ctx echo.Context, status int, message string) error {
	return ctx.JSON(status, servers.Error{
		HttpStatus: status,
		Message:    message,
	})
}

// ErrorHandler renders errors that escape the handlers, routing and binding
// failures included, in the same JSON shape as handler errors.
func ErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := internalErrorMessage

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(status)
		}
	} else {
		slog.ErrorContext(ctx.Request().Context(), "Unhandled error", "path", ctx.Path(), "error", err)
	}

	if werr := writeError(ctx, status, message); werr != nil {
		slog.ErrorContext(ctx.Request().Context(), "Writing error response failed", "error", werr)
	}
}
