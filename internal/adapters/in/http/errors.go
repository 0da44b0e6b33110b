package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError translates domain errors to HTTP status codes. Errors outside
// the taxonomy are logged and answered with a fixed message; datastore and
// driver detail never reaches the client.
func respondError(ctx echo.Context, err error) error {
	status := statusFor(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		ctx.Logger().Error(err)
		message = "internal server error"
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: message,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
