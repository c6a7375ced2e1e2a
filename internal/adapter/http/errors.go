package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"fleet-fuel-backend/internal/domain/errs"
)

// statusFor maps a usecase error to its HTTP status and response code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return http.StatusUnprocessableEntity, "validation_failed"
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict, "invalid_transition"
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, errs.ErrAccountInactive):
		return http.StatusUnprocessableEntity, "account_inactive"
	case errors.Is(err, errs.ErrInsufficientCredit):
		return http.StatusUnprocessableEntity, "insufficient_credit"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeError(c echo.Context, log logrus.FieldLogger, err error) error {
	status, code := statusFor(err)
	resp := ErrorResponse{Error: err.Error(), Code: code}

	var ve *errs.ValidationError
	if errors.As(err, &ve) {
		resp.Error = "validation failed"
		for _, f := range ve.Fields {
			resp.Details = append(resp.Details, FieldError{Field: f.Field, Message: f.Message})
		}
	}
	if status == http.StatusInternalServerError {
		log.WithFields(logrus.Fields{"method": c.Request().Method, "path": c.Path()}).WithError(err).Error("request failed")
		resp.Error = "internal error"
	}
	return c.JSON(status, resp)
}

func badBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body", Code: "bad_request"})
}

func invalidBody(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Code:    "validation_failed",
		Details: ToFieldErrors(err),
	})
}
