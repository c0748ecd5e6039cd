package http

import (
	"errors"
	"net/http"

	"lending-ledger/internal/domain/account"
	"lending-ledger/internal/domain/collateral"
	"lending-ledger/internal/domain/ledger"
	"lending-ledger/internal/domain/loan"
	"lending-ledger/internal/infrastructure/logging"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Response is the envelope every API route answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Error   any    `json:"error"`
}

func ok(c echo.Context, code int, msg string, data any) error {
	return c.JSON(code, Response{Success: true, Message: msg, Data: data})
}

func fail(c echo.Context, code int, msg string, detail any) error {
	if detail == nil {
		detail = msg
	}
	return c.JSON(code, Response{Success: false, Message: msg, Error: detail})
}

func invalid(c echo.Context, err error) error {
	return fail(c, http.StatusUnprocessableEntity, "validation failed", ToFieldErrors(err))
}

func badRequest(c echo.Context, msg string) error {
	return fail(c, http.StatusBadRequest, msg, nil)
}

var statusByErr = []struct {
	err  error
	code int
}{
	{loan.ErrNotFound, http.StatusNotFound},
	{ledger.ErrNotFound, http.StatusNotFound},
	{collateral.ErrNotFound, http.StatusNotFound},
	{account.ErrLenderNotFound, http.StatusNotFound},
	{account.ErrBorrowerNotFound, http.StatusNotFound},
	{account.ErrUserNotFound, http.StatusNotFound},
	{account.ErrInsufficientFunds, http.StatusBadRequest},
	{account.ErrInvalidAmount, http.StatusBadRequest},
	{account.ErrInvalidRole, http.StatusBadRequest},
	{loan.ErrInvalidStatus, http.StatusBadRequest},
	{collateral.ErrEmptyFile, http.StatusBadRequest},
	{loan.ErrRateLimited, http.StatusTooManyRequests},
	{loan.ErrInvalidTransition, http.StatusConflict},
	{account.ErrEmailTaken, http.StatusConflict},
}

// StatusFor maps a use case error onto an HTTP status; unknown errors are 500.
func StatusFor(err error) int {
	for _, m := range statusByErr {
		if errors.Is(err, m.err) {
			return m.code
		}
	}
	return http.StatusInternalServerError
}

// writeError answers with the mapped status. Internal errors are logged and hidden.
func writeError(c echo.Context, err error) error {
	code := StatusFor(err)
	if code == http.StatusInternalServerError {
		logging.WithComponent("http").Error("request failed",
			zap.String("path", c.Path()), zap.Error(err))
		return fail(c, code, "internal server error", nil)
	}
	return fail(c, code, err.Error(), nil)
}

func forbidden(c echo.Context) error {
	return fail(c, http.StatusForbidden, "actor is not allowed to perform this action", nil)
}
