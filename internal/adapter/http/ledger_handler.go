package http

import (
	"net/http"

	"lending-ledger/internal/usecase/ledger"

	"github.com/labstack/echo/v4"
)

type LedgerHandler struct{ uc *ledger.Usecase }

func NewLedgerHandler(uc *ledger.Usecase) *LedgerHandler { return &LedgerHandler{uc: uc} }

// List pages blocks by ?after_id=&limit=, or returns one record's history with ?unique_data_id=.
func (h *LedgerHandler) List(c echo.Context) error {
	var (
		in  ledger.ListInput
		uid string
	)
	if err := echo.QueryParamsBinder(c).
		Uint64("after_id", &in.AfterID).
		Int("limit", &in.Limit).
		String("unique_data_id", &uid).
		BindError(); err != nil {
		return badRequest(c, "invalid query params")
	}

	ctx := c.Request().Context()
	if uid != "" {
		blocks, err := h.uc.History(ctx, uid)
		if err != nil {
			return writeError(c, err)
		}
		return ok(c, http.StatusOK, "Ledger history", blocks)
	}
	blocks, err := h.uc.List(ctx, in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Ledger blocks", blocks)
}

func (h *LedgerHandler) Get(c echo.Context) error {
	id, valid := uintParam(c, "id")
	if !valid {
		return badRequest(c, "invalid id path param")
	}
	b, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Ledger block", b)
}

// Verify always answers 200; a broken chain is reported in the payload.
func (h *LedgerHandler) Verify(c echo.Context) error {
	res, err := h.uc.Verify(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	msg := "Ledger is valid"
	if !res.Valid {
		msg = "Ledger integrity check failed"
	}
	return ok(c, http.StatusOK, msg, res)
}
