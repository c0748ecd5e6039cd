package http

import (
	"net/http"
	"time"

	"lending-ledger/internal/adapter/middleware"
	domain "lending-ledger/internal/domain/loan"
	"lending-ledger/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type requestLoanReq struct {
	BorrowerID uint64          `json:"borrower_id" validate:"required"`
	Amount     decimal.Decimal `json:"amount"      validate:"required,gt=0,dec2"`
}

func (h *LoanHandler) RequestLoan(c echo.Context) error {
	var req requestLoanReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	if !actorAllowed(c, "borrower", req.BorrowerID) {
		return forbidden(c)
	}

	dto, err := h.uc.Request(c.Request().Context(), loan.RequestInput{
		BorrowerID: req.BorrowerID,
		Amount:     req.Amount,
		Actor:      middleware.Actor(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusCreated, "Loan requested", dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	id, valid := uintParam(c, "loan_id")
	if !valid {
		return badRequest(c, "invalid loan_id path param")
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Loan fetched", dto)
}

func (h *LoanHandler) ListRequests(c echo.Context) error {
	out, err := h.uc.ListRequested(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Pending loan requests", out)
}

type decideLoanReq struct {
	Status       string           `json:"status"        validate:"required,oneof=approved rejected"`
	LenderID     uint64           `json:"lender_id"     validate:"required_if=Status approved"`
	InterestRate *decimal.Decimal `json:"interest_rate" validate:"omitempty,gte=0,lte=100"`
	// RFC3339 or YYYY-MM-DD
	DueDate string `json:"due_date"`
}

func parseDueDate(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, true
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return &t, true
	}
	return nil, false
}

// Decide approves (disbursing the principal) or rejects a requested loan.
func (h *LoanHandler) Decide(c echo.Context) error {
	id, valid := uintParam(c, "loan_id")
	if !valid {
		return badRequest(c, "invalid loan_id path param")
	}
	var req decideLoanReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	due, valid := parseDueDate(req.DueDate)
	if !valid {
		return fail(c, http.StatusUnprocessableEntity, "validation failed",
			[]FieldError{{Field: "due_date", Message: "must be RFC3339 or YYYY-MM-DD"}})
	}
	if !actorIsAdmin(c) && (req.LenderID == 0 || !actorAllowed(c, "lender", req.LenderID)) {
		return forbidden(c)
	}

	dto, err := h.uc.Decide(c.Request().Context(), loan.DecideInput{
		LoanID:       id,
		Status:       domain.Status(req.Status),
		LenderID:     req.LenderID,
		InterestRate: req.InterestRate,
		DueDate:      due,
		Actor:        middleware.Actor(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Loan "+req.Status, dto)
}

func (h *LoanHandler) Repay(c echo.Context) error {
	id, valid := uintParam(c, "loan_id")
	if !valid {
		return badRequest(c, "invalid loan_id path param")
	}
	ctx := c.Request().Context()
	current, err := h.uc.Get(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	if !actorAllowed(c, "borrower", current.BorrowerID) {
		return forbidden(c)
	}

	res, err := h.uc.Repay(ctx, loan.RepayInput{LoanID: id, Actor: middleware.Actor(c)})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Loan repaid", res)
}
