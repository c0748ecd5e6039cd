package http

import (
	"net/http"

	"lending-ledger/internal/adapter/middleware"
	domain "lending-ledger/internal/domain/account"
	"lending-ledger/internal/usecase/account"
	"lending-ledger/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type AccountHandler struct {
	accounts *account.Usecase
	loans    *loan.Usecase
}

func NewAccountHandler(accounts *account.Usecase, loans *loan.Usecase) *AccountHandler {
	return &AccountHandler{accounts: accounts, loans: loans}
}

type registerReq struct {
	Name          string           `json:"name"           validate:"required,max=100"`
	Email         string           `json:"email"          validate:"required,email,max=100"`
	Password      string           `json:"password"       validate:"required,min=8"`
	Role          string           `json:"role"           validate:"required,oneof=admin lender borrower"`
	WalletAddress *string          `json:"wallet_address" validate:"omitempty,max=100"`
	MinAmount     *decimal.Decimal `json:"min_amount"     validate:"omitempty,gte=0,dec2"`
	MaxAmount     *decimal.Decimal `json:"max_amount"     validate:"omitempty,gt=0,dec2"`
	InterestRate  *decimal.Decimal `json:"interest_rate"  validate:"omitempty,gte=0,lte=100"`
	Remarks       string           `json:"remarks"`
}

// Register creates a user; only admin may call it.
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	if !actorIsAdmin(c) {
		return forbidden(c)
	}

	res, err := h.accounts.Register(c.Request().Context(), account.RegisterInput{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		Role:          domain.Role(req.Role),
		WalletAddress: req.WalletAddress,
		MinAmount:     req.MinAmount,
		MaxAmount:     req.MaxAmount,
		InterestRate:  req.InterestRate,
		Remarks:       req.Remarks,
		Actor:         middleware.Actor(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusCreated, "User created", res)
}

type topUpReq struct {
	Role      string          `json:"role"       validate:"required,oneof=lender borrower"`
	AccountID uint64          `json:"account_id" validate:"required"`
	Amount    decimal.Decimal `json:"amount"     validate:"required,gt=0,dec2"`
}

func (h *AccountHandler) TopUp(c echo.Context) error {
	var req topUpReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	if !actorAllowed(c, req.Role, req.AccountID) {
		return forbidden(c)
	}

	res, err := h.accounts.TopUp(c.Request().Context(), account.TopUpInput{
		Role:      domain.Role(req.Role),
		AccountID: req.AccountID,
		Amount:    req.Amount,
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Balance topped up", res)
}

func (h *AccountHandler) ListLenders(c echo.Context) error {
	ls, err := h.accounts.ListLenders(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]lenderView, 0, len(ls))
	for i := range ls {
		out = append(out, toLenderView(&ls[i]))
	}
	return ok(c, http.StatusOK, "Lenders", out)
}

func (h *AccountHandler) GetLender(c echo.Context) error {
	id, valid := uintParam(c, "id")
	if !valid {
		return badRequest(c, "invalid id path param")
	}
	l, err := h.accounts.GetLender(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Lender", toLenderView(l))
}

func (h *AccountHandler) LenderLoans(c echo.Context) error {
	id, valid := uintParam(c, "id")
	if !valid {
		return badRequest(c, "invalid id path param")
	}
	ctx := c.Request().Context()
	if _, err := h.accounts.GetLender(ctx, id); err != nil {
		return writeError(c, err)
	}
	out, err := h.loans.ListByLender(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Lender loans", out)
}

func (h *AccountHandler) ListBorrowers(c echo.Context) error {
	bs, err := h.accounts.ListBorrowers(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]borrowerView, 0, len(bs))
	for i := range bs {
		out = append(out, toBorrowerView(&bs[i]))
	}
	return ok(c, http.StatusOK, "Borrowers", out)
}

func (h *AccountHandler) GetBorrower(c echo.Context) error {
	id, valid := uintParam(c, "id")
	if !valid {
		return badRequest(c, "invalid id path param")
	}
	b, err := h.accounts.GetBorrower(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Borrower", toBorrowerView(b))
}

func (h *AccountHandler) BorrowerLoans(c echo.Context) error {
	id, valid := uintParam(c, "id")
	if !valid {
		return badRequest(c, "invalid id path param")
	}
	ctx := c.Request().Context()
	if _, err := h.accounts.GetBorrower(ctx, id); err != nil {
		return writeError(c, err)
	}
	ls, err := h.loans.ListByBorrower(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	out, err := withLenderNames(ctx, h.accounts, ls)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Borrower loans", out)
}

// UserByName looks a user up by display name. Names are not unique; the
// oldest account wins.
func (h *AccountHandler) UserByName(c echo.Context) error {
	name := c.Param("name")
	if name == "" {
		return badRequest(c, "name is required")
	}
	p, err := h.accounts.GetProfileByName(c.Request().Context(), name, "")
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "User", toProfileView(p))
}

type partyView struct {
	Name           string          `json:"name"`
	AccountBalance decimal.Decimal `json:"account_balance"`
	CreditScore    *int            `json:"credit_score,omitempty"`
}

type betweenView struct {
	Loans    []loanView `json:"loans"`
	Lender   partyView  `json:"lender"`
	Borrower partyView  `json:"borrower"`
}

// LoansBetween lists the loans a lender funded for a borrower, both named.
func (h *AccountHandler) LoansBetween(c echo.Context) error {
	ctx := c.Request().Context()
	lender, err := h.accounts.GetProfileByName(ctx, c.Param("lender_name"), domain.RoleLender)
	if err != nil {
		return writeError(c, err)
	}
	borrower, err := h.accounts.GetProfileByName(ctx, c.Param("borrower_name"), domain.RoleBorrower)
	if err != nil {
		return writeError(c, err)
	}

	ls, err := h.loans.ListBetween(ctx, lender.Lender.ID, borrower.Borrower.ID)
	if err != nil {
		return writeError(c, err)
	}
	loans, err := withLenderNames(ctx, h.accounts, ls)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Loans between lender and borrower", betweenView{
		Loans: loans,
		Lender: partyView{
			Name:           lender.User.Name,
			AccountBalance: lender.Lender.AccountBalance,
		},
		Borrower: partyView{
			Name:           borrower.User.Name,
			AccountBalance: borrower.Borrower.AccountBalance,
			CreditScore:    &borrower.Borrower.CreditScore,
		},
	})
}
