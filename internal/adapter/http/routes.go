package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Health     *Handler
	Loans      *LoanHandler
	Ledger     *LedgerHandler
	Accounts   *AccountHandler
	Collateral *CollateralHandler
	// Served at /metrics when set
	Metrics http.Handler
}

// RegisterRoutes mounts the API. mw wraps every /api route; read-only methods
// are expected to pass through it untouched.
func RegisterRoutes(e *echo.Echo, h Handlers, mw ...echo.MiddlewareFunc) {
	e.Validator = NewValidator()

	e.GET("/health", h.Health.Health)
	if h.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(h.Metrics))
	}

	api := e.Group("/api", mw...)

	api.POST("/users", h.Accounts.Register)
	api.POST("/users/top-up", h.Accounts.TopUp)
	api.GET("/users/name/:name", h.Accounts.UserByName)
	api.GET("/lenders", h.Accounts.ListLenders)
	api.GET("/lenders/:id", h.Accounts.GetLender)
	api.GET("/lenders/:id/loans", h.Accounts.LenderLoans)
	api.GET("/borrowers", h.Accounts.ListBorrowers)
	api.GET("/borrowers/:id", h.Accounts.GetBorrower)
	api.GET("/borrowers/:id/loans", h.Accounts.BorrowerLoans)
	api.GET("/borrowers/:id/collateral", h.Collateral.List)
	api.POST("/borrowers/:id/collateral", h.Collateral.Upload)

	api.POST("/loans", h.Loans.RequestLoan)
	api.GET("/loans/requests", h.Loans.ListRequests)
	api.GET("/loans/between/:lender_name/:borrower_name", h.Accounts.LoansBetween)
	api.GET("/loans/:loan_id", h.Loans.GetLoan)
	api.PUT("/loans/:loan_id/approve", h.Loans.Decide)
	api.POST("/loans/:loan_id/repay", h.Loans.Repay)

	api.GET("/ledger", h.Ledger.List)
	api.GET("/ledger/verify", h.Ledger.Verify)
	api.GET("/ledger/:id", h.Ledger.Get)
}
