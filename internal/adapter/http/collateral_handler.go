package http

import (
	"errors"
	"net/http"

	"lending-ledger/internal/adapter/middleware"
	domain "lending-ledger/internal/domain/collateral"
	"lending-ledger/internal/usecase/collateral"

	"github.com/labstack/echo/v4"
)

// MaxCollateralSize caps a single uploaded document.
const MaxCollateralSize = 10 << 20

type CollateralHandler struct{ uc *collateral.Usecase }

func NewCollateralHandler(uc *collateral.Usecase) *CollateralHandler {
	return &CollateralHandler{uc: uc}
}

// Upload takes a multipart "file" field.
func (h *CollateralHandler) Upload(c echo.Context) error {
	borrowerID, valid := uintParam(c, "id")
	if !valid {
		return badRequest(c, "invalid id path param")
	}
	if !actorAllowed(c, "borrower", borrowerID) {
		return forbidden(c)
	}

	fh, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return writeError(c, domain.ErrEmptyFile)
	}
	if err != nil {
		return badRequest(c, "invalid multipart body")
	}
	if fh.Size > MaxCollateralSize {
		return fail(c, http.StatusRequestEntityTooLarge, "file too large", nil)
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "cannot read uploaded file")
	}
	defer f.Close()

	out, err := h.uc.Upload(c.Request().Context(), collateral.UploadInput{
		BorrowerID:  borrowerID,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Content:     f,
		Actor:       middleware.Actor(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusCreated, "Collateral uploaded", out)
}

func (h *CollateralHandler) List(c echo.Context) error {
	borrowerID, valid := uintParam(c, "id")
	if !valid {
		return badRequest(c, "invalid id path param")
	}
	out, err := h.uc.ListByBorrower(c.Request().Context(), borrowerID)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Borrower collateral", out)
}
