package http

import (
	"errors"
	"net/http"

	"github.com/samnaidups/CordaProjects/internal/domain/ledger"
	"github.com/samnaidups/CordaProjects/internal/domain/loan"
	"github.com/samnaidups/CordaProjects/internal/usecase/transition"

	"github.com/labstack/echo/v4"
)

type TransitionHandler struct{ uc *transition.Usecase }

func NewTransitionHandler(uc *transition.Usecase) *TransitionHandler {
	return &TransitionHandler{uc: uc}
}

type partyReq struct {
	Name string `json:"name" validate:"required"`
	Key  string `json:"key"  validate:"required,hex32"`
}

type proposeReq struct {
	Amount       int64    `json:"amount"       validate:"required,gt=0"`
	ROI          int      `json:"roi"          validate:"gte=0"`
	Installments int      `json:"installments" validate:"required,gt=0"`
	Lender       partyReq `json:"lender"       validate:"required"`
	Borrower     partyReq `json:"borrower"     validate:"required"`
	Proposer     partyReq `json:"proposer"     validate:"required"`
	Proposee     partyReq `json:"proposee"     validate:"required"`
}

func (h *TransitionHandler) Propose(c echo.Context) error {
	var req proposeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Propose(c.Request().Context(), transition.ProposeInput{
		Amount:       req.Amount,
		ROI:          req.ROI,
		Installments: req.Installments,
		Lender:       transition.PartyInput(req.Lender),
		Borrower:     transition.PartyInput(req.Borrower),
		Proposer:     transition.PartyInput(req.Proposer),
		Proposee:     transition.PartyInput(req.Proposee),
	})
	if err != nil {
		return rejected(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type modifyROIReq struct {
	ROI int `json:"roi" validate:"gte=0"`
}

func (h *TransitionHandler) ModifyROI(c echo.Context) error {
	linearID, ok := linearParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid linear_id path param"})
	}
	var req modifyROIReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.ModifyROI(c.Request().Context(), linearID, req.ROI)
	if err != nil {
		return rejected(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type modifyInstallmentsReq struct {
	Installments int `json:"installments" validate:"required,gt=0"`
}

func (h *TransitionHandler) ModifyInstallments(c echo.Context) error {
	linearID, ok := linearParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid linear_id path param"})
	}
	var req modifyInstallmentsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.ModifyInstallments(c.Request().Context(), linearID, req.Installments)
	if err != nil {
		return rejected(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *TransitionHandler) Accept(c echo.Context) error {
	linearID, ok := linearParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid linear_id path param"})
	}
	dto, err := h.uc.Accept(c.Request().Context(), linearID)
	if err != nil {
		return rejected(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type requestReq struct {
	Amount       int64    `json:"amount"`
	ROI          int      `json:"roi"          validate:"gte=0"`
	Installments int      `json:"installments" validate:"required,gt=0"`
	Lender       partyReq `json:"lender"       validate:"required"`
	Borrower     partyReq `json:"borrower"     validate:"required"`
}

func (h *TransitionHandler) Request(c echo.Context) error {
	var req requestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	// amount carries no validate tag: zero and negative amounts must reach
	// the contract, whose positivity rule is the one that rejects them
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Request(c.Request().Context(), transition.RequestInput{
		Amount:       req.Amount,
		ROI:          req.ROI,
		Installments: req.Installments,
		Lender:       transition.PartyInput(req.Lender),
		Borrower:     transition.PartyInput(req.Borrower),
	})
	if err != nil {
		return rejected(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *TransitionHandler) Settle(c echo.Context) error {
	linearID, ok := linearParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid linear_id path param"})
	}
	dto, err := h.uc.Settle(c.Request().Context(), linearID)
	if err != nil {
		return rejected(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *TransitionHandler) Get(c echo.Context) error {
	linearID, ok := linearParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid linear_id path param"})
	}
	dto, err := h.uc.Get(c.Request().Context(), linearID)
	if err != nil {
		return rejected(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func linearParam(c echo.Context) (string, bool) {
	lid := c.Param("linear_id")
	return lid, reLinear.MatchString(lid)
}

// rejected maps a validation or domain error onto the HTTP surface. Any
// contract rejection is 422 with the unmet predicate as the reason.
func rejected(c echo.Context, err error) error {
	var (
		se *ledger.StructuralError
		ge *ledger.SignerError
		iv *ledger.InvariantViolation
		br *ledger.BusinessRuleError
	)
	switch {
	case errors.As(err, &se), errors.As(err, &ge), errors.As(err, &iv), errors.As(err, &br):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loan.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, loan.ErrConsumed):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "record version already consumed"})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
