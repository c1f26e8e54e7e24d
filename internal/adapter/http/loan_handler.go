package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sikopifasta-backend/internal/domain/user"
	"sikopifasta-backend/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

// Loan timestamps are RFC3339 with a zone.
type requestLoanReq struct {
	AssetID string `json:"asset_id" validate:"required,hex32"`
	Purpose string `json:"purpose"  validate:"max=2000"`
	StartAt string `json:"start_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	DueAt   string `json:"due_at"   validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

type approveReq struct {
	Note  string `json:"note"   validate:"max=2000"`
	DueAt string `json:"due_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

type noteReq struct {
	Note string `json:"note" validate:"max=2000"`
}

type borrowReq struct {
	Note    string `json:"note"     validate:"max=2000"`
	StartAt string `json:"start_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

func (h *LoanHandler) Request(c echo.Context) error {
	cl, ok, err := mustCaller(c)
	if !ok {
		return err
	}
	var req requestLoanReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Request(c.Request().Context(), loan.RequestInput{
		AssetID: req.AssetID,
		UserUID: cl.UID,
		Purpose: req.Purpose,
		StartAt: parseOpt(timeLayout, req.StartAt),
		DueAt:   parseOpt(timeLayout, req.DueAt),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) Approve(c echo.Context) error {
	cl, ok, err := mustCaller(c)
	if !ok {
		return err
	}
	var req approveReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Approve(c.Request().Context(), loan.ApproveInput{
		LoanID:   c.Param("loan_id"),
		AdminUID: cl.UID,
		Note:     req.Note,
		DueAt:    parseOpt(timeLayout, req.DueAt),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Reject(c echo.Context) error {
	cl, ok, err := mustCaller(c)
	if !ok {
		return err
	}
	var req noteReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Reject(c.Request().Context(), loan.RejectInput{
		LoanID:   c.Param("loan_id"),
		AdminUID: cl.UID,
		Note:     req.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Borrow(c echo.Context) error {
	cl, ok, err := mustCaller(c)
	if !ok {
		return err
	}
	var req borrowReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.MarkBorrowed(c.Request().Context(), loan.BorrowInput{
		LoanID:   c.Param("loan_id"),
		AdminUID: cl.UID,
		Note:     req.Note,
		StartAt:  parseOpt(timeLayout, req.StartAt),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Return(c echo.Context) error {
	cl, ok, err := mustCaller(c)
	if !ok {
		return err
	}
	var req noteReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Return(c.Request().Context(), loan.ReturnInput{
		LoanID:   c.Param("loan_id"),
		ActorUID: cl.UID,
		Note:     req.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Mine(c echo.Context) error {
	cl, ok, err := mustCaller(c)
	if !ok {
		return err
	}
	list, err := h.uc.ListByUser(c.Request().Context(), cl.UID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// List serves the admin queues: ?view=pending (default) or ?view=active.
func (h *LoanHandler) List(c echo.Context) error {
	var (
		list []*loan.LoanDTO
		err  error
	)
	switch c.QueryParam("view") {
	case "", "pending":
		list, err = h.uc.ListPending(c.Request().Context())
	case "active":
		list, err = h.uc.ListActive(c.Request().Context())
	default:
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Code:    "validation_error",
			Details: []FieldError{{Field: "view", Message: "must be one of pending active"}},
		})
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// ByAsset is the admin view of an asset's loan history.
func (h *LoanHandler) ByAsset(c echo.Context) error {
	list, err := h.uc.ListByAsset(c.Request().Context(), c.Param("asset_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// visible loads the loan and checks the caller may read it.
func (h *LoanHandler) visible(c echo.Context, cl user.Caller) (*loan.LoanDTO, error) {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return nil, err
	}
	if !cl.IsAdmin() && dto.UserUID != cl.UID {
		return nil, errNotYours
	}
	return dto, nil
}

func (h *LoanHandler) Get(c echo.Context) error {
	cl, ok, err := mustCaller(c)
	if !ok {
		return err
	}
	dto, err := h.visible(c, cl)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Events(c echo.Context) error {
	cl, ok, err := mustCaller(c)
	if !ok {
		return err
	}
	if _, err := h.visible(c, cl); err != nil {
		return respondError(c, err)
	}
	events, err := h.uc.History(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, events)
}
