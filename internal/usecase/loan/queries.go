package loan

import (
	"context"

	"sikopifasta-backend/internal/domain/apperr"
	"sikopifasta-backend/internal/domain/loan"
)

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, trimmed(loanID))
	if err != nil {
		return nil, storeErr(err, loan.ErrNotFound)
	}
	return toDTO(l, u.now()), nil
}

// ListByUser returns the user's loans, newest first.
func (u *Usecase) ListByUser(ctx context.Context, userUID string) ([]*LoanDTO, error) {
	if trimmed(userUID) == "" {
		return nil, apperr.Validation("user_uid is required")
	}
	list, err := u.loans.ListByUser(ctx, userUID)
	if err != nil {
		return nil, apperr.Transport(err)
	}
	return u.toDTOs(list), nil
}

// ListByAsset returns every loan ever made on the asset, newest first.
func (u *Usecase) ListByAsset(ctx context.Context, assetID string) ([]*LoanDTO, error) {
	assetID = trimmed(assetID)
	if assetID == "" {
		return nil, apperr.Validation("asset_id is required")
	}
	list, err := u.loans.ListByAsset(ctx, assetID)
	if err != nil {
		return nil, apperr.Transport(err)
	}
	return u.toDTOs(list), nil
}

// ListPending returns loans waiting for an admin decision.
func (u *Usecase) ListPending(ctx context.Context) ([]*LoanDTO, error) {
	list, err := u.loans.ListByStatus(ctx, loan.StatusRequested)
	if err != nil {
		return nil, apperr.Transport(err)
	}
	return u.toDTOs(list), nil
}

// ListActive returns approved and borrowed loans; overdue ones report late.
func (u *Usecase) ListActive(ctx context.Context) ([]*LoanDTO, error) {
	list, err := u.loans.ListByStatus(ctx, loan.StatusApproved, loan.StatusBorrowed, loan.StatusLate)
	if err != nil {
		return nil, apperr.Transport(err)
	}
	return u.toDTOs(list), nil
}

// History is the loan's audit trail, oldest first.
func (u *Usecase) History(ctx context.Context, loanID string) ([]EventDTO, error) {
	loanID = trimmed(loanID)
	if _, err := u.loans.GetByLoanID(ctx, loanID); err != nil {
		return nil, storeErr(err, loan.ErrNotFound)
	}
	events, err := u.events.ListByLoanID(ctx, loanID)
	if err != nil {
		return nil, apperr.Transport(err)
	}
	out := make([]EventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, toEventDTO(e))
	}
	return out, nil
}

func (u *Usecase) toDTOs(list []*loan.Loan) []*LoanDTO {
	now := u.now()
	out := make([]*LoanDTO, 0, len(list))
	for _, l := range list {
		out = append(out, toDTO(l, now))
	}
	return out
}
