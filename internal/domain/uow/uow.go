package uow

import (
	"context"

	"sikopifasta-backend/internal/domain/asset"
	"sikopifasta-backend/internal/domain/loan"
	"sikopifasta-backend/internal/domain/loanevent"
	"sikopifasta-backend/internal/domain/user"
)

// Repos are bound to one transaction. Anything read or written inside fn must go through them.
type Repos struct {
	Assets asset.Repository
	Loans  loan.Repository
	Events loanevent.Repository
	Users  user.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock loan first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
