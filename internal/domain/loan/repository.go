package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	Save(ctx context.Context, l *Loan) error

	// Listings are newest first.
	ListByUser(ctx context.Context, userUID string) ([]*Loan, error)
	ListByStatus(ctx context.Context, statuses ...Status) ([]*Loan, error)
	ListByAsset(ctx context.Context, assetID string) ([]*Loan, error)
}
