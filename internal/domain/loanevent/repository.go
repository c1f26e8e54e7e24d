package loanevent

import "context"

type Repository interface {
	Create(ctx context.Context, e *Event) error

	// Oldest first.
	ListByLoanID(ctx context.Context, loanID string) ([]*Event, error)
}
