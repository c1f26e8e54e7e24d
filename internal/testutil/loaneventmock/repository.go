package loaneventmock

import (
	"context"

	domain "sikopifasta-backend/internal/domain/loanevent"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock. With no CreateFn set it records created events.
type Repo struct {
	CreateFn       func(ctx context.Context, e *domain.Event) error
	ListByLoanIDFn func(ctx context.Context, loanID string) ([]*domain.Event, error)

	Created []*domain.Event
}

func (m *Repo) Create(ctx context.Context, e *domain.Event) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	m.Created = append(m.Created, e)
	return nil
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID string) ([]*domain.Event, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, nil
}
