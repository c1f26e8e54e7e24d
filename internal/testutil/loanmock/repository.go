package loanmock

import (
	"context"

	domain "sikopifasta-backend/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writers default to a nil error, getters to context.Canceled and lists to empty.
type Repo struct {
	CreateFn               func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn          func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn func(ctx context.Context, loanID string) (*domain.Loan, error)
	SaveFn                 func(ctx context.Context, l *domain.Loan) error
	ListByUserFn           func(ctx context.Context, userUID string) ([]*domain.Loan, error)
	ListByStatusFn         func(ctx context.Context, statuses ...domain.Status) ([]*domain.Loan, error)
	ListByAssetFn          func(ctx context.Context, assetID string) ([]*domain.Loan, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) ListByUser(ctx context.Context, userUID string) ([]*domain.Loan, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userUID)
	}
	return nil, nil
}

func (m *Repo) ListByStatus(ctx context.Context, statuses ...domain.Status) ([]*domain.Loan, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, statuses...)
	}
	return nil, nil
}

func (m *Repo) ListByAsset(ctx context.Context, assetID string) ([]*domain.Loan, error) {
	if m.ListByAssetFn != nil {
		return m.ListByAssetFn(ctx, assetID)
	}
	return nil, nil
}
