package assetmock

import (
	"context"

	domain "sikopifasta-backend/internal/domain/asset"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writers default to a nil error, getters to context.Canceled and lists to empty.
type Repo struct {
	CreateFn                func(ctx context.Context, a *domain.Asset) error
	SaveFn                  func(ctx context.Context, a *domain.Asset) error
	GetByAssetIDFn          func(ctx context.Context, assetID string) (*domain.Asset, error)
	GetByAssetIDForUpdateFn func(ctx context.Context, assetID string) (*domain.Asset, error)
	FindByNaturalKeyFn      func(ctx context.Context, key string) ([]*domain.Asset, error)
	ListByCategoryFn        func(ctx context.Context, c domain.Category) ([]*domain.Asset, error)
	ListAvailableFn         func(ctx context.Context) ([]*domain.Asset, error)
	UpdateLockFn            func(ctx context.Context, a *domain.Asset, expectedLoanID *string) error
}

func (m *Repo) Create(ctx context.Context, a *domain.Asset) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, a *domain.Asset) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByAssetID(ctx context.Context, assetID string) (*domain.Asset, error) {
	if m.GetByAssetIDFn != nil {
		return m.GetByAssetIDFn(ctx, assetID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByAssetIDForUpdate(ctx context.Context, assetID string) (*domain.Asset, error) {
	if m.GetByAssetIDForUpdateFn != nil {
		return m.GetByAssetIDForUpdateFn(ctx, assetID)
	}
	return nil, context.Canceled
}

func (m *Repo) FindByNaturalKey(ctx context.Context, key string) ([]*domain.Asset, error) {
	if m.FindByNaturalKeyFn != nil {
		return m.FindByNaturalKeyFn(ctx, key)
	}
	return nil, nil
}

func (m *Repo) ListByCategory(ctx context.Context, c domain.Category) ([]*domain.Asset, error) {
	if m.ListByCategoryFn != nil {
		return m.ListByCategoryFn(ctx, c)
	}
	return nil, nil
}

func (m *Repo) ListAvailable(ctx context.Context) ([]*domain.Asset, error) {
	if m.ListAvailableFn != nil {
		return m.ListAvailableFn(ctx)
	}
	return nil, nil
}

func (m *Repo) UpdateLock(ctx context.Context, a *domain.Asset, expectedLoanID *string) error {
	if m.UpdateLockFn != nil {
		return m.UpdateLockFn(ctx, a, expectedLoanID)
	}
	return nil
}
