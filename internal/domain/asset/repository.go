package asset

import (
	"context"

	"sikopifasta-backend/internal/domain/apperr"
)

var (
	ErrNotFound     = apperr.New(apperr.ErrNotFound, "asset not found")
	ErrDuplicateKey = apperr.New(apperr.ErrConflict, "an asset with the same plate number / NUP code already exists")
	ErrLockLost     = apperr.New(apperr.ErrConflict, "asset lock changed concurrently")
)

type Repository interface {
	Create(ctx context.Context, a *Asset) error
	// Save writes every column except status, the lock and the loan mirror fields.
	Save(ctx context.Context, a *Asset) error
	GetByAssetID(ctx context.Context, assetID string) (*Asset, error)
	GetByAssetIDForUpdate(ctx context.Context, assetID string) (*Asset, error)
	// FindByNaturalKey returns every row with the key, deleted ones included,
	// live rows first then most recently updated.
	FindByNaturalKey(ctx context.Context, key string) ([]*Asset, error)
	ListByCategory(ctx context.Context, c Category) ([]*Asset, error)
	ListAvailable(ctx context.Context) ([]*Asset, error)
	// UpdateLock persists status, lock and loan mirror fields only if the row is
	// still held by expectedLoanID (nil = unlocked). Returns ErrLockLost otherwise.
	UpdateLock(ctx context.Context, a *Asset, expectedLoanID *string) error
}
