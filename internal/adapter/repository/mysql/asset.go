package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	assetDomain "sikopifasta-backend/internal/domain/asset"
)

// columns owned by the loan engine; ordinary saves never touch them
var lockColumns = []string{
	"status", "active_loan_id", "reserved_status",
	"borrower_uid", "loan_start_at", "loan_due_at",
}

type AssetRepository struct{ db *gorm.DB }

func NewAssetRepository(db *gorm.DB) *AssetRepository { return &AssetRepository{db: db} }

func (r *AssetRepository) Create(ctx context.Context, a *assetDomain.Asset) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// Save writes the record without status and the lock columns; those go
// through UpdateLock.
func (r *AssetRepository) Save(ctx context.Context, a *assetDomain.Asset) error {
	omit := append([]string{"created_at"}, lockColumns...)
	return r.db.WithContext(ctx).Model(a).Select("*").Omit(omit...).Updates(a).Error
}

func (r *AssetRepository) GetByAssetID(ctx context.Context, assetID string) (*assetDomain.Asset, error) {
	var out assetDomain.Asset
	res := r.db.WithContext(ctx).Where("asset_id = ?", assetID).First(&out)
	return &out, res.Error
}

func (r *AssetRepository) GetByAssetIDForUpdate(ctx context.Context, assetID string) (*assetDomain.Asset, error) {
	var out assetDomain.Asset
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("asset_id = ?", assetID).
		First(&out)
	return &out, res.Error
}

func (r *AssetRepository) FindByNaturalKey(ctx context.Context, key string) ([]*assetDomain.Asset, error) {
	var out []*assetDomain.Asset
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("natural_key = ?", key).
		Order("is_deleted ASC, updated_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *AssetRepository) ListByCategory(ctx context.Context, c assetDomain.Category) ([]*assetDomain.Asset, error) {
	var out []*assetDomain.Asset
	res := r.db.WithContext(ctx).
		Where("category = ? AND is_deleted = ?", c, false).
		Order("name ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *AssetRepository) ListAvailable(ctx context.Context) ([]*assetDomain.Asset, error) {
	var out []*assetDomain.Asset
	res := r.db.WithContext(ctx).
		Where("is_deleted = ? AND status = ? AND active_loan_id IS NULL", false, assetDomain.StatusAvailable).
		Order("name ASC, id ASC").
		Find(&out)
	return out, res.Error
}

// UpdateLock is a compare-and-set on active_loan_id.
func (r *AssetRepository) UpdateLock(ctx context.Context, a *assetDomain.Asset, expectedLoanID *string) error {
	now := time.Now().UTC()
	q := r.db.WithContext(ctx).Model(&assetDomain.Asset{}).Where("asset_id = ?", a.AssetID)
	if expectedLoanID == nil {
		q = q.Where("active_loan_id IS NULL")
	} else {
		q = q.Where("active_loan_id = ?", *expectedLoanID)
	}
	res := q.Updates(map[string]any{
		"status":          a.Status,
		"active_loan_id":  a.ActiveLoanID,
		"reserved_status": a.ReservedStatus,
		"borrower_uid":    a.BorrowerUID,
		"loan_start_at":   a.LoanStartAt,
		"loan_due_at":     a.LoanDueAt,
		"updated_at":      now,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return assetDomain.ErrLockLost
	}
	a.UpdatedAt = now
	return nil
}
