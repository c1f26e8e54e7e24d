package asset

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"sikopifasta-backend/internal/domain/apperr"
	"sikopifasta-backend/internal/domain/asset"
	"sikopifasta-backend/internal/domain/uow"
	"sikopifasta-backend/internal/infrastructure/logging"
	"sikopifasta-backend/internal/infrastructure/metrics"
	"sikopifasta-backend/pkg/id"
)

// Usecase is the asset repository service. It never moves the lock fields;
// status writes go through the same compare-and-set the loan engine uses, so
// an asset claimed by a loan cannot have its status changed from here.
type Usecase struct {
	assets asset.Repository
	uow    uow.UnitOfWork
	now    func() time.Time
}

func NewUsecase(assets asset.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{assets: assets, uow: tx, now: func() time.Time { return time.Now().UTC() }}
}

func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

func storeErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return asset.ErrNotFound
	}
	return apperr.Transport(err)
}

// validate checks the shared fields and builds the category variant.
func validate(in Input) (asset.Details, error) {
	c, ok := asset.ParseCategory(in.Category)
	if !ok {
		return nil, apperr.Validation("invalid category %q", in.Category)
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.Validation("name is required")
	}

	var d asset.Details
	if c == asset.CategoryVehicle {
		d = asset.VehicleDetails{
			PlateNumber:     in.PlateNumber,
			ChassisNumber:   in.ChassisNumber,
			EngineNumber:    in.EngineNumber,
			OilEngineAt:     in.OilEngineAt,
			OilEngineNextAt: in.OilEngineNextAt,
			OilGearAt:       in.OilGearAt,
			OilGearNextAt:   in.OilGearNextAt,
			TaxNextAt:       in.TaxNextAt,
		}
	} else {
		var err error
		d, err = asset.NewItemDetails(c, asset.ItemFields{NUPCode: in.NUPCode, Brand: in.Brand, Specs: in.Specs})
		if err != nil {
			return nil, err
		}
	}
	if err := asset.ValidateDetails(d); err != nil {
		return nil, err
	}
	return d, nil
}

// writableStatus parses an admin-supplied status. Empty means "not given".
func writableStatus(s string) (asset.Status, bool, error) {
	if strings.TrimSpace(s) == "" {
		return "", false, nil
	}
	st, ok := asset.ParseStatus(s)
	if !ok {
		return "", false, apperr.Validation("invalid status %q", s)
	}
	if !st.AdminWritable() {
		return "", false, apperr.Validation("status %q is managed by the loan lifecycle", st)
	}
	return st, true, nil
}

func apply(a *asset.Asset, in Input, d asset.Details) {
	a.Name = strings.TrimSpace(in.Name)
	a.Code = strings.TrimSpace(in.Code)
	a.Location = strings.TrimSpace(in.Location)
	a.Condition = strings.TrimSpace(in.Condition)
	a.PhotoURL = strings.TrimSpace(in.PhotoURL)
	a.Quantity = in.Quantity
	if a.Quantity < 1 {
		a.Quantity = 1
	}
	a.ApplyDetails(d)
}

// checkUnique fails when a live record other than self already has key.
func checkUnique(ctx context.Context, r uow.Repos, key, self string) error {
	rows, err := r.Assets.FindByNaturalKey(ctx, key)
	if err != nil {
		return apperr.Transport(err)
	}
	for _, row := range rows {
		if !row.IsDeleted && row.AssetID != self {
			return asset.ErrDuplicateKey
		}
	}
	return nil
}

// setStatus persists an admin status change. Locked assets refuse.
func setStatus(ctx context.Context, r uow.Repos, a *asset.Asset, st asset.Status) error {
	if a.Status == st {
		return nil
	}
	if a.Locked() {
		return apperr.Conflict("asset %s is held by loan %s; its status is managed by the loan lifecycle",
			a.AssetID, deref(a.ActiveLoanID))
	}
	a.Status = st
	if err := r.Assets.UpdateLock(ctx, a, nil); err != nil {
		return apperr.Transport(err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func observe(op, assetID string, err error) {
	metrics.RecordAssetMutation(op, err)
	entry := logging.Logger.WithFields(logrus.Fields{"asset_id": assetID, "op": op})
	switch {
	case err == nil:
		entry.Info("asset saved")
	case errors.Is(err, apperr.ErrTransport):
		entry.WithError(err).Error("asset write failed in store")
	default:
		entry.WithError(err).Debug("asset write refused")
	}
}

// Create inserts a new asset. The natural key must not exist on a live record.
func (u *Usecase) Create(ctx context.Context, in Input) (*AssetDTO, error) {
	d, err := validate(in)
	if err != nil {
		return nil, err
	}
	st, given, err := writableStatus(in.Status)
	if err != nil {
		return nil, err
	}
	if !given {
		st = asset.StatusAvailable
	}

	a := &asset.Asset{AssetID: id.NewID32(), Status: st}
	apply(a, in, d)

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := checkUnique(ctx, r, a.NaturalKey, ""); err != nil {
			return err
		}
		if err := r.Assets.Create(ctx, a); err != nil {
			return apperr.Transport(err)
		}
		return nil
	})
	observe("create", a.AssetID, err)
	if err != nil {
		return nil, err
	}
	return toDTO(a), nil
}

// Update merges p onto the stored record and re-validates it.
func (u *Usecase) Update(ctx context.Context, assetID string, p Patch) (*AssetDTO, error) {
	var out *AssetDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Assets.GetByAssetIDForUpdate(ctx, assetID)
		if err != nil {
			return storeErr(err)
		}

		in := p.merge(inputOf(a))
		d, err := validate(in)
		if err != nil {
			return err
		}
		var st asset.Status
		var given bool
		if p.Status != nil {
			if st, given, err = writableStatus(*p.Status); err != nil {
				return err
			}
		}

		oldKey := a.NaturalKey
		apply(a, in, d)
		if a.NaturalKey != oldKey {
			if err := checkUnique(ctx, r, a.NaturalKey, a.AssetID); err != nil {
				return err
			}
		}
		if given {
			if err := setStatus(ctx, r, a, st); err != nil {
				return err
			}
		}
		if err := r.Assets.Save(ctx, a); err != nil {
			return apperr.Transport(err)
		}
		out = toDTO(a)
		return nil
	})
	observe("update", assetID, err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns the asset, soft-deleted ones included.
func (u *Usecase) Get(ctx context.Context, assetID string) (*AssetDTO, error) {
	a, err := u.assets.GetByAssetID(ctx, assetID)
	if err != nil {
		return nil, storeErr(err)
	}
	return toDTO(a), nil
}

// ListByCategory returns live assets of the category in display order:
// requested, borrowed by due date, available, maintenance, broken, then name.
func (u *Usecase) ListByCategory(ctx context.Context, category string) ([]*AssetDTO, error) {
	c, ok := asset.ParseCategory(category)
	if !ok {
		return nil, apperr.Validation("invalid category %q", category)
	}
	list, err := u.assets.ListByCategory(ctx, c)
	if err != nil {
		return nil, apperr.Transport(err)
	}
	asset.Sort(list)
	return toDTOs(list), nil
}

// ListAvailable returns live assets a user can request right now.
func (u *Usecase) ListAvailable(ctx context.Context) ([]*AssetDTO, error) {
	list, err := u.assets.ListAvailable(ctx)
	if err != nil {
		return nil, apperr.Transport(err)
	}
	asset.Sort(list)
	return toDTOs(list), nil
}

// SoftDelete hides the asset. Status and lock are untouched.
func (u *Usecase) SoftDelete(ctx context.Context, assetID string) (*AssetDTO, error) {
	var out *AssetDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Assets.GetByAssetIDForUpdate(ctx, assetID)
		if err != nil {
			return storeErr(err)
		}
		if !a.IsDeleted {
			now := u.now()
			a.IsDeleted = true
			a.DeletedAt = &now
			if err := r.Assets.Save(ctx, a); err != nil {
				return apperr.Transport(err)
			}
		}
		out = toDTO(a)
		return nil
	})
	observe("delete", assetID, err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Restore un-deletes the asset unless a live record took over its key.
func (u *Usecase) Restore(ctx context.Context, assetID string) (*AssetDTO, error) {
	var out *AssetDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Assets.GetByAssetIDForUpdate(ctx, assetID)
		if err != nil {
			return storeErr(err)
		}
		if a.IsDeleted {
			if err := checkUnique(ctx, r, a.NaturalKey, a.AssetID); err != nil {
				return err
			}
			a.IsDeleted = false
			a.DeletedAt = nil
			if err := r.Assets.Save(ctx, a); err != nil {
				return apperr.Transport(err)
			}
		}
		out = toDTO(a)
		return nil
	})
	observe("restore", assetID, err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert updates the record owning the natural key (un-deleting it) or
// creates one. Status on a locked asset is left to the loan lifecycle.
func (u *Usecase) Upsert(ctx context.Context, in Input) (*UpsertResult, error) {
	d, err := validate(in)
	if err != nil {
		return nil, err
	}
	st, given, err := writableStatus(in.Status)
	if err != nil {
		return nil, err
	}

	var out *UpsertResult
	key := asset.NaturalKey(d)
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		rows, err := r.Assets.FindByNaturalKey(ctx, key)
		if err != nil {
			return apperr.Transport(err)
		}

		if len(rows) == 0 {
			a := &asset.Asset{AssetID: id.NewID32(), Status: asset.StatusAvailable}
			if given {
				a.Status = st
			}
			apply(a, in, d)
			if err := r.Assets.Create(ctx, a); err != nil {
				return apperr.Transport(err)
			}
			out = &UpsertResult{Asset: toDTO(a), Created: true}
			return nil
		}

		a := rows[0]
		apply(a, in, d)
		a.IsDeleted = false
		a.DeletedAt = nil
		if given && !a.Locked() {
			if err := setStatus(ctx, r, a, st); err != nil {
				return err
			}
		}
		if err := r.Assets.Save(ctx, a); err != nil {
			return apperr.Transport(err)
		}
		out = &UpsertResult{Asset: toDTO(a)}
		return nil
	})
	assetID := ""
	if out != nil {
		assetID = out.Asset.AssetID
	}
	observe("upsert", assetID, err)
	if err != nil {
		return nil, err
	}
	return out, nil
}
