package loan

import (
	"context"

	"github.com/sirupsen/logrus"

	"sikopifasta-backend/internal/domain/apperr"
	"sikopifasta-backend/internal/domain/asset"
	"sikopifasta-backend/internal/domain/loan"
	"sikopifasta-backend/internal/domain/uow"
	"sikopifasta-backend/pkg/id"
)

// Request creates a requested loan and claims the asset in the same
// transaction. Two concurrent requests for one asset serialise on the asset
// row; the loser sees the lock and gets a conflict.
func (u *Usecase) Request(ctx context.Context, in RequestInput) (*LoanDTO, error) {
	in.AssetID = trimmed(in.AssetID)
	in.UserUID = trimmed(in.UserUID)
	in.Purpose = trimmed(in.Purpose)
	if in.AssetID == "" {
		return nil, apperr.Validation("asset_id is required")
	}
	if in.UserUID == "" {
		return nil, apperr.Validation("user_uid is required")
	}
	if err := checkWindow(in.StartAt, in.DueAt); err != nil {
		return nil, err
	}

	var out *LoanDTO
	loanID := id.NewID32()
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := requireActive(ctx, r.Users, in.UserUID); err != nil {
			return err
		}

		a, err := r.Assets.GetByAssetIDForUpdate(ctx, in.AssetID)
		if err != nil {
			return storeErr(err, asset.ErrNotFound)
		}
		if a.IsDeleted {
			return asset.ErrNotFound
		}
		if a.Locked() {
			return loan.ErrAssetLocked
		}
		if a.Status != asset.StatusAvailable {
			return loan.ErrAssetUnavailable
		}

		now := u.now()
		l := &loan.Loan{
			LoanID:      loanID,
			AssetID:     a.AssetID,
			UserUID:     in.UserUID,
			Purpose:     in.Purpose,
			Status:      loan.StatusRequested,
			StartAt:     in.StartAt,
			DueAt:       in.DueAt,
			RequestedAt: now,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return apperr.Transport(err)
		}

		a.Reserve(l.LoanID, asset.ReservedRequested)
		if err := r.Assets.UpdateLock(ctx, a, nil); err != nil {
			return apperr.Transport(err)
		}
		if err := r.Events.Create(ctx, newEvent(l, "", in.UserUID, l.Purpose, now)); err != nil {
			return apperr.Transport(err)
		}

		out = toDTO(l, now)
		out.Asset = toLockDTO(a)
		return nil
	})

	observe("request", logEntry(loanID, in.AssetID, logrus.Fields{
		"to": loan.StatusRequested, "actor": in.UserUID,
	}), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}
