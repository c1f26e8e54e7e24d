package loan

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"sikopifasta-backend/internal/domain/apperr"
	"sikopifasta-backend/internal/domain/asset"
	"sikopifasta-backend/internal/domain/loan"
	"sikopifasta-backend/internal/domain/loanevent"
	"sikopifasta-backend/internal/domain/uow"
	"sikopifasta-backend/internal/domain/user"
	"sikopifasta-backend/internal/infrastructure/logging"
	"sikopifasta-backend/internal/infrastructure/metrics"
	"sikopifasta-backend/pkg/id"
)

// Usecase is the loan lifecycle engine. Every transition runs in one
// transaction over the loan, its asset and the audit trail.
type Usecase struct {
	loans  loan.Repository
	events loanevent.Repository
	uow    uow.UnitOfWork
	now    func() time.Time
}

// NewUsecase builds the engine. Reads go through the repositories and every
// write through the unit of work.
func NewUsecase(loans loan.Repository, events loanevent.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loans: loans, events: events, uow: tx, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock replaces the time source. Tests only.
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

// storeErr maps a repository error: missing rows become notFound, anything
// unclassified becomes a transport error.
func storeErr(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return apperr.Transport(err)
}

func lookupProfile(ctx context.Context, users user.Repository, uid string) (*user.Profile, error) {
	p, err := users.GetByUID(ctx, uid)
	switch {
	case err == nil:
		return p, nil
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, user.ErrNotFound):
		return nil, apperr.Forbidden("no profile for user %s", uid)
	default:
		return nil, apperr.Transport(err)
	}
}

func requireActive(ctx context.Context, users user.Repository, uid string) error {
	p, err := lookupProfile(ctx, users, uid)
	if err != nil {
		return err
	}
	if !p.IsActive {
		return apperr.Forbidden("user %s is not active", uid)
	}
	return nil
}

func requireAdmin(ctx context.Context, users user.Repository, uid string) error {
	if uid == "" {
		return apperr.Forbidden("an admin is required")
	}
	p, err := lookupProfile(ctx, users, uid)
	if err != nil {
		return err
	}
	if !p.IsAdmin() {
		return apperr.Forbidden("user %s is not an active admin", uid)
	}
	return nil
}

// requireReturner admits an active admin, the borrower, or nobody (system).
func requireReturner(ctx context.Context, users user.Repository, l *loan.Loan, uid string) error {
	if uid == "" {
		return nil
	}
	p, err := lookupProfile(ctx, users, uid)
	if err != nil {
		return err
	}
	if p.IsAdmin() || (p.IsActive && p.UID == l.UserUID) {
		return nil
	}
	return apperr.Forbidden("user %s may not return loan %s", uid, l.LoanID)
}

func checkWindow(start, due *time.Time) error {
	if start != nil && due != nil && due.Before(*start) {
		return apperr.Validation("due date %s is before start date %s",
			due.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return nil
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func newEvent(l *loan.Loan, from loan.Status, actor, note string, at time.Time) *loanevent.Event {
	return &loanevent.Event{
		EventID:    id.NewID32(),
		LoanID:     l.LoanID,
		AssetID:    l.AssetID,
		FromStatus: string(from),
		ToStatus:   string(l.Status),
		ActorUID:   optString(actor),
		Note:       note,
		OccurredAt: at,
	}
}

// observe records the outcome of a lifecycle operation.
func observe(op string, entry *logrus.Entry, err error) {
	metrics.RecordTransition(op, err)
	switch {
	case err == nil:
		entry.Info("loan transition committed")
	case errors.Is(err, apperr.ErrConflict):
		entry.WithError(err).Warn("loan transition lost the asset lock")
	case errors.Is(err, apperr.ErrTransport):
		entry.WithError(err).Error("loan transition failed in store")
	default:
		entry.WithError(err).Debug("loan transition refused")
	}
}

func trimmed(s string) string { return strings.TrimSpace(s) }

func logEntry(loanID, assetID string, fields logrus.Fields) *logrus.Entry {
	return logging.Loan(loanID, assetID).WithFields(fields)
}

// lockedAsset loads the loan's asset under row lock and verifies the loan
// still holds it.
func lockedAsset(ctx context.Context, r uow.Repos, l *loan.Loan, reserved ...asset.ReservedStatus) (*asset.Asset, error) {
	a, err := r.Assets.GetByAssetIDForUpdate(ctx, l.AssetID)
	if err != nil {
		return nil, storeErr(err, asset.ErrNotFound)
	}
	if !a.LockedBy(l.LoanID) {
		return nil, loan.ErrLockMismatch
	}
	if len(reserved) > 0 {
		if a.ReservedStatus == nil {
			return nil, loan.ErrLockMismatch
		}
		for _, rs := range reserved {
			if *a.ReservedStatus == rs {
				return a, nil
			}
		}
		return nil, loan.ErrLockMismatch
	}
	return a, nil
}
