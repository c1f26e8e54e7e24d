package loan

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"sikopifasta-backend/internal/domain/apperr"
	"sikopifasta-backend/internal/domain/asset"
	"sikopifasta-backend/internal/domain/loan"
	"sikopifasta-backend/internal/domain/uow"
	"sikopifasta-backend/internal/domain/user"
)

// step describes one admin-driven transition of an existing loan.
type step struct {
	op        string
	to        loan.Status
	actor     string
	note      string
	authorize func(ctx context.Context, users user.Repository, l *loan.Loan) error
	// reserved, when set, is the lock phase the asset must be in.
	reserved []asset.ReservedStatus
	// live refuses a soft-deleted asset. Steps that release the lock skip it.
	live  bool
	apply func(l *loan.Loan, a *asset.Asset, now time.Time) error
}

func (u *Usecase) transition(ctx context.Context, loanID string, s step) (*LoanDTO, error) {
	loanID = trimmed(loanID)
	if loanID == "" {
		return nil, apperr.Validation("loan_id is required")
	}

	var (
		out     *LoanDTO
		assetID string
		from    loan.Status
	)
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		assetID = l.AssetID
		if err := s.authorize(ctx, r.Users, l); err != nil {
			return err
		}

		now := u.now()
		from = l.EffectiveStatus(now)
		if !from.CanTransitionTo(s.to) {
			return apperr.Wrap(apperr.ErrState, loan.ErrInvalidTransition,
				fmt.Sprintf("cannot %s a loan in status %s", s.op, from))
		}

		a, err := lockedAsset(ctx, r, l, s.reserved...)
		if err != nil {
			return err
		}
		if s.live && a.IsDeleted {
			return asset.ErrNotFound
		}

		if err := s.apply(l, a, now); err != nil {
			return err
		}
		l.Status = s.to
		if err := r.Loans.Save(ctx, l); err != nil {
			return apperr.Transport(err)
		}

		holder := l.LoanID
		if err := r.Assets.UpdateLock(ctx, a, &holder); err != nil {
			return apperr.Transport(err)
		}
		if err := r.Events.Create(ctx, newEvent(l, from, s.actor, s.note, now)); err != nil {
			return apperr.Transport(err)
		}

		out = toDTO(l, now)
		out.Asset = toLockDTO(a)
		return nil
	})
	if err != nil {
		err = storeErr(err, loan.ErrNotFound)
	}

	observe(s.op, logEntry(loanID, assetID, logrus.Fields{
		"from": from, "to": s.to, "actor": s.actor,
	}), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Approve moves a requested loan to approved. The asset keeps its lock and
// its status; only the reserved phase advances.
func (u *Usecase) Approve(ctx context.Context, in ApproveInput) (*LoanDTO, error) {
	note := trimmed(in.Note)
	return u.transition(ctx, in.LoanID, step{
		op:    "approve",
		to:    loan.StatusApproved,
		actor: in.AdminUID,
		note:  note,
		authorize: func(ctx context.Context, users user.Repository, _ *loan.Loan) error {
			return requireAdmin(ctx, users, in.AdminUID)
		},
		reserved: []asset.ReservedStatus{asset.ReservedRequested},
		live:     true,
		apply: func(l *loan.Loan, a *asset.Asset, now time.Time) error {
			due := l.DueAt
			if in.DueAt != nil {
				due = in.DueAt
			}
			if err := checkWindow(l.StartAt, due); err != nil {
				return err
			}
			l.DueAt = due
			l.ApprovedAt = &now
			l.ApprovedBy = optString(in.AdminUID)
			l.AdminNote = note
			a.Reserve(l.LoanID, asset.ReservedApproved)
			return nil
		},
	})
}

// Reject ends a requested loan and frees the asset. Status is left as is.
func (u *Usecase) Reject(ctx context.Context, in RejectInput) (*LoanDTO, error) {
	note := trimmed(in.Note)
	return u.transition(ctx, in.LoanID, step{
		op:    "reject",
		to:    loan.StatusRejected,
		actor: in.AdminUID,
		note:  note,
		authorize: func(ctx context.Context, users user.Repository, _ *loan.Loan) error {
			return requireAdmin(ctx, users, in.AdminUID)
		},
		apply: func(l *loan.Loan, a *asset.Asset, now time.Time) error {
			l.RejectedAt = &now
			l.RejectedBy = optString(in.AdminUID)
			l.AdminNote = note
			a.Release()
			return nil
		},
	})
}

// MarkBorrowed hands the asset over. This is the only transition that sets
// the asset's status to borrowed.
func (u *Usecase) MarkBorrowed(ctx context.Context, in BorrowInput) (*LoanDTO, error) {
	note := trimmed(in.Note)
	return u.transition(ctx, in.LoanID, step{
		op:    "borrow",
		to:    loan.StatusBorrowed,
		actor: in.AdminUID,
		note:  note,
		authorize: func(ctx context.Context, users user.Repository, _ *loan.Loan) error {
			return requireAdmin(ctx, users, in.AdminUID)
		},
		live: true,
		apply: func(l *loan.Loan, a *asset.Asset, now time.Time) error {
			start := l.StartAt
			if in.StartAt != nil {
				start = in.StartAt
			}
			if start == nil {
				start = &now
			}
			if err := checkWindow(start, l.DueAt); err != nil {
				return err
			}
			l.StartAt = start
			l.BorrowedAt = &now
			l.BorrowedBy = optString(in.AdminUID)
			l.OperatorNote = note

			a.Status = asset.StatusBorrowed
			a.Reserve(l.LoanID, asset.ReservedBorrowed)
			borrower := l.UserUID
			a.BorrowerUID = &borrower
			a.LoanStartAt = l.StartAt
			a.LoanDueAt = l.DueAt
			return nil
		},
	})
}

// Return closes a borrowed (or late) loan and makes the asset available again.
func (u *Usecase) Return(ctx context.Context, in ReturnInput) (*LoanDTO, error) {
	note := trimmed(in.Note)
	return u.transition(ctx, in.LoanID, step{
		op:    "return",
		to:    loan.StatusReturned,
		actor: in.ActorUID,
		note:  note,
		authorize: func(ctx context.Context, users user.Repository, l *loan.Loan) error {
			return requireReturner(ctx, users, l, in.ActorUID)
		},
		apply: func(l *loan.Loan, a *asset.Asset, now time.Time) error {
			l.ReturnedAt = &now
			l.ReturnedBy = optString(in.ActorUID)
			l.ReturnNote = note
			a.Status = asset.StatusAvailable
			a.Release()
			return nil
		},
	})
}
