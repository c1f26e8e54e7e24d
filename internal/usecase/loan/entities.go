package loan

import (
	"time"

	"sikopifasta-backend/internal/domain/asset"
	"sikopifasta-backend/internal/domain/loan"
	"sikopifasta-backend/internal/domain/loanevent"
)

type RequestInput struct {
	AssetID string
	UserUID string
	Purpose string
	StartAt *time.Time
	DueAt   *time.Time
}

type ApproveInput struct {
	LoanID   string
	AdminUID string
	Note     string
	DueAt    *time.Time // overrides the requested due date when set
}

type RejectInput struct {
	LoanID   string
	AdminUID string
	Note     string
}

type BorrowInput struct {
	LoanID   string
	AdminUID string
	Note     string
	StartAt  *time.Time // overrides the requested start when set
}

type ReturnInput struct {
	LoanID string
	// ActorUID may be empty for system-initiated returns.
	ActorUID string
	Note     string
}

type LoanDTO struct {
	LoanID  string     `json:"loan_id"`
	AssetID string     `json:"asset_id"`
	UserUID string     `json:"user_uid"`
	Purpose string     `json:"purpose"`
	Status  string     `json:"status"`
	StartAt *time.Time `json:"start_at,omitempty"`
	DueAt   *time.Time `json:"due_at,omitempty"`

	AdminNote    string `json:"admin_note,omitempty"`
	OperatorNote string `json:"operator_note,omitempty"`
	ReturnNote   string `json:"return_note,omitempty"`

	ApprovedBy *string `json:"approved_by,omitempty"`
	RejectedBy *string `json:"rejected_by,omitempty"`
	BorrowedBy *string `json:"borrowed_by,omitempty"`
	ReturnedBy *string `json:"returned_by,omitempty"`

	RequestedAt time.Time  `json:"requested_at"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	RejectedAt  *time.Time `json:"rejected_at,omitempty"`
	BorrowedAt  *time.Time `json:"borrowed_at,omitempty"`
	ReturnedAt  *time.Time `json:"returned_at,omitempty"`

	// Asset is the post-transition lock state; only set by lifecycle operations.
	Asset *AssetLockDTO `json:"asset,omitempty"`
}

type AssetLockDTO struct {
	AssetID        string  `json:"asset_id"`
	Status         string  `json:"status"`
	ActiveLoanID   *string `json:"active_loan_id"`
	ReservedStatus *string `json:"reserved_status"`
}

type EventDTO struct {
	EventID    string    `json:"event_id"`
	LoanID     string    `json:"loan_id"`
	FromStatus string    `json:"from_status,omitempty"`
	ToStatus   string    `json:"to_status"`
	ActorUID   *string   `json:"actor_uid,omitempty"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func toDTO(l *loan.Loan, now time.Time) *LoanDTO {
	return &LoanDTO{
		LoanID:       l.LoanID,
		AssetID:      l.AssetID,
		UserUID:      l.UserUID,
		Purpose:      l.Purpose,
		Status:       string(l.EffectiveStatus(now)),
		StartAt:      l.StartAt,
		DueAt:        l.DueAt,
		AdminNote:    l.AdminNote,
		OperatorNote: l.OperatorNote,
		ReturnNote:   l.ReturnNote,
		ApprovedBy:   l.ApprovedBy,
		RejectedBy:   l.RejectedBy,
		BorrowedBy:   l.BorrowedBy,
		ReturnedBy:   l.ReturnedBy,
		RequestedAt:  l.RequestedAt,
		ApprovedAt:   l.ApprovedAt,
		RejectedAt:   l.RejectedAt,
		BorrowedAt:   l.BorrowedAt,
		ReturnedAt:   l.ReturnedAt,
	}
}

func toLockDTO(a *asset.Asset) *AssetLockDTO {
	out := &AssetLockDTO{AssetID: a.AssetID, Status: string(a.Status), ActiveLoanID: a.ActiveLoanID}
	if a.ReservedStatus != nil {
		rs := string(*a.ReservedStatus)
		out.ReservedStatus = &rs
	}
	return out
}

func toEventDTO(e *loanevent.Event) EventDTO {
	return EventDTO{
		EventID:    e.EventID,
		LoanID:     e.LoanID,
		FromStatus: e.FromStatus,
		ToStatus:   e.ToStatus,
		ActorUID:   e.ActorUID,
		Note:       e.Note,
		OccurredAt: e.OccurredAt,
	}
}
