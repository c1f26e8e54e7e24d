package loan

import (
	"time"
)

type Status string

const (
	StatusRequested Status = "requested"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusBorrowed  Status = "borrowed"
	StatusReturned  Status = "returned"
	// StatusLate is derived (borrowed past DueAt) and never written by the engine.
	StatusLate Status = "late"
)

var transitions = map[Status][]Status{
	StatusRequested: {StatusApproved, StatusRejected},
	StatusApproved:  {StatusBorrowed},
	StatusBorrowed:  {StatusReturned},
	StatusLate:      {StatusReturned},
}

// CanTransitionTo reports whether to is a legal next state.
func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool { return s == StatusRejected || s == StatusReturned }

type Loan struct {
	ID      uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID  string `gorm:"column:loan_id;size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	AssetID string `gorm:"column:asset_id;size:32;index:idx_loans_asset" json:"asset_id"`
	UserUID string `gorm:"column:user_uid;size:128;index:idx_loans_user" json:"user_uid"`
	Purpose string `gorm:"column:purpose;type:text" json:"purpose"`
	Status  Status `gorm:"column:status;size:16;not null;index:idx_loans_status" json:"status"`

	StartAt *time.Time `gorm:"column:start_at" json:"start_at,omitempty"`
	DueAt   *time.Time `gorm:"column:due_at" json:"due_at,omitempty"`

	AdminNote    string `gorm:"column:admin_note;type:text" json:"admin_note,omitempty"`
	OperatorNote string `gorm:"column:operator_note;type:text" json:"operator_note,omitempty"`
	ReturnNote   string `gorm:"column:return_note;type:text" json:"return_note,omitempty"`

	ApprovedBy *string `gorm:"column:approved_by;size:128" json:"approved_by,omitempty"`
	RejectedBy *string `gorm:"column:rejected_by;size:128" json:"rejected_by,omitempty"`
	BorrowedBy *string `gorm:"column:borrowed_by;size:128" json:"borrowed_by,omitempty"`
	ReturnedBy *string `gorm:"column:returned_by;size:128" json:"returned_by,omitempty"`

	RequestedAt time.Time  `gorm:"column:requested_at" json:"requested_at"`
	ApprovedAt  *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	RejectedAt  *time.Time `gorm:"column:rejected_at" json:"rejected_at,omitempty"`
	BorrowedAt  *time.Time `gorm:"column:borrowed_at" json:"borrowed_at,omitempty"`
	ReturnedAt  *time.Time `gorm:"column:returned_at" json:"returned_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// IsLate reports whether a borrowed loan is past its due date at now.
func (l *Loan) IsLate(now time.Time) bool {
	return (l.Status == StatusBorrowed || l.Status == StatusLate) && l.DueAt != nil && now.After(*l.DueAt)
}

// EffectiveStatus is the stored status with late derived from DueAt.
func (l *Loan) EffectiveStatus(now time.Time) Status {
	if l.IsLate(now) {
		return StatusLate
	}
	return l.Status
}
