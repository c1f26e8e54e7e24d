package loanevent

import (
	"time"
)

// Table: loan_events. One row per committed loan transition.
type Event struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	EventID    string    `gorm:"column:event_id;size:32;not null;uniqueIndex:ux_loan_events_event_id" json:"event_id"`
	LoanID     string    `gorm:"column:loan_id;size:32;not null;index:idx_loan_events_loan" json:"loan_id"`
	AssetID    string    `gorm:"column:asset_id;size:32;not null" json:"asset_id"`
	FromStatus string    `gorm:"column:from_status;size:16" json:"from_status"`
	ToStatus   string    `gorm:"column:to_status;size:16;not null" json:"to_status"`
	ActorUID   *string   `gorm:"column:actor_uid;size:128" json:"actor_uid,omitempty"`
	Note       string    `gorm:"column:note;type:text" json:"note,omitempty"`
	OccurredAt time.Time `gorm:"column:occurred_at;not null" json:"occurred_at"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (Event) TableName() string { return "loan_events" }
