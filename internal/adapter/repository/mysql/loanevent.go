package mysql

import (
	"context"

	"gorm.io/gorm"

	eventDomain "sikopifasta-backend/internal/domain/loanevent"
)

type LoanEventRepository struct{ db *gorm.DB }

func NewLoanEventRepository(db *gorm.DB) *LoanEventRepository { return &LoanEventRepository{db: db} }

func (r *LoanEventRepository) Create(ctx context.Context, e *eventDomain.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *LoanEventRepository) ListByLoanID(ctx context.Context, loanID string) ([]*eventDomain.Event, error) {
	var out []*eventDomain.Event
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("occurred_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
