package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	userDomain "sikopifasta-backend/internal/domain/user"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) GetByUID(ctx context.Context, uid string) (*userDomain.Profile, error) {
	var out userDomain.Profile
	res := r.db.WithContext(ctx).Where("uid = ?", uid).First(&out)
	return &out, res.Error
}

func (r *UserRepository) Upsert(ctx context.Context, p *userDomain.Profile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uid"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "name", "nip", "whatsapp", "role", "is_active", "updated_at"}),
	}).Create(p).Error
}
