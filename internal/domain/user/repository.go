package user

import "context"

type Repository interface {
	GetByUID(ctx context.Context, uid string) (*Profile, error)
	// Upsert inserts or updates by UID.
	Upsert(ctx context.Context, p *Profile) error
}
