package usermock

import (
	"context"

	domain "sikopifasta-backend/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock. Profiles, when set, backs GetByUID.
type Repo struct {
	GetByUIDFn func(ctx context.Context, uid string) (*domain.Profile, error)
	UpsertFn   func(ctx context.Context, p *domain.Profile) error

	Profiles map[string]*domain.Profile
}

// WithProfiles builds a Repo serving the given profiles by UID.
func WithProfiles(ps ...*domain.Profile) *Repo {
	m := &Repo{Profiles: map[string]*domain.Profile{}}
	for _, p := range ps {
		m.Profiles[p.UID] = p
	}
	return m
}

func (m *Repo) GetByUID(ctx context.Context, uid string) (*domain.Profile, error) {
	if m.GetByUIDFn != nil {
		return m.GetByUIDFn(ctx, uid)
	}
	if p, ok := m.Profiles[uid]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Upsert(ctx context.Context, p *domain.Profile) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, p)
	}
	if m.Profiles == nil {
		m.Profiles = map[string]*domain.Profile{}
	}
	m.Profiles[p.UID] = p
	return nil
}
