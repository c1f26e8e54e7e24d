package loaneventmock

import (
	"context"
	"errors"
	"testing"

	domain "sikopifasta-backend/internal/domain/loanevent"
)

func TestRepo_RecordsByDefault(t *testing.T) {
	m := &Repo{}
	e := &domain.Event{EventID: "E1"}
	if err := m.Create(context.Background(), e); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(m.Created) != 1 || m.Created[0] != e {
		t.Fatalf("event not recorded: %+v", m.Created)
	}
}

func TestRepo_CreateFnOverrides(t *testing.T) {
	boom := errors.New("boom")
	m := &Repo{CreateFn: func(context.Context, *domain.Event) error { return boom }}
	if err := m.Create(context.Background(), &domain.Event{}); !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
	if len(m.Created) != 0 {
		t.Fatalf("overridden create must not record")
	}
}
