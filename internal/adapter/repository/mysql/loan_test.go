package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "sikopifasta-backend/internal/domain/loan"
	"sikopifasta-backend/internal/testutil/sqlitedb"
	"sikopifasta-backend/pkg/id"

	"gorm.io/gorm"
)

func makeLoan(loanID, assetID, userUID string) *domain.Loan {
	return &domain.Loan{
		LoanID:      loanID,
		AssetID:     assetID,
		UserUID:     userUID,
		Purpose:     "dinas luar",
		Status:      domain.StatusRequested,
		RequestedAt: time.Now().UTC(),
	}
}

func TestCreateAndGetByLoanID(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	loanID := id.NewID32()
	assetID := id.NewID32()

	l := makeLoan(loanID, assetID, "user-1")
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.LoanID != loanID || got.AssetID != assetID || got.Status != domain.StatusRequested {
		t.Errorf("unexpected loan: %+v", got)
	}

	locked, err := repo.GetByLoanIDForUpdate(ctx, loanID)
	if err != nil || locked.ID != got.ID {
		t.Fatalf("GetByLoanIDForUpdate: %v %+v", err, locked)
	}
}

func TestSaveUpdates(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	loanID := id.NewID32()
	l := makeLoan(loanID, id.NewID32(), "user-1")
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	now := time.Now().UTC()
	admin := "admin-1"
	l.Status = domain.StatusApproved
	l.ApprovedAt = &now
	l.ApprovedBy = &admin
	l.AdminNote = "ok"
	if err := repo.Save(ctx, l); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.Status != domain.StatusApproved || got.ApprovedBy == nil || *got.ApprovedBy != admin || got.AdminNote != "ok" {
		t.Errorf("loan not updated: %+v", got)
	}

	// clearing a note must persist the zero value
	l.AdminNote = ""
	if err := repo.Save(ctx, l); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, _ = repo.GetByLoanID(ctx, loanID)
	if got.AdminNote != "" {
		t.Errorf("AdminNote not cleared: %q", got.AdminNote)
	}
}

func TestGetByLoanID_NotFound(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewLoanRepository(db)

	_, err := repo.GetByLoanID(context.Background(), "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestListings(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	seed := []struct {
		loanID, user string
		status       domain.Status
		age          time.Duration
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "u1", domain.StatusRequested, 3 * time.Minute},
		{"bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", "u1", domain.StatusBorrowed, 2 * time.Minute},
		{"cccccccccccccccccccccccccccccccc", "u2", domain.StatusApproved, 1 * time.Minute},
		{"dddddddddddddddddddddddddddddddd", "u1", domain.StatusReturned, 0},
	}
	for _, s := range seed {
		l := makeLoan(s.loanID, "asset-"+s.user, s.user)
		l.Status = s.status
		l.CreatedAt = base.Add(-s.age)
		if err := repo.Create(ctx, l); err != nil {
			t.Fatal(err)
		}
	}

	mine, err := repo.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(mine) != 3 || mine[0].LoanID != "dddddddddddddddddddddddddddddddd" || mine[2].LoanID != "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa" {
		t.Fatalf("ListByUser order wrong: %v", loanIDs(mine))
	}

	active, err := repo.ListByStatus(ctx, domain.StatusApproved, domain.StatusBorrowed)
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	if len(active) != 2 || active[0].LoanID != "cccccccccccccccccccccccccccccccc" {
		t.Fatalf("ListByStatus wrong: %v", loanIDs(active))
	}

	none, err := repo.ListByStatus(ctx)
	if err != nil || len(none) != 0 {
		t.Fatalf("empty status filter should return nothing, got %v %v", loanIDs(none), err)
	}

	byAsset, err := repo.ListByAsset(ctx, "asset-u2")
	if err != nil || len(byAsset) != 1 {
		t.Fatalf("ListByAsset: %v %v", loanIDs(byAsset), err)
	}
}

func loanIDs(list []*domain.Loan) []string {
	out := make([]string, len(list))
	for i, l := range list {
		out[i] = l.LoanID
	}
	return out
}
