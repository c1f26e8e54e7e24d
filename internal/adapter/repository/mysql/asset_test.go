package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	assetDomain "sikopifasta-backend/internal/domain/asset"
	"sikopifasta-backend/internal/testutil/sqlitedb"
	"sikopifasta-backend/pkg/id"

	"gorm.io/gorm"
)

func makeVehicle(name, plate string) *assetDomain.Asset {
	a := &assetDomain.Asset{
		AssetID:  id.NewID32(),
		Name:     name,
		Status:   assetDomain.StatusAvailable,
		Quantity: 1,
	}
	a.ApplyDetails(assetDomain.VehicleDetails{PlateNumber: plate})
	return a
}

func TestAsset_CreateGetAndNotFound(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewAssetRepository(db)
	ctx := context.Background()

	a := makeVehicle("Avanza", "kb 1234 xx")
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.GetByAssetID(ctx, a.AssetID)
	if err != nil {
		t.Fatalf("GetByAssetID: %v", err)
	}
	if got.NaturalKey != "plate:KB 1234 XX" || got.Category != assetDomain.CategoryVehicle || got.Locked() {
		t.Fatalf("unexpected asset: %+v", got)
	}
	if _, err := repo.GetByAssetIDForUpdate(ctx, "missing"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestAsset_SaveLeavesLockColumnsAlone(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewAssetRepository(db)
	ctx := context.Background()

	a := makeVehicle("Avanza", "KB 1")
	if err := repo.Create(ctx, a); err != nil {
		t.Fatal(err)
	}
	a.Reserve("L1", assetDomain.ReservedRequested)
	if err := repo.UpdateLock(ctx, a, nil); err != nil {
		t.Fatalf("UpdateLock: %v", err)
	}

	// stale copy with no lock and a different status
	stale, _ := repo.GetByAssetID(ctx, a.AssetID)
	stale.Release()
	stale.Status = assetDomain.StatusBroken
	stale.Location = "Gudang B"
	if err := repo.Save(ctx, stale); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, _ := repo.GetByAssetID(ctx, a.AssetID)
	if got.Location != "Gudang B" {
		t.Fatalf("Save did not persist ordinary column: %+v", got)
	}
	if !got.LockedBy("L1") || got.Status != assetDomain.StatusAvailable {
		t.Fatalf("Save must not touch status or lock: %+v", got)
	}
}

func TestAsset_UpdateLockCompareAndSet(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewAssetRepository(db)
	ctx := context.Background()

	a := makeVehicle("Innova", "KB 2")
	if err := repo.Create(ctx, a); err != nil {
		t.Fatal(err)
	}

	first, _ := repo.GetByAssetID(ctx, a.AssetID)
	second, _ := repo.GetByAssetID(ctx, a.AssetID)

	first.Reserve("L1", assetDomain.ReservedRequested)
	if err := repo.UpdateLock(ctx, first, nil); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	second.Reserve("L2", assetDomain.ReservedRequested)
	if err := repo.UpdateLock(ctx, second, nil); !errors.Is(err, assetDomain.ErrLockLost) {
		t.Fatalf("second claim should lose, got %v", err)
	}

	// advance under the right holder
	due := time.Now().UTC().Add(48 * time.Hour)
	uid := "user-1"
	first.Reserve("L1", assetDomain.ReservedBorrowed)
	first.Status = assetDomain.StatusBorrowed
	first.BorrowerUID = &uid
	first.LoanDueAt = &due
	expected := "L1"
	if err := repo.UpdateLock(ctx, first, &expected); err != nil {
		t.Fatalf("advance: %v", err)
	}

	got, _ := repo.GetByAssetID(ctx, a.AssetID)
	if got.Status != assetDomain.StatusBorrowed || *got.ReservedStatus != assetDomain.ReservedBorrowed || *got.BorrowerUID != uid {
		t.Fatalf("lock not advanced: %+v", got)
	}

	// release with a wrong holder is refused
	wrong := "L2"
	got.Release()
	got.Status = assetDomain.StatusAvailable
	if err := repo.UpdateLock(ctx, got, &wrong); !errors.Is(err, assetDomain.ErrLockLost) {
		t.Fatalf("release by wrong holder should fail, got %v", err)
	}
	if err := repo.UpdateLock(ctx, got, &expected); err != nil {
		t.Fatalf("release: %v", err)
	}
	got, _ = repo.GetByAssetID(ctx, a.AssetID)
	if got.Locked() || got.BorrowerUID != nil || got.LoanDueAt != nil {
		t.Fatalf("release must clear lock and mirrors: %+v", got)
	}
}

func TestAsset_FindByNaturalKeyOrder(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewAssetRepository(db)
	ctx := context.Background()

	deleted := makeVehicle("Old", "KB 3")
	deleted.IsDeleted = true
	live := makeVehicle("New", "kb 3")
	other := makeVehicle("Other", "KB 4")
	for _, a := range []*assetDomain.Asset{deleted, live, other} {
		if err := repo.Create(ctx, a); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.FindByNaturalKey(ctx, "plate:KB 3")
	if err != nil {
		t.Fatalf("FindByNaturalKey: %v", err)
	}
	if len(got) != 2 || got[0].AssetID != live.AssetID || !got[1].IsDeleted {
		t.Fatalf("live row must come first: %+v", got)
	}
}

func TestAsset_Listings(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewAssetRepository(db)
	ctx := context.Background()

	free := makeVehicle("Bus", "KB 10")
	claimed := makeVehicle("Avanza", "KB 11")
	gone := makeVehicle("Carry", "KB 12")
	gone.IsDeleted = true
	laptop := &assetDomain.Asset{AssetID: id.NewID32(), Name: "Laptop", Status: assetDomain.StatusAvailable, Quantity: 1}
	laptop.ApplyDetails(assetDomain.ElectronicsDetails{ItemFields: assetDomain.ItemFields{NUPCode: "N-1"}})
	for _, a := range []*assetDomain.Asset{free, claimed, gone, laptop} {
		if err := repo.Create(ctx, a); err != nil {
			t.Fatal(err)
		}
	}
	claimed.Reserve("L9", assetDomain.ReservedRequested)
	if err := repo.UpdateLock(ctx, claimed, nil); err != nil {
		t.Fatal(err)
	}

	vehicles, err := repo.ListByCategory(ctx, assetDomain.CategoryVehicle)
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(vehicles) != 2 {
		t.Fatalf("deleted assets must be hidden, got %d", len(vehicles))
	}

	avail, err := repo.ListAvailable(ctx)
	if err != nil {
		t.Fatalf("ListAvailable: %v", err)
	}
	if len(avail) != 2 || avail[0].Name != "Bus" || avail[1].Name != "Laptop" {
		t.Fatalf("ListAvailable wrong: %+v", avail)
	}
}
