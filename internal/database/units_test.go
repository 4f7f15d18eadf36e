package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"tanda-tracker-go/internal/models"
	"tanda-tracker-go/internal/store"
)

func setupTestDB(t *testing.T) (*Service, func()) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	service := NewServiceFromDB(db)
	if err := service.InitSchema(); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return service, cleanup
}

func createTestBatch(t *testing.T, service *Service, name string) *models.Batch {
	batch, err := service.CreateBatch(context.Background(), name)
	if err != nil {
		t.Fatalf("CreateBatch failed: %v", err)
	}
	return batch
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSaveUnit_CreateFreezesTotalCost(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	batch := createTestBatch(t, service, "TANDA 1")

	saved, err := service.SaveUnit(ctx, models.Unit{
		BatchId:      batch.Id,
		Model:        "SAMSUNG A26 5G",
		PurchaseDate: "2024-05-01",
		CostUSD:      dec("570"),
		ExchangeRate: dec("1400"),
		ShippingCost: dec("30000"),
		ExtraCost:    dec("10000"),
		Status:       models.StatusStock,
		SplitA:       dec("50"),
		SplitB:       dec("50"),
	})
	if err != nil {
		t.Fatalf("SaveUnit failed: %v", err)
	}

	if saved.Id == "" {
		t.Error("saved unit must have a generated id")
	}
	if !saved.TotalCost.Equal(dec("838000")) {
		t.Errorf("TotalCost = %s, want 838000", saved.TotalCost)
	}
	if !saved.NetProfit.IsZero() || !saved.PartnerAShare.IsZero() {
		t.Errorf("stock unit must carry zero profit, got %s / %s", saved.NetProfit, saved.PartnerAShare)
	}
}

func TestSaveUnit_SoldFreezesProfitAndShares(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	batch := createTestBatch(t, service, "TANDA 1")

	saved, err := service.SaveUnit(ctx, models.Unit{
		BatchId:          batch.Id,
		Model:            "MOTO G84",
		CostUSD:          dec("800"),
		ExchangeRate:     dec("1400"),
		Status:           models.StatusSold,
		ProceedsReceived: dec("1400000"),
		SplitA:           dec("60"),
		SplitB:           dec("40"),
	})
	if err != nil {
		t.Fatalf("SaveUnit failed: %v", err)
	}

	if !saved.NetProfit.Equal(dec("280000")) {
		t.Errorf("NetProfit = %s, want 280000", saved.NetProfit)
	}
	if !saved.PartnerAShare.Equal(dec("168000")) || !saved.PartnerBShare.Equal(dec("112000")) {
		t.Errorf("shares = %s / %s, want 168000 / 112000", saved.PartnerAShare, saved.PartnerBShare)
	}
}

func TestSaveUnit_UpdateRecomputesDerivedFields(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	batch := createTestBatch(t, service, "TANDA 1")

	created, err := service.SaveUnit(ctx, models.Unit{
		BatchId:      batch.Id,
		Model:        "IPHONE 13",
		CostUSD:      dec("500"),
		ExchangeRate: dec("1400"),
		Status:       models.StatusStock,
		SplitA:       dec("50"),
		SplitB:       dec("50"),
	})
	if err != nil {
		t.Fatalf("SaveUnit failed: %v", err)
	}

	created.Status = models.StatusSold
	created.ProceedsReceived = dec("1000000")
	updated, err := service.SaveUnit(ctx, *created)
	if err != nil {
		t.Fatalf("SaveUnit update failed: %v", err)
	}

	if !updated.NetProfit.Equal(dec("300000")) {
		t.Errorf("NetProfit after sale = %s, want 300000", updated.NetProfit)
	}
	if !updated.PartnerAShare.Equal(dec("150000")) {
		t.Errorf("PartnerAShare = %s, want 150000", updated.PartnerAShare)
	}

	units, err := service.GetUnits(ctx)
	if err != nil {
		t.Fatalf("GetUnits failed: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("update must not duplicate the unit, found %d rows", len(units))
	}
}

func TestSaveUnit_NewBatchSentinel(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	createTestBatch(t, service, "TANDA 1")

	saved, err := service.SaveUnit(ctx, models.Unit{
		BatchId: store.NewBatchSentinel,
		Model:   "PIXEL 8",
		Status:  models.StatusStock,
	})
	if err != nil {
		t.Fatalf("SaveUnit failed: %v", err)
	}

	batches, err := service.GetBatches(ctx)
	if err != nil {
		t.Fatalf("GetBatches failed: %v", err)
	}
	if len(batches) != 2 {
		t.Fatalf("expected a second batch to be created, got %d", len(batches))
	}

	var created *models.Batch
	for i := range batches {
		if batches[i].Id == saved.BatchId {
			created = &batches[i]
		}
	}
	if created == nil {
		t.Fatalf("unit joined batch %q which is not in the batch list", saved.BatchId)
	}
	if created.Name != "TANDA 2" {
		t.Errorf("new batch name = %q, want TANDA 2", created.Name)
	}
}

func TestSaveUnit_UnknownBatchRejected(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := service.SaveUnit(context.Background(), models.Unit{
		BatchId: "missing",
		Model:   "IPHONE 13",
		Status:  models.StatusStock,
	})
	if !errors.Is(err, store.ErrBatchNotFound) {
		t.Errorf("expected ErrBatchNotFound, got %v", err)
	}
}

func TestSaveUnit_UnknownIdRejected(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	batch := createTestBatch(t, service, "TANDA 1")
	_, err := service.SaveUnit(context.Background(), models.Unit{
		Id:      "does-not-exist",
		BatchId: batch.Id,
		Model:   "IPHONE 13",
		Status:  models.StatusStock,
	})
	if !errors.Is(err, store.ErrUnitNotFound) {
		t.Errorf("expected ErrUnitNotFound, got %v", err)
	}
}

func TestSaveUnit_RecordsModelHistory(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	batch := createTestBatch(t, service, "TANDA 1")

	_, err := service.SaveUnit(ctx, models.Unit{
		BatchId: batch.Id,
		Model:   "samsung a26 5g",
		Storage: "128GB",
		Memory:  "8GB",
		CostUSD: dec("570"),
		Status:  models.StatusStock,
	})
	if err != nil {
		t.Fatalf("SaveUnit failed: %v", err)
	}

	history, err := service.GetModelHistory(ctx)
	if err != nil {
		t.Fatalf("GetModelHistory failed: %v", err)
	}

	spec, ok := history["SAMSUNG A26 5G"]
	if !ok {
		t.Fatalf("model history missing uppercased key, got %v", history)
	}
	if spec.Storage != "128GB" || spec.Memory != "8GB" || !spec.CostUSD.Equal(dec("570")) {
		t.Errorf("unexpected spec: %+v", spec)
	}
}

func TestDeleteUnit(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	batch := createTestBatch(t, service, "TANDA 1")
	saved, err := service.SaveUnit(ctx, models.Unit{
		BatchId: batch.Id,
		Model:   "IPHONE 13",
		Status:  models.StatusStock,
	})
	if err != nil {
		t.Fatalf("SaveUnit failed: %v", err)
	}

	if err := service.DeleteUnit(ctx, saved.Id); err != nil {
		t.Fatalf("DeleteUnit failed: %v", err)
	}

	if _, err := service.GetUnitById(ctx, saved.Id); !errors.Is(err, store.ErrUnitNotFound) {
		t.Errorf("expected ErrUnitNotFound after delete, got %v", err)
	}

	if err := service.DeleteUnit(ctx, saved.Id); !errors.Is(err, store.ErrUnitNotFound) {
		t.Errorf("second delete must report ErrUnitNotFound, got %v", err)
	}
}

func TestCreateBatch_AutoNames(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	first, err := service.CreateBatch(ctx, "")
	if err != nil {
		t.Fatalf("CreateBatch failed: %v", err)
	}
	if first.Name != "TANDA 1" {
		t.Errorf("first auto name = %q, want TANDA 1", first.Name)
	}

	named, err := service.CreateBatch(ctx, "tanda especial")
	if err != nil {
		t.Fatalf("CreateBatch failed: %v", err)
	}
	if named.Name != "TANDA ESPECIAL" {
		t.Errorf("named batch = %q, want uppercased", named.Name)
	}
}

func TestSnapshot(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	batch := createTestBatch(t, service, "TANDA 1")
	if _, err := service.SaveUnit(ctx, models.Unit{
		BatchId: batch.Id,
		Model:   "IPHONE 13",
		Status:  models.StatusStock,
	}); err != nil {
		t.Fatalf("SaveUnit failed: %v", err)
	}
	if _, err := service.AddFundMovement(ctx, models.FundMovement{
		Type:     models.MovementIn,
		Currency: models.CurrencyUSD,
		Amount:   dec("1000"),
	}); err != nil {
		t.Fatalf("AddFundMovement failed: %v", err)
	}

	snapshot, err := service.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	if len(snapshot.Units) != 1 || len(snapshot.Batches) != 1 || len(snapshot.Movements) != 1 {
		t.Errorf("snapshot counts = %d units, %d batches, %d movements",
			len(snapshot.Units), len(snapshot.Batches), len(snapshot.Movements))
	}
	if snapshot.Partners.A == "" || snapshot.Partners.B == "" {
		t.Errorf("snapshot must carry partner labels, got %+v", snapshot.Partners)
	}
	if _, ok := snapshot.ModelHistory["IPHONE 13"]; !ok {
		t.Error("snapshot must carry the model history")
	}
}
