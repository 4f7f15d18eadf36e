package metrics

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"tanda-tracker-go/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleSnapshot() *models.Snapshot {
	return &models.Snapshot{
		Batches: []models.Batch{
			{Id: "t1", Name: "TANDA 1"},
			{Id: "t2", Name: "TANDA 2"},
		},
		Units: []models.Unit{
			{
				Id: "u1", BatchId: "t1", Model: "DEVICE ALPHA",
				TotalCost: dec("1410000"), Status: models.StatusSold,
				ProceedsReceived: dec("1700000"), NetProfit: dec("290000"),
				PartnerAShare: dec("145000"), PartnerBShare: dec("145000"),
				PaidPartnerA: true, PaidPartnerB: false,
				ProceedsHolder: models.HolderPartnerACash,
			},
			{
				Id: "u2", BatchId: "t1", Model: "DEVICE BETA",
				TotalCost: dec("1128000"), Status: models.StatusStock,
			},
			{
				Id: "u3", BatchId: "t2", Model: "DEVICE GAMMA",
				TotalCost: dec("500000"), Status: models.StatusSold,
				ProceedsReceived: dec("650000"), NetProfit: dec("150000"),
				PartnerAShare: dec("75000"), PartnerBShare: dec("75000"),
				ProceedsHolder: models.HolderPartnerBMarketplace,
			},
		},
		Movements: []models.FundMovement{
			{Type: models.MovementIn, Currency: models.CurrencyUSD, Amount: dec("5000"), AmountUSD: dec("5000")},
			{Type: models.MovementOut, Currency: models.CurrencyUSD, Amount: dec("1000"), AmountUSD: dec("1000")},
		},
	}
}

func TestCompute_BatchScope(t *testing.T) {
	m := Compute(sampleSnapshot(), "t1")

	if !m.TandaInvestment.Equal(dec("2538000")) {
		t.Errorf("TandaInvestment = %s, want 2538000", m.TandaInvestment)
	}
	if !m.TandaProfit.Equal(dec("290000")) {
		t.Errorf("TandaProfit = %s, want 290000", m.TandaProfit)
	}
	if m.StockUnits != 1 {
		t.Errorf("StockUnits = %d, want 1", m.StockUnits)
	}

	// Partner A was already paid out for u1, partner B was not.
	if !m.OwedToA.IsZero() {
		t.Errorf("OwedToA = %s, want 0", m.OwedToA)
	}
	if !m.OwedToB.Equal(dec("145000")) {
		t.Errorf("OwedToB = %s, want 145000", m.OwedToB)
	}
}

func TestCompute_GlobalScope(t *testing.T) {
	m := Compute(sampleSnapshot(), "t1")

	if !m.GlobalInvestment.Equal(dec("3038000")) {
		t.Errorf("GlobalInvestment = %s, want 3038000", m.GlobalInvestment)
	}
	if !m.GlobalProfit.Equal(dec("440000")) {
		t.Errorf("GlobalProfit = %s, want 440000", m.GlobalProfit)
	}

	if !m.CashPartnerA.Equal(dec("1700000")) {
		t.Errorf("CashPartnerA = %s, want 1700000", m.CashPartnerA)
	}
	if !m.MarketplacePartnerB.Equal(dec("650000")) {
		t.Errorf("MarketplacePartnerB = %s, want 650000", m.MarketplacePartnerB)
	}
	if !m.CashPartnerB.IsZero() || !m.MarketplacePartnerA.IsZero() {
		t.Error("untouched cash locations must stay zero")
	}

	if !m.Fund.USD.Equal(dec("4000")) || !m.Fund.TotalUSD.Equal(dec("4000")) {
		t.Errorf("fund balances = %+v, want USD 4000", m.Fund)
	}
}

func TestCompute_PerBatchSummaries(t *testing.T) {
	m := Compute(sampleSnapshot(), "t1")

	if len(m.Batches) != 2 {
		t.Fatalf("expected 2 batch summaries, got %d", len(m.Batches))
	}

	t1 := m.Batches[0]
	if t1.BatchId != "t1" || !t1.Investment.Equal(dec("2538000")) || !t1.Profit.Equal(dec("290000")) || t1.Units != 2 {
		t.Errorf("t1 summary = %+v, want investment 2538000, profit 290000, 2 units", t1)
	}

	t2 := m.Batches[1]
	if !t2.Investment.Equal(dec("500000")) || !t2.Profit.Equal(dec("150000")) || t2.Units != 1 {
		t.Errorf("t2 summary = %+v, want investment 500000, profit 150000, 1 unit", t2)
	}
}

func TestCompute_UnknownBatchSelection(t *testing.T) {
	m := Compute(sampleSnapshot(), "nope")

	if !m.TandaInvestment.IsZero() || m.StockUnits != 0 {
		t.Errorf("unknown batch selection must zero the batch scope, got %+v", m)
	}
	// Global scope is unaffected by the selection.
	if !m.GlobalInvestment.Equal(dec("3038000")) {
		t.Errorf("GlobalInvestment = %s, want 3038000", m.GlobalInvestment)
	}
}

func TestCompute_EmptySnapshot(t *testing.T) {
	m := Compute(&models.Snapshot{}, "")

	if !m.GlobalInvestment.IsZero() || !m.OwedToB.IsZero() || m.StockUnits != 0 {
		t.Errorf("empty snapshot must yield zeroes, got %+v", m)
	}
	if len(m.Batches) != 0 {
		t.Errorf("expected no batch summaries, got %d", len(m.Batches))
	}
}

func TestCompute_Idempotent(t *testing.T) {
	snapshot := sampleSnapshot()
	first := Compute(snapshot, "t1")
	second := Compute(snapshot, "t1")

	if !reflect.DeepEqual(first, second) {
		t.Error("recomputing over an unchanged snapshot changed the result")
	}
}
