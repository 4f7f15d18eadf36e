// Package metrics reduces a snapshot of units, batches and fund movements
// into the dashboard metrics object. Everything here is derived on demand
// from the snapshot it is handed; nothing is cached between calls.
package metrics

import (
	"tanda-tracker-go/internal/ledger"
	"tanda-tracker-go/internal/models"
)

// Compute produces the full metrics object for one snapshot. currentBatchID
// selects the batch-scoped section; an id matching no batch simply yields
// zeroes there. Missing numeric fields on partial records contribute zero,
// and an empty snapshot produces an all-zero result.
func Compute(snapshot *models.Snapshot, currentBatchID string) models.Metrics {
	var m models.Metrics

	byBatch := make(map[string]*models.BatchSummary, len(snapshot.Batches))
	m.Batches = make([]models.BatchSummary, 0, len(snapshot.Batches))
	for _, b := range snapshot.Batches {
		m.Batches = append(m.Batches, models.BatchSummary{BatchId: b.Id, Name: b.Name})
	}
	for i := range m.Batches {
		byBatch[m.Batches[i].BatchId] = &m.Batches[i]
	}

	for _, u := range snapshot.Units {
		m.GlobalInvestment = m.GlobalInvestment.Add(u.TotalCost)

		if u.Sold() {
			m.GlobalProfit = m.GlobalProfit.Add(u.NetProfit)

			switch u.ProceedsHolder {
			case models.HolderPartnerACash:
				m.CashPartnerA = m.CashPartnerA.Add(u.ProceedsReceived)
			case models.HolderPartnerBCash:
				m.CashPartnerB = m.CashPartnerB.Add(u.ProceedsReceived)
			case models.HolderPartnerAMarketplace:
				m.MarketplacePartnerA = m.MarketplacePartnerA.Add(u.ProceedsReceived)
			case models.HolderPartnerBMarketplace:
				m.MarketplacePartnerB = m.MarketplacePartnerB.Add(u.ProceedsReceived)
			}
		}

		if u.BatchId == currentBatchID {
			m.TandaInvestment = m.TandaInvestment.Add(u.TotalCost)
			if u.Sold() {
				m.TandaProfit = m.TandaProfit.Add(u.NetProfit)
				if !u.PaidPartnerA {
					m.OwedToA = m.OwedToA.Add(u.PartnerAShare)
				}
				if !u.PaidPartnerB {
					m.OwedToB = m.OwedToB.Add(u.PartnerBShare)
				}
			} else {
				m.StockUnits++
			}
		}

		if s, ok := byBatch[u.BatchId]; ok {
			s.Investment = s.Investment.Add(u.TotalCost)
			if u.Sold() {
				s.Profit = s.Profit.Add(u.NetProfit)
			}
			s.Units++
		}
	}

	m.Fund = ledger.Aggregate(snapshot.Movements)
	return m
}
