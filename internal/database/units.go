package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tanda-tracker-go/internal/economics"
	"tanda-tracker-go/internal/models"
	"tanda-tracker-go/internal/store"
)

// SaveUnit is a full-record save: it creates the unit when its id is empty
// and replaces the whole row otherwise. Derived money fields are computed
// and frozen here, in the same transaction as the write. A batch id equal
// to store.NewBatchSentinel creates the next numbered batch on the fly.
func (s *Service) SaveUnit(ctx context.Context, unit models.Unit) (*models.Unit, error) {
	zap.L().Info("Saving unit",
		zap.String("id", unit.Id),
		zap.String("batch_id", unit.BatchId),
		zap.String("model", unit.Model),
		zap.String("status", unit.Status))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if unit.BatchId == store.NewBatchSentinel {
		batch, err := createNextBatch(ctx, tx)
		if err != nil {
			return nil, err
		}
		unit.BatchId = batch.Id
	} else {
		var exists string
		err := tx.QueryRowContext(ctx, queryBatchExists, unit.BatchId).Scan(&exists)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", store.ErrBatchNotFound, unit.BatchId)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check batch: %w", err)
		}
	}

	freezeDerivedFields(&unit)

	if unit.Id == "" {
		unit.Id = uuid.New().String()
		if err := insertUnit(ctx, tx, unit); err != nil {
			return nil, err
		}
	} else {
		var existing string
		err := tx.QueryRowContext(ctx, queryUnitExists, unit.Id).Scan(&existing)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", store.ErrUnitNotFound, unit.Id)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check unit: %w", err)
		}
		if err := updateUnit(ctx, tx, unit); err != nil {
			return nil, err
		}
	}

	if err := recordModelSpec(ctx, tx, unit); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	zap.L().Info("Unit saved successfully",
		zap.String("id", unit.Id),
		zap.String("batch_id", unit.BatchId),
		zap.String("net_profit", unit.NetProfit.String()))

	return s.GetUnitById(ctx, unit.Id)
}

// freezeDerivedFields recomputes the stored money columns from the raw
// inputs. Total cost is always current; profit and the partner shares only
// exist once the unit is sold, and are zeroed while it sits in stock.
func freezeDerivedFields(unit *models.Unit) {
	unit.TotalCost = economics.TotalCost(unit.CostUSD, unit.ExchangeRate, unit.ShippingCost, unit.ExtraCost)

	if unit.Sold() {
		unit.NetProfit = economics.NetProfit(unit.ProceedsReceived, unit.TotalCost)
		split := economics.SplitProfit(unit.NetProfit, unit.SplitA, unit.SplitB)
		unit.PartnerAShare = split.PartnerA
		unit.PartnerBShare = split.PartnerB
	} else {
		unit.NetProfit = decimal.Zero
		unit.PartnerAShare = decimal.Zero
		unit.PartnerBShare = decimal.Zero
	}
}

func insertUnit(ctx context.Context, tx *sql.Tx, unit models.Unit) error {
	_, err := tx.ExecContext(ctx, queryInsertUnit,
		unit.Id, unit.BatchId, unit.Model, unit.Storage, unit.Memory, unit.Color,
		unit.Imei1, unit.Imei2, unit.PurchaseDate,
		unit.CostUSD.String(), unit.ExchangeRate.String(), unit.ShippingCost.String(),
		unit.ExtraCost.String(), unit.TotalCost.String(), unit.Status,
		unit.SaleDate, unit.SaleChannel, unit.ListPrice.String(),
		unit.MLPrice1.String(), unit.MLPrice3.String(), unit.MLPrice6.String(),
		unit.ProceedsReceived.String(), unit.ProceedsHolder,
		unit.SplitA.String(), unit.SplitB.String(),
		unit.NetProfit.String(), unit.PartnerAShare.String(), unit.PartnerBShare.String(),
		unit.PaidPartnerA, unit.PaidPartnerB, unit.CommissionPaid)
	if err != nil {
		return fmt.Errorf("failed to insert unit: %w", err)
	}
	return nil
}

func updateUnit(ctx context.Context, tx *sql.Tx, unit models.Unit) error {
	_, err := tx.ExecContext(ctx, queryUpdateUnit,
		unit.BatchId, unit.Model, unit.Storage, unit.Memory, unit.Color,
		unit.Imei1, unit.Imei2, unit.PurchaseDate,
		unit.CostUSD.String(), unit.ExchangeRate.String(), unit.ShippingCost.String(),
		unit.ExtraCost.String(), unit.TotalCost.String(), unit.Status,
		unit.SaleDate, unit.SaleChannel, unit.ListPrice.String(),
		unit.MLPrice1.String(), unit.MLPrice3.String(), unit.MLPrice6.String(),
		unit.ProceedsReceived.String(), unit.ProceedsHolder,
		unit.SplitA.String(), unit.SplitB.String(),
		unit.NetProfit.String(), unit.PartnerAShare.String(), unit.PartnerBShare.String(),
		unit.PaidPartnerA, unit.PaidPartnerB, unit.CommissionPaid,
		unit.Id)
	if err != nil {
		return fmt.Errorf("failed to update unit: %w", err)
	}
	return nil
}

// GetUnits returns all units, newest first.
func (s *Service) GetUnits(ctx context.Context) ([]models.Unit, error) {
	rows, err := s.db.QueryContext(ctx, queryGetUnits)
	if err != nil {
		return nil, fmt.Errorf("failed to get units: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var units []models.Unit
	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, *unit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unit rows: %w", err)
	}

	return units, nil
}

// GetUnitById returns one unit or store.ErrUnitNotFound.
func (s *Service) GetUnitById(ctx context.Context, id string) (*models.Unit, error) {
	row := s.db.QueryRowContext(ctx, queryGetUnitById, id)
	unit, err := scanUnit(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", store.ErrUnitNotFound, id)
	} else if err != nil {
		return nil, err
	}
	return unit, nil
}

// DeleteUnit removes a unit permanently. Fund movements are untouched; the
// unit's economics simply drop out of the aggregates.
func (s *Service) DeleteUnit(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, queryDeleteUnit, id)
	if err != nil {
		return fmt.Errorf("failed to delete unit: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", store.ErrUnitNotFound, id)
	}

	zap.L().Info("Unit deleted", zap.String("id", id))
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUnit(row scanner) (*models.Unit, error) {
	var unit models.Unit
	var costUSD, rate, shipping, extra, totalCost string
	var listPrice, mlPrice1, mlPrice3, mlPrice6, proceeds string
	var splitA, splitB, netProfit, shareA, shareB string

	err := row.Scan(&unit.Id, &unit.BatchId, &unit.Model, &unit.Storage, &unit.Memory,
		&unit.Color, &unit.Imei1, &unit.Imei2, &unit.PurchaseDate,
		&costUSD, &rate, &shipping, &extra, &totalCost, &unit.Status,
		&unit.SaleDate, &unit.SaleChannel, &listPrice, &mlPrice1, &mlPrice3, &mlPrice6,
		&proceeds, &unit.ProceedsHolder, &splitA, &splitB,
		&netProfit, &shareA, &shareB,
		&unit.PaidPartnerA, &unit.PaidPartnerB, &unit.CommissionPaid, &unit.CreatedAt)
	if err != nil {
		return nil, err
	}

	fields := []struct {
		dst *decimal.Decimal
		src string
	}{
		{&unit.CostUSD, costUSD}, {&unit.ExchangeRate, rate},
		{&unit.ShippingCost, shipping}, {&unit.ExtraCost, extra},
		{&unit.TotalCost, totalCost}, {&unit.ListPrice, listPrice},
		{&unit.MLPrice1, mlPrice1}, {&unit.MLPrice3, mlPrice3},
		{&unit.MLPrice6, mlPrice6}, {&unit.ProceedsReceived, proceeds},
		{&unit.SplitA, splitA}, {&unit.SplitB, splitB},
		{&unit.NetProfit, netProfit}, {&unit.PartnerAShare, shareA},
		{&unit.PartnerBShare, shareB},
	}
	for _, f := range fields {
		*f.dst, err = parseDecimal(f.src)
		if err != nil {
			return nil, err
		}
	}

	return &unit, nil
}

// CreateBatch adds a named batch. An empty name gets the next "TANDA <n>"
// name, same as the sentinel path on unit saves.
func (s *Service) CreateBatch(ctx context.Context, name string) (*models.Batch, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var batch *models.Batch
	if strings.TrimSpace(name) == "" {
		batch, err = createNextBatch(ctx, tx)
	} else {
		batch, err = insertBatch(ctx, tx, strings.ToUpper(strings.TrimSpace(name)))
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	zap.L().Info("Batch created", zap.String("id", batch.Id), zap.String("name", batch.Name))
	return batch, nil
}

func insertBatch(ctx context.Context, tx *sql.Tx, name string) (*models.Batch, error) {
	batch := &models.Batch{Id: uuid.New().String(), Name: name}
	if _, err := tx.ExecContext(ctx, queryInsertBatch, batch.Id, batch.Name); err != nil {
		return nil, fmt.Errorf("failed to insert batch: %w", err)
	}
	return batch, nil
}

func createNextBatch(ctx context.Context, tx *sql.Tx) (*models.Batch, error) {
	var count int
	if err := tx.QueryRowContext(ctx, queryCountBatches).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count batches: %w", err)
	}
	return insertBatch(ctx, tx, fmt.Sprintf("TANDA %d", count+1))
}

// GetBatches returns all batches, oldest first.
func (s *Service) GetBatches(ctx context.Context) ([]models.Batch, error) {
	rows, err := s.db.QueryContext(ctx, queryGetBatches)
	if err != nil {
		return nil, fmt.Errorf("failed to get batches: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var batches []models.Batch
	for rows.Next() {
		var batch models.Batch
		if err := rows.Scan(&batch.Id, &batch.Name, &batch.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		batches = append(batches, batch)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating batch rows: %w", err)
	}

	return batches, nil
}
