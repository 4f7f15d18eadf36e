package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tanda-tracker-go/internal/ledger"
	"tanda-tracker-go/internal/models"
	"tanda-tracker-go/internal/store"
)

// AddFundMovement appends a deposit or withdrawal to the shared-capital
// ledger. The USD equivalent is frozen here using the rate carried on the
// movement. Withdrawals run the admission check against the current balance
// inside the same transaction; a rejected withdrawal writes nothing.
func (s *Service) AddFundMovement(ctx context.Context, movement models.FundMovement) (*models.FundMovement, error) {
	if movement.Type != models.MovementIn && movement.Type != models.MovementOut {
		return nil, fmt.Errorf("invalid movement type %q", movement.Type)
	}
	if movement.Currency != models.CurrencyUSD && movement.Currency != models.CurrencyARS {
		return nil, fmt.Errorf("invalid movement currency %q", movement.Currency)
	}
	if !movement.Amount.IsPositive() {
		return nil, fmt.Errorf("movement amount must be positive, got %s", movement.Amount)
	}

	zap.L().Info("Adding fund movement",
		zap.String("type", movement.Type),
		zap.String("currency", movement.Currency),
		zap.String("amount", movement.Amount.String()))

	movement.Id = uuid.New().String()
	movement.AmountUSD = ledger.ForeignEquivalent(movement.Currency, movement.Amount, movement.Rate)
	if movement.Date == "" {
		movement.Date = time.Now().Format("2006-01-02")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if movement.Type == models.MovementOut {
		history, err := getFundMovements(ctx, tx)
		if err != nil {
			return nil, err
		}
		balances := ledger.Aggregate(history)
		if err := ledger.CheckWithdrawal(balances, movement.Currency, movement.Amount); err != nil {
			zap.L().Warn("Withdrawal rejected",
				zap.String("currency", movement.Currency),
				zap.String("requested", movement.Amount.String()))
			return nil, err
		}
	}

	_, err = tx.ExecContext(ctx, queryInsertMovement,
		movement.Id, movement.Type, movement.Currency,
		movement.Amount.String(), movement.AmountUSD.String(), movement.Rate.String(),
		movement.Responsible, movement.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to insert fund movement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	zap.L().Info("Fund movement recorded",
		zap.String("id", movement.Id),
		zap.String("amount_usd", movement.AmountUSD.String()))

	return &movement, nil
}

// GetFundMovements returns the whole movement history, newest first.
func (s *Service) GetFundMovements(ctx context.Context) ([]models.FundMovement, error) {
	return getFundMovements(ctx, s.db)
}

// querier covers *sql.DB and *sql.Tx so the withdrawal check can read the
// history inside its own transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func getFundMovements(ctx context.Context, q querier) ([]models.FundMovement, error) {
	rows, err := q.QueryContext(ctx, queryGetMovements)
	if err != nil {
		return nil, fmt.Errorf("failed to get fund movements: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var movements []models.FundMovement
	for rows.Next() {
		var m models.FundMovement
		var amount, amountUSD, rate string
		err := rows.Scan(&m.Id, &m.Type, &m.Currency, &amount, &amountUSD, &rate,
			&m.Responsible, &m.Date, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fund movement: %w", err)
		}

		if m.Amount, err = parseDecimal(amount); err != nil {
			return nil, err
		}
		if m.AmountUSD, err = parseDecimal(amountUSD); err != nil {
			return nil, err
		}
		if m.Rate, err = parseDecimal(rate); err != nil {
			return nil, err
		}

		movements = append(movements, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fund movement rows: %w", err)
	}

	return movements, nil
}

// DeleteFundMovement removes one ledger entry. No balance check happens
// here: deleting a deposit can leave the reconstructed balance negative,
// which the aggregation reports as-is.
func (s *Service) DeleteFundMovement(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, queryDeleteMovement, id)
	if err != nil {
		return fmt.Errorf("failed to delete fund movement: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", store.ErrMovementNotFound, id)
	}

	zap.L().Info("Fund movement deleted", zap.String("id", id))
	return nil
}
