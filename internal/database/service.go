package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tanda-tracker-go/internal/models"
	"tanda-tracker-go/internal/store"
)

// Compile-time check: *Service must satisfy store.TrackerStore.
var _ store.TrackerStore = (*Service)(nil)

type Service struct {
	db *sql.DB
}

func NewService(ctx context.Context, cfg models.DatabaseConfig) (*Service, error) {
	// Validate configuration
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if cfg.MaxOpenConns <= 0 {
		return nil, fmt.Errorf("max open connections must be positive, got %d", cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns < 0 {
		return nil, fmt.Errorf("max idle connections cannot be negative, got %d", cfg.MaxIdleConns)
	}
	if cfg.PingTimeout <= 0 {
		return nil, fmt.Errorf("ping timeout must be positive, got %v", cfg.PingTimeout)
	}

	zap.L().Info("Opening SQLite database", zap.String("file", cfg.Path))
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000")
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, closeErr
		}
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	service := &Service{db: db}
	if err := service.InitSchema(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, closeErr
		}
		return nil, fmt.Errorf("unable to initialize schema: %w", err)
	}

	zap.L().Info("Database service initialized successfully")
	return service, nil
}

// NewServiceFromDB wraps an already-open connection. The caller keeps
// ownership of pooling and lifetime settings.
func NewServiceFromDB(db *sql.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Close() {
	if err := s.db.Close(); err != nil {
		zap.L().Warn("Failed to close database connection", zap.Error(err))
	}
}

func (s *Service) InitSchema() error {
	schema := `
	-- Batches ("tandas"): purchasing rounds grouping units
	CREATE TABLE IF NOT EXISTS batches (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Units: one row per tracked device, derived fields frozen at save time
	CREATE TABLE IF NOT EXISTS units (
		id TEXT PRIMARY KEY,
		batch_id TEXT NOT NULL REFERENCES batches(id),
		model TEXT NOT NULL,
		storage TEXT NOT NULL DEFAULT '',
		memory TEXT NOT NULL DEFAULT '',
		color TEXT NOT NULL DEFAULT '',
		imei1 TEXT NOT NULL DEFAULT '',
		imei2 TEXT NOT NULL DEFAULT '',
		purchase_date TEXT NOT NULL DEFAULT '',
		cost_usd REAL NOT NULL DEFAULT 0,
		exchange_rate REAL NOT NULL DEFAULT 0,
		shipping_cost REAL NOT NULL DEFAULT 0,
		extra_cost REAL NOT NULL DEFAULT 0,
		total_cost REAL NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'STOCK',
		sale_date TEXT NOT NULL DEFAULT '',
		sale_channel TEXT NOT NULL DEFAULT '',
		list_price REAL NOT NULL DEFAULT 0,
		ml_price_1 REAL NOT NULL DEFAULT 0,
		ml_price_3 REAL NOT NULL DEFAULT 0,
		ml_price_6 REAL NOT NULL DEFAULT 0,
		proceeds_received REAL NOT NULL DEFAULT 0,
		proceeds_holder TEXT NOT NULL DEFAULT '',
		split_a REAL NOT NULL DEFAULT 50,
		split_b REAL NOT NULL DEFAULT 50,
		net_profit REAL NOT NULL DEFAULT 0,
		partner_a_share REAL NOT NULL DEFAULT 0,
		partner_b_share REAL NOT NULL DEFAULT 0,
		paid_partner_a BOOLEAN NOT NULL DEFAULT 0,
		paid_partner_b BOOLEAN NOT NULL DEFAULT 0,
		commission_paid BOOLEAN NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Indexes for the aggregation passes
	CREATE INDEX IF NOT EXISTS idx_units_batch_id ON units(batch_id);
	CREATE INDEX IF NOT EXISTS idx_units_status ON units(status);

	-- Fund movements: immutable shared-capital ledger entries
	CREATE TABLE IF NOT EXISTS fund_movements (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		currency TEXT NOT NULL,
		amount REAL NOT NULL,
		amount_usd REAL NOT NULL DEFAULT 0,
		rate REAL NOT NULL DEFAULT 0,
		responsible TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_fund_movements_currency ON fund_movements(currency);

	-- Settings: small JSON blobs (partner labels, model history)
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Snapshot reads one consistent view of everything the aggregators consume.
func (s *Service) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	units, err := s.GetUnits(ctx)
	if err != nil {
		return nil, err
	}
	batches, err := s.GetBatches(ctx)
	if err != nil {
		return nil, err
	}
	movements, err := s.GetFundMovements(ctx)
	if err != nil {
		return nil, err
	}
	partners, err := s.GetPartnerLabels(ctx)
	if err != nil {
		return nil, err
	}
	history, err := s.GetModelHistory(ctx)
	if err != nil {
		return nil, err
	}

	return &models.Snapshot{
		Units:        units,
		Batches:      batches,
		Movements:    movements,
		Partners:     partners,
		ModelHistory: history,
	}, nil
}

// parseDecimal turns a scanned numeric column back into a decimal. SQLite
// hands REAL columns back as strings when scanned that way; an empty value
// means zero.
func parseDecimal(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", value, err)
	}
	return d, nil
}
