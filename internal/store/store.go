package store

import (
	"context"
	"errors"

	"tanda-tracker-go/internal/models"
)

// Sentinel errors shared across all backend implementations.
var (
	ErrUnitNotFound     = errors.New("unit not found")
	ErrBatchNotFound    = errors.New("batch not found")
	ErrMovementNotFound = errors.New("fund movement not found")
)

// NewBatchSentinel is the batch id a unit save may carry to request a fresh
// batch instead of joining an existing one.
const NewBatchSentinel = "NEW"

// TrackerStore defines the contract the persistence backend must satisfy.
// Save operations are full-record replacements; the backend computes and
// freezes the derived fields (total cost, net profit, partner shares,
// USD-equivalent amounts) at write time.
type TrackerStore interface {
	// --- Units ---
	SaveUnit(ctx context.Context, unit models.Unit) (*models.Unit, error)
	GetUnits(ctx context.Context) ([]models.Unit, error)
	GetUnitById(ctx context.Context, id string) (*models.Unit, error)
	DeleteUnit(ctx context.Context, id string) error

	// --- Batches ---
	CreateBatch(ctx context.Context, name string) (*models.Batch, error)
	GetBatches(ctx context.Context) ([]models.Batch, error)

	// --- Fund movements ---
	AddFundMovement(ctx context.Context, movement models.FundMovement) (*models.FundMovement, error)
	GetFundMovements(ctx context.Context) ([]models.FundMovement, error)
	DeleteFundMovement(ctx context.Context, id string) error

	// --- Settings ---
	GetPartnerLabels(ctx context.Context) (models.PartnerLabels, error)
	UpdatePartnerLabels(ctx context.Context, labels models.PartnerLabels) error
	GetModelHistory(ctx context.Context) (map[string]models.ModelSpec, error)

	// --- Snapshots ---
	Snapshot(ctx context.Context) (*models.Snapshot, error)

	// --- Lifecycle ---
	Close()
}
