package common

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"

	"tanda-tracker-go/internal/database"
	"tanda-tracker-go/internal/models"
)

// SeedUnit is one demo unit as written in the fixtures file. Numbers are
// plain YAML floats and get converted to decimals on load.
type SeedUnit struct {
	Model            string  `yaml:"model"`
	Storage          string  `yaml:"storage"`
	Memory           string  `yaml:"memory"`
	Color            string  `yaml:"color"`
	PurchaseDate     string  `yaml:"purchase_date"`
	CostUSD          float64 `yaml:"cost_usd"`
	ExchangeRate     float64 `yaml:"exchange_rate"`
	ShippingCost     float64 `yaml:"shipping_cost"`
	ExtraCost        float64 `yaml:"extra_cost"`
	Status           string  `yaml:"status"`
	SaleDate         string  `yaml:"sale_date"`
	SaleChannel      string  `yaml:"sale_channel"`
	ListPrice        float64 `yaml:"list_price"`
	ProceedsReceived float64 `yaml:"proceeds_received"`
	ProceedsHolder   string  `yaml:"proceeds_holder"`
	SplitA           float64 `yaml:"split_a"`
	SplitB           float64 `yaml:"split_b"`
}

type SeedBatch struct {
	Name  string     `yaml:"name"`
	Units []SeedUnit `yaml:"units"`
}

type SeedMovement struct {
	Type        string  `yaml:"type"`
	Currency    string  `yaml:"currency"`
	Amount      float64 `yaml:"amount"`
	Rate        float64 `yaml:"rate"`
	Responsible string  `yaml:"responsible"`
	Date        string  `yaml:"date"`
}

type SeedConfig struct {
	Partners  models.PartnerLabels `yaml:"partners"`
	Batches   []SeedBatch          `yaml:"batches"`
	Movements []SeedMovement       `yaml:"movements"`
}

// LoadSeedConfig reads a YAML fixtures file describing batches, units and
// fund movements to preload into a fresh database.
func LoadSeedConfig(seedFile string) (*SeedConfig, error) {
	var seedPath string
	if filepath.IsAbs(seedFile) {
		seedPath = seedFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		seedPath = filepath.Join(wd, seedFile)
	}

	data, err := os.ReadFile(seedPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", seedFile, err)
	}

	var config SeedConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", seedFile, err)
	}

	for i, batch := range config.Batches {
		if batch.Name == "" {
			return nil, fmt.Errorf("batch at index %d missing name", i)
		}
		for j, unit := range batch.Units {
			if unit.Model == "" {
				return nil, fmt.Errorf("unit at index %d in batch %q missing model", j, batch.Name)
			}
		}
	}

	return &config, nil
}

// ApplySeed writes the fixtures through the regular store operations, so
// every seeded record goes through the same validation and derived-field
// computation as a live save.
func ApplySeed(ctx context.Context, store *database.Service, seed *SeedConfig) error {
	if seed.Partners.A != "" || seed.Partners.B != "" {
		if err := store.UpdatePartnerLabels(ctx, seed.Partners); err != nil {
			return err
		}
	}

	for _, seedBatch := range seed.Batches {
		batch, err := store.CreateBatch(ctx, seedBatch.Name)
		if err != nil {
			return err
		}

		for _, su := range seedBatch.Units {
			status := su.Status
			if status == "" {
				status = models.StatusStock
			}
			splitA, splitB := su.SplitA, su.SplitB
			if splitA == 0 && splitB == 0 {
				splitA, splitB = 50, 50
			}

			unit := models.Unit{
				BatchId:          batch.Id,
				Model:            su.Model,
				Storage:          su.Storage,
				Memory:           su.Memory,
				Color:            su.Color,
				PurchaseDate:     su.PurchaseDate,
				CostUSD:          decimal.NewFromFloat(su.CostUSD),
				ExchangeRate:     decimal.NewFromFloat(su.ExchangeRate),
				ShippingCost:     decimal.NewFromFloat(su.ShippingCost),
				ExtraCost:        decimal.NewFromFloat(su.ExtraCost),
				Status:           status,
				SaleDate:         su.SaleDate,
				SaleChannel:      su.SaleChannel,
				ListPrice:        decimal.NewFromFloat(su.ListPrice),
				ProceedsReceived: decimal.NewFromFloat(su.ProceedsReceived),
				ProceedsHolder:   su.ProceedsHolder,
				SplitA:           decimal.NewFromFloat(splitA),
				SplitB:           decimal.NewFromFloat(splitB),
			}
			if _, err := store.SaveUnit(ctx, unit); err != nil {
				return fmt.Errorf("failed to seed unit %q: %w", su.Model, err)
			}
		}
	}

	for _, sm := range seed.Movements {
		movement := models.FundMovement{
			Type:        sm.Type,
			Currency:    sm.Currency,
			Amount:      decimal.NewFromFloat(sm.Amount),
			Rate:        decimal.NewFromFloat(sm.Rate),
			Responsible: sm.Responsible,
			Date:        sm.Date,
		}
		if _, err := store.AddFundMovement(ctx, movement); err != nil {
			return fmt.Errorf("failed to seed fund movement: %w", err)
		}
	}

	return nil
}
