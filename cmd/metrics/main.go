package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tanda-tracker-go/internal/common"
	"tanda-tracker-go/internal/config"
	"tanda-tracker-go/internal/metrics"
	"tanda-tracker-go/internal/models"
)

// resolveBatch matches the flag against batch ids and names so either works
// on the command line.
func resolveBatch(batches []models.Batch, selector string) string {
	if selector == "" {
		if len(batches) == 0 {
			return ""
		}
		return batches[len(batches)-1].Id
	}

	for _, batch := range batches {
		if batch.Id == selector || strings.EqualFold(batch.Name, selector) {
			return batch.Id
		}
	}
	return selector
}

func batchName(batches []models.Batch, id string) string {
	for _, batch := range batches {
		if batch.Id == id {
			return batch.Name
		}
	}
	return id
}

func printDashboard(m models.Metrics, partners models.PartnerLabels, selectedName string) {
	common.PrintHeader("TANDA DASHBOARD: "+selectedName, common.DefaultWidth)

	fmt.Printf("│  Investment (tanda):  %s\n", common.FormatARS(m.TandaInvestment))
	fmt.Printf("│  Profit (tanda):      %s\n", common.FormatARS(m.TandaProfit))
	fmt.Printf("│  Units in stock:      %d\n", m.StockUnits)
	fmt.Printf("│  Owed to %-12s %s\n", partners.A+":", common.FormatARS(m.OwedToA))
	fmt.Printf("│  Owed to %-12s %s\n", partners.B+":", common.FormatARS(m.OwedToB))
	common.PrintBoxSeparator(78)

	fmt.Printf("│  Global investment:   %s\n", common.FormatARS(m.GlobalInvestment))
	fmt.Printf("│  Global profit:       %s\n", common.FormatARS(m.GlobalProfit))
	common.PrintBoxSeparator(78)

	fmt.Printf("│  Cash %-15s %s\n", partners.A+":", common.FormatARS(m.CashPartnerA))
	fmt.Printf("│  Cash %-15s %s\n", partners.B+":", common.FormatARS(m.CashPartnerB))
	fmt.Printf("│  Marketplace %-8s %s\n", partners.A+":", common.FormatARS(m.MarketplacePartnerA))
	fmt.Printf("│  Marketplace %-8s %s\n", partners.B+":", common.FormatARS(m.MarketplacePartnerB))
	common.PrintBoxSeparator(78)

	fmt.Printf("│  Fund USD:            %s\n", common.FormatUSD(m.Fund.USD))
	fmt.Printf("│  Fund ARS:            %s\n", common.FormatARS(m.Fund.ARS))
	fmt.Printf("│  Fund total (USD eq): %s\n", common.FormatUSD(m.Fund.TotalUSD))

	if len(m.Batches) > 0 {
		common.PrintBoxSeparator(78)
		for i, summary := range m.Batches {
			prefix := common.BoxPrefix(i == len(m.Batches)-1)
			fmt.Printf("%s%-24s %3d units  inv %s  profit %s\n",
				prefix, summary.Name, summary.Units,
				common.FormatARS(summary.Investment), common.FormatARS(summary.Profit))
		}
	}

	common.PrintFooter("Figures recomputed from the live snapshot", common.DefaultWidth)
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	batchFlag := flag.String("batch", "", "Batch id or name to scope the tanda figures (default: latest)")
	flag.Parse()

	logger.Info("Starting metrics report")

	cfg, err := config.LoadDatabaseOnly()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Connecting to database", zap.String("path", cfg.Database.Path))
	dbService, err := common.InitializeDatabaseOnly(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer dbService.Close()

	snapshot, err := dbService.Snapshot(ctx)
	if err != nil {
		logger.Fatal("Failed to read snapshot", zap.Error(err))
	}

	selected := resolveBatch(snapshot.Batches, *batchFlag)
	m := metrics.Compute(snapshot, selected)
	printDashboard(m, snapshot.Partners, batchName(snapshot.Batches, selected))

	logger.Info("Metrics report completed",
		zap.String("batch", selected),
		zap.Int("units", len(snapshot.Units)),
		zap.Int("movements", len(snapshot.Movements)))
}
