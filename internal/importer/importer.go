// Package importer maps pasted spreadsheet rows onto inventory units. The
// expected input is the CSV block partners copy out of their purchase
// spreadsheet, so the column names and the number formats (dot thousands
// separator, comma decimal mark, stray currency symbols) follow that sheet.
package importer

import (
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tanda-tracker-go/internal/models"
)

// DefaultExchangeRate fills in for rows that omit the day's USD rate.
var DefaultExchangeRate = decimal.NewFromInt(1465)

var defaultSplit = decimal.NewFromInt(50)

// Spreadsheet column headers, uppercased for matching.
const (
	colDate         = "FECHA"
	colModel        = "CELULAR"
	colStorage      = "ROM"
	colMemory       = "RAM"
	colColor        = "COLOR"
	colImei1        = "IMEI1"
	colImei2        = "IMEI2"
	colCostUSD      = "COSTO USD"
	colExchangeRate = "DOLAR DEL DIA"
	colShipping     = "COSTO ENVIO"
	colExtra        = "GASTO EXTRA"
	colStatus       = "ESTADO"
	colListPrice    = "PRECIO DE VENTA"
	colProceeds     = "PLATA RECIBIDA"
	colHolder       = "QUIEN TIENE LA PLATA?"

	statusSoldMarker = "VENDIDO"
)

// ParseCSV maps a CSV block onto units targeted at one batch. The first
// line must be the header row; blank lines are skipped. Rows never fail
// individually: missing numeric cells degrade to zero and unknown columns
// are ignored.
func ParseCSV(data, batchID string) ([]models.Unit, error) {
	reader := csv.NewReader(strings.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to parse CSV input: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV input needs a header row and at least one data row")
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.ToUpper(strings.TrimSpace(h))
	}

	var units []models.Unit
	for _, record := range records[1:] {
		row := make(map[string]string, len(headers))
		empty := true
		for i, value := range record {
			if i >= len(headers) {
				break
			}
			value = strings.TrimSpace(value)
			row[headers[i]] = value
			if value != "" {
				empty = false
			}
		}
		if empty {
			continue
		}

		units = append(units, mapRow(row, batchID))
	}

	return units, nil
}

func mapRow(row map[string]string, batchID string) models.Unit {
	rate := cleanNumber(row[colExchangeRate])
	if rate.IsZero() {
		rate = DefaultExchangeRate
	}

	date := row[colDate]
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	model := row[colModel]
	if model == "" {
		model = "UNKNOWN MODEL"
	}

	return models.Unit{
		BatchId:          batchID,
		PurchaseDate:     date,
		Model:            model,
		Storage:          row[colStorage],
		Memory:           row[colMemory],
		Color:            row[colColor],
		Imei1:            row[colImei1],
		Imei2:            row[colImei2],
		CostUSD:          cleanNumber(row[colCostUSD]),
		ExchangeRate:     rate,
		ShippingCost:     cleanNumber(row[colShipping]),
		ExtraCost:        cleanNumber(row[colExtra]),
		Status:           inferStatus(row),
		ListPrice:        cleanNumber(row[colListPrice]),
		ProceedsReceived: cleanNumber(row[colProceeds]),
		ProceedsHolder:   row[colHolder],
		SplitA:           defaultSplit,
		SplitB:           defaultSplit,
	}
}

// inferStatus classifies a row as sold when it carries an explicit sold
// marker or a non-empty sale price column; everything else is stock.
func inferStatus(row map[string]string) string {
	if strings.EqualFold(row[colStatus], statusSoldMarker) || row[colListPrice] != "" {
		return models.StatusSold
	}
	return models.StatusStock
}

// cleanNumber sanitizes a spreadsheet cell into a decimal: strips currency
// symbols and spaces, drops dot thousands separators, and turns the comma
// decimal mark into a dot. Anything unparseable degrades to zero.
func cleanNumber(value string) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}

	var b strings.Builder
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9', r == ',', r == '.', r == '-':
			b.WriteRune(r)
		}
	}

	cleaned := strings.ReplaceAll(b.String(), ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}
