package marketdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stockfolio/internal/models"
)

// Loader seeds the stocks and stock_prices tables from CSV files. This is
// the only write path into the market data tables.
type Loader struct {
	db *gorm.DB
}

// NewLoader creates a Loader on the given database.
func NewLoader(db *gorm.DB) *Loader {
	return &Loader{db: db}
}

// LoadStocks ingests rows of "symbol,company_name". Existing symbols are
// left untouched. Returns the number of rows read.
func (l *Loader) LoadStocks(r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	count := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("read stocks csv: %w", err)
		}
		if len(record) < 2 {
			return count, fmt.Errorf("stocks csv row %d: expected symbol,company_name", count+1)
		}

		stock := models.Stock{
			Symbol:      strings.ToUpper(strings.TrimSpace(record[0])),
			CompanyName: strings.TrimSpace(record[1]),
		}
		if stock.Symbol == "symbol" || stock.Symbol == "SYMBOL" {
			continue // header row
		}

		if err := l.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&stock).Error; err != nil {
			return count, fmt.Errorf("insert stock %s: %w", stock.Symbol, err)
		}
		count++
	}
	return count, nil
}

// LoadPrices ingests rows of "symbol,date,close" with dates in YYYY-MM-DD
// or RFC 3339 form. Rows are appended in batches. Returns the number of
// price points loaded.
func (l *Loader) LoadPrices(r io.Reader) (int, error) {
	reader := csv.NewReader(r)

	var batch []models.StockPrice
	count := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := l.db.CreateInBatches(batch, 500).Error; err != nil {
			return fmt.Errorf("insert price batch: %w", err)
		}
		batch = batch[:0]
		return nil
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("read prices csv: %w", err)
		}
		if len(record) < 3 {
			return count, fmt.Errorf("prices csv row %d: expected symbol,date,close", count+1)
		}

		symbol := strings.ToUpper(strings.TrimSpace(record[0]))
		if symbol == "SYMBOL" {
			continue // header row
		}

		ts, err := parseTimestamp(strings.TrimSpace(record[1]))
		if err != nil {
			return count, fmt.Errorf("prices csv row %d: %w", count+1, err)
		}

		closePx, err := decimal.NewFromString(strings.TrimSpace(record[2]))
		if err != nil {
			return count, fmt.Errorf("prices csv row %d: bad close %q: %w", count+1, record[2], err)
		}

		batch = append(batch, models.StockPrice{Symbol: symbol, Timestamp: ts, Close: closePx})
		count++

		if len(batch) >= 500 {
			if err := flush(); err != nil {
				return count, err
			}
		}
	}

	if err := flush(); err != nil {
		return count, err
	}
	return count, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
