package services

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"stockfolio/internal/marketdata"
	"stockfolio/internal/models"
	"stockfolio/internal/testutil"
)

func TestPortfolioHoldings(t *testing.T) {
	t.Run("prices_each_holding_at_latest_close", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewValuationService(db, marketdata.NewProvider(db))
		user := testutil.CreateTestUser(t, db)
		portfolio := testutil.CreateTestPortfolioWithName(t, db, user.ID, "Growth", decimal.NewFromInt(1000))
		testutil.CreateTestHolding(t, db, portfolio.ID, "AAPL", 10)
		testutil.CreateTestHolding(t, db, portfolio.ID, "MSFT", 5)
		testutil.CreateTestStock(t, db, "AAPL")
		testutil.CreateTestStock(t, db, "MSFT")
		testutil.CreateTestPrice(t, db, "AAPL", time.Now().Add(-24*time.Hour), decimal.NewFromInt(140))
		testutil.CreateTestLatestPrice(t, db, "AAPL", decimal.NewFromInt(150))
		testutil.CreateTestLatestPrice(t, db, "MSFT", decimal.NewFromInt(300))

		views, err := svc.PortfolioHoldings(portfolio.ID)
		testutil.AssertNoError(t, err)
		if len(views) != 2 {
			t.Fatalf("expected 2 holdings, got %d", len(views))
		}

		bySymbol := make(map[string]HoldingView, len(views))
		for _, v := range views {
			bySymbol[v.StockSymbol] = v
		}

		aapl := bySymbol["AAPL"]
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(150), aapl.LatestPrice)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(1500), aapl.MarketValue)
		if aapl.CompanyName != "AAPL Inc." {
			t.Errorf("expected company name resolved, got %q", aapl.CompanyName)
		}
		if aapl.PortfolioName != "Growth" {
			t.Errorf("expected portfolio name Growth, got %q", aapl.PortfolioName)
		}

		msft := bySymbol["MSFT"]
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(1500), msft.MarketValue)
	})

	t.Run("omits_unpriced_holdings", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewValuationService(db, marketdata.NewProvider(db))
		user := testutil.CreateTestUser(t, db)
		portfolio := testutil.CreateTestPortfolio(t, db, user.ID, decimal.Zero)
		testutil.CreateTestHolding(t, db, portfolio.ID, "AAPL", 10)
		testutil.CreateTestHolding(t, db, portfolio.ID, "XYZ", 3)
		testutil.CreateTestLatestPrice(t, db, "AAPL", decimal.NewFromInt(150))

		views, err := svc.PortfolioHoldings(portfolio.ID)
		testutil.AssertNoError(t, err)
		if len(views) != 1 {
			t.Fatalf("expected unpriced holding omitted, got %d views", len(views))
		}
		if views[0].StockSymbol != "AAPL" {
			t.Errorf("expected AAPL, got %s", views[0].StockSymbol)
		}
	})

	t.Run("empty_portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewValuationService(db, marketdata.NewProvider(db))
		user := testutil.CreateTestUser(t, db)
		portfolio := testutil.CreateTestPortfolio(t, db, user.ID, decimal.NewFromInt(1000))

		views, err := svc.PortfolioHoldings(portfolio.ID)
		testutil.AssertNoError(t, err)
		if len(views) != 0 {
			t.Errorf("expected no holdings, got %d", len(views))
		}
	})

	t.Run("portfolio_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewValuationService(db, marketdata.NewProvider(db))

		_, err := svc.PortfolioHoldings(99999)
		testutil.AssertAppError(t, err, "PORTFOLIO_NOT_FOUND")
	})
}

func TestPortfolioValue(t *testing.T) {
	t.Run("sums_holding_market_values", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewValuationService(db, marketdata.NewProvider(db))
		user := testutil.CreateTestUser(t, db)
		portfolio := testutil.CreateTestPortfolio(t, db, user.ID, decimal.NewFromInt(9999))
		testutil.CreateTestHolding(t, db, portfolio.ID, "AAPL", 10)
		testutil.CreateTestHolding(t, db, portfolio.ID, "MSFT", 2)
		testutil.CreateTestLatestPrice(t, db, "AAPL", decimal.NewFromInt(150))
		testutil.CreateTestLatestPrice(t, db, "MSFT", decimal.NewFromInt(300))

		value, err := svc.PortfolioValue(portfolio.ID)
		testutil.AssertNoError(t, err)
		if value.PortfolioID != portfolio.ID {
			t.Errorf("expected portfolio ID %d, got %d", portfolio.ID, value.PortfolioID)
		}
		// Market value covers holdings only, not the cash balance.
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(2100), value.MarketValue)
	})

	t.Run("empty_portfolio_is_zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewValuationService(db, marketdata.NewProvider(db))
		user := testutil.CreateTestUser(t, db)
		portfolio := testutil.CreateTestPortfolio(t, db, user.ID, decimal.NewFromInt(500))

		value, err := svc.PortfolioValue(portfolio.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.Zero, value.MarketValue)
	})
}

func TestStocklistValue(t *testing.T) {
	t.Run("prices_items", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewValuationService(db, marketdata.NewProvider(db))
		user := testutil.CreateTestUser(t, db)
		list := testutil.CreateTestStocklist(t, db, user.ID, false)
		testutil.AssertNoError(t, db.Create(&models.StocklistItem{StocklistID: list.ID, StockSymbol: "AAPL", Shares: 4}).Error)
		testutil.CreateTestLatestPrice(t, db, "AAPL", decimal.NewFromInt(150))

		value, err := svc.StocklistValue(list.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(600), value.Value)
		if len(value.Items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(value.Items))
		}
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(600), value.Items[0].MarketValue)
	})

	t.Run("stocklist_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewValuationService(db, marketdata.NewProvider(db))

		_, err := svc.StocklistValue(99999)
		testutil.AssertAppError(t, err, "STOCKLIST_NOT_FOUND")
	})
}

func TestPortfolioAnalytics(t *testing.T) {
	t.Run("per_symbol_and_pairwise_stats", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewValuationService(db, marketdata.NewProvider(db))
		user := testutil.CreateTestUser(t, db)
		portfolio := testutil.CreateTestPortfolio(t, db, user.ID, decimal.Zero)
		testutil.CreateTestHolding(t, db, portfolio.ID, "AAPL", 10)
		testutil.CreateTestHolding(t, db, portfolio.ID, "MSFT", 5)

		base := time.Now().Add(-10 * 24 * time.Hour)
		aapl := []int64{100, 102, 101, 105, 107}
		msft := []int64{200, 204, 202, 210, 214}
		for i := range aapl {
			ts := base.Add(time.Duration(i) * 24 * time.Hour)
			testutil.CreateTestPrice(t, db, "AAPL", ts, decimal.NewFromInt(aapl[i]))
			testutil.CreateTestPrice(t, db, "MSFT", ts, decimal.NewFromInt(msft[i]))
		}

		report, err := svc.PortfolioAnalytics(portfolio.ID, 5)
		testutil.AssertNoError(t, err)
		if report.Window != 5 {
			t.Errorf("expected window 5, got %d", report.Window)
		}
		if len(report.Symbols) != 2 {
			t.Fatalf("expected stats for 2 symbols, got %d", len(report.Symbols))
		}
		for _, s := range report.Symbols {
			if s.Mean <= 0 || s.StdDev <= 0 || s.CoefficientOfVariation <= 0 {
				t.Errorf("expected positive stats for %s, got %+v", s.Symbol, s)
			}
		}
		if len(report.Pairs) != 1 {
			t.Fatalf("expected 1 pair, got %d", len(report.Pairs))
		}
		// MSFT tracks AAPL exactly (doubled), so correlation is ~1.
		if report.Pairs[0].Correlation < 0.99 {
			t.Errorf("expected correlation near 1, got %f", report.Pairs[0].Correlation)
		}
	})

	t.Run("skips_symbols_with_a_single_close", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewValuationService(db, marketdata.NewProvider(db))
		user := testutil.CreateTestUser(t, db)
		portfolio := testutil.CreateTestPortfolio(t, db, user.ID, decimal.Zero)
		testutil.CreateTestHolding(t, db, portfolio.ID, "AAPL", 10)
		testutil.CreateTestHolding(t, db, portfolio.ID, "GOOG", 2)
		testutil.CreateTestPrice(t, db, "AAPL", time.Now().Add(-48*time.Hour), decimal.NewFromInt(100))
		testutil.CreateTestPrice(t, db, "AAPL", time.Now().Add(-24*time.Hour), decimal.NewFromInt(110))
		// One close is not enough for dispersion over n-1.
		testutil.CreateTestLatestPrice(t, db, "GOOG", decimal.NewFromInt(2800))

		report, err := svc.PortfolioAnalytics(portfolio.ID, 10)
		testutil.AssertNoError(t, err)
		if len(report.Symbols) != 1 || report.Symbols[0].Symbol != "AAPL" {
			t.Fatalf("expected stats for AAPL only, got %+v", report.Symbols)
		}
		if len(report.Pairs) != 0 {
			t.Errorf("expected no pairs, got %d", len(report.Pairs))
		}
		for _, s := range report.Symbols {
			if math.IsNaN(s.StdDev) || math.IsNaN(s.CoefficientOfVariation) {
				t.Errorf("expected finite stats, got %+v", s)
			}
		}
		if _, err := json.Marshal(report); err != nil {
			t.Errorf("expected report to encode, got %v", err)
		}
	})

	t.Run("skips_symbols_without_history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewValuationService(db, marketdata.NewProvider(db))
		user := testutil.CreateTestUser(t, db)
		portfolio := testutil.CreateTestPortfolio(t, db, user.ID, decimal.Zero)
		testutil.CreateTestHolding(t, db, portfolio.ID, "AAPL", 10)
		testutil.CreateTestHolding(t, db, portfolio.ID, "XYZ", 1)
		testutil.CreateTestPrice(t, db, "AAPL", time.Now().Add(-48*time.Hour), decimal.NewFromInt(100))
		testutil.CreateTestPrice(t, db, "AAPL", time.Now().Add(-24*time.Hour), decimal.NewFromInt(110))

		report, err := svc.PortfolioAnalytics(portfolio.ID, 10)
		testutil.AssertNoError(t, err)
		if len(report.Symbols) != 1 {
			t.Fatalf("expected 1 symbol with stats, got %d", len(report.Symbols))
		}
		if len(report.Pairs) != 0 {
			t.Errorf("expected no pairs with a single priced symbol, got %d", len(report.Pairs))
		}
	})
}
