package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"stockfolio/internal/models"
	"stockfolio/internal/testutil"
)

func TestDeposit(t *testing.T) {
	t.Run("credits_balance_and_appends_ledger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCashService(db)
		user := testutil.CreateTestUser(t, db)
		portfolio := testutil.CreateTestPortfolio(t, db, user.ID, decimal.NewFromInt(100))

		testutil.AssertNoError(t, svc.Deposit(portfolio.ID, decimal.NewFromInt(250)))

		var reloaded models.Portfolio
		testutil.AssertNoError(t, db.Take(&reloaded, portfolio.ID).Error)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(350), reloaded.CashBalance)

		var entry models.LedgerEntry
		testutil.AssertNoError(t, db.Where("portfolio_id = ?", portfolio.ID).Take(&entry).Error)
		if entry.Kind != models.LedgerKindDeposit {
			t.Errorf("expected deposit entry, got %s", entry.Kind)
		}
		if entry.StockSymbol != nil || entry.Shares != nil {
			t.Error("cash entries must not carry symbol or shares")
		}
	})

	t.Run("zero_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCashService(db)

		testutil.AssertAppError(t, svc.Deposit(1, decimal.Zero), "INVALID_AMOUNT")
	})

	t.Run("negative_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCashService(db)

		testutil.AssertAppError(t, svc.Deposit(1, decimal.NewFromInt(-50)), "INVALID_AMOUNT")
	})

	t.Run("portfolio_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCashService(db)

		testutil.AssertAppError(t, svc.Deposit(99999, decimal.NewFromInt(50)), "PORTFOLIO_NOT_FOUND")
	})
}

func TestWithdraw(t *testing.T) {
	t.Run("debits_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCashService(db)
		user := testutil.CreateTestUser(t, db)
		portfolio := testutil.CreateTestPortfolio(t, db, user.ID, decimal.NewFromInt(1000))

		testutil.AssertNoError(t, svc.Withdraw(portfolio.ID, decimal.NewFromInt(400)))

		var reloaded models.Portfolio
		testutil.AssertNoError(t, db.Take(&reloaded, portfolio.ID).Error)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(600), reloaded.CashBalance)
	})

	t.Run("withdraw_entire_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCashService(db)
		user := testutil.CreateTestUser(t, db)
		portfolio := testutil.CreateTestPortfolio(t, db, user.ID, decimal.NewFromInt(1000))

		testutil.AssertNoError(t, svc.Withdraw(portfolio.ID, decimal.NewFromInt(1000)))

		var reloaded models.Portfolio
		testutil.AssertNoError(t, db.Take(&reloaded, portfolio.ID).Error)
		testutil.AssertDecimalEqual(t, decimal.Zero, reloaded.CashBalance)
	})

	t.Run("insufficient_cash", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCashService(db)
		user := testutil.CreateTestUser(t, db)
		portfolio := testutil.CreateTestPortfolio(t, db, user.ID, decimal.NewFromInt(100))

		testutil.AssertAppError(t, svc.Withdraw(portfolio.ID, decimal.NewFromInt(101)), "INSUFFICIENT_CASH")

		// Balance and ledger untouched on failure.
		var reloaded models.Portfolio
		testutil.AssertNoError(t, db.Take(&reloaded, portfolio.ID).Error)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(100), reloaded.CashBalance)

		var entries int64
		db.Model(&models.LedgerEntry{}).Where("portfolio_id = ?", portfolio.ID).Count(&entries)
		if entries != 0 {
			t.Errorf("expected no ledger entries, got %d", entries)
		}
	})

	t.Run("zero_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCashService(db)

		testutil.AssertAppError(t, svc.Withdraw(1, decimal.Zero), "INVALID_AMOUNT")
	})
}

func TestTransfer(t *testing.T) {
	t.Run("moves_cash_between_portfolios", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCashService(db)
		user := testutil.CreateTestUser(t, db)
		source := testutil.CreateTestPortfolioWithName(t, db, user.ID, "Growth", decimal.NewFromInt(1000))
		target := testutil.CreateTestPortfolioWithName(t, db, user.ID, "Savings", decimal.NewFromInt(200))

		testutil.AssertNoError(t, svc.Transfer(source.ID, "Savings", decimal.NewFromInt(300)))

		var reloadedSource, reloadedTarget models.Portfolio
		testutil.AssertNoError(t, db.Take(&reloadedSource, source.ID).Error)
		testutil.AssertNoError(t, db.Take(&reloadedTarget, target.ID).Error)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(700), reloadedSource.CashBalance)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(500), reloadedTarget.CashBalance)

		// One transfer_out on the source, one transfer_in on the target.
		var outEntry, inEntry models.LedgerEntry
		testutil.AssertNoError(t, db.Where("portfolio_id = ?", source.ID).Take(&outEntry).Error)
		testutil.AssertNoError(t, db.Where("portfolio_id = ?", target.ID).Take(&inEntry).Error)
		if outEntry.Kind != models.LedgerKindTransferOut {
			t.Errorf("expected transfer_out, got %s", outEntry.Kind)
		}
		if inEntry.Kind != models.LedgerKindTransferIn {
			t.Errorf("expected transfer_in, got %s", inEntry.Kind)
		}
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(300), outEntry.TotalPrice)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(300), inEntry.TotalPrice)
	})

	t.Run("insufficient_cash_leaves_both_unchanged", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCashService(db)
		user := testutil.CreateTestUser(t, db)
		source := testutil.CreateTestPortfolioWithName(t, db, user.ID, "Growth", decimal.NewFromInt(100))
		target := testutil.CreateTestPortfolioWithName(t, db, user.ID, "Savings", decimal.NewFromInt(200))

		testutil.AssertAppError(t, svc.Transfer(source.ID, "Savings", decimal.NewFromInt(500)), "INSUFFICIENT_CASH")

		var reloadedSource, reloadedTarget models.Portfolio
		testutil.AssertNoError(t, db.Take(&reloadedSource, source.ID).Error)
		testutil.AssertNoError(t, db.Take(&reloadedTarget, target.ID).Error)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(100), reloadedSource.CashBalance)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(200), reloadedTarget.CashBalance)

		var entries int64
		db.Model(&models.LedgerEntry{}).Count(&entries)
		if entries != 0 {
			t.Errorf("expected no ledger entries, got %d", entries)
		}
	})

	t.Run("target_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCashService(db)
		user := testutil.CreateTestUser(t, db)
		source := testutil.CreateTestPortfolioWithName(t, db, user.ID, "Growth", decimal.NewFromInt(1000))

		testutil.AssertAppError(t, svc.Transfer(source.ID, "Nowhere", decimal.NewFromInt(100)), "TARGET_NOT_FOUND")
	})

	t.Run("transfer_to_self", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCashService(db)
		user := testutil.CreateTestUser(t, db)
		source := testutil.CreateTestPortfolioWithName(t, db, user.ID, "Growth", decimal.NewFromInt(1000))

		testutil.AssertAppError(t, svc.Transfer(source.ID, "Growth", decimal.NewFromInt(100)), "SAME_PORTFOLIO_TRANSFER")
	})

	t.Run("source_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCashService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestPortfolioWithName(t, db, user.ID, "Savings", decimal.NewFromInt(200))

		testutil.AssertAppError(t, svc.Transfer(99999, "Savings", decimal.NewFromInt(100)), "PORTFOLIO_NOT_FOUND")
	})

	t.Run("zero_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCashService(db)

		testutil.AssertAppError(t, svc.Transfer(1, "Savings", decimal.Zero), "INVALID_AMOUNT")
	})
}
