package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"stockfolio/internal/analytics"
	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/marketdata"
	"stockfolio/internal/models"
)

// valuationService aggregates current market value and derived statistics
// from the portfolio store and the market data provider. It performs
// snapshot reads only and never mutates state.
type valuationService struct {
	db     *gorm.DB
	market marketdata.Provider
}

// NewValuationService creates a new ValuationServicer.
func NewValuationService(db *gorm.DB, market marketdata.Provider) ValuationServicer {
	return &valuationService{db: db, market: market}
}

// PortfolioHoldings returns the per-holding breakdown for a portfolio.
// Holdings whose symbol has no price on record are omitted, matching the
// inner join against the latest-quote lookup.
func (s *valuationService) PortfolioHoldings(portfolioID uint) ([]HoldingView, error) {
	var portfolio models.Portfolio
	if err := s.db.Take(&portfolio, portfolioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPortfolioNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var holdings []models.Holding
	if err := s.db.Where("portfolio_id = ?", portfolioID).Find(&holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	symbols := make([]string, 0, len(holdings))
	for i := range holdings {
		symbols = append(symbols, holdings[i].StockSymbol)
	}

	prices, err := s.market.LatestPrices(symbols)
	if err != nil {
		return nil, err
	}

	names, err := s.companyNames(symbols)
	if err != nil {
		return nil, err
	}

	views := make([]HoldingView, 0, len(holdings))
	for i := range holdings {
		h := &holdings[i]
		price, ok := prices[h.StockSymbol]
		if !ok {
			continue
		}
		views = append(views, HoldingView{
			StockSymbol:   h.StockSymbol,
			CompanyName:   names[h.StockSymbol],
			Shares:        h.Shares,
			LatestPrice:   price,
			MarketValue:   price.Mul(decimal.NewFromInt(h.Shares)),
			PortfolioName: portfolio.Name,
		})
	}
	return views, nil
}

// PortfolioValue returns the portfolio's current market value, the sum of
// shares times latest close over its priced holdings.
func (s *valuationService) PortfolioValue(portfolioID uint) (*PortfolioValue, error) {
	views, err := s.PortfolioHoldings(portfolioID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for i := range views {
		total = total.Add(views[i].MarketValue)
	}
	return &PortfolioValue{PortfolioID: portfolioID, MarketValue: total}, nil
}

// StocklistValue returns a stocklist's current market value with per-item
// breakdowns.
func (s *valuationService) StocklistValue(stocklistID uint) (*StocklistValue, error) {
	var list models.Stocklist
	if err := s.db.Take(&list, stocklistID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStocklistNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var items []models.StocklistItem
	if err := s.db.Where("stocklist_id = ?", stocklistID).Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	symbols := make([]string, 0, len(items))
	for i := range items {
		symbols = append(symbols, items[i].StockSymbol)
	}
	prices, err := s.market.LatestPrices(symbols)
	if err != nil {
		return nil, err
	}

	result := &StocklistValue{StocklistID: stocklistID, Value: decimal.Zero, Items: []StocklistItemView{}}
	for i := range items {
		item := &items[i]
		price, ok := prices[item.StockSymbol]
		if !ok {
			continue
		}
		value := price.Mul(decimal.NewFromInt(item.Shares))
		result.Value = result.Value.Add(value)
		result.Items = append(result.Items, StocklistItemView{
			StockSymbol: item.StockSymbol,
			Shares:      item.Shares,
			LatestPrice: price,
			MarketValue: value,
		})
	}
	return result, nil
}

// PortfolioAnalytics computes dispersion statistics per holding and
// pairwise covariance/correlation across the portfolio's holdings over the
// most recent window of historical closes. These are derived analytics and
// tolerate staleness relative to in-flight commits.
func (s *valuationService) PortfolioAnalytics(portfolioID uint, window int) (*AnalyticsReport, error) {
	if window <= 0 {
		window = 252
	}

	var portfolio models.Portfolio
	if err := s.db.Take(&portfolio, portfolioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPortfolioNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var holdings []models.Holding
	if err := s.db.Where("portfolio_id = ?", portfolioID).Order("stock_symbol").
		Find(&holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	report := &AnalyticsReport{
		PortfolioID: portfolioID,
		Window:      window,
		Symbols:     []SymbolStats{},
		Pairs:       []PairStats{},
	}

	series := make(map[string][]float64, len(holdings))
	ordered := make([]string, 0, len(holdings))
	for i := range holdings {
		symbol := holdings[i].StockSymbol
		history, err := s.market.PriceHistory(symbol, window)
		if err != nil {
			if errors.Is(err, apperrors.ErrPriceNotFound) {
				continue
			}
			return nil, err
		}
		// Dispersion over n-1 needs at least two observations; a
		// single close would turn the whole report into NaNs.
		if len(history) < 2 {
			continue
		}

		closes := make([]float64, len(history))
		for j := range history {
			closes[j] = history[j].Close.InexactFloat64()
		}
		series[symbol] = closes
		ordered = append(ordered, symbol)

		report.Symbols = append(report.Symbols, SymbolStats{
			Symbol:                 symbol,
			Mean:                   analytics.Mean(closes),
			StdDev:                 analytics.StdDev(closes),
			CoefficientOfVariation: analytics.CoefficientOfVariation(closes),
		})
	}

	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			x, y := analytics.AlignSeries(series[ordered[i]], series[ordered[j]])
			report.Pairs = append(report.Pairs, PairStats{
				SymbolA:     ordered[i],
				SymbolB:     ordered[j],
				Covariance:  analytics.Covariance(x, y),
				Correlation: analytics.Correlation(x, y),
			})
		}
	}
	return report, nil
}

// companyNames resolves symbols to company names; unknown symbols map to "".
func (s *valuationService) companyNames(symbols []string) (map[string]string, error) {
	if len(symbols) == 0 {
		return map[string]string{}, nil
	}

	var stocks []models.Stock
	if err := s.db.Where("symbol IN ?", symbols).Find(&stocks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	names := make(map[string]string, len(stocks))
	for i := range stocks {
		names[stocks[i].Symbol] = stocks[i].CompanyName
	}
	return names, nil
}
