package main

import (
	"flag"
	"fmt"
	"os"

	"stockfolio/internal/config"
	"stockfolio/internal/database"
	"stockfolio/internal/logger"
	"stockfolio/internal/marketdata"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Load error: %v", err)
	}
}

func run() error {
	stocksPath := flag.String("stocks", "", "CSV of symbol,company_name rows to seed the stocks table")
	pricesPath := flag.String("prices", "", "CSV of symbol,date,close rows to seed the stock_prices table")
	flag.Parse()

	if *stocksPath == "" && *pricesPath == "" {
		return fmt.Errorf("usage: loadprices [-stocks stocks.csv] [-prices prices.csv]")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	loader := marketdata.NewLoader(dbManager.DB())

	if *stocksPath != "" {
		f, err := os.Open(*stocksPath)
		if err != nil {
			return fmt.Errorf("open stocks csv: %w", err)
		}
		count, err := loader.LoadStocks(f)
		f.Close()
		if err != nil {
			return err
		}
		logger.Get().Infof("Loaded %d stocks from %s", count, *stocksPath)
	}

	if *pricesPath != "" {
		f, err := os.Open(*pricesPath)
		if err != nil {
			return fmt.Errorf("open prices csv: %w", err)
		}
		count, err := loader.LoadPrices(f)
		f.Close()
		if err != nil {
			return err
		}
		logger.Get().Infof("Loaded %d price points from %s", count, *pricesPath)
	}

	return nil
}
