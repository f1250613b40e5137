package main

import (
	"context"
	"os"

	"car-dashboard/cache"
	"car-dashboard/config"
	"car-dashboard/fetcher"
	"car-dashboard/models"
	"car-dashboard/server"
	"car-dashboard/services"
	"car-dashboard/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.Debug)

	logger.Info("=== Car Listings Dashboard starting ===")
	logger.Info("Config — endpoint: %s | timeout: %s | cache TTL: %s",
		cfg.APIURL, cfg.FetchTimeout, cfg.CacheTTL)

	f := fetcher.New(cfg.APIURL, cfg.FetchTimeout, logger)
	dataCache := cache.New(cfg.CacheTTL, f.Load, logger)
	insights := services.NewInsightService(logger)

	// Initial load. Fetch and processing errors are non-fatal: the API
	// surfaces them and a later refresh can recover.
	snap := dataCache.Get(context.Background())
	if snap.Err != nil {
		logger.Error("Initial load failed (%s): %v", models.ErrorKind(snap.Err), snap.Err)
	} else {
		logger.Info("Loaded %d listings (snapshot %s)", snap.Table.Len(), snap.ID)
		insights.Print(
			insights.KPIs(snap.Table),
			insights.Stats(snap.Table),
			insights.TopBrands(snap.Table, cfg.TopBrands),
		)
	}

	srv := server.New(cfg, dataCache, insights, logger)
	if err := srv.Run(); err != nil {
		logger.Error("Server stopped: %v", err)
		os.Exit(1)
	}
}
