package main

import (
	"context"
	"flag"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/Nidhonkar/blockchain-adoption-pro/internal/config"
	"github.com/Nidhonkar/blockchain-adoption-pro/internal/dashboard"
	"github.com/Nidhonkar/blockchain-adoption-pro/internal/dataset"
	"github.com/Nidhonkar/blockchain-adoption-pro/internal/live"
	"github.com/Nidhonkar/blockchain-adoption-pro/internal/logging"
	"github.com/Nidhonkar/blockchain-adoption-pro/internal/server"
	"github.com/Nidhonkar/blockchain-adoption-pro/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/dashboard.yaml", "path to config file")
	flag.Parse()

	// Load configuration before the logger so its level applies from the start
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logging.New(os.Stderr, "info", "text").Error("failed to load config", "error", err, "config", *configPath)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	logger = logger.With("service", "dashboard")

	logger.Info("starting dashboard",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Bundled snapshots
	loader, err := dataset.Open(cfg.Data.Dir, dataset.WithLogger(logger))
	if err != nil {
		logger.Error("failed to open data dir", "dir", cfg.Data.Dir, "error", err)
		os.Exit(1)
	}

	// Live providers
	client := live.NewClient(
		live.WithCoinMetricsURL(cfg.Providers.CoinMetricsURL),
		live.WithCoinGeckoURL(cfg.Providers.CoinGeckoURL),
		live.WithTimeout(cfg.Providers.Timeout),
		live.WithPageSize(cfg.Providers.PageSize),
		live.WithUserAgent("blockchain-adoption-pro/"+version.Version),
		live.WithLogger(logger),
	)
	fetcher := live.NewFetcher(client,
		live.WithTTLs(cfg.Cache.TxCountsTTL, cfg.Cache.StablecoinCapsTTL),
		live.WithFetcherLogger(logger),
	)

	logger.Info("configuration loaded",
		"data_dir", cfg.Data.Dir,
		"coinmetrics_url", cfg.Providers.CoinMetricsURL,
		"coingecko_url", cfg.Providers.CoinGeckoURL,
		"tx_counts_ttl", cfg.Cache.TxCountsTTL,
		"stablecoin_caps_ttl", cfg.Cache.StablecoinCapsTTL,
	)

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	svc := dashboard.NewService(dashboard.Config{
		TxAssets:            cfg.Metrics.TxAssets,
		StablecoinIDs:       cfg.Metrics.StablecoinIDs,
		MovingAverageWindow: cfg.Metrics.MovingAverageWindow,
	}, fetcher, loader, logger)

	srv := server.New(server.Config{
		Addr:            net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Version:         version.String(),
	}, svc, logger)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("dashboard stopped")
}
