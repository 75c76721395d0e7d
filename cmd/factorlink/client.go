package factorlink

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/linkalytics/factorlink"
	"github.com/linkalytics/factorlink/pkg/alert"
	"github.com/linkalytics/factorlink/pkg/config"
	"github.com/linkalytics/factorlink/pkg/index"
	"github.com/linkalytics/factorlink/pkg/logger"
	"github.com/linkalytics/factorlink/pkg/telemetry"
)

// buildLogger assembles the logger from config, routing error records
// into the parquet telemetry sink when a path is configured.
func buildLogger(cfg *config.Config) (*slog.Logger, func()) {
	handler := logger.NewColorHandler(os.Stderr, logger.ParseLevel(cfg.Log.Level))

	if cfg.Telemetry.ParquetPath != "" {
		parquetHandler, err := telemetry.NewParquetHandler(handler, cfg.Telemetry.ParquetPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize error tracking: %v\n", err)
			return slog.New(handler), func() {}
		}
		return slog.New(parquetHandler), func() { _ = parquetHandler.Flush() }
	}

	return slog.New(handler), func() {}
}

// buildClient wires the search backend decorator stack and returns the
// factorlink client plus a cleanup function.
func buildClient(cfg *config.Config, log *slog.Logger) (*factorlink.Client, func(), error) {
	searcher, closers, err := buildSearcher(cfg, cfg.Index.Index, log)
	if err != nil {
		return nil, nil, err
	}

	opts := []factorlink.ClientOption{
		factorlink.WithLogger(log),
		factorlink.WithPoolSize(cfg.Expansion.PoolSize),
		factorlink.WithFrontierDepth(cfg.Expansion.FrontierDepth),
	}

	if cfg.Index.StateIndex != "" {
		state, stateClosers, err := buildSearcher(cfg, cfg.Index.StateIndex, log)
		if err != nil {
			runClosers(closers)
			return nil, nil, err
		}
		closers = append(closers, stateClosers...)
		opts = append(opts, factorlink.WithStateIndex(state))
	}

	cleanup := func() { runClosers(closers) }
	return factorlink.NewClient(searcher, opts...), cleanup, nil
}

// buildSearcher stacks the configured decorators over the raw backend:
// retry closest to the wire, then the circuit breaker, then the cache.
func buildSearcher(cfg *config.Config, indexName string, log *slog.Logger) (index.Searcher, []func(), error) {
	elastic, err := index.NewElastic(index.Config{
		Addresses:     cfg.Index.Addresses,
		Index:         indexName,
		Size:          cfg.Index.Size,
		Username:      cfg.Index.Username,
		Password:      cfg.Index.Password,
		APIKey:        cfg.Index.APIKey,
		Timeout:       cfg.Index.RequestTimeout(),
		SkipTLSVerify: cfg.Index.SkipTLSVerify,
	}, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to search backend: %w", err)
	}

	var searcher index.Searcher = elastic
	var closers []func()

	searcher = index.NewRetry(searcher, index.DefaultRetryConfig())

	if cfg.CircuitBreaker.Enabled {
		alerter := alert.NewFromConfig(cfg.Alert)
		searcher = index.NewBreaker(searcher, cfg.CircuitBreaker, alerter, indexName, log)
	}

	if cfg.Cache.Enabled {
		cache, err := index.NewCache(searcher, cfg.Cache.Path, cfg.Cache.InMemory, cfg.Cache.CacheTTL(), log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open query cache: %w", err)
		}
		closers = append(closers, func() { _ = cache.Close() })
		searcher = cache
	}

	return searcher, closers, nil
}

func runClosers(closers []func()) {
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
}
