package factorlink

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/linkalytics/factorlink/pkg/config"
	"github.com/linkalytics/factorlink/pkg/server"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the factorlink HTTP server",
	Long: `Start the factorlink HTTP server to provide REST API access to factor
queries and network expansion.

The server provides endpoints for:
- Listing the factors an entity carries
- Looking up factor values and reverse lookups
- Reducing factors to shared values
- Expanding an entity into its factor network
- Health checks

Configuration can be provided through config files, environment variables, or command-line flags.`,
	RunE: runServer,
}

var (
	serverHost string
	serverPort int
	serverMode string
)

func init() {
	rootCmd.AddCommand(serverCmd)

	// Server-specific flags
	serverCmd.Flags().StringVar(&serverHost, "host", "localhost", "Server host")
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Server port")
	serverCmd.Flags().StringVar(&serverMode, "mode", "debug", "Server mode (debug, release, test)")

	// Index flags
	serverCmd.Flags().StringSlice("index-addresses", nil, "Search backend addresses")
	serverCmd.Flags().String("index", "", "Index holding the factor documents")
	serverCmd.Flags().String("state-index", "", "Index holding entity state records")
	serverCmd.Flags().Int("index-size", 0, "Maximum hits per query")

	// Expansion flags
	serverCmd.Flags().Int("pool-size", 0, "Worker pool size for network expansion")

	// Cache flags
	serverCmd.Flags().Bool("cache", false, "Enable the query result cache")
	serverCmd.Flags().String("cache-path", "", "Query cache directory")

	// Telemetry flags
	serverCmd.Flags().String("telemetry-parquet-path", "", "Path to directory for telemetry error records")
}

func runServer(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	overrideConfigWithFlags(cmd, cfg)

	// Validate configuration
	if err := validateServerConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, flushTelemetry := buildLogger(cfg)
	defer flushTelemetry()

	client, cleanup, err := buildClient(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize factorlink: %w", err)
	}
	defer cleanup()

	// Create and setup server
	srv := server.New(cfg, client, log)
	srv.Setup()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			serverErrChan <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		log.Info("received signal", "signal", sig.String())

		// Create shutdown context with timeout
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Shutdown server
		if err := srv.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		log.Info("server stopped gracefully")
		return nil
	}
}

func overrideConfigWithFlags(cmd *cobra.Command, cfg *config.Config) {
	// Server flags
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serverHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = serverPort
	}
	if cmd.Flags().Changed("mode") {
		cfg.Server.Mode = serverMode
	}

	// Index flags
	if cmd.Flags().Changed("index-addresses") {
		cfg.Index.Addresses, _ = cmd.Flags().GetStringSlice("index-addresses")
	}
	if cmd.Flags().Changed("index") {
		cfg.Index.Index, _ = cmd.Flags().GetString("index")
	}
	if cmd.Flags().Changed("state-index") {
		cfg.Index.StateIndex, _ = cmd.Flags().GetString("state-index")
	}
	if cmd.Flags().Changed("index-size") {
		cfg.Index.Size, _ = cmd.Flags().GetInt("index-size")
	}

	// Expansion flags
	if cmd.Flags().Changed("pool-size") {
		cfg.Expansion.PoolSize, _ = cmd.Flags().GetInt("pool-size")
	}

	// Cache flags
	if cmd.Flags().Changed("cache") {
		cfg.Cache.Enabled, _ = cmd.Flags().GetBool("cache")
	}
	if cmd.Flags().Changed("cache-path") {
		cfg.Cache.Path, _ = cmd.Flags().GetString("cache-path")
	}

	// Telemetry flags
	if cmd.Flags().Changed("telemetry-parquet-path") {
		cfg.Telemetry.ParquetPath, _ = cmd.Flags().GetString("telemetry-parquet-path")
	}
}

func validateServerConfig(cfg *config.Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Server.Port)
	}

	if len(cfg.Index.Addresses) == 0 {
		return fmt.Errorf("search backend addresses are required")
	}
	if cfg.Index.Index == "" {
		return fmt.Errorf("index name is required")
	}
	return nil
}
