package factorlink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/linkalytics/factorlink/pkg/config"
)

var expandCmd = &cobra.Command{
	Use:   "expand <entity>",
	Short: "Expand an entity into its factor network",
	Long: `Expand builds the factor map for an entity and follows shared factor
values out to the requested number of degrees. Each degree adds the
entities reachable through values discovered in the previous one.

The resulting network is printed as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runExpand,
}

var (
	expandDegrees int
	expandFactors []string
)

func init() {
	rootCmd.AddCommand(expandCmd)

	expandCmd.Flags().IntVar(&expandDegrees, "degrees", 2, "Number of expansion degrees")
	expandCmd.Flags().StringSliceVar(&expandFactors, "factors", nil, "Factors to follow (default: all fields the entity carries)")
	expandCmd.Flags().String("index", "", "Index holding the factor documents")
	expandCmd.Flags().StringSlice("index-addresses", nil, "Search backend addresses")
}

func runExpand(cmd *cobra.Command, args []string) error {
	entity := args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("index") {
		cfg.Index.Index, _ = cmd.Flags().GetString("index")
	}
	if cmd.Flags().Changed("index-addresses") {
		cfg.Index.Addresses, _ = cmd.Flags().GetStringSlice("index-addresses")
	}

	log, flushTelemetry := buildLogger(cfg)
	defer flushTelemetry()

	client, cleanup, err := buildClient(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize factorlink: %w", err)
	}
	defer cleanup()

	tree, err := client.Expand(context.Background(), entity, expandDegrees, expandFactors...)
	if err != nil {
		return fmt.Errorf("expansion failed: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tree)
}
