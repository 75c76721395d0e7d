package factorlink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/linkalytics/factorlink/pkg/config"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <entity> [field]",
	Short: "Look up the factors of an entity",
	Long: `Lookup prints the factor values of an entity. With only an entity id
it prints every field the entity carries with its values; with a field
name it prints that field's values.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runLookup,
}

var reverseCmd = &cobra.Command{
	Use:   "reverse <field> <value>",
	Short: "Find the entities carrying a factor value",
	Long: `Reverse prints the ids of the entities whose field matches the given
value. When the field query yields nothing, it is retried once across
all fields.`,
	Args: cobra.ExactArgs(2),
	RunE: runReverse,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(reverseCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, flushTelemetry := buildLogger(cfg)
	defer flushTelemetry()

	client, cleanup, err := buildClient(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize factorlink: %w", err)
	}
	defer cleanup()

	ctx := context.Background()
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if len(args) == 2 {
		values, err := client.Lookup(ctx, args[0], args[1])
		if err != nil {
			return fmt.Errorf("lookup failed: %w", err)
		}
		return encoder.Encode(values)
	}

	tree, err := client.GetAll(ctx, args[0])
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}
	return encoder.Encode(tree)
}

func runReverse(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, flushTelemetry := buildLogger(cfg)
	defer flushTelemetry()

	client, cleanup, err := buildClient(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize factorlink: %w", err)
	}
	defer cleanup()

	entities, err := client.ReverseLookup(context.Background(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("reverse lookup failed: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(entities)
}
