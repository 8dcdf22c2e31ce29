package commands

import (
	"fmt"

	"github.com/dyluth/dexteam/internal/draft"
	"github.com/dyluth/dexteam/internal/printer"
	"github.com/dyluth/dexteam/internal/render"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	catalogOutputFormat string
	catalogType         string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the catalog grouped by type pair",
	Long: `Fetch the catalog and show how many dual-typed entries exist per type pair.

Only entries with exactly two types are listed; these are the only ones a
team can be drafted from.

Output Formats:
  default - Human-readable table with pair, count and example names
  jsonl   - Line-delimited JSON, one type pair per line with its entries

Examples:
  # All type pairs
  dexteam catalog

  # Pairs containing Fire
  dexteam catalog --type fire

  # Stream buckets to jq
  dexteam catalog -o jsonl | jq -r 'select(.count > 5) | .pair'`,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVarP(&catalogOutputFormat, "output", "o", "default", "Output format (default or jsonl)")
	catalogCmd.Flags().StringVar(&catalogType, "type", "", "Only show pairs containing this type (case-insensitive)")
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	if catalogOutputFormat != "default" && catalogOutputFormat != "jsonl" {
		return printer.Error(
			fmt.Sprintf("invalid output format: %s", catalogOutputFormat),
			"Supported formats are 'default' and 'jsonl'.",
			nil,
		)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return printer.Error("invalid configuration", err.Error(), nil)
	}

	ctx := cmd.Context()
	src, closeSrc, err := openSource(ctx, cfg, logger)
	if err != nil {
		return printer.Error("failed to set up catalog source", err.Error(), nil)
	}
	defer closeSrc()

	entities, err := src.FetchCatalog(ctx)
	if err != nil {
		return printer.Error(
			fmt.Sprintf("failed to fetch data from %s", cfg.Source.BaseURL),
			err.Error(),
			[]string{"Check your network connection and try again"},
		)
	}

	catalog := draft.Partition(entities)
	logger.Debug("Catalog partitioned", zap.Int("entities", catalog.Size()), zap.Int("pairs", catalog.Len()))

	if catalogOutputFormat == "jsonl" {
		if err := render.FormatJSONL(printer.Writer(), catalog, catalogType); err != nil {
			return printer.Error("failed to write output", err.Error(), nil)
		}
		return nil
	}

	render.FormatCatalog(printer.Writer(), catalog, catalogType)
	return nil
}
