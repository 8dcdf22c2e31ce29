package commands

import (
	"github.com/dyluth/dexteam/internal/printer"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the Redis cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached entry in the configured namespace",
	Long: `Remove the cached catalog and evolution lookups stored under
cache.namespace. Other namespaces on the same Redis server are left alone.`,
	Args: cobra.NoArgs,
	RunE: runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return printer.Error("invalid configuration", err.Error(), nil)
	}

	if !cfg.Cache.Enabled() {
		return printer.Error(
			"cache is not configured",
			"cache.redis_url is empty, so nothing is cached.",
			[]string{"Set cache.redis_url in dexteam.yml"},
		)
	}

	rc, err := openCache(cfg)
	if err != nil {
		return printer.Error("invalid cache configuration", err.Error(), nil)
	}
	defer rc.Close()

	ctx := cmd.Context()
	if err := rc.Ping(ctx); err != nil {
		return printer.ErrorWithContext(
			"Redis cache is unreachable",
			err.Error(),
			[][2]string{{"Redis URL", cfg.Cache.RedisURL}},
			nil,
		)
	}

	removed, err := rc.Clear(ctx)
	if err != nil {
		return printer.Error("failed to clear cache", err.Error(), nil)
	}

	logger.Debug("Cache cleared", zap.String("namespace", rc.Namespace()), zap.Int("removed", removed))
	printer.Success("Removed %d cached entries from namespace '%s'\n", removed, rc.Namespace())
	return nil
}
