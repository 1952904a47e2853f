package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sprout/pkg/cache"
	"github.com/matzehuels/sprout/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cacheInfoCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Cache.Backend == config.BackendNone {
				printInfo("Caching is disabled")
				return nil
			}
			cc, err := newCache(cmd.Context(), cfg.Cache, false)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer cc.Close()

			count := -1
			if fc, ok := cc.(*cache.FileCache); ok {
				if n, _, err := fc.Stats(); err == nil {
					count = n
				}
			}
			if err := cache.Clear(cmd.Context(), cc); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			switch {
			case count == 0:
				printInfo("Cache is empty")
			case count > 0:
				printSuccess("Cleared %d cached entries", count)
			default:
				printSuccess("Cleared %s cache", cfg.Cache.Backend)
			}
			if fc, ok := cc.(*cache.FileCache); ok {
				printDetail("Directory: %s", fc.Dir())
			}
			return nil
		},
	}
}

// cacheInfoCommand creates the "cache info" subcommand.
func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the cache backend and its size",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			printKeyValue("Backend", cfg.Cache.Backend)
			printKeyValue("TTL", cfg.Cache.TTL.String())

			switch cfg.Cache.Backend {
			case config.BackendRedis:
				printKeyValue("Address", cfg.Cache.RedisAddr)
				printKeyValue("Prefix", cfg.Cache.RedisPrefix)
			case config.BackendFile:
				cc, err := newCache(cmd.Context(), cfg.Cache, false)
				if err != nil {
					return fmt.Errorf("open cache: %w", err)
				}
				defer cc.Close()
				fc, ok := cc.(*cache.FileCache)
				if !ok {
					return nil
				}
				entries, size, err := fc.Stats()
				if err != nil {
					return fmt.Errorf("read cache: %w", err)
				}
				printKeyValue("Directory", fc.Dir())
				printKeyValue("Entries", strconv.Itoa(entries))
				printKeyValue("Size", formatBytes(size))
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Cache.Dir != "" {
				fmt.Println(cfg.Cache.Dir)
				return nil
			}
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// formatBytes prints a size with a binary unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
