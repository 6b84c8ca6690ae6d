package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/workflowgraph/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout and render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var redis bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached layouts, artifacts and fetched graphs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if redis {
				return c.clearRedis(cmd)
			}

			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			defer fc.Close()
			count, err := fc.(cache.Clearer).Clear(cmd.Context())
			if err != nil {
				return err
			}

			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&redis, "redis", false, "clear the Redis cache configured under [redis]")
	return cmd
}

func (c *CLI) clearRedis(cmd *cobra.Command) error {
	cfg := c.Config.Redis
	if cfg.Addr == "" {
		return fmt.Errorf("no [redis] addr configured")
	}
	rc, err := cache.NewRedisCache(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	defer rc.Close()

	count, err := rc.Clear(cmd.Context())
	if err != nil {
		return err
	}
	printSuccess("Cleared %d cached entries", count)
	printDetail("Redis: %s", cfg.Addr)
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
