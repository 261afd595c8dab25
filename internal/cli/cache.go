package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forcetower/pkg/buildinfo"
	"github.com/matzehuels/forcetower/pkg/cache"
)

// cacheCommand groups the subcommands that inspect and empty the on-disk
// layout cache. The in-memory tier lives only as long as one run.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout cache",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Remove all cached layouts and artifacts",
			Args:  cobra.NoArgs,
			RunE:  withCacheDir(c.clearCache),
		},
		&cobra.Command{
			Use:   "info",
			Short: "Show the cache location, scope and size",
			Args:  cobra.NoArgs,
			RunE:  withCacheDir(c.cacheInfo),
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory path",
			Args:  cobra.NoArgs,
			RunE: withCacheDir(func(cmd *cobra.Command, dir string) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), dir)
				return err
			}),
		},
	)
	return cmd
}

// withCacheDir resolves the cache directory before calling fn.
func withCacheDir(fn func(cmd *cobra.Command, dir string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		dir, err := cacheDir()
		if err != nil {
			return fmt.Errorf("locate cache: %w", err)
		}
		return fn(cmd, dir)
	}
}

func (c *CLI) clearCache(_ *cobra.Command, dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo("Cache is empty")
		return nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return err
	}
	n, err := fc.Clear()
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	c.Logger.Debug("cleared cache", "dir", dir, "entries", n)
	printSuccess("Cleared %d cached entries", n)
	printDetail("Directory: %s", dir)
	return nil
}

func (c *CLI) cacheInfo(cmd *cobra.Command, dir string) error {
	entries, size := 0, int64(0)
	if _, err := os.Stat(dir); err == nil {
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return err
		}
		if entries, size, err = fc.Usage(); err != nil {
			return fmt.Errorf("inspect cache: %w", err)
		}
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "directory: %s\n", dir)
	fmt.Fprintf(out, "scope:     %s\n", buildinfo.CacheScope())
	fmt.Fprintf(out, "entries:   %d\n", entries)
	fmt.Fprintf(out, "size:      %s\n", humanBytes(size))
	return nil
}

// humanBytes formats n with a binary unit, e.g. "1.5 KiB".
func humanBytes(n int64) string {
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
