package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/forcetower/pkg/buildinfo"
	"github.com/matzehuels/forcetower/pkg/cache"
	"github.com/matzehuels/forcetower/pkg/config"
	"github.com/matzehuels/forcetower/pkg/metrics"
	"github.com/matzehuels/forcetower/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "forcetower"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Env    config.Env
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Forcetower lays out graphs with a force-directed simulation",
		Long:          `Forcetower computes 2D and 3D node positions for graphs by simulating repulsion, springs and positioning forces, then renders the result as SVG, DOT, PNG or PDF.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Layouts are cached in
// memory in front of the on-disk cache, with keys scoped to the build.
func (c *CLI) newRunner(noCache bool, m *metrics.Metrics) (*pipeline.Runner, error) {
	cc, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheScope())
	return pipeline.NewRunner(cc, keyer, c.Logger, m), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	mem, err := cache.NewMemoryCache(0, 0)
	if err != nil {
		return nil, err
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("no cache directory, caching in memory only", "err", err)
		return mem, nil
	}
	file, err := cache.NewFileCache(dir)
	if err != nil {
		mem.Close()
		return nil, err
	}
	return cache.NewTiered(mem, file), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/forcetower/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutOptions resolves layout options from the configuration file named by
// path (or FORCETOWER_CONFIG) and the environment. Flags are applied by the
// caller on top of the result.
func (c *CLI) layoutOptions(path string) (pipeline.Options, error) {
	opts, err := config.Resolve(path, c.Env)
	if err != nil {
		return opts, err
	}
	opts.Logger = c.Logger
	return opts, nil
}
