package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forcetower/pkg/config"
)

// Execute runs the forcetower CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// Before the command tree runs, a .env file in the working directory is
// loaded into the environment and FORCETOWER_LOG_LEVEL picks the initial
// log level. --verbose (-v) raises it to debug.
//
// Example:
//
//	func main() {
//	    if err := cli.Execute(context.Background()); err != nil {
//	        os.Exit(1)
//	    }
//	}
func Execute(ctx context.Context) error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	level, err := parseLogLevel(env.LogLevel)
	if err != nil {
		return err
	}

	c := New(os.Stderr, level)
	c.Env = env
	root := c.RootCommand()

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			c.SetLogLevel(LogDebug)
		}
	}

	return root.ExecuteContext(ctx)
}
