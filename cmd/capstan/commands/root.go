// Package commands implements the CLI commands for capstan.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/capstan-tools/capstan/internal/app"
	"github.com/capstan-tools/capstan/internal/core/domain"
)

// CLI represents the command line interface for capstan.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "capstan",
		Short:         "Navigate a cargo workspace and run cargo with the right flags",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newTargetsCmd())
	rootCmd.AddCommand(c.newPackagesCmd())
	rootCmd.AddCommand(c.newFeaturesCmd())
	rootCmd.AddCommand(c.newProfilesCmd())
	rootCmd.AddCommand(c.newPlatformsCmd())
	rootCmd.AddCommand(c.newSelectCmd())
	rootCmd.AddCommand(c.newMetadataCmd())
	rootCmd.AddCommand(c.newArgsCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	rootCmd.AddCommand(c.newActionCmd(domain.ActionBuild, "Build the selected target"))
	rootCmd.AddCommand(c.newActionCmd(domain.ActionRun, "Run the selected binary"))
	rootCmd.AddCommand(c.newActionCmd(domain.ActionTest, "Run tests"))
	rootCmd.AddCommand(c.newActionCmd(domain.ActionBench, "Run benchmarks"))
	rootCmd.AddCommand(c.newActionCmd(domain.ActionClean, "Remove build artifacts"))
	rootCmd.AddCommand(c.newActionCmd(domain.ActionDoc, "Build documentation"))

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOut redirects command output. Used for testing.
func (c *CLI) SetOut(w io.Writer) {
	c.rootCmd.SetOut(w)
}
