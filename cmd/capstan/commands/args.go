package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"

	"github.com/capstan-tools/capstan/internal/core/domain"
)

func (c *CLI) newArgsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "args <action> [-- extra args]",
		Short: "Print the assembled cargo arguments for an action without running it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.app.Refresh(cmd.Context())
			model := c.app.Model()

			action := domain.BuildAction(args[0])
			if !domain.KnownAction(action) {
				return zerr.With(zerr.New("unknown action"), "action", args[0])
			}
			assembled := model.BuildArguments(action, args[1:])
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(assembled, " "))
			return nil
		},
	}
}

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Refresh the project model whenever the manifest or cargo config changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Refresh(cmd.Context())
			return c.app.Watch(cmd.Context())
		},
	}
}
