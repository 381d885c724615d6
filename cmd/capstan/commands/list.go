package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/capstan-tools/capstan/internal/core/domain"
)

func (c *CLI) newTargetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List discovered targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Refresh(cmd.Context())
			model := c.app.Model()

			defaultName := ""
			if t, ok := model.DefaultTarget(); ok {
				defaultName = t.Name
			}
			for _, t := range model.Targets() {
				kinds := make([]string, len(t.Kinds))
				for i, k := range t.Kinds {
					kinds[i] = string(k)
				}
				marker := " "
				if t.Name == defaultName {
					marker = "*"
				}
				owner := t.PackageName
				if owner == "" {
					owner = "-"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-24s %-18s %s\n", marker, t.Name, owner, strings.Join(kinds, ","))
			}
			return nil
		},
	}
}

func (c *CLI) newPackagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "packages",
		Short: "List workspace member packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Refresh(cmd.Context())
			model := c.app.Model()

			selected := model.Selection().Package
			for _, p := range model.Packages() {
				marker := " "
				if p.Name == selected {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-24s %-10s %s\n", marker, p.Name, p.Version, p.ManifestPath)
			}
			return nil
		},
	}
}

func (c *CLI) newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List known build profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Refresh(cmd.Context())
			model := c.app.Model()

			current := model.Selection().Profile
			for _, p := range model.Profiles() {
				marker := " "
				if p.Equal(current) {
					marker = "*"
				}
				origin := "custom"
				if p.Builtin {
					origin = "builtin"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-16s %s\n", marker, p.Name, origin)
			}
			return nil
		},
	}
}

func (c *CLI) newPlatformsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "platforms",
		Short: "List installed platform target triples",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Refresh(cmd.Context())
			model := c.app.Model()

			selected := model.Selection().PlatformTarget
			for _, triple := range model.Platforms() {
				marker := " "
				if triple == selected {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, triple)
			}
			return nil
		},
	}
}

func (c *CLI) newMetadataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metadata",
		Short: "Re-run discovery and print a project summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Refresh(cmd.Context())
			model := c.app.Model()

			disc := model.Discovery()
			root := disc.WorkspaceRoot
			if root == "" {
				root = model.Root()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "workspace root: %s\n", root)
			fmt.Fprintf(cmd.OutOrStdout(), "packages:       %d\n", len(disc.Packages))
			fmt.Fprintf(cmd.OutOrStdout(), "targets:        %d\n", len(disc.Targets))
			fmt.Fprintf(cmd.OutOrStdout(), "platforms:      %d\n", len(model.Platforms()))
			fmt.Fprintf(cmd.OutOrStdout(), "multi-package:  %t\n", disc.MultiPackage())
			return nil
		},
	}
}

func (c *CLI) newFeaturesCmd() *cobra.Command {
	var toggle string
	cmd := &cobra.Command{
		Use:   "features",
		Short: "List or toggle features of the selected package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Refresh(cmd.Context())
			model := c.app.Model()

			if toggle != "" {
				model.ToggleFeature(toggle)
			}

			sel := model.Selection()
			marker := " "
			if sel.AllFeatures() {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, domain.AllFeaturesSentinel)
			for _, p := range model.Packages() {
				if sel.Package != "" && p.Name != sel.Package {
					continue
				}
				for _, f := range p.Features {
					marker := " "
					if sel.HasFeature(f) {
						marker = "*"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", marker, f, p.Name)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&toggle, "toggle", "", "Toggle the named feature before listing")
	return cmd
}
