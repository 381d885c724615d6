package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"

	"github.com/capstan-tools/capstan/internal/core/domain"
)

// newActionCmd builds one cargo-verb command. All six share the same flag
// surface; flags override the stored selection for this invocation only.
// Arguments after -- are passed through to the tool unchanged.
func (c *CLI) newActionCmd(action domain.BuildAction, short string) *cobra.Command {
	var (
		pkg         string
		bin         string
		lib         bool
		example     string
		testTarget  string
		benchTarget string
		profile     string
		features    []string
		allFeatures bool
		platform    string
	)

	cmd := &cobra.Command{
		Use:   string(action) + " [-- extra args]",
		Short: short,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c.app.Refresh(ctx)
			model := c.app.Model()

			def := model.DefinitionForAction(action, args)

			if pkg != "" {
				def.Package = pkg
			}
			switch {
			case bin != "":
				def.Target, def.TargetKind = bin, domain.KindBin
			case lib:
				def.Target, def.TargetKind = "", domain.KindLib
			case example != "":
				def.Target, def.TargetKind = example, domain.KindExample
			case testTarget != "":
				def.Target, def.TargetKind = testTarget, domain.KindTest
			case benchTarget != "":
				def.Target, def.TargetKind = benchTarget, domain.KindBench
			}
			if profile != "" {
				p, ok := model.ProfileByName(profile)
				if !ok {
					return zerr.With(domain.ErrProfileNotFound, "profile", profile)
				}
				def.Profile = p
			}
			if len(features) > 0 {
				def.Features = splitFeatureList(features)
				def.AllFeatures = false
			}
			if allFeatures {
				def.AllFeatures = true
				def.Features = nil
			}
			if platform != "" {
				def.PlatformTarget = platform
			}

			return c.app.Invoke(ctx, def)
		},
	}

	cmd.Flags().StringVarP(&pkg, "package", "p", "", "Scope to one package")
	cmd.Flags().StringVar(&bin, "bin", "", "Select a binary target by name")
	cmd.Flags().BoolVar(&lib, "lib", false, "Select the library target")
	cmd.Flags().StringVar(&example, "example", "", "Select an example target by name")
	cmd.Flags().StringVar(&testTarget, "test-target", "", "Select an integration test target by name")
	cmd.Flags().StringVar(&benchTarget, "bench-target", "", "Select a benchmark target by name")
	cmd.Flags().StringVar(&profile, "profile", "", "Override the build profile")
	cmd.Flags().StringSliceVar(&features, "features", nil, "Enable the listed features")
	cmd.Flags().BoolVar(&allFeatures, "all-features", false, "Enable all declared features")
	cmd.Flags().StringVar(&platform, "target", "", "Cross-compile for the given triple")

	return cmd
}

// splitFeatureList also accepts cargo's space and comma separated spellings
// inside a single flag value.
func splitFeatureList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, f := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' }) {
			if f != "" {
				out = append(out, f)
			}
		}
	}
	return out
}
