package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"

	"github.com/capstan-tools/capstan/internal/core/domain"
)

// selectable field names accepted by the select command.
const (
	fieldPackage     = "package"
	fieldBuildTarget = "build-target"
	fieldRunTarget   = "run-target"
	fieldBenchTarget = "bench-target"
	fieldPlatform    = "platform"
	fieldProfile     = "profile"
)

func (c *CLI) newSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <field> [value]",
		Short: "Set a selection field; omit the value to clear it",
		Long: "Fields: package, build-target, run-target, bench-target, platform, profile.\n" +
			"Target fields accept a target name or \"lib\" for the selected package's library.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.app.Refresh(cmd.Context())
			model := c.app.Model()

			value := ""
			if len(args) == 2 {
				value = args[1]
			}

			switch args[0] {
			case fieldPackage:
				if value != "" {
					if _, ok := model.Discovery().PackageByName(value); !ok {
						return zerr.With(domain.ErrTargetNotFound, "package", value)
					}
				}
				model.SetSelectedPackage(value)
			case fieldBuildTarget:
				if err := checkTarget(model.Discovery(), value); err != nil {
					return err
				}
				model.SetSelectedBuildTarget(value)
			case fieldRunTarget:
				if err := checkTarget(model.Discovery(), value); err != nil {
					return err
				}
				model.SetSelectedRunTarget(value)
			case fieldBenchTarget:
				if err := checkTarget(model.Discovery(), value); err != nil {
					return err
				}
				model.SetSelectedBenchTarget(value)
			case fieldPlatform:
				model.SetSelectedPlatformTarget(value)
			case fieldProfile:
				profile := domain.ProfileNone
				if value != "" {
					p, ok := model.ProfileByName(value)
					if !ok {
						return zerr.With(domain.ErrProfileNotFound, "profile", value)
					}
					profile = p
				}
				model.SetProfile(profile)
			default:
				return zerr.With(zerr.New("unknown selection field"), "field", args[0])
			}
			return nil
		},
	}
}

func checkTarget(disc domain.Discovery, value string) error {
	if value == "" || value == domain.LibTargetSentinel {
		return nil
	}
	if _, ok := disc.FindTarget(value); !ok {
		return zerr.With(domain.ErrTargetNotFound, "target", value)
	}
	return nil
}
