package domain

// CommandSettings is the per-action slice of user configuration.
type CommandSettings struct {
	// ExtraArgs are appended after all computed flags for this action.
	ExtraArgs []string `mapstructure:"extra_args"`

	// ExtraEnv overlays the base extra environment. Only the run/bench
	// and test slots are consulted for environment.
	ExtraEnv map[string]string `mapstructure:"extra_env"`

	// CommandOverride replaces the cargo verb with another program, e.g.
	// "cargo-watch -x". Only honored for run and test.
	CommandOverride string `mapstructure:"command_override"`
}

// Settings capture the user configuration that shapes command lines. They are
// read once at startup from .capstan.yaml and CAPSTAN_* environment
// variables.
type Settings struct {
	// CargoPath locates the build tool. It may embed wrapper arguments
	// ("sccache cargo"); it is split on whitespace.
	CargoPath string `mapstructure:"cargo_path"`

	// RustupPath locates the toolchain manager used for platform queries.
	RustupPath string `mapstructure:"rustup_path"`

	// ExtraArgs are inserted directly after the action verb.
	ExtraArgs []string `mapstructure:"extra_args"`

	// ExtraEnv is the base environment overlay for every invocation.
	ExtraEnv map[string]string `mapstructure:"extra_env"`

	// Static feature switches, applied by the whole-workspace argument
	// builder.
	Features          []string `mapstructure:"features"`
	AllFeatures       bool     `mapstructure:"all_features"`
	NoDefaultFeatures bool     `mapstructure:"no_default_features"`

	Build CommandSettings `mapstructure:"build"`
	Run   CommandSettings `mapstructure:"run"`
	Test  CommandSettings `mapstructure:"test"`
	Bench CommandSettings `mapstructure:"bench"`
	Clean CommandSettings `mapstructure:"clean"`
	Doc   CommandSettings `mapstructure:"doc"`
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() Settings {
	return Settings{CargoPath: "cargo", RustupPath: "rustup"}
}

// ForAction returns the per-action settings slot.
func (s Settings) ForAction(a BuildAction) CommandSettings {
	switch a {
	case ActionBuild:
		return s.Build
	case ActionRun:
		return s.Run
	case ActionTest:
		return s.Test
	case ActionBench:
		return s.Bench
	case ActionClean:
		return s.Clean
	case ActionDoc:
		return s.Doc
	}
	return CommandSettings{}
}

// OverrideFor returns the command override for the action. Override slots
// exist only for run and test.
func (s Settings) OverrideFor(a BuildAction) string {
	switch a {
	case ActionRun:
		return s.Run.CommandOverride
	case ActionTest:
		return s.Test.CommandOverride
	}
	return ""
}

// EnvFor assembles the environment for the action: the base extra environment
// overlaid with the action slot, later wins on collision. Run and bench share
// the run slot; test has its own.
func (s Settings) EnvFor(a BuildAction) map[string]string {
	out := make(map[string]string, len(s.ExtraEnv))
	for k, v := range s.ExtraEnv {
		out[k] = v
	}
	var overlay map[string]string
	switch a {
	case ActionRun, ActionBench:
		overlay = s.Run.ExtraEnv
	case ActionTest:
		overlay = s.Test.ExtraEnv
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}
