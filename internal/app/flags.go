package app

import (
	"github.com/spf13/cobra"

	"github.com/teteukt/daynight"
)

// Flags are the options shared by every daynight command. Flags that are
// set on the command line win over the config file and environment.
type Flags struct {
	cmd *cobra.Command

	ConfigPath string
	Backend    string
	LogLevel   string
	Strict     bool
}

func BindFlags(cmd *cobra.Command) *Flags {
	f := &Flags{cmd: cmd}
	cmd.Flags().StringVar(&f.ConfigPath, "config", daynight.DefaultConfigPath(), "path of the dotenv config file")
	cmd.Flags().StringVar(&f.Backend, "backend", daynight.BackendMemory, "store backend: memory or sqlite")
	cmd.Flags().StringVar(&f.LogLevel, "log-level", "WARN", "log level")
	cmd.Flags().BoolVar(&f.Strict, "strict", false, "fail when creating a schedule in an unknown time schedule")
	return f
}

func (f *Flags) LoadConfig() (daynight.Config, error) {
	cfg, err := daynight.LoadConfig(f.ConfigPath)
	if err != nil {
		return daynight.Config{}, err
	}

	flags := f.cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = f.Backend
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = f.LogLevel
	}
	if flags.Changed("strict") {
		cfg.StrictCreate = f.Strict
	}
	return cfg, cfg.Validate()
}
