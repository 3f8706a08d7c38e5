package commands

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
)

// options is the CLI configuration, populated from the environment and
// overridable by flags.
type options struct {
	// ContentDirs are the content roots to discover definitions under.
	ContentDirs []string `env:"FORGE_CONTENT_DIR" envSeparator:":" envDefault:"."`

	// Manifest is the host manifest path.
	Manifest string `env:"FORGE_MANIFEST" envDefault:"host.yaml"`

	// LogLevel sets the minimum log level.
	LogLevel string `env:"FORGE_LOG_LEVEL" envDefault:"info"`

	// LogFormat selects console or json log output.
	LogFormat string `env:"FORGE_LOG_FORMAT" envDefault:"console"`
}

var opts options

// Execute runs the root command.
func Execute(ctx context.Context, version, commit, buildDate string) error {
	if err := env.Parse(&opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "forge",
		Short: "ContentForge - declarative game-content definition pipeline",
		Long: `ContentForge ingests declarative content definitions (resources, storages,
objects, recipes, materials, skills, evolving-object transitions), validates
them, and registers them into the host simulation's type-index registries.

Definitions are authored as Lua scripts returning a table or as YAML files.
The host manifest supplies the pre-allocated index maps and replays the
host's module arrival order.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	}

	rootCmd.PersistentFlags().StringSliceVarP(&opts.ContentDirs, "content", "c", opts.ContentDirs, "content root directories")
	rootCmd.PersistentFlags().StringVarP(&opts.Manifest, "manifest", "m", opts.Manifest, "host manifest path")
	rootCmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", opts.LogFormat, "log format (console, json)")

	rootCmd.AddCommand(newLoadCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newWatchCommand())

	return rootCmd
}
