package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/contentforge/contentforge/pkg/discovery"
	"github.com/contentforge/contentforge/pkg/telemetry"
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload content on file changes",
		Long: `Run a load pass, then watch the content roots and run a fresh pass after
every settled burst of file changes. Each pass starts from empty registries;
the host manifest is re-read as well.`,
		Example: `  # Watch ./content for changes
  forge watch -c ./content -m host.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := telemetry.NewLogger(telemetry.LoggingConfig{
				Level:  opts.LogLevel,
				Format: opts.LogFormat,
			})
			if err != nil {
				return err
			}

			reload := func() {
				report, err := runPass()
				if err != nil {
					logger.WithError(err).Error("load pass failed")
					return
				}
				report.print()
			}
			reload()

			err = discovery.Watch(cmd.Context(), opts.ContentDirs, logger, reload)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	return cmd
}
