package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate content definitions",
		Long: `Run a full load pass and exit non-zero when any validation error was
counted. Registrations are discarded; only the diagnostics matter.`,
		Example: `  # Validate ./content against host.yaml
  forge validate -c ./content -m host.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := runPass()
			if err != nil {
				return err
			}
			report.print()
			if report.errors > 0 {
				return fmt.Errorf("%d validation errors", report.errors)
			}
			return nil
		},
	}

	return cmd
}
