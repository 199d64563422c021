package commands

import "github.com/spf13/cobra"

func (c *CLI) newMetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Print cache and source metrics in the Prometheus text format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Metrics(cmd.Context())
		},
	}
}
