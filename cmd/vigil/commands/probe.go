package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/vigil/internal/app"
)

func (c *CLI) newProbeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Run health checks for every source with a check URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			watch, _ := cmd.Flags().GetBool("watch")
			interval, _ := cmd.Flags().GetDuration("interval")
			concurrency, _ := cmd.Flags().GetInt("concurrency")
			timeout, _ := cmd.Flags().GetDuration("timeout")

			return c.app.Probe(cmd.Context(), app.ProbeOptions{
				Watch:       watch,
				Interval:    interval,
				Concurrency: concurrency,
				Timeout:     timeout,
			})
		},
	}
	cmd.Flags().BoolP("watch", "w", false, "Keep probing and reload sources when the config changes")
	cmd.Flags().Duration("interval", 0, "Pause between rounds in watch mode (default from config)")
	cmd.Flags().IntP("concurrency", "j", 0, "Checks run in parallel (default from config)")
	cmd.Flags().Duration("timeout", 0, "Timeout per check (default from config)")
	return cmd
}
