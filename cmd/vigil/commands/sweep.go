package commands

import "github.com/spf13/cobra"

func (c *CLI) newSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Remove expired cache entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := c.app.Sweep(cmd.Context())
			return err
		},
	}
}
