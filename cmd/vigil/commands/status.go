package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/vigil/internal/app"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [sources...]",
		Short: "Show the health report of every source",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			return c.app.Status(cmd.Context(), app.StatusOptions{Sources: args, JSON: asJSON})
		},
	}
	cmd.Flags().Bool("json", false, "Print the report as JSON")
	return cmd
}
