package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/vigil/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clear the response cache and health state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			healthOnly, _ := cmd.Flags().GetBool("health")
			all, _ := cmd.Flags().GetBool("all")

			opts := app.CleanOptions{}
			switch {
			case all:
				opts.Cache = true
				opts.Health = true
			case healthOnly:
				opts.Health = true
			default:
				opts.Cache = true
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().Bool("health", false, "Remove the health snapshot instead of the cache")
	cmd.Flags().BoolP("all", "a", false, "Remove both the cache and the health snapshot")

	return cmd
}
