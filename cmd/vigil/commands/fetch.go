package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/vigil/internal/app"
)

func (c *CLI) newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <source> <url>",
		Short: "GET a URL through the response cache on behalf of a source",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ttl, _ := cmd.Flags().GetDuration("ttl")
			return c.app.Fetch(cmd.Context(), app.FetchOptions{
				Source: args[0],
				URL:    args[1],
				TTL:    ttl,
			})
		},
	}
	cmd.Flags().Duration("ttl", 0, "How long to cache the response (default from config)")
	return cmd
}
