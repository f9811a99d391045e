package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
)

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the build cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Print entry counts and sizes of every project's build cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.CacheStats(cmd.Context())
		},
	})

	gc := &cobra.Command{
		Use:   "gc",
		Short: "Remove cache entries that have not been written recently",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			maxAge, _ := cmd.Flags().GetDuration("max-age")
			return c.app.CacheGC(cmd.Context(), maxAge)
		},
	}
	gc.Flags().Duration("max-age", app.DefaultMaxAge, "Remove entries older than this")
	cmd.AddCommand(gc)

	return cmd
}
