package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile the project, or every workspace member, through the build cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noCache, _ := cmd.Flags().GetBool("no-cache")
			strict, _ := cmd.Flags().GetBool("strict-cache")
			watch, _ := cmd.Flags().GetBool("watch")
			metricsFile, _ := cmd.Flags().GetString("metrics-file")

			return c.app.Build(cmd.Context(), app.BuildOptions{
				NoCache:     noCache,
				StrictCache: strict,
				Watch:       watch,
				MetricsFile: metricsFile,
			})
		},
	}
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the build cache and force compilation")
	cmd.Flags().Bool("strict-cache", false, "Treat a cache entry with missing outputs as a miss")
	cmd.Flags().BoolP("watch", "w", false, "Rebuild whenever sources change")
	cmd.Flags().String("metrics-file", "", "Write cache metrics in Prometheus text format to this file")
	return cmd
}
