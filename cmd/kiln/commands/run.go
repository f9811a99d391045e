package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [-- args...]",
		Short: "Build and run the project's main entry point",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			noCache, _ := cmd.Flags().GetBool("no-cache")
			strict, _ := cmd.Flags().GetBool("strict-cache")
			return c.app.Run(cmd.Context(), app.RunOptions{
				NoCache:     noCache,
				StrictCache: strict,
				Args:        args,
			})
		},
	}
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the build cache and force compilation")
	cmd.Flags().Bool("strict-cache", false, "Treat a cache entry with missing outputs as a miss")
	return cmd
}
