package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
)

func (c *CLI) newDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Print the resolved dependencies of every project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			check, _ := cmd.Flags().GetBool("check")
			return c.app.Deps(cmd.Context(), app.DepsOptions{Check: check})
		},
	}
	cmd.Flags().Bool("check", false, "Verify that every direct dependency can be resolved")
	return cmd
}
