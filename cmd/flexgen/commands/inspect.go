package commands

import "github.com/spf13/cobra"

func (c *CLI) newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <project>",
		Short: "Print the effective project model as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Inspect(cmd.Context(), args[0], cmd.OutOrStdout())
		},
	}
}
