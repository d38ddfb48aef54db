package commands

import "github.com/spf13/cobra"

func (c *CLI) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Build or locate the libraries, load them and invoke the plugin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Run(cmd.Context(), runOptions(cmd))
		},
	}
}

func (c *CLI) newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Compile and link the libraries without loading them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Build(cmd.Context(), runOptions(cmd))
		},
	}
}
