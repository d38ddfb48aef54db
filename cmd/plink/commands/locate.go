package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newLocateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locate",
		Short: "Print the prebuilt libraries --no-compile would load",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			modules, err := c.app.Locate(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "runtime %s\n", modules.Runtime)
			_, _ = fmt.Fprintf(out, "base    %s\n", modules.Base)
			_, _ = fmt.Fprintf(out, "plugin  %s\n", modules.Plugin)
			return nil
		},
	}
}
