package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.trai.ch/plink/internal/core/domain"
	"go.trai.ch/plink/internal/ui/style"
)

var (
	okStyle       = lipgloss.NewStyle().Foreground(style.Green)
	modifiedStyle = lipgloss.NewStyle().Foreground(style.Yellow)
	missingStyle  = lipgloss.NewStyle().Foreground(style.Red)
	pairStyle     = lipgloss.NewStyle().Foreground(style.Iris)
)

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Compare recorded builds with the libraries on disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := c.app.Status(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(out, "no builds recorded")
				return nil
			}
			for _, e := range entries {
				pair := domain.Pair{Host: e.Record.Host, Target: e.Record.Target}
				_, _ = fmt.Fprintf(out, "%s %-8s %s %s\n",
					statusIcon(e.Status),
					string(e.Status),
					e.Record.Path,
					pairStyle.Render("("+pair.String()+")"),
				)
			}
			return nil
		},
	}
}

func statusIcon(s domain.RecordStatus) string {
	switch s {
	case domain.StatusOK:
		return okStyle.Render(style.Check)
	case domain.StatusModified:
		return modifiedStyle.Render(style.Tilde)
	default:
		return missingStyle.Render(style.Cross)
	}
}
