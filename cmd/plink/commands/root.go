// Package commands implements the CLI commands for plink.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/plink/internal/app"
	"go.trai.ch/plink/internal/build"
	"go.trai.ch/plink/internal/core/domain"
)

// CLI represents the command line interface for plink.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, opts app.RunOptions) error
	Build(ctx context.Context, opts app.RunOptions) error
	Locate(ctx context.Context) (domain.ModuleSet, error)
	Status(ctx context.Context) ([]app.StatusEntry, error)
	Clean(ctx context.Context) error
	SetJSONLogs(enable bool)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:           "plink",
		Short:         "Build plugin libraries against a shared base and load them",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			jsonLogs, _ := cmd.Flags().GetBool("json")
			c.app.SetJSONLogs(jsonLogs)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Run(cmd.Context(), runOptions(cmd))
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.String("toolchain", domain.DefaultToolchainPath(), "Path of the toolchain command table")
	flags.Bool("no-compile", false, "Skip building and load prebuilt libraries")
	flags.Bool("compile", false, "Also build for the foreign target")
	flags.Bool("verbose", false, "Pass --verbose to the compiler and print step timings")
	flags.Bool("json", false, "Write logs as JSON lines")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newLocateCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func runOptions(cmd *cobra.Command) app.RunOptions {
	toolchain, _ := cmd.Flags().GetString("toolchain")
	noCompile, _ := cmd.Flags().GetBool("no-compile")
	compile, _ := cmd.Flags().GetBool("compile")
	verbose, _ := cmd.Flags().GetBool("verbose")

	return app.RunOptions{
		ToolchainPath: toolchain,
		NoCompile:     noCompile,
		Compile:       compile,
		Verbose:       verbose,
	}
}
