package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkt-tools/pulse-report/pkg/runtime/terminal/commands"
	"github.com/mkt-tools/pulse-report/pkg/runtime/terminal/export"
)

// CLI represents the command-line interface
type CLI struct {
	reporter commands.ResultHandler
	output   io.Writer
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	// JSON switches the generate output from the console summary to the
	// full run result as JSON.
	JSON bool
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		output: opts.Output,
	}
	if opts.JSON {
		cli.reporter = export.NewReporter(opts.Output)
	} else {
		cli.reporter = NewReporter(opts.Output)
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pulse-report",
		Short: "Marketing performance report generator",
	}

	cmd.AddCommand(commands.NewGenerateCmd(cli.reporter))
	cmd.AddCommand(commands.NewProfilesCmd(cli.output))

	return cmd
}
