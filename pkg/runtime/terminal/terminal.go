package terminal

import (
	"io"
	"os"

	"github.com/askcarbuddy/carscout/pkg/runtime/terminal/commands"
	"github.com/askcarbuddy/carscout/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	analyzer commands.Analyzer
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Analyzer commands.Analyzer
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		analyzer: opts.Analyzer,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "carscout",
		Short: "Used-car listing analysis tool",
	}

	cmd.AddCommand(commands.NewAnalyzeCmd(cli.analyzer, cli.reporter))
	cmd.AddCommand(commands.NewParseCmd())

	return cmd
}
