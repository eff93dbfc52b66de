package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/assetorbit/engine/pkg/services/rules"
	"github.com/assetorbit/engine/pkg/services/transform"
	"github.com/assetorbit/engine/pkg/terminal/commands"
	"github.com/assetorbit/engine/pkg/terminal/export"
)

// CLI represents the command-line interface
type CLI struct {
	registry transform.Registry
	engine   *rules.Engine
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Registry transform.Registry
	Engine   *rules.Engine
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		registry: opts.Registry,
		engine:   opts.Engine,
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
		Use:   "engine",
		Short: "Asset import transformation and workload classification",
	}

	cmd.AddCommand(commands.NewSourcesCmd(cli.registry, cli.reporter))
	cmd.AddCommand(commands.NewMappingsCmd(cli.registry, cli.reporter))
	cmd.AddCommand(commands.NewTransformCmd(cli.registry, cli.reporter))
	cmd.AddCommand(commands.NewClassifyCmd(cli.engine, cli.reporter))
	cmd.AddCommand(commands.NewTestRuleCmd(cli.engine, cli.reporter))

	return cmd
}
