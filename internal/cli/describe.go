package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/chunkgraph/pkg/pipeline"
)

// describeOpts holds the command-line flags for the describe command.
type describeOpts struct {
	output   string // output file path; stdout when empty
	noAssign bool   // describe the graph without assigning inputs
	deps     depFlags
}

// describeCommand creates the describe command, which prints the JSON
// description of every module.
func (c *CLI) describeCommand() *cobra.Command {
	var opts describeOpts

	cmd := &cobra.Command{
		Use:   "describe <project>",
		Short: "Describe modules, their dependencies and owned inputs as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts := pipeline.Options{
				ManifestPath: args[0],
				SkipAssign:   opts.noAssign,
				Formats:      []string{pipeline.FormatJSON},
			}
			opts.deps.apply(cmd, &popts)

			result, err := c.newRunner().Execute(cmd.Context(), popts)
			if err != nil {
				return err
			}
			wrote, err := writeOutput(cmd, opts.output, result.Artifacts[pipeline.FormatJSON])
			if err != nil {
				return err
			}
			if wrote {
				printSuccess("Described %d modules", result.Stats.ModuleCount)
				printFile(opts.output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.noAssign, "no-assign", false, "skip input assignment")
	opts.deps.register(cmd)

	return cmd
}
