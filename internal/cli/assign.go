package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chunkgraph/pkg/pipeline"
)

const formatTable = "table"

// assignOpts holds the command-line flags for the assign command.
type assignOpts struct {
	output string // output file path; stdout when empty
	format string // json, text or table
	deps   depFlags
}

// assignCommand creates the assign command, which decides the owning module
// of every kept input.
func (c *CLI) assignCommand() *cobra.Command {
	opts := assignOpts{format: pipeline.FormatText}

	cmd := &cobra.Command{
		Use:   "assign <project>",
		Short: "Assign inputs to modules and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := opts.format
			if !cmd.Flags().Changed("format") && opts.output != "" {
				format = formatFromOutput(opts.output, format)
			}
			if format != formatTable && format != pipeline.FormatJSON && format != pipeline.FormatText {
				return fmt.Errorf("invalid format: %q (must be one of: json, text, table)", format)
			}

			popts := pipeline.Options{ManifestPath: args[0], Formats: []string{pipeline.FormatText}}
			if format == pipeline.FormatJSON {
				popts.Formats = []string{pipeline.FormatJSON}
			}
			opts.deps.apply(cmd, &popts)

			prog := newProgress(loggerFromContext(cmd.Context()))
			result, err := c.newRunner().Execute(cmd.Context(), popts)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Assigned %d inputs", result.Stats.KeptCount),
				"modules", result.Stats.ModuleCount,
				"dropped", result.Stats.DroppedCount)

			data := result.Artifacts[popts.Formats[0]]
			if format == formatTable {
				data = []byte(renderModuleTable(result.Graph, result.Assignment, -1) + "\n")
			}
			wrote, err := writeOutput(cmd, opts.output, data)
			if err != nil {
				return err
			}
			if wrote {
				printSuccess("Assigned inputs to %d modules", result.Stats.ModuleCount)
				printFile(opts.output)
				printStats(result.Stats.ModuleCount, result.Stats.KeptCount, result.Stats.DroppedCount)
				for _, in := range result.Dropped {
					printDetail("dropped %s", in.Name)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: json, text, table")
	opts.deps.register(cmd)

	return cmd
}
