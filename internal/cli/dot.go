package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chunkgraph/pkg/pipeline"
)

// dotOpts holds the command-line flags for the dot command.
type dotOpts struct {
	output   string // output file path; stdout when empty
	svg      bool   // render SVG instead of DOT
	png      bool   // render PNG instead of DOT
	detailed bool   // include index, depth and dependents in labels
	noAssign bool   // skip input counts in labels
	deps     depFlags
}

// dotCommand creates the dot command, which draws the module graph.
func (c *CLI) dotCommand() *cobra.Command {
	var opts dotOpts

	cmd := &cobra.Command{
		Use:   "dot <project>",
		Short: "Draw the module graph as Graphviz DOT, SVG or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := pipeline.FormatDOT
			switch {
			case opts.svg:
				format = pipeline.FormatSVG
			case opts.png:
				format = pipeline.FormatPNG
			case opts.output != "":
				format = formatFromOutput(opts.output, pipeline.FormatDOT)
			}

			popts := pipeline.Options{
				ManifestPath: args[0],
				SkipAssign:   opts.noAssign,
				Formats:      []string{format},
				Detailed:     opts.detailed,
			}
			opts.deps.apply(cmd, &popts)

			var spinner *Spinner
			if opts.output != "" && format != pipeline.FormatDOT {
				spinner = newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Rendering %s...", format))
				spinner.Start()
			}
			result, err := c.newRunner().Execute(cmd.Context(), popts)
			if err != nil {
				if spinner != nil {
					spinner.Stop()
				}
				return err
			}

			wrote, err := writeOutput(cmd, opts.output, result.Artifacts[format])
			if spinner != nil {
				if err != nil {
					spinner.Stop()
				} else {
					spinner.StopWithSuccess(fmt.Sprintf("Rendered %d modules", result.Stats.ModuleCount))
				}
			}
			if err != nil {
				return err
			}
			if wrote {
				if spinner == nil {
					printSuccess("Rendered %d modules", result.Stats.ModuleCount)
				}
				printFile(opts.output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.svg, "svg", false, "render SVG with Graphviz")
	cmd.Flags().BoolVar(&opts.png, "png", false, "render PNG with Graphviz")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show index, depth and dependent count")
	cmd.Flags().BoolVar(&opts.noAssign, "no-assign", false, "skip input assignment")
	cmd.MarkFlagsMutuallyExclusive("svg", "png")
	opts.deps.register(cmd)

	return cmd
}
