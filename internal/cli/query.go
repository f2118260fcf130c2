package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chunkgraph/pkg/errors"
	"github.com/matzehuels/chunkgraph/pkg/modgraph"
	"github.com/matzehuels/chunkgraph/pkg/pipeline"
)

// queryOpts holds the command-line flags for the query command. Exactly one
// query is allowed per invocation.
type queryOpts struct {
	covering []string // smallest covering dependency of these modules
	common   []string // deepest common dependency (inclusive) of these modules
	deps     string   // transitive dependencies of this module
}

// queryCommand creates the query command for dependency questions about the
// module graph.
func (c *CLI) queryCommand() *cobra.Command {
	var opts queryOpts

	cmd := &cobra.Command{
		Use:   "query <project>",
		Short: "Answer dependency queries over the module graph",
		Example: `  chunkgraph query project.toml --covering a,b
  chunkgraph query project.toml --common a,b
  chunkgraph query project.toml --deps app`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := c.newRunner()
			m, err := runner.Load(cmd.Context(), pipeline.Options{ManifestPath: args[0]})
			if err != nil {
				return err
			}
			g, err := runner.BuildGraph(cmd.Context(), m)
			if err != nil {
				return err
			}

			result, err := runQuery(g, opts)
			if err != nil {
				return err
			}
			for _, mod := range result {
				fmt.Fprintln(cmd.OutOrStdout(), mod.Name())
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&opts.covering, "covering", nil, "smallest module covering all given modules")
	cmd.Flags().StringSliceVar(&opts.common, "common", nil, "deepest module all given modules can load from")
	cmd.Flags().StringVar(&opts.deps, "deps", "", "transitive dependencies of a module, deepest first")
	cmd.MarkFlagsMutuallyExclusive("covering", "common", "deps")
	cmd.MarkFlagsOneRequired("covering", "common", "deps")

	return cmd
}

// runQuery evaluates the query selected in opts.
func runQuery(g *modgraph.Graph, opts queryOpts) ([]*modgraph.Module, error) {
	switch {
	case len(opts.covering) > 0:
		modules, err := lookupModules(g, opts.covering)
		if err != nil {
			return nil, err
		}
		covering, ok := g.TrySmallestCoveringDependency(modules)
		if !ok {
			return nil, errors.New(errors.ErrCodeNoCommonModule, "modules %s have no common dependency", strings.Join(opts.covering, ","))
		}
		return []*modgraph.Module{covering}, nil

	case len(opts.common) > 0:
		modules, err := lookupModules(g, opts.common)
		if err != nil {
			return nil, err
		}
		common := g.DeepestCommonDependencyInclusiveAll(modules)
		if common == nil {
			return nil, errors.New(errors.ErrCodeNoCommonModule, "modules %s have no common dependency", strings.Join(opts.common, ","))
		}
		return []*modgraph.Module{common}, nil

	default:
		modules, err := lookupModules(g, []string{opts.deps})
		if err != nil {
			return nil, err
		}
		return g.TransitiveDepsDeepestFirst(modules[0]), nil
	}
}

func lookupModules(g *modgraph.Graph, names []string) ([]*modgraph.Module, error) {
	modules := make([]*modgraph.Module, 0, len(names))
	for _, name := range names {
		m, ok := g.Module(strings.TrimSpace(name))
		if !ok {
			return nil, errors.New(errors.ErrCodeMissingModule, "unknown module %q", name)
		}
		modules = append(modules, m)
	}
	return modules, nil
}
