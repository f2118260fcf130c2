package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/chunkgraph/pkg/pipeline"
)

// depFlags holds the dependency management flags shared by every command
// that assigns inputs. Flags override the manifest's [options] section only
// when set explicitly.
type depFlags struct {
	entryPoints  []string
	prune        bool
	sort         bool
	dropMoochers bool
	baseSymbol   string
}

func (f *depFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringArrayVarP(&f.entryPoints, "entry", "e", nil, "entry point as symbol or module:symbol (repeatable, replaces the manifest's)")
	flags.BoolVar(&f.prune, "prune", true, "drop inputs no entry point reaches")
	flags.BoolVar(&f.sort, "sort", true, "order inputs by dependencies instead of input order")
	flags.BoolVar(&f.dropMoochers, "drop-moochers", false, "do not treat inputs without provides as entry points")
	flags.StringVar(&f.baseSymbol, "base-symbol", "base", "symbol of the unit that is always kept")
}

// apply copies explicitly set flags onto opts.
func (f *depFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	flags := cmd.Flags()
	if flags.Changed("entry") {
		opts.EntryPoints = f.entryPoints
	}
	if flags.Changed("prune") {
		opts.Prune = &f.prune
	}
	if flags.Changed("sort") {
		opts.Sort = &f.sort
	}
	if flags.Changed("drop-moochers") {
		opts.DropMoochers = &f.dropMoochers
	}
	if flags.Changed("base-symbol") {
		opts.BaseSymbol = &f.baseSymbol
	}
}
