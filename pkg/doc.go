// Package pkg provides the core libraries for chunkgraph.
//
// # Overview
//
// Chunkgraph models the modules (output chunks) of a JavaScript build as a
// dependency graph. It answers dependency questions over that graph and
// decides which module owns each compilation unit, so that every unit is
// loaded before anything that needs it and no unit ships twice.
//
//  1. [modgraph] - Module graph, dependency queries and input assignment
//  2. [depsort] - Provides/requires ordering of compilation units
//  3. [io] - Project manifests (TOML, JSON) and graph descriptions
//  4. [pipeline] - Orchestration (load → graph → assign → render)
//  5. [render/nodelink] - Graphviz drawings of the module graph
//
// # Architecture
//
// The typical data flow through chunkgraph:
//
//	Project manifest (TOML/JSON)
//	         ↓
//	    [io] package (decode + validate)
//	         ↓
//	    [modgraph] package (bind modules, compute depths and summaries)
//	         ↓
//	    [modgraph] + [depsort] (prune, sort and assign inputs)
//	         ↓
//	    JSON / text / DOT / SVG / PNG output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/chunkgraph/pkg/depsort"
//	    "github.com/matzehuels/chunkgraph/pkg/modgraph"
//	)
//
//	base := modgraph.NewModule("base")
//	app := modgraph.NewModule("app", base)
//	g, err := modgraph.New([]*modgraph.Module{base, app})
//	if err != nil {
//	    return err
//	}
//
//	a, err := g.ManageDependencies(
//	    []modgraph.EntryPoint{{Symbol: "app.main"}},
//	    []*depsort.Input{
//	        {Name: "base.js", Module: "base", Provides: []string{"base"}},
//	        {Name: "main.js", Module: "app", Provides: []string{"app.main"}, Requires: []string{"base"}},
//	    },
//	)
//
// # Main Packages
//
// [modgraph] - The module graph. Modules must be supplied in dependency
// order; each gets an index and a depth, and a bit set of itself plus its
// transitive dependencies makes dependsOn a constant-time lookup. Queries
// include the smallest covering dependency, the deepest common dependency
// and transitive dependencies deepest first. ManageDependencies assigns
// inputs to modules.
//
// [depsort] - The default sorter: orders inputs so providers come before
// requirers and computes dependency closures.
//
// [errors] - Structured error codes shared by the library, CLI and server.
//
// [io] - Project manifest import and module description export.
//
// [pipeline] - The run used by the CLI and HTTP server, with logging and
// observability hooks around each stage.
//
// [observability] - Hook interfaces for pipeline and server events.
//
// [render/nodelink] - Node-link diagrams through embedded Graphviz.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/modgraph/...           # Specific package
//
// [modgraph]: https://pkg.go.dev/github.com/matzehuels/chunkgraph/pkg/modgraph
// [depsort]: https://pkg.go.dev/github.com/matzehuels/chunkgraph/pkg/depsort
// [errors]: https://pkg.go.dev/github.com/matzehuels/chunkgraph/pkg/errors
// [io]: https://pkg.go.dev/github.com/matzehuels/chunkgraph/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/chunkgraph/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/matzehuels/chunkgraph/pkg/observability
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/chunkgraph/pkg/render/nodelink
package pkg
