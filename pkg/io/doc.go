// Package io reads project manifests and writes graph descriptions.
//
// # Manifest Format
//
// A manifest lists the modules of a build in dependency order, the
// compilation units (inputs) and, optionally, entry points and dependency
// options. TOML and JSON are supported; the format is chosen from the file
// extension by [LoadManifest].
//
//	entry_points = ["app:app.main"]
//
//	[options]
//	prune = true
//	sort = true
//	drop_moochers = false
//	base_symbol = "base"
//
//	[[module]]
//	name = "base"
//
//	[[module]]
//	name = "app"
//	deps = ["base"]
//
//	[[input]]
//	name = "base.js"
//	module = "base"
//	provides = ["base"]
//
//	[[input]]
//	name = "main.js"
//	module = "app"
//	provides = ["app.main"]
//	requires = ["base"]
//
// The JSON form uses the same field names with "modules" and "inputs" as the
// array keys.
//
// # Building
//
// [Manifest.Build] validates names and turns the module list into a
// [modgraph.Graph]. Modules listed before their dependencies produce the
// graph's DEPENDENCY_ORDER error; unknown dependency names and dependency
// cycles are INVALID_MANIFEST errors.
//
// # Export
//
// [WriteDescription] writes the per-module debugging view of a graph (name,
// direct and transitive dependencies, owned inputs) as indented JSON. The
// format is meant for humans and tools inspecting a build; it carries no
// compatibility promise.
//
// [modgraph.Graph]: github.com/matzehuels/chunkgraph/pkg/modgraph.Graph
package io
