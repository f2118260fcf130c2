// Package modgraph models the dependency graph between the output modules
// (chunks) of a build and decides which module owns each compilation unit.
//
// # Modules and graphs
//
// A [Module] is created with [NewModule] and lists its direct dependencies.
// [New] binds a list of modules, given in dependency order, into an immutable
// [Graph]: every module receives its index in that list and a depth (0 for
// modules without dependencies, otherwise one more than its deepest direct
// dependency). A module can belong to at most one graph.
//
// Construction fails with a DEPENDENCY_ORDER error when a module is listed
// before one of its dependencies, or when it is already bound to another
// graph. A failed construction leaves every module unbound.
//
// # Queries
//
// Once built, a Graph answers reachability and common-ancestor queries:
//
//   - [Graph.DependsOn]: transitive dependency test (never reflexive)
//   - [Graph.SmallestCoveringDependency]: the module all given modules depend
//     on (or are) with the fewest dependents
//   - [Graph.DeepestCommonDependency] and
//     [Graph.DeepestCommonDependencyInclusive]: the deepest shared ancestor
//   - [Graph.TransitiveDepsDeepestFirst]: ancestors ordered by depth
//
// All queries are read-only and safe for concurrent use. Passing a module
// that does not belong to the graph is a programming error and panics.
//
// # Dependency management
//
// [Graph.ManageDependencies] takes the compilation units of a build plus a
// set of entry points and moves every reachable unit into the deepest module
// that all of its users can load it from. Unit ownership lives in the
// returned [Assignment]; inputs and modules are not mutated.
package modgraph
