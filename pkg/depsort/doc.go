// Package depsort orders compilation units so that every unit's providers
// precede it.
//
// # Inputs
//
// An [Input] is a single compilation unit: it has a unique name, a list of
// symbols it provides and a list of symbols it requires. The optional Module
// field names the output module the input is initially assigned to; the
// module graph uses it to seed entry points and never reads it otherwise.
//
// # Ordering
//
// [New] computes an import order once: inputs are visited in the order they
// were supplied ("user order") and each input's providers are emitted before
// the input itself, depth-first, in the order its requires are listed.
// Requires that no input provides are ignored for ordering purposes; cycles
// are broken at the edge that closes them. The result is deterministic for a
// given input list.
//
// [Sorter.DependenciesOf] returns the transitive closure of a set of roots,
// either in import order or, when sorting is disabled, in user order.
//
// # Symbol lookup
//
// [Sorter.InputProviding] finds the input providing a symbol. Inputs that
// provide nothing can still be addressed by their name, with or without a
// file extension, so file-based entry points work for units that export no
// symbols.
package depsort
