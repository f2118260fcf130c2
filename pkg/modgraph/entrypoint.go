package modgraph

import (
	"strings"

	"github.com/matzehuels/chunkgraph/pkg/errors"
)

// EntryPoint names a symbol that must be part of the build. When Module is
// set, the input providing Symbol is pinned to that module.
type EntryPoint struct {
	Module string `json:"module,omitempty"`
	Symbol string `json:"symbol"`
}

// ParseEntryPoint parses "module:symbol" or a bare "symbol".
func ParseEntryPoint(s string) (EntryPoint, error) {
	module, symbol, qualified := strings.Cut(s, ":")
	if !qualified {
		if err := errors.ValidateSymbol(s); err != nil {
			return EntryPoint{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "entry point %q", s)
		}
		return EntryPoint{Symbol: s}, nil
	}
	if err := errors.ValidateModuleName(module); err != nil {
		return EntryPoint{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "entry point %q", s)
	}
	if err := errors.ValidateSymbol(symbol); err != nil {
		return EntryPoint{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "entry point %q", s)
	}
	return EntryPoint{Module: module, Symbol: symbol}, nil
}

// ParseEntryPoints parses each string with ParseEntryPoint.
func ParseEntryPoints(specs []string) ([]EntryPoint, error) {
	eps := make([]EntryPoint, 0, len(specs))
	for _, s := range specs {
		ep, err := ParseEntryPoint(s)
		if err != nil {
			return nil, err
		}
		eps = append(eps, ep)
	}
	return eps, nil
}

// String returns the entry point in "module:symbol" form, or the bare
// symbol when no module is set.
func (e EntryPoint) String() string {
	if e.Module == "" {
		return e.Symbol
	}
	return e.Module + ":" + e.Symbol
}
