package depsort

import (
	"path"
	"strings"

	"github.com/matzehuels/chunkgraph/pkg/errors"
)

// Input is a compilation unit handled by a Sorter.
type Input struct {
	Name     string   `json:"name" toml:"name"`
	Provides []string `json:"provides,omitempty" toml:"provides"`
	Requires []string `json:"requires,omitempty" toml:"requires"`
	Module   string   `json:"module,omitempty" toml:"module"`
}

// String returns the input name.
func (in *Input) String() string { return in.Name }

// Sorter answers dependency queries over a fixed list of inputs.
//
// The zero value is not usable - use New. A Sorter is immutable after New
// returns and is safe for concurrent use.
type Sorter struct {
	userOrder   []*Input
	importOrder []*Input
	position    map[*Input]int

	providers   map[string]*Input
	nonExports  map[string]*Input
	withoutProv []*Input
}

// New builds a sorter over inputs. The slice order is the user order used
// to break ties and for unsorted results. Nil and repeated inputs are
// skipped.
func New(inputs []*Input) *Sorter {
	s := &Sorter{
		userOrder:  make([]*Input, 0, len(inputs)),
		position:   make(map[*Input]int, len(inputs)),
		providers:  make(map[string]*Input),
		nonExports: make(map[string]*Input),
	}

	for _, in := range inputs {
		if in == nil {
			continue
		}
		if _, dup := s.position[in]; dup {
			continue
		}
		s.position[in] = len(s.userOrder)
		s.userOrder = append(s.userOrder, in)
		if len(in.Provides) == 0 {
			s.withoutProv = append(s.withoutProv, in)
			s.nonExports[in.Name] = in
			if trimmed := trimExt(in.Name); trimmed != in.Name {
				if _, taken := s.nonExports[trimmed]; !taken {
					s.nonExports[trimmed] = in
				}
			}
		}
		for _, sym := range in.Provides {
			s.providers[sym] = in
		}
	}

	s.importOrder = s.orderInputs()
	return s
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}

// orderInputs emits each input after the providers of everything it
// requires.
func (s *Sorter) orderInputs() []*Input {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[*Input]int, len(s.userOrder))
	order := make([]*Input, 0, len(s.userOrder))

	var visit func(in *Input)
	visit = func(in *Input) {
		if state[in] != unvisited {
			return
		}
		state[in] = visiting
		for _, sym := range in.Requires {
			if dep, ok := s.providers[sym]; ok && dep != in {
				visit(dep)
			}
		}
		state[in] = done
		order = append(order, in)
	}

	for _, in := range s.userOrder {
		visit(in)
	}
	return order
}

// Inputs returns all inputs in user order.
func (s *Sorter) Inputs() []*Input {
	return append([]*Input(nil), s.userOrder...)
}

// SortedInputs returns all inputs in import order.
func (s *Sorter) SortedInputs() []*Input {
	return append([]*Input(nil), s.importOrder...)
}

// DependenciesOf returns roots plus every input they transitively require.
// When sorted is true the result follows import order (providers first);
// otherwise it follows user order. Roots that were not passed to New are
// ignored.
func (s *Sorter) DependenciesOf(roots []*Input, sorted bool) []*Input {
	included := make(map[*Input]bool, len(roots))
	worklist := make([]*Input, 0, len(roots))
	for _, r := range roots {
		if _, known := s.position[r]; known {
			worklist = append(worklist, r)
		}
	}

	for len(worklist) > 0 {
		curr := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if included[curr] {
			continue
		}
		included[curr] = true
		for _, sym := range curr.Requires {
			if dep, ok := s.providers[sym]; ok && !included[dep] {
				worklist = append(worklist, dep)
			}
		}
	}

	source := s.userOrder
	if sorted {
		source = s.importOrder
	}
	result := make([]*Input, 0, len(included))
	for _, in := range source {
		if included[in] {
			result = append(result, in)
		}
	}
	return result
}

// InputsWithoutProvides returns the inputs that provide no symbols, in user
// order.
func (s *Sorter) InputsWithoutProvides() []*Input {
	return append([]*Input(nil), s.withoutProv...)
}

// MaybeInputProviding returns the input providing symbol, or nil.
func (s *Sorter) MaybeInputProviding(symbol string) *Input {
	if in, ok := s.providers[symbol]; ok {
		return in
	}
	return nil
}

// InputProviding returns the input providing symbol. Inputs without provides
// match by name. It fails with an ErrCodeMissingProvide error when nothing
// matches.
func (s *Sorter) InputProviding(symbol string) (*Input, error) {
	if in := s.MaybeInputProviding(symbol); in != nil {
		return in, nil
	}
	if in, ok := s.nonExports[symbol]; ok {
		return in, nil
	}
	return nil, errors.New(errors.ErrCodeMissingProvide, "no input provides %q", symbol)
}
