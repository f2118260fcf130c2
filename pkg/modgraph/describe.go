package modgraph

// ModuleDescription is the debugging view of one module.
type ModuleDescription struct {
	Name                   string   `json:"name"`
	Dependencies           []string `json:"dependencies"`
	TransitiveDependencies []string `json:"transitive-dependencies"`
	Inputs                 []string `json:"inputs"`
}

// Describe returns one description per module in dependency order.
// Transitive dependencies are listed deepest first. Inputs are taken from a,
// and are empty when a is nil or belongs to another graph.
func (g *Graph) Describe(a *Assignment) []ModuleDescription {
	out := make([]ModuleDescription, len(g.modules))
	for i, m := range g.modules {
		d := ModuleDescription{
			Name:                   m.name,
			Dependencies:           moduleNames(m.deps),
			TransitiveDependencies: moduleNames(g.TransitiveDepsDeepestFirst(m)),
			Inputs:                 []string{},
		}
		if a != nil && a.graph == g {
			for _, in := range a.byModule[i] {
				d.Inputs = append(d.Inputs, in.Name)
			}
		}
		out[i] = d
	}
	return out
}

func moduleNames(modules []*Module) []string {
	names := make([]string, len(modules))
	for i, m := range modules {
		names[i] = m.name
	}
	return names
}
