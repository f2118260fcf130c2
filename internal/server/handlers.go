package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/chunkgraph/pkg/buildinfo"
	"github.com/matzehuels/chunkgraph/pkg/errors"
	cgio "github.com/matzehuels/chunkgraph/pkg/io"
	"github.com/matzehuels/chunkgraph/pkg/modgraph"
	"github.com/matzehuels/chunkgraph/pkg/pipeline"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type assignResponse struct {
	RunID   string                       `json:"run_id"`
	Modules []modgraph.ModuleDescription `json:"modules"`
	Dropped []string                     `json:"dropped"`
	Stats   statsResponse                `json:"stats"`
}

type statsResponse struct {
	Modules  int `json:"modules"`
	Inputs   int `json:"inputs"`
	Kept     int `json:"kept"`
	Dropped  int `json:"dropped"`
	MaxDepth int `json:"max_depth"`
}

type moduleResponse struct {
	Module *string `json:"module"`
}

type depsResponse struct {
	Module                 string   `json:"module"`
	TransitiveDependencies []string `json:"transitive-dependencies"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handleDescribe(w http.ResponseWriter, r *http.Request) {
	m, err := s.readManifest(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	assign, err := boolParam(r, "assign", true)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Manifest:   m,
		SkipAssign: !assign,
		Formats:    []string{pipeline.FormatJSON},
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Graph.Describe(result.Assignment))
}

func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	m, err := s.readManifest(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Manifest: m,
		Formats:  []string{pipeline.FormatJSON},
	})
	if err != nil {
		writeError(w, err)
		return
	}

	dropped := make([]string, len(result.Dropped))
	for i, in := range result.Dropped {
		dropped[i] = in.Name
	}
	writeJSON(w, http.StatusOK, assignResponse{
		RunID:   result.RunID.String(),
		Modules: result.Graph.Describe(result.Assignment),
		Dropped: dropped,
		Stats: statsResponse{
			Modules:  result.Stats.ModuleCount,
			Inputs:   result.Stats.InputCount,
			Kept:     result.Stats.KeptCount,
			Dropped:  result.Stats.DroppedCount,
			MaxDepth: result.Stats.MaxDepth,
		},
	})
}

var contentTypes = map[string]string{
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatText: "text/plain; charset=utf-8",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatDOT
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "format"))
		return
	}
	detailed, err := boolParam(r, "detailed", false)
	if err != nil {
		writeError(w, err)
		return
	}
	m, err := s.readManifest(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Manifest: m,
		Formats:  []string{format},
		Detailed: detailed,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func (s *Server) handleCovering(w http.ResponseWriter, r *http.Request) {
	g, modules, err := s.queryModules(w, r, "modules")
	if err != nil {
		writeError(w, err)
		return
	}
	covering, ok := g.TrySmallestCoveringDependency(modules)
	if !ok {
		writeError(w, errors.New(errors.ErrCodeNoCommonModule, "modules %s have no common dependency", moduleList(modules)))
		return
	}
	writeJSON(w, http.StatusOK, moduleResponse{Module: moduleName(covering)})
}

func (s *Server) handleCommon(w http.ResponseWriter, r *http.Request) {
	g, modules, err := s.queryModules(w, r, "modules")
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, moduleResponse{Module: moduleName(g.DeepestCommonDependencyInclusiveAll(modules))})
}

func (s *Server) handleDeps(w http.ResponseWriter, r *http.Request) {
	g, modules, err := s.queryModules(w, r, "module")
	if err != nil {
		writeError(w, err)
		return
	}
	if len(modules) != 1 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "module takes exactly one name"))
		return
	}
	deps := g.TransitiveDepsDeepestFirst(modules[0])
	names := make([]string, len(deps))
	for i, d := range deps {
		names[i] = d.Name()
	}
	writeJSON(w, http.StatusOK, depsResponse{Module: modules[0].Name(), TransitiveDependencies: names})
}

// readManifest decodes and validates the request body.
func (s *Server) readManifest(w http.ResponseWriter, r *http.Request) (*cgio.Manifest, error) {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	defer body.Close()
	return cgio.ReadManifest(body, cgio.FormatJSON)
}

// queryModules builds the graph from the body and resolves the
// comma-separated module names in the query parameter.
func (s *Server) queryModules(w http.ResponseWriter, r *http.Request, param string) (*modgraph.Graph, []*modgraph.Module, error) {
	names := splitList(r.URL.Query().Get(param))
	if len(names) == 0 {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "query parameter %q is required", param)
	}
	m, err := s.readManifest(w, r)
	if err != nil {
		return nil, nil, err
	}
	g, err := s.runner.BuildGraph(r.Context(), m)
	if err != nil {
		return nil, nil, err
	}
	modules := make([]*modgraph.Module, 0, len(names))
	for _, name := range names {
		mod, ok := g.Module(name)
		if !ok {
			return nil, nil, errors.New(errors.ErrCodeMissingModule, "unknown module %q", name)
		}
		modules = append(modules, mod)
	}
	return g, modules, nil
}

func moduleName(m *modgraph.Module) *string {
	if m == nil {
		return nil
	}
	name := m.Name()
	return &name
}

func moduleList(modules []*modgraph.Module) string {
	names := make([]string, len(modules))
	for i, m := range modules {
		names[i] = m.Name()
	}
	return strings.Join(names, ",")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func boolParam(r *http.Request, name string, def bool) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeInvalidInput, err, "query parameter %q", name)
	}
	return b, nil
}
