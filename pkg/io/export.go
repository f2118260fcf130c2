package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/chunkgraph/pkg/modgraph"
)

// WriteDescription encodes the description of g as indented JSON. When a is
// non-nil each module lists the inputs it owns.
func WriteDescription(w io.Writer, g *modgraph.Graph, a *modgraph.Assignment) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g.Describe(a)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportDescription writes the description of g to a file at path.
// This is a convenience wrapper around [WriteDescription] for file-based output.
func ExportDescription(path string, g *modgraph.Graph, a *modgraph.Assignment) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDescription(f, g, a)
}
