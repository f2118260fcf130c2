package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chunkgraph/pkg/errors"
	"github.com/matzehuels/chunkgraph/pkg/modgraph"
)

const testProject = `
entry_points = ["app.main"]

[[module]]
name = "base"

[[module]]
name = "left"
deps = ["base"]

[[module]]
name = "right"
deps = ["base"]

[[module]]
name = "app"
deps = ["left", "right"]

[[input]]
name = "base.js"
module = "base"
provides = ["base"]

[[input]]
name = "main.js"
module = "app"
provides = ["app.main"]
requires = ["base"]

[[input]]
name = "dead.js"
module = "left"
provides = ["dead"]
`

func writeProject(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.toml")
	if err := os.WriteFile(path, []byte(testProject), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// runCLI executes the root command and returns what it wrote to stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, log.InfoLevel).RootCommand()
	want := []string{"describe", "assign", "query", "dot", "browse", "serve", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestDescribeCommand(t *testing.T) {
	out, err := runCLI(t, "describe", writeProject(t))
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	var desc []modgraph.ModuleDescription
	if err := json.Unmarshal([]byte(out), &desc); err != nil {
		t.Fatalf("describe output is not JSON: %v\n%s", err, out)
	}
	if len(desc) != 4 || desc[3].Name != "app" {
		t.Fatalf("descriptions = %+v", desc)
	}
	if got := strings.Join(desc[3].TransitiveDependencies, ","); got != "left,right,base" {
		t.Errorf("app transitive deps = %s", got)
	}
	if got := strings.Join(desc[3].Inputs, ","); got != "main.js" {
		t.Errorf("app inputs = %s", got)
	}
}

func TestDescribeNoAssign(t *testing.T) {
	out, err := runCLI(t, "describe", "--no-assign", writeProject(t))
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if strings.Contains(out, "main.js") {
		t.Errorf("--no-assign output lists inputs:\n%s", out)
	}
}

func TestAssignCommand(t *testing.T) {
	project := writeProject(t)

	out, err := runCLI(t, "assign", project)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	want := "base\n  base.js\nleft <- base\nright <- base\napp <- left, right\n  main.js\n"
	if out != want {
		t.Errorf("assign output:\n%s\nwant:\n%s", out, want)
	}

	// An explicit flag overrides the manifest: without pruning dead.js stays
	// in its own module.
	out, err = runCLI(t, "assign", "--prune=false", project)
	if err != nil {
		t.Fatalf("assign --prune=false: %v", err)
	}
	if !strings.Contains(out, "left <- base\n  dead.js\n") {
		t.Errorf("unpruned output:\n%s", out)
	}

	out, err = runCLI(t, "assign", "--format", "table", project)
	if err != nil {
		t.Fatalf("assign --format table: %v", err)
	}
	for _, want := range []string{"Module", "Dependents", "app", "left, right"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}

	if _, err := runCLI(t, "assign", "--format", "yaml", project); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestAssignEntryOverride(t *testing.T) {
	out, err := runCLI(t, "assign", "--entry", "left:dead", writeProject(t))
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if strings.Contains(out, "main.js") || !strings.Contains(out, "dead.js") {
		t.Errorf("--entry should replace the manifest entry points:\n%s", out)
	}
}

func TestQueryCommand(t *testing.T) {
	project := writeProject(t)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--covering", "left,right"}, "base\n"},
		{[]string{"--covering", "app"}, "app\n"},
		{[]string{"--common", "left,right"}, "base\n"},
		{[]string{"--common", "left,app"}, "left\n"},
		{[]string{"--deps", "app"}, "left\nright\nbase\n"},
		{[]string{"--deps", "base"}, ""},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := runCLI(t, append([]string{"query", project}, tt.args...)...)
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}

	_, err := runCLI(t, "query", project, "--deps", "ghost")
	if !errors.Is(err, errors.ErrCodeMissingModule) {
		t.Errorf("unknown module error = %v", err)
	}
	if _, err := runCLI(t, "query", project); err == nil {
		t.Error("query without a flag should fail")
	}
	if _, err := runCLI(t, "query", project, "--deps", "app", "--common", "a,b"); err == nil {
		t.Error("two queries at once should fail")
	}
}

func TestQueryNoCommonModule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "split.json")
	if err := os.WriteFile(path, []byte(`{"modules": [{"name": "x"}, {"name": "y"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, flag := range []string{"--covering", "--common"} {
		_, err := runCLI(t, "query", path, flag, "x,y")
		if !errors.Is(err, errors.ErrCodeNoCommonModule) {
			t.Errorf("%s error = %v, want NO_COMMON_MODULE", flag, err)
		}
	}
}

func TestDotCommand(t *testing.T) {
	out, err := runCLI(t, "dot", "--detailed", writeProject(t))
	if err != nil {
		t.Fatalf("dot: %v", err)
	}
	for _, want := range []string{"digraph G {", `"app" -> "left";`, "depth: 2", "inputs: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("dot output missing %q:\n%s", want, out)
		}
	}
}

func TestCommandErrors(t *testing.T) {
	if _, err := runCLI(t, "describe", filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing project error = %v", err)
	}
	if _, err := runCLI(t, "describe"); err == nil {
		t.Error("describe without a project should fail")
	}
}

func TestFormatFromOutput(t *testing.T) {
	tests := []struct {
		path, def, want string
	}{
		{"graph.svg", "dot", "svg"},
		{"graph.PNG", "dot", "png"},
		{"graph.gv", "dot", "dot"},
		{"out.json", "text", "json"},
		{"", "text", "text"},
	}
	for _, tt := range tests {
		if got := formatFromOutput(tt.path, tt.def); got != tt.want {
			t.Errorf("formatFromOutput(%q, %q) = %q, want %q", tt.path, tt.def, got, tt.want)
		}
	}
}

func TestWriteOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")
	out, err := runCLI(t, "describe", "-o", path, writeProject(t))
	if err != nil {
		t.Fatalf("describe -o: %v", err)
	}
	if out != "" {
		t.Errorf("stdout should stay empty when writing a file, got %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"transitive-dependencies"`)) {
		t.Errorf("file content:\n%s", data)
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := runCLI(t, "completion", shell)
		if err != nil {
			t.Fatalf("completion %s: %v", shell, err)
		}
		if !strings.Contains(out, "chunkgraph") {
			t.Errorf("completion %s does not mention chunkgraph", shell)
		}
	}
	if _, err := runCLI(t, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh: expected error")
	}
}
