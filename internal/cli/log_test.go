package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// runLogged executes the root command and returns what the CLI logged.
func runLogged(t *testing.T, args ...string) string {
	t.Helper()
	var logs bytes.Buffer
	root := New(&logs, log.InfoLevel).RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return logs.String()
}

func TestAssignLogsProgress(t *testing.T) {
	logs := runLogged(t, "assign", writeProject(t))

	for _, want := range []string{"Assigned 2 inputs (", "modules", "dropped"} {
		if !strings.Contains(logs, want) {
			t.Errorf("log output missing %q:\n%s", want, logs)
		}
	}
}

func TestVerboseEnablesDebug(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantDebug bool
	}{
		{"default", []string{"assign"}, false},
		{"long flag", []string{"assign", "--verbose"}, true},
		{"short flag before command", []string{"-v", "assign"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := runLogged(t, append(tt.args, writeProject(t))...)
			if got := strings.Contains(logs, "managing dependencies"); got != tt.wantDebug {
				t.Errorf("debug output = %v, want %v:\n%s", got, tt.wantDebug, logs)
			}
			if !strings.Contains(logs, "Assigned 2 inputs") {
				t.Errorf("info output missing at any level:\n%s", logs)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("Rendered 3 modules", "format", "svg")

	out := buf.String()
	if !strings.Contains(out, "Rendered 3 modules (") || !strings.Contains(out, "svg") {
		t.Errorf("progress line = %q", out)
	}

	buf.Reset()
	quiet := newProgress(newLogger(&buf, log.WarnLevel))
	quiet.done("Rendered 3 modules")
	if buf.Len() != 0 {
		t.Errorf("progress logged below level: %q", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("bare context should fall back to log.Default()")
	}

	l := newLogger(io.Discard, log.InfoLevel)
	if loggerFromContext(withLogger(context.Background(), l)) != l {
		t.Error("attached logger not returned")
	}
}
