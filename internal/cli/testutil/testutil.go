// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/esqllint/internal/cli/output"
)

// Sources of the test project, relative to its root.
const (
	// CleanFile has no findings.
	CleanFile = "flows/Clean.esql"
	// DirtyFile has one unused procedure and one misnamed variable.
	DirtyFile = "flows/Dirty.esql"
	// BrokenFile does not parse.
	BrokenFile = "broken/Broken.esql"
)

var projectFiles = map[string]string{
	CleanFile: `CREATE COMPUTE MODULE Clean
	CREATE FUNCTION Main() RETURNS BOOLEAN
	BEGIN
		DECLARE total INTEGER 0;
		CALL addOne(total);
		RETURN TRUE;
	END;

	CREATE PROCEDURE addOne(INOUT n INTEGER)
	BEGIN
		SET n = n + 1;
	END;
END MODULE;
`,
	DirtyFile: `CREATE COMPUTE MODULE Dirty
	CREATE FUNCTION Main() RETURNS BOOLEAN
	BEGIN
		DECLARE BadName INTEGER 0;
		RETURN TRUE;
	END;

	CREATE PROCEDURE unusedProc()
	BEGIN
	END;
END MODULE;
`,
	BrokenFile: `CREATE COMPUTE MODULE Broken
	DECLARE = 1;
END MODULE;
`,
}

// SetupTestProject creates a temporary project with ESQL sources and returns its root.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range projectFiles {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			t.Fatalf("failed to create directory for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to create %s: %v", rel, err)
		}
	}
	return root
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and empty headers.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	if fenceCount := strings.Count(md, "```"); fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}

	for i, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
