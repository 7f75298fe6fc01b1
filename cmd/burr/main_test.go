package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCommand executes the CLI with the given arguments and
// returns its combined output.
func runCommand(t *testing.T, args ...string) (string, error) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSamplesCommand(t *testing.T) {
	out, err := runCommand(t, "samples")
	if err != nil {
		t.Fatalf("samples failed: %v", err)
	}
	for _, name := range []string{"oak", "walnut", "gordian"} {
		if !strings.Contains(out, name) {
			t.Errorf("samples output missing %q:\n%s", name, out)
		}
	}
	if lines := strings.Count(out, "\n"); lines != 3 {
		t.Errorf("samples printed %d lines, expected 3", lines)
	}
}

func TestSolveCommand(t *testing.T) {
	out, err := runCommand(t, "solve", "--sample", "oak")
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if !strings.Contains(out, "A1a B2a C3a D4a E5a F6a") {
		t.Errorf("solve output missing assembly:\n%s", out)
	}
	if !strings.Contains(out, "level 1") {
		t.Errorf("solve output missing level:\n%s", out)
	}
}

func TestSolveDiagram(t *testing.T) {
	out, err := runCommand(t, "solve", "--sample", "oak", "--diagram")
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if !strings.Contains(out, "y=2\n") {
		t.Errorf("solve output missing diagram:\n%s", out)
	}
}

func TestSolveSelection(t *testing.T) {
	out, err := runCommand(t, "solve", "--sample", "oak",
		"--selection", "F6a E5a D4a C3a B2a A1a")
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if !strings.Contains(out, "A1a B2a C3a D4a E5a F6a") {
		t.Errorf("selection not normalized:\n%s", out)
	}
}

func TestDisassembleCommand(t *testing.T) {
	out, err := runCommand(t, "disassemble", "--sample", "oak")
	if err != nil {
		t.Fatalf("disassemble failed: %v", err)
	}
	if !strings.Contains(out, " 1. piece 6 Z+2\n") {
		t.Errorf("disassemble output missing first move:\n%s", out)
	}
	if !strings.Contains(out, "(22 states searched)") {
		t.Errorf("disassemble output missing state count:\n%s", out)
	}
}

func TestDisassembleInterlocked(t *testing.T) {
	_, err := runCommand(t, "disassemble", "--sample", "gordian")
	if err == nil {
		t.Fatalf("disassemble of an interlocked puzzle succeeded")
	}
}

func TestPuzzleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oak.yaml")
	content := `name: my oak
shapes:
  - xx.xxx/xxx.xx/x..x.x/x.xx.x
  - x....x/xxxxxx/x....x/xx..xx
  - xxxxxx/x....x/xx.xxx/xxx..x
  - xxxxxx/x...xx/xx..xx/x....x
  - xx...x/xxxxxx/x....x/xxxxxx
  - xxxxxx/xxxxxx/xxxxxx/xxxxxx
`
	if e := os.WriteFile(path, []byte(content), 0644); e != nil {
		t.Fatalf("Couldn't write puzzle file: %v", e)
	}
	out, err := runCommand(t, "solve", "--puzzle", path)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if !strings.Contains(out, "A1a B2a C3a D4a E5a F6a") {
		t.Errorf("solve output missing assembly:\n%s", out)
	}
}

func TestPuzzleFlagErrors(t *testing.T) {
	cases := [][]string{
		{"solve"},
		{"solve", "--sample", "mahogany"},
		{"solve", "--sample", "oak", "--puzzle", "x.yaml"},
		{"solve", "--puzzle", "no-such-file.yaml"},
	}
	for i, args := range cases {
		if _, err := runCommand(t, args...); err == nil {
			t.Errorf("case %d: command %v succeeded", i, args)
		}
	}
}
