package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sebdah/goldie/v2"

	"github.com/roach88/rcc/internal/ir"
)

// TraceSnapshot is the golden form of a run: the scenario name and its
// trace, serialized as canonical JSON.
type TraceSnapshot struct {
	Scenario string          `json:"scenario"`
	Trace    []ir.TraceEvent `json:"trace"`
}

// GoldenBytes returns the canonical JSON compared against golden files.
func GoldenBytes(name string, trace []ir.TraceEvent) ([]byte, error) {
	if trace == nil {
		trace = []ir.TraceEvent{}
	}
	return ir.Canonicalize(TraceSnapshot{Scenario: name, Trace: trace})
}

// RunWithGolden runs a scenario and compares its trace against
// testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, s *ir.Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(s)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, s.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result's trace against a golden file.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := GoldenBytes(name, result.Trace)
	if err != nil {
		return err
	}
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}

// GoldenPath returns the golden file for a scenario file: a golden/
// directory next to it holding {basename}.golden.
func GoldenPath(scenarioFile string) string {
	dir, file := filepath.Split(scenarioFile)
	name := strings.TrimSuffix(file, filepath.Ext(file))
	return filepath.Join(dir, "golden", name+".golden")
}

// WriteGolden stores the trace of result as the golden file at path.
func WriteGolden(path, name string, result *Result) error {
	data, err := GoldenBytes(name, result.Trace)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create golden dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write golden file: %w", err)
	}
	return nil
}

// CompareGolden returns a diff between the golden file at path and the
// trace of result, or "" when they match. A missing golden file is an
// error.
func CompareGolden(path, name string, result *Result) (string, error) {
	want, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read golden file: %w", err)
	}
	got, err := GoldenBytes(name, result.Trace)
	if err != nil {
		return "", err
	}
	return cmp.Diff(string(want), string(got)), nil
}
