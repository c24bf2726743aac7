package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/roach88/rcc/internal/compiler"
	"github.com/roach88/rcc/internal/harness"
)

// LoadError represents a problem locating scenario files.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// findScenarioFiles returns the scenario files under path in lexical order.
// path may name a single file. filter is a glob matched against the file
// name without its extension.
func findScenarioFiles(path, filter string) ([]string, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("path not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing %s: %v", path, err)}
	}
	if filter != "" {
		if _, err := filepath.Match(filter, ""); err != nil {
			return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("invalid filter pattern: %v", err)}
		}
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !harness.IsScenarioFile(p) {
			return nil
		}
		if filter != "" {
			name := strings.TrimSuffix(d.Name(), filepath.Ext(p))
			if ok, _ := filepath.Match(filter, name); !ok {
				return nil
			}
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("error scanning %s: %v", path, err)}
	}
	sort.Strings(files)
	return files, nil
}

// Problem is one reason a scenario file was rejected.
type Problem struct {
	File    string `json:"file"`
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// problemsFromError breaks a LoadScenario error into problems.
func problemsFromError(file string, err error) []Problem {
	var verrs compiler.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]Problem, len(verrs))
		for i, v := range verrs {
			out[i] = Problem{File: file, Code: v.Code, Field: v.Field, Message: v.Message}
		}
		return out
	}
	var cerr *compiler.CompileError
	if errors.As(err, &cerr) {
		p := Problem{File: file, Code: ErrCodeSchema, Field: cerr.Field, Message: cerr.Message}
		if cerr.Pos.IsValid() {
			p.Line = cerr.Pos.Line()
		}
		return []Problem{p}
	}
	var cycle *compiler.CycleError
	if errors.As(err, &cycle) {
		return []Problem{{File: file, Code: compiler.ErrCycle, Message: cycle.Error()}}
	}
	code := ErrCodeParse
	if errors.Is(err, fs.ErrNotExist) {
		code = ErrCodeNotFound
	}
	return []Problem{{File: file, Code: code, Message: err.Error()}}
}

// newLogger logs to w at Info, or Debug when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
