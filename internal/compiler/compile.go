package compiler

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/rcc/internal/ir"
)

//go:embed schema.cue
var schemaSource string

// Compiler validates scenarios against the embedded schema. A Compiler owns
// a CUE context and is not safe for concurrent use.
type Compiler struct {
	ctx      *cue.Context
	scenario cue.Value
}

// New compiles the embedded schema.
func New() (*Compiler, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", formatCUEError(err))
	}
	return &Compiler{
		ctx:      ctx,
		scenario: schema.LookupPath(cue.ParsePath("#Scenario")),
	}, nil
}

// CompileFile reads and compiles a CUE scenario file.
func (c *Compiler) CompileFile(path string) (*ir.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return c.CompileBytes(path, data)
}

// CompileBytes compiles CUE source. filename is only used in positions.
func (c *Compiler) CompileBytes(filename string, data []byte) (*ir.Scenario, error) {
	v := c.ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return c.decode(v)
}

// Validate checks an already decoded scenario, for instance one read from
// YAML, against the schema and the graph rules.
func (c *Compiler) Validate(s *ir.Scenario) error {
	data, err := ir.Canonicalize(s)
	if err != nil {
		return &CompileError{Field: "scenario", Message: err.Error()}
	}
	v := c.ctx.CompileBytes(data, cue.Filename(s.Name+".json"))
	if err := v.Err(); err != nil {
		return formatCUEError(err)
	}
	if err := c.unify(v); err != nil {
		return err
	}
	if errs := ValidateGraph(s); len(errs) > 0 {
		return errs
	}
	return nil
}

func (c *Compiler) unify(v cue.Value) error {
	u := c.scenario.Unify(v)
	if err := u.Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}
	return nil
}

func (c *Compiler) decode(v cue.Value) (*ir.Scenario, error) {
	u := c.scenario.Unify(v)
	if err := u.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}
	data, err := u.MarshalJSON()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var s ir.Scenario
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, &CompileError{Field: "scenario", Message: err.Error(), Pos: v.Pos()}
	}
	if errs := ValidateGraph(&s); len(errs) > 0 {
		return nil, errs
	}
	return &s, nil
}

// CompileError is a schema violation with its source position when known.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError keeps the first CUE error and its position.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	field := "cue"
	if path := first.Path(); len(path) > 0 {
		field = strings.Join(path, ".")
	}
	ce := &CompileError{Field: field, Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		ce.Pos = positions[0]
	}
	return ce
}
