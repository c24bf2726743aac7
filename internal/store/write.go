package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/rcc/internal/ir"
)

// Run is one journaled execution of a scenario.
type Run struct {
	ID           string
	Seq          int64
	ScenarioName string
	ScenarioHash string
	Scenario     *ir.Scenario
	TraceHash    string
	Pass         bool
	Errors       []string
	IRVersion    string
	ToolVersion  string
}

// WriteRun stores a run and its trace in one transaction. Hashes, versions
// and the run's seq are filled in and the stored run is returned; callers
// set ID, Scenario, Pass and Errors.
//
// Writing an ID that already exists fails with ErrDuplicateRun.
func (s *Store) WriteRun(ctx context.Context, run Run, trace []ir.TraceEvent) (Run, error) {
	if run.ID == "" {
		return run, fmt.Errorf("write run: empty run ID")
	}
	if run.Scenario == nil {
		return run, fmt.Errorf("write run %s: no scenario", run.ID)
	}

	scenarioJSON, err := ir.Canonicalize(run.Scenario)
	if err != nil {
		return run, fmt.Errorf("write run %s: %w", run.ID, err)
	}
	if run.ScenarioHash, err = ir.ScenarioHash(run.Scenario); err != nil {
		return run, fmt.Errorf("write run %s: %w", run.ID, err)
	}
	if run.TraceHash, err = ir.TraceHash(trace); err != nil {
		return run, fmt.Errorf("write run %s: %w", run.ID, err)
	}
	errorsJSON, err := marshalErrors(run.Errors)
	if err != nil {
		return run, fmt.Errorf("write run %s: %w", run.ID, err)
	}
	run.ScenarioName = run.Scenario.Name
	run.IRVersion = ir.IRVersion
	run.ToolVersion = ir.ToolVersion

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return run, fmt.Errorf("write run %s: begin: %w", run.ID, err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&run.Seq); err != nil {
		return run, fmt.Errorf("write run %s: next seq: %w", run.ID, err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, scenario_name, scenario_hash, scenario, trace_hash, pass, errors, ir_version, tool_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.Seq,
		run.ScenarioName,
		run.ScenarioHash,
		string(scenarioJSON),
		run.TraceHash,
		run.Pass,
		errorsJSON,
		run.IRVersion,
		run.ToolVersion,
	)
	if err != nil {
		return run, fmt.Errorf("write run %s: %w", run.ID, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return run, fmt.Errorf("write run %s: %w", run.ID, err)
	} else if n == 0 {
		return run, fmt.Errorf("write run %s: %w", run.ID, ErrDuplicateRun)
	}

	if err := writeEmissions(ctx, tx, run.ID, trace); err != nil {
		return run, fmt.Errorf("write run %s: %w", run.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return run, fmt.Errorf("write run %s: commit: %w", run.ID, err)
	}
	return run, nil
}

func writeEmissions(ctx context.Context, tx *sql.Tx, runID string, trace []ir.TraceEvent) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO emissions (run_id, seq, step, node, kind, payload, event_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare emissions: %w", err)
	}
	defer stmt.Close()

	for _, e := range trace {
		payload, err := e.Canonical()
		if err != nil {
			return fmt.Errorf("event %d: %w", e.Seq, err)
		}
		hash, err := ir.EventHash(e)
		if err != nil {
			return fmt.Errorf("event %d: %w", e.Seq, err)
		}
		if _, err := stmt.ExecContext(ctx, runID, e.Seq, e.Step, e.Node, string(e.Kind), string(payload), hash); err != nil {
			return fmt.Errorf("insert event %d: %w", e.Seq, err)
		}
	}
	return nil
}

// DeleteRun removes a run and its emissions. Deleting an unknown run fails
// with ErrRunNotFound.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete run %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete run %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete run %s: %w", id, ErrRunNotFound)
	}
	return nil
}
