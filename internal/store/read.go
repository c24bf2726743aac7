package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/rcc/internal/ir"
)

const runColumns = `id, seq, scenario_name, scenario_hash, scenario, trace_hash, pass, errors, ir_version, tool_version`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run          Run
		scenarioJSON string
		errorsJSON   string
	)
	if err := row.Scan(
		&run.ID,
		&run.Seq,
		&run.ScenarioName,
		&run.ScenarioHash,
		&scenarioJSON,
		&run.TraceHash,
		&run.Pass,
		&errorsJSON,
		&run.IRVersion,
		&run.ToolVersion,
	); err != nil {
		return run, err
	}

	var err error
	if run.Scenario, err = unmarshalScenario(scenarioJSON, run.ScenarioHash); err != nil {
		return run, fmt.Errorf("run %s: %w", run.ID, err)
	}
	if run.Errors, err = unmarshalErrors(errorsJSON); err != nil {
		return run, fmt.Errorf("run %s: %w", run.ID, err)
	}
	return run, nil
}

// ReadRun returns the run with the given ID, or ErrRunNotFound.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}
	return run, nil
}

// LatestRun returns the most recent run of a scenario, or of any scenario
// when name is empty.
func (s *Store) LatestRun(ctx context.Context, name string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+runColumns+` FROM runs
		WHERE ? = '' OR scenario_name = ?
		ORDER BY seq DESC
		LIMIT 1
	`, name, name)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("latest run of %q: %w", name, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("latest run of %q: %w", name, err)
	}
	return run, nil
}

// ListRuns returns the runs of a scenario, or all runs when name is empty,
// oldest first. Returns an empty slice (not nil) when there are none.
func (s *Store) ListRuns(ctx context.Context, name string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+runColumns+` FROM runs
		WHERE ? = '' OR scenario_name = ?
		ORDER BY seq ASC
	`, name, name)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadEvents returns the trace of a run in emission order. An unknown run
// fails with ErrRunNotFound.
func (s *Store) ReadEvents(ctx context.Context, runID string) ([]ir.TraceEvent, error) {
	return s.readEvents(ctx, runID, "")
}

// ReadNodeEvents returns the events of one node of a run in emission order.
func (s *Store) ReadNodeEvents(ctx context.Context, runID, node string) ([]ir.TraceEvent, error) {
	return s.readEvents(ctx, runID, node)
}

func (s *Store) readEvents(ctx context.Context, runID, node string) ([]ir.TraceEvent, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM runs WHERE id = ?)`, runID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("read events %s: %w", runID, err)
	}
	if !exists {
		return nil, fmt.Errorf("read events %s: %w", runID, ErrRunNotFound)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT payload, event_hash FROM emissions
		WHERE run_id = ? AND (? = '' OR node = ?)
		ORDER BY seq ASC
	`, runID, node, node)
	if err != nil {
		return nil, fmt.Errorf("query emissions: %w", err)
	}
	defer rows.Close()

	events := []ir.TraceEvent{}
	for rows.Next() {
		var payload, hash string
		if err := rows.Scan(&payload, &hash); err != nil {
			return nil, fmt.Errorf("scan emission: %w", err)
		}
		e, err := unmarshalEvent(payload, hash)
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", runID, err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate emissions: %w", err)
	}
	return events, nil
}
