package store

import (
	"context"
	"fmt"

	"github.com/roach88/rcc/internal/ir"
)

// Runner executes a scenario and returns its trace.
type Runner func(s *ir.Scenario) ([]ir.TraceEvent, error)

// ReplayReport compares a journaled trace with a fresh one.
type ReplayReport struct {
	RunID        string
	Match        bool
	StoredHash   string
	ReplayedHash string

	// Divergence is the index of the first differing event, or -1 when the
	// traces match.
	Divergence int
	Stored     *ir.TraceEvent
	Replayed   *ir.TraceEvent
}

// CompareTraces reports whether two traces are identical and, if not, where
// they first differ. A missing event at the divergence point is nil.
func CompareTraces(stored, replayed []ir.TraceEvent) (ReplayReport, error) {
	report := ReplayReport{Divergence: -1}

	var err error
	if report.StoredHash, err = ir.TraceHash(stored); err != nil {
		return report, fmt.Errorf("stored trace: %w", err)
	}
	if report.ReplayedHash, err = ir.TraceHash(replayed); err != nil {
		return report, fmt.Errorf("replayed trace: %w", err)
	}
	if report.StoredHash == report.ReplayedHash {
		report.Match = true
		return report, nil
	}

	for i := 0; i < max(len(stored), len(replayed)); i++ {
		var a, b *ir.TraceEvent
		if i < len(stored) {
			a = &stored[i]
		}
		if i < len(replayed) {
			b = &replayed[i]
		}
		if a != nil && b != nil {
			ha, err := ir.EventHash(*a)
			if err != nil {
				return report, err
			}
			hb, err := ir.EventHash(*b)
			if err != nil {
				return report, err
			}
			if ha == hb {
				continue
			}
		}
		report.Divergence, report.Stored, report.Replayed = i, a, b
		break
	}
	return report, nil
}

// Replay reruns a journaled run's scenario with run and compares the new
// trace with the stored one.
func (s *Store) Replay(ctx context.Context, runID string, run Runner) (ReplayReport, error) {
	stored, err := s.ReadRun(ctx, runID)
	if err != nil {
		return ReplayReport{}, fmt.Errorf("replay: %w", err)
	}
	events, err := s.ReadEvents(ctx, runID)
	if err != nil {
		return ReplayReport{}, fmt.Errorf("replay: %w", err)
	}
	if hash, err := ir.TraceHash(events); err != nil {
		return ReplayReport{}, fmt.Errorf("replay: %w", err)
	} else if hash != stored.TraceHash {
		return ReplayReport{}, fmt.Errorf("replay %s: trace: %w", runID, ErrCorrupt)
	}

	replayed, err := run(stored.Scenario)
	if err != nil {
		return ReplayReport{}, fmt.Errorf("replay %s: %w", runID, err)
	}
	report, err := CompareTraces(events, replayed)
	if err != nil {
		return report, fmt.Errorf("replay %s: %w", runID, err)
	}
	report.RunID = runID
	return report, nil
}
