package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/rcc/internal/ir"
)

func marshalErrors(errs []string) (string, error) {
	if errs == nil {
		errs = []string{}
	}
	b, err := ir.MarshalCanonical(errs)
	if err != nil {
		return "", fmt.Errorf("marshal errors: %w", err)
	}
	return string(b), nil
}

func unmarshalErrors(data string) ([]string, error) {
	var errs []string
	if err := json.Unmarshal([]byte(data), &errs); err != nil {
		return nil, fmt.Errorf("unmarshal errors: %w", err)
	}
	return errs, nil
}

// unmarshalScenario decodes a stored scenario and checks it against its
// hash.
func unmarshalScenario(data, hash string) (*ir.Scenario, error) {
	var s ir.Scenario
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("unmarshal scenario: %w", err)
	}
	got, err := ir.ScenarioHash(&s)
	if err != nil {
		return nil, err
	}
	if got != hash {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, ErrCorrupt)
	}
	return &s, nil
}

// unmarshalEvent decodes a stored emission and checks it against its hash.
func unmarshalEvent(payload, hash string) (ir.TraceEvent, error) {
	var e ir.TraceEvent
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		return e, fmt.Errorf("unmarshal event: %w", err)
	}
	got, err := ir.EventHash(e)
	if err != nil {
		return e, err
	}
	if got != hash {
		return e, fmt.Errorf("event %d: %w", e.Seq, ErrCorrupt)
	}
	return e, nil
}
