package ir

import (
	"encoding/json"
	"fmt"
)

// EventKind classifies a trace event.
type EventKind string

const (
	EventSnapshot EventKind = "snapshot"
	EventEdit     EventKind = "edit"
	EventAdded    EventKind = "added"
	EventRemoved  EventKind = "removed"
	EventValue    EventKind = "value"
	EventError    EventKind = "error"
)

// TraceEvent is one observation of an observed node. Step is 0 for the
// events produced while the graph is built and 1-based afterwards.
type TraceEvent struct {
	Seq    int64     `json:"seq"`
	Step   int       `json:"step"`
	Node   string    `json:"node"`
	Kind   EventKind `json:"kind"`
	Values Values    `json:"values,omitempty"`
	Edits  []Edit    `json:"edits,omitempty"`
	Error  string    `json:"error,omitempty"`
}

// Canonical returns the canonical JSON encoding of the event.
func (e TraceEvent) Canonical() ([]byte, error) {
	return Canonicalize(e)
}

// Edit is one element of an edit script. OldIndex is -1 for inserts and
// NewIndex is -1 for deletes.
type Edit struct {
	Op       string `json:"op"`
	OldIndex int    `json:"old_index"`
	NewIndex int    `json:"new_index"`
	Old      Value  `json:"old,omitempty"`
	New      Value  `json:"new,omitempty"`
}

func (e *Edit) UnmarshalJSON(data []byte) error {
	var raw struct {
		Op       string          `json:"op"`
		OldIndex int             `json:"old_index"`
		NewIndex int             `json:"new_index"`
		Old      json.RawMessage `json:"old"`
		New      json.RawMessage `json:"new"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Edit{Op: raw.Op, OldIndex: raw.OldIndex, NewIndex: raw.NewIndex}
	var err error
	if len(raw.Old) > 0 {
		if e.Old, err = ParseScalar(raw.Old); err != nil {
			return fmt.Errorf("edit old: %w", err)
		}
	}
	if len(raw.New) > 0 {
		if e.New, err = ParseScalar(raw.New); err != nil {
			return fmt.Errorf("edit new: %w", err)
		}
	}
	return nil
}
