package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content hashes. The version suffix leaves room for a
// future change of encoding.
const (
	DomainScenario = "rcc/scenario/v1"
	DomainEvent    = "rcc/event/v1"
	DomainTrace    = "rcc/trace/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ScenarioHash identifies a scenario by content, independent of the file
// format it was written in.
func ScenarioHash(s *Scenario) (string, error) {
	canonical, err := Canonicalize(s)
	if err != nil {
		return "", fmt.Errorf("ScenarioHash: %w", err)
	}
	return hashWithDomain(DomainScenario, canonical), nil
}

// EventHash identifies a single trace event, sequence number included.
func EventHash(e TraceEvent) (string, error) {
	canonical, err := e.Canonical()
	if err != nil {
		return "", fmt.Errorf("EventHash: %w", err)
	}
	return hashWithDomain(DomainEvent, canonical), nil
}

// TraceHash folds the ordered event hashes of a run into one digest. Two runs
// with the same TraceHash emitted the same events in the same order.
func TraceHash(events []TraceEvent) (string, error) {
	hashes := make([]string, len(events))
	for i, e := range events {
		h, err := EventHash(e)
		if err != nil {
			return "", fmt.Errorf("TraceHash: event %d: %w", i, err)
		}
		hashes[i] = h
	}
	canonical, err := MarshalCanonical(hashes)
	if err != nil {
		return "", fmt.Errorf("TraceHash: %w", err)
	}
	return hashWithDomain(DomainTrace, canonical), nil
}
