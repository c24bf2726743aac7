package harness

import "github.com/google/uuid"

// RunIDGenerator names stored runs.
type RunIDGenerator interface {
	Generate() string
}

// UUIDv7Generator produces time-ordered UUIDv7 run IDs, so stored runs sort
// by creation.
type UUIDv7Generator struct{}

func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
