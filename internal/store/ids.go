package store

import "github.com/google/uuid"

// NewID returns a fresh opaque identifier for tasks, projects, and contexts.
// UUIDv4 gives uniqueness across the lifetime of a dataset without any
// coordination or stored counters.
func NewID() string {
	return uuid.New().String()
}
