package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RunID identifies one bootstrap run
type RunID string

// NewRunID creates a new unique run identifier using UUID v7 for time-ordered
// generation, falling back to v4 if v7 is unavailable
func NewRunID() RunID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return RunID(id.String())
}

// String returns the string representation
func (id RunID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id RunID) IsEmpty() bool {
	return id == ""
}

// ParseRunID parses a string into RunID
func ParseRunID(s string) (RunID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("run ID cannot be empty")
	}
	return RunID(s), nil
}

// Timestamp is a UTC instant
type Timestamp = time.Time

// Now returns the current UTC timestamp
func Now() Timestamp {
	return time.Now().UTC()
}
