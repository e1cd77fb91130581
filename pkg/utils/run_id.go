package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateRunID creates a short, human-readable scenario run ID.
// Format: {operation}-{label}-{8charHexUUID}
//
// Example:
//   - Input: operation="run", label="Extreme Boost"
//   - Output: "run-extreme-boost-a3f8e2b1"
//
// The label is lower-cased and spaces become hyphens; an empty label is dropped.
func GenerateRunID(operation, label string) string {
	label = slug(label)
	if label == "" {
		return operation + "-" + generateShortUUID()
	}
	return operation + "-" + label + "-" + generateShortUUID()
}

func slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

// generateShortUUID creates an 8-character hex string from a UUID
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
