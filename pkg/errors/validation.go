package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeID validates a node identifier from untrusted input (graph
// files uploaded to the server, CLI arguments).
//
// The rules are intentionally conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - Maximum length of 256 characters
//
// Structural validation (uniqueness, edge endpoints) is done by pkg/graph.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidGraph, "node ID cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidGraph, "node ID too long (max 256 characters)")
	}

	for _, r := range id {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidGraph, "node ID contains invalid control characters")
		}
	}

	return nil
}

// ValidateOutputPath validates a user-supplied output filename.
// It ensures the path has no traversal sequences and stays printable.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidInput, "output path cannot contain path traversal sequences (..)")
	}

	return nil
}
