package errors

import (
	"strings"
	"unicode"
)

// MaxPayloadBytes is the largest step payload accepted from any surface.
// Step documents describe small networks; anything near this limit is
// almost certainly not a step payload.
const MaxPayloadBytes = 1 << 20

// ValidatePayload rejects payloads that are empty or oversized before any
// parsing happens. Used by the API and CLI front doors.
func ValidatePayload(data []byte) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return New(ErrCodeMalformedInput, "payload is empty")
	}
	if len(data) > MaxPayloadBytes {
		return New(ErrCodeMalformedInput, "payload too large (max %d bytes)", MaxPayloadBytes)
	}
	return nil
}

// ValidateNodeID validates a node identifier for safety and correctness.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - Maximum length of 64 characters
//
// Node identifiers are opaque strings; semantic meaning (source, sink) is
// assigned by the layout engine, not here.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node identifier cannot be empty")
	}

	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "node identifier too long (max 64 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node identifier contains invalid control characters")
		}
	}

	return nil
}

// ValidateExampleName validates the name of a canned example payload.
// Names are simple lowercase tokens like "step1".
func ValidateExampleName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "example name cannot be empty")
	}
	for _, r := range name {
		if !unicode.IsLower(r) && !unicode.IsDigit(r) {
			return New(ErrCodeInvalidInput, "invalid example name: %q", name)
		}
	}
	return nil
}
