package pipeline

import (
	"fmt"
	"os"

	"github.com/matzehuels/flowstep/pkg/errors"
	"github.com/matzehuels/flowstep/pkg/step"
)

// Interpret loads the configured payload source and validates it into a Step.
func Interpret(opts Options) (step.Step, error) {
	raw, err := resolvePayload(opts)
	if err != nil {
		return step.Step{}, err
	}
	return interpretPayload(raw)
}

// resolvePayload fetches the raw payload bytes from the configured source.
func resolvePayload(opts Options) ([]byte, error) {
	switch {
	case opts.Payload != "":
		return []byte(opts.Payload), nil
	case opts.Path != "":
		data, err := os.ReadFile(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("read step file: %w", err)
		}
		return data, nil
	case opts.Example != "":
		return step.Example(opts.Example)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput,
		"a payload, file path, or example name is required")
}

// interpretPayload validates raw bytes into a Step.
// Size and emptiness are checked before JSON parsing so an oversized
// payload never reaches the decoder.
func interpretPayload(raw []byte) (step.Step, error) {
	if err := errors.ValidatePayload(raw); err != nil {
		return step.Step{}, err
	}
	return step.Parse(raw)
}
