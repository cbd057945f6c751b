package validation

import (
	"errors"
	"fmt"
)

// ParamsValidator validates and clamps generation parameters before a
// request is sent. Out-of-range numeric values are clamped rather than
// rejected; this is the input surface's contract with the orchestrator.
type ParamsValidator struct{}

// NewParamsValidator creates a new ParamsValidator
func NewParamsValidator() *ParamsValidator {
	return &ParamsValidator{}
}

// ClampTemperature clamps temperature to [0, 2]
func (v *ParamsValidator) ClampTemperature(temperature float64) float64 {
	if temperature < 0 {
		return 0
	}
	if temperature > 2 {
		return 2
	}
	return temperature
}

// ClampTopP clamps topP to [0, 1]
func (v *ParamsValidator) ClampTopP(topP float64) float64 {
	if topP < 0 {
		return 0
	}
	if topP > 1 {
		return 1
	}
	return topP
}

// ValidatePrompt validates that a prompt is non-empty
func (v *ParamsValidator) ValidatePrompt(prompt string) error {
	if prompt == "" {
		return errors.New("prompt cannot be empty")
	}
	return nil
}

// ValidateText validates voice synthesis input: non-empty and within
// the server's 1000-character limit
func (v *ParamsValidator) ValidateText(text string) error {
	if text == "" {
		return errors.New("text cannot be empty")
	}
	if len(text) > 1000 {
		return fmt.Errorf("text too long (max 1000 characters, got %d)", len(text))
	}
	return nil
}
