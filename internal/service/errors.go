package service

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrUserNotFound       = errors.New("user not found")
	ErrGenerationNotFound = errors.New("generation not found")
	ErrLoraNotFound       = errors.New("lora model not found")
	ErrPackageNotFound    = errors.New("credit package not found")
	ErrInvalidSignature   = errors.New("invalid webhook signature")
)

// InsufficientCreditsError is returned both by the pre-check and by the
// conditional debit, so callers can surface cost vs. balance.
type InsufficientCreditsError struct {
	Cost    float64
	Balance float64
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: need %.2f, have %.2f", e.Cost, e.Balance)
}

// GenerationFailedError wraps a provider failure. The balance is untouched
// when this is returned.
type GenerationFailedError struct {
	Err error
}

func (e *GenerationFailedError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationFailedError) Unwrap() error {
	return e.Err
}
