package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrInvalidSpec is the root of every request rejection this layer raises
	// itself. Engine-side failures are never wrapped with it.
	ErrInvalidSpec = errors.New("invalid psychometric specification")

	ErrUnknownSigmoid  = fmt.Errorf("%w: unknown sigmoid", ErrInvalidSpec)
	ErrUnknownCore     = fmt.Errorf("%w: unknown core", ErrInvalidSpec)
	ErrBadCuts         = fmt.Errorf("%w: bad cuts", ErrInvalidSpec)
	ErrBadPrior        = fmt.Errorf("%w: bad prior", ErrInvalidSpec)
	ErrPriorCount      = fmt.Errorf("%w: prior count mismatch", ErrInvalidSpec)
	ErrStartCount      = fmt.Errorf("%w: start value count mismatch", ErrInvalidSpec)
	ErrBadObservations = fmt.Errorf("%w: bad observation data", ErrInvalidSpec)

	ErrRunNotFound = errors.New("run not found")
)

// Error constructors with context
func NewUnknownSigmoidError(descriptor string) error {
	return fmt.Errorf("%w: the sigmoid '%s' you requested is not available", ErrUnknownSigmoid, descriptor)
}

func NewUnknownCoreError(descriptor string) error {
	return fmt.Errorf("%w: the core '%s' you requested is not available", ErrUnknownCore, descriptor)
}

func NewPriorCountError(got, nparams int) error {
	return fmt.Errorf("%w: you specified %d priors, but there are %d parameters", ErrPriorCount, got, nparams)
}

func NewStartCountError(got, nparams int) error {
	return fmt.Errorf("%w: you specified %d starting values, but there are %d parameters", ErrStartCount, got, nparams)
}

func NewBadPriorError(expr, reason string) error {
	return fmt.Errorf("%w: cannot parse prior '%s': %s", ErrBadPrior, expr, reason)
}

// IsInvalidSpec reports whether err is a request rejection raised by this
// layer, as opposed to an engine or infrastructure failure.
func IsInvalidSpec(err error) bool {
	return errors.Is(err, ErrInvalidSpec)
}
