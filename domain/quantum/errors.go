package quantum

import "errors"

var (
	// ErrInvalidGateTarget reports a gate whose qubit list does not fit the register.
	ErrInvalidGateTarget = errors.New("invalid gate target")
	// ErrNumericalInstability reports a state whose norm drifted past tolerance.
	ErrNumericalInstability = errors.New("numerical instability")
)
