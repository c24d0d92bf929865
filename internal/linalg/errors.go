package linalg

import "errors"

// Sentinel errors returned by Solve. Every precondition failure has its
// own error so callers can tell misuse modes apart; all of them are
// fatal to the call, with no coercion or retry.
var (
	// ErrDeviceMismatch is returned when A and B reside on different devices.
	ErrDeviceMismatch = errors.New("linalg: operand device mismatch")

	// ErrDtypeMismatch is returned when A and B have different element types.
	ErrDtypeMismatch = errors.New("linalg: operand dtype mismatch")

	// ErrUnsupportedDtype is returned when the shared element type is not
	// Float32 or Float64.
	ErrUnsupportedDtype = errors.New("linalg: unsupported dtype")

	// ErrInvalidShape is returned when A is not a square 2D matrix or B is
	// neither a vector nor a 2D matrix.
	ErrInvalidShape = errors.New("linalg: invalid shape")

	// ErrDimensionMismatch is returned when A's column count differs from
	// B's row count.
	ErrDimensionMismatch = errors.New("linalg: dimension mismatch")

	// ErrUnsupportedBackend is returned when no backend is registered for
	// the operands' device. This is a build/configuration gap, not a data
	// error: the call can never succeed for that device.
	ErrUnsupportedBackend = errors.New("linalg: no backend for device")

	// ErrSolveFailed wraps any failure inside the backend, such as a
	// singular coefficient matrix or a device fault.
	ErrSolveFailed = errors.New("linalg: backend solve failed")
)
