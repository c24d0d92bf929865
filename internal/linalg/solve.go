// Package linalg implements the device-agnostic dense linear-system
// solver: operand validation, row-major/column-major bridging and
// dispatch to the backend registered for the operands' device.
package linalg

import (
	"fmt"

	"github.com/flint-ml/flint/internal/tensor"
)

// Solve returns X solving A·X = B using the default backend registry.
//
// A must be a square 2D tensor; B a vector or 2D matrix with as many
// rows as A, on the same device and of the same floating-point dtype.
// The result has B's shape, dtype and device. A and B are never
// modified. See SolveWith for the full contract.
func Solve(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return SolveWith(Default(), a, b)
}

// SolveWith is Solve against an explicit backend registry.
//
// All operand validation runs before any allocation or backend call, so
// an invalid call has no side effects. The call is synchronous: it does
// not return until the backend has fully produced the solution. There
// are no retries and no coercion; a failed solve returns an error and
// no result.
func SolveWith(reg *Registry, a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	if a.Device() != b.Device() {
		return nil, fmt.Errorf("%w: A on %s, B on %s", ErrDeviceMismatch, a.Device(), b.Device())
	}
	device := a.Device()

	if a.DType() != b.DType() {
		return nil, fmt.Errorf("%w: A is %s, B is %s", ErrDtypeMismatch, a.DType(), b.DType())
	}
	dtype := a.DType()
	if !dtype.IsFloat() {
		return nil, fmt.Errorf("%w: %s (only float32 and float64 are supported)", ErrUnsupportedDtype, dtype)
	}

	aShape := a.Shape()
	bShape := b.Shape()
	if len(aShape) != 2 {
		return nil, fmt.Errorf("%w: A must be 2D, got %dD", ErrInvalidShape, len(aShape))
	}
	if aShape[0] != aShape[1] {
		return nil, fmt.Errorf("%w: A must be square, got %d x %d", ErrInvalidShape, aShape[0], aShape[1])
	}
	if len(bShape) != 1 && len(bShape) != 2 {
		return nil, fmt.Errorf("%w: B must be 1D (vector) or 2D (matrix), got %dD", ErrInvalidShape, len(bShape))
	}
	if aShape[1] != bShape[0] {
		return nil, fmt.Errorf("%w: A has %d columns, B has %d rows", ErrDimensionMismatch, aShape[1], bShape[0])
	}

	gesv, ok := reg.Lookup(device)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, device)
	}

	n := aShape[0]
	m := 1
	if len(bShape) == 2 {
		m = bShape[1]
	}

	// The backend factorizes in place, so it works on private
	// column-major copies on the operands' device.
	aCopy, err := toColumnMajor(a)
	if err != nil {
		return nil, err
	}
	bCopy, err := toColumnMajor(b)
	if err != nil {
		return nil, err
	}

	// Pivot bookkeeping lives on the host regardless of where the
	// operands are: backends select pivots host-side and record them
	// here. This placement is part of the backend contract.
	ipiv, err := tensor.NewRaw(tensor.Shape{n}, tensor.Int32, tensor.CPU)
	if err != nil {
		return nil, err
	}

	if err := gesv(dtype, aCopy, bCopy, ipiv.AsInt32(), n, m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSolveFailed, err)
	}

	// bCopy now holds X column-major; restore the caller's layout.
	return fromColumnMajor(bCopy, bShape.Clone())
}
