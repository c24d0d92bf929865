// Copyright 2026 Flint ML Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package linalg provides dense linear-algebra routines for Flint
// tensors.
//
// The central operation is Solve, which computes X with A·X = B for a
// square matrix A using LU factorization with partial pivoting. The
// computation is dispatched to the backend registered for the device
// the operands live on; CPU is always available, and a WebGPU solver is
// registered on platforms that support it.
//
// Example:
//
//	import (
//	    "github.com/flint-ml/flint/backend/cpu"
//	    "github.com/flint-ml/flint/linalg"
//	    "github.com/flint-ml/flint/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    a, _ := tensor.FromSlice([]float64{2, 1, 1, 3}, tensor.Shape{2, 2}, backend)
//	    b, _ := tensor.FromSlice([]float64{3, 5}, tensor.Shape{2}, backend)
//
//	    x, err := linalg.Solve(a.Raw(), b.Raw())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(x.AsFloat64())
//	}
package linalg

import (
	"github.com/flint-ml/flint/internal/linalg"
	"github.com/flint-ml/flint/tensor"
)

// Errors returned by Solve. Each precondition failure has its own
// sentinel so callers can distinguish misuse modes with errors.Is.
var (
	ErrDeviceMismatch     = linalg.ErrDeviceMismatch
	ErrDtypeMismatch      = linalg.ErrDtypeMismatch
	ErrUnsupportedDtype   = linalg.ErrUnsupportedDtype
	ErrInvalidShape       = linalg.ErrInvalidShape
	ErrDimensionMismatch  = linalg.ErrDimensionMismatch
	ErrUnsupportedBackend = linalg.ErrUnsupportedBackend
	ErrSolveFailed        = linalg.ErrSolveFailed
)

// Gesv is the backend entry point for solving A·X = B.
//
// The matrix a and right-hand sides b arrive as column-major working
// copies on the target device; the solver overwrites b with the
// solution and records row swaps in the host-resident ipiv buffer.
type Gesv = linalg.Gesv

// Registry maps devices to their solver entry points. A Registry is
// immutable after construction and safe for concurrent use.
type Registry = linalg.Registry

// NewRegistry builds a registry from an explicit device table. Useful
// for tests and for embedding custom backends.
func NewRegistry(entries map[tensor.Device]Gesv) *Registry {
	return linalg.NewRegistry(entries)
}

// Default returns the registry of all backends compiled into this
// binary. The CPU solver is always present.
func Default() *Registry {
	return linalg.Default()
}

// Solve returns X solving A·X = B.
//
// A must be a square 2D tensor; B a vector or 2D matrix with as many
// rows as A, on the same device and of the same floating-point dtype
// (Float32 or Float64). The result has B's shape, dtype and device.
// A and B are never modified, even on failure.
//
// Singular systems and backend execution failures are reported as
// errors wrapping ErrSolveFailed.
func Solve(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return linalg.Solve(a, b)
}

// SolveWith is Solve against an explicit backend registry.
func SolveWith(reg *Registry, a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return linalg.SolveWith(reg, a, b)
}
