//go:build windows

package webgpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/flint-ml/flint/internal/tensor"
	"github.com/go-webgpu/webgpu/wgpu"
)

// ErrSingular is returned when elimination meets an exactly zero pivot.
var ErrSingular = errors.New("webgpu: matrix is singular")

// Gesv solves A·X = B in place on column-major buffers via Gauss-Jordan
// elimination on the GPU. Pivot selection runs on the host: each step
// reads back the active column, records the row interchange in the
// host-resident ipiv buffer and drives swap/normalize/eliminate
// dispatches with the chosen pivot. On success b holds X column-major.
//
// Only Float32 is supported: WGSL has no f64, and the contract forbids
// silent downcasting.
func (b *Backend) Gesv(dtype tensor.DataType, a, rhs *tensor.RawTensor, ipiv []int32, n, m int) error {
	if dtype != tensor.Float32 {
		return fmt.Errorf("webgpu: only float32 is supported, got %s", dtype)
	}
	if len(ipiv) != n {
		return fmt.Errorf("webgpu: pivot buffer length %d, want %d", len(ipiv), n)
	}
	if a.NumElements() != n*n || rhs.NumElements() != n*m {
		return fmt.Errorf("webgpu: buffer sizes %d/%d do not match n=%d m=%d", a.NumElements(), rhs.NumElements(), n, m)
	}

	bufA := b.createBuffer(a.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufA.Release()
	bufB := b.createBuffer(rhs.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufB.Release()

	//nolint:gosec // G115: sizes are validated non-negative above
	aSize := uint64(a.ByteSize())
	//nolint:gosec // G115: sizes are validated non-negative above
	bSize := uint64(rhs.ByteSize())

	// Row-parallel passes cover n threads; column-parallel passes cover
	// the n+m columns of the augmented system.
	//nolint:gosec // G115: workgroup counts are non-negative
	rowGroups := uint32((n + workgroupSize - 1) / workgroupSize)
	//nolint:gosec // G115: workgroup counts are non-negative
	colGroups := uint32((n + m + workgroupSize - 1) / workgroupSize)

	for k := 0; k < n; k++ {
		// Read back column k and select the pivot on the host.
		//nolint:gosec // G115: offsets derived from validated dimensions
		colBytes, err := b.readBufferRange(bufA, uint64(k*n*4), uint64(n*4))
		if err != nil {
			return fmt.Errorf("webgpu: pivot column readback: %w", err)
		}

		p := k
		pmag := float64(0)
		var pivot float32
		for i := k; i < n; i++ {
			v := math.Float32frombits(binary.LittleEndian.Uint32(colBytes[i*4 : i*4+4]))
			if mag := math.Abs(float64(v)); i == k || mag > pmag {
				p, pmag, pivot = i, mag, v
			}
		}
		if pmag == 0 {
			return fmt.Errorf("%w: zero pivot at column %d", ErrSingular, k)
		}
		ipiv[k] = int32(p)

		if p != k {
			b.dispatchSolveStep("swap_rows", swapRowsShader, bufA, bufB, aSize, bSize,
				solveParams(n, m, k, p), colGroups)
		}

		b.dispatchSolveStep("normalize_row", normalizeRowShader, bufA, bufB, aSize, bSize,
			normalizeParams(n, m, k, pivot), colGroups)

		b.dispatchSolveStep("eliminate_rows", eliminateRowsShader, bufA, bufB, aSize, bSize,
			solveParams(n, m, k, 0), rowGroups)
	}

	solution, err := b.readBuffer(bufB, bSize)
	if err != nil {
		return fmt.Errorf("webgpu: solution readback: %w", err)
	}
	copy(rhs.Data(), solution)

	return nil
}

// dispatchSolveStep binds the A/B buffers plus a per-step uniform block
// and runs one solver pass.
func (b *Backend) dispatchSolveStep(name, code string, bufA, bufB *wgpu.Buffer, aSize, bSize uint64, params []byte, workgroups uint32) {
	bufferParams := b.createUniformBuffer(params)
	defer bufferParams.Release()

	b.dispatch(name, code, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, bufA, 0, aSize),
		wgpu.BufferBindingEntry(1, bufB, 0, bSize),
		wgpu.BufferBindingEntry(2, bufferParams, 0, 16),
	}, workgroups)
}

// normalizeParams packs the uniform block for the normalize pass, whose
// last field carries the pivot value chosen by the host.
func normalizeParams(n, m, k int, pivot float32) []byte {
	params := make([]byte, 16)
	//nolint:gosec // G115: dimensions are validated non-negative upstream
	binary.LittleEndian.PutUint32(params[0:4], uint32(n))
	//nolint:gosec // G115: dimensions are validated non-negative upstream
	binary.LittleEndian.PutUint32(params[4:8], uint32(m))
	//nolint:gosec // G115: dimensions are validated non-negative upstream
	binary.LittleEndian.PutUint32(params[8:12], uint32(k))
	binary.LittleEndian.PutUint32(params[12:16], math.Float32bits(pivot))
	return params
}
