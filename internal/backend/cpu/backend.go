// Package cpu implements the host CPU backend with feature-detected fast paths.
package cpu

import (
	"fmt"

	"github.com/flint-ml/flint/internal/tensor"
)

// Verify that CPUBackend implements tensor.Backend.
var _ tensor.Backend = (*CPUBackend)(nil)

// CPUBackend implements tensor operations on the host CPU.
type CPUBackend struct {
	device   tensor.Device
	features Features
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device:   tensor.CPU,
		features: DetectFeatures(),
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.elementWise("add", a, b, addKernel)
}

// Sub performs element-wise subtraction.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.elementWise("sub", a, b, subKernel)
}

// Mul performs element-wise multiplication.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.elementWise("mul", a, b, mulKernel)
}

// Div performs element-wise division.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.elementWise("div", a, b, divKernel)
}

// Reshape returns a tensor with the same data but a different shape.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if err := newShape.Validate(); err != nil {
		panic(fmt.Sprintf("reshape: invalid shape: %v", err))
	}

	if t.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("reshape: incompatible shapes: %v -> %v (different number of elements)",
			t.Shape(), newShape))
	}

	result, err := tensor.NewRaw(newShape, t.DType(), t.Device())
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}

	copy(result.Data(), t.Data())
	return result
}

// Transpose transposes the tensor by permuting its dimensions.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	// Default: reverse all dimensions
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}

	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: axes length %d != ndim %d", len(axes), ndim))
	}

	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: invalid axis %d for %dD tensor", ax, ndim))
		}
		if seen[ax] {
			panic(fmt.Sprintf("transpose: duplicate axis %d", ax))
		}
		seen[ax] = true
	}

	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		newShape[i] = shape[ax]
	}

	result, err := tensor.NewRaw(newShape, t.DType(), t.Device())
	if err != nil {
		panic(fmt.Sprintf("transpose: %v", err))
	}

	transposeData(result, t, axes)

	return result
}

// elementWise validates shapes, allocates the result and dispatches by dtype.
func (cpu *CPUBackend) elementWise(name string, a, b *tensor.RawTensor, k kernel) *tensor.RawTensor {
	if !a.Shape().Equal(b.Shape()) {
		panic(fmt.Sprintf("%s: shape mismatch %v vs %v", name, a.Shape(), b.Shape()))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", name, a.DType(), b.DType()))
	}

	result, err := tensor.NewRaw(a.Shape(), a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}

	switch a.DType() {
	case tensor.Float32:
		applyKernel(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), k)
	case tensor.Float64:
		applyKernel(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), k)
	case tensor.Int32:
		applyKernel(result.AsInt32(), a.AsInt32(), b.AsInt32(), k)
	case tensor.Int64:
		applyKernel(result.AsInt64(), a.AsInt64(), b.AsInt64(), k)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, a.DType()))
	}

	return result
}

// transposeData copies t into result with permuted axes.
func transposeData(result, t *tensor.RawTensor, axes []int) {
	switch t.DType() {
	case tensor.Float32:
		transposeTyped(result.AsFloat32(), t.AsFloat32(), result.Shape(), t.Shape(), axes)
	case tensor.Float64:
		transposeTyped(result.AsFloat64(), t.AsFloat64(), result.Shape(), t.Shape(), axes)
	case tensor.Int32:
		transposeTyped(result.AsInt32(), t.AsInt32(), result.Shape(), t.Shape(), axes)
	case tensor.Int64:
		transposeTyped(result.AsInt64(), t.AsInt64(), result.Shape(), t.Shape(), axes)
	default:
		panic(fmt.Sprintf("transpose: unsupported dtype %s", t.DType()))
	}
}

func transposeTyped[T tensor.DType](dst, src []T, dstShape, srcShape tensor.Shape, axes []int) {
	ndim := len(srcShape)
	srcStrides := srcShape.ComputeStrides()
	dstStrides := dstShape.ComputeStrides()

	idx := make([]int, ndim)
	for i := range dst {
		rem := i
		for d := 0; d < ndim; d++ {
			idx[d] = rem / dstStrides[d]
			rem %= dstStrides[d]
		}
		srcOffset := 0
		for d := 0; d < ndim; d++ {
			srcOffset += idx[d] * srcStrides[axes[d]]
		}
		dst[i] = src[srcOffset]
	}
}
