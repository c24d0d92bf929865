package cpu

import "github.com/flint-ml/flint/internal/tensor"

// kernel selects the element-wise operation to apply.
type kernel int

const (
	addKernel kernel = iota
	subKernel
	mulKernel
	divKernel
)

// applyKernel runs the selected element-wise operation over typed slices.
func applyKernel[T tensor.DType](dst, a, b []T, k kernel) {
	switch k {
	case addKernel:
		for i := range dst {
			dst[i] = a[i] + b[i]
		}
	case subKernel:
		for i := range dst {
			dst[i] = a[i] - b[i]
		}
	case mulKernel:
		for i := range dst {
			dst[i] = a[i] * b[i]
		}
	case divKernel:
		for i := range dst {
			dst[i] = a[i] / b[i]
		}
	}
}
