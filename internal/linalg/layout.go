package linalg

import (
	"fmt"

	"github.com/flint-ml/flint/internal/tensor"
)

// Dense solver kernels follow the classical column-major convention while
// RawTensor buffers are row-major, so operands cross the boundary through
// a transpose-and-copy in each direction. The copies are mandatory, not an
// optimization detail: backends factorize in place, and the caller's
// buffers must never see that mutation.

// toColumnMajor returns a fresh column-major copy of a row-major 2D
// operand, on the operand's own device. A vector is treated as an n×1
// column, whose column-major layout is the vector itself.
func toColumnMajor(t *tensor.RawTensor) (*tensor.RawTensor, error) {
	shape := t.Shape()

	if len(shape) == 1 {
		return t.Copy(), nil
	}

	rows, cols := shape[0], shape[1]
	out, err := tensor.NewRaw(tensor.Shape{cols, rows}, t.DType(), t.Device())
	if err != nil {
		return nil, err
	}

	transpose2D(out, t, rows, cols)
	return out, nil
}

// fromColumnMajor converts a column-major result buffer back into a
// row-major tensor with the caller's original shape.
func fromColumnMajor(cm *tensor.RawTensor, shape tensor.Shape) (*tensor.RawTensor, error) {
	if len(shape) == 1 {
		out := cm.Copy()
		return tensor.FromBytes(out.Data(), shape, cm.DType(), cm.Device())
	}

	rows, cols := shape[0], shape[1]
	out, err := tensor.NewRaw(shape, cm.DType(), cm.Device())
	if err != nil {
		return nil, err
	}

	// cm holds a cols×rows row-major image of the rows×cols result.
	transpose2D(out, cm, cols, rows)
	return out, nil
}

// transpose2D writes the transpose of a rows×cols row-major source into dst.
func transpose2D(dst, src *tensor.RawTensor, rows, cols int) {
	switch src.DType() {
	case tensor.Float32:
		transpose2DTyped(dst.AsFloat32(), src.AsFloat32(), rows, cols)
	case tensor.Float64:
		transpose2DTyped(dst.AsFloat64(), src.AsFloat64(), rows, cols)
	default:
		panic(fmt.Sprintf("layout: unsupported dtype %s", src.DType()))
	}
}

func transpose2DTyped[T ~float32 | ~float64](dst, src []T, rows, cols int) {
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			dst[j*rows+i] = src[i*cols+j]
		}
	}
}
