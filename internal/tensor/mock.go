package tensor

import "fmt"

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend is a simple backend for testing.
// It implements all operations naively for correctness verification.
type MockBackend struct{}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the device type.
func (m *MockBackend) Device() Device {
	return CPU
}

// Add performs element-wise addition.
func (m *MockBackend) Add(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction.
func (m *MockBackend) Sub(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication.
func (m *MockBackend) Mul(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division.
func (m *MockBackend) Div(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x / y })
}

// MatMul performs naive 2D matrix multiplication.
func (m *MockBackend) MatMul(a, b *RawTensor) *RawTensor {
	aShape, bShape := a.Shape(), b.Shape()
	if len(aShape) != 2 || len(bShape) != 2 || aShape[1] != bShape[0] {
		panic(fmt.Sprintf("mock matmul: incompatible shapes %v @ %v", aShape, bShape))
	}

	rows, inner, cols := aShape[0], aShape[1], bShape[1]
	result, err := NewRaw(Shape{rows, cols}, a.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	aData := m.toFloat64Slice(a)
	bData := m.toFloat64Slice(b)
	out := make([]float64, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			sum := 0.0
			for k := 0; k < inner; k++ {
				sum += aData[i*inner+k] * bData[k*cols+j]
			}
			out[i*cols+j] = sum
		}
	}
	m.fromFloat64Slice(out, result)
	return result
}

// Reshape returns a copy of the tensor with a new shape.
func (m *MockBackend) Reshape(t *RawTensor, newShape Shape) *RawTensor {
	if t.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("mock reshape: incompatible shapes %v -> %v", t.Shape(), newShape))
	}
	result, err := NewRaw(newShape, t.DType(), m.Device())
	if err != nil {
		panic(err)
	}
	copy(result.Data(), t.Data())
	return result
}

// Transpose permutes the tensor's dimensions.
func (m *MockBackend) Transpose(t *RawTensor, axes ...int) *RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("mock transpose: axes length %d != ndim %d", len(axes), ndim))
	}

	newShape := make(Shape, ndim)
	for i, ax := range axes {
		newShape[i] = shape[ax]
	}

	result, err := NewRaw(newShape, t.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	src := m.toFloat64Slice(t)
	dst := make([]float64, len(src))
	srcStrides := shape.ComputeStrides()
	dstStrides := newShape.ComputeStrides()

	idx := make([]int, ndim)
	for i := range src {
		// Decompose destination flat index into coordinates.
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
	m.fromFloat64Slice(dst, result)
	return result
}

// elementWise performs same-shape element-wise operations.
func (m *MockBackend) elementWise(a, b *RawTensor, op func(float64, float64) float64) *RawTensor {
	if !a.Shape().Equal(b.Shape()) {
		panic(fmt.Sprintf("mock elementwise: shape mismatch %v vs %v", a.Shape(), b.Shape()))
	}

	result, err := NewRaw(a.Shape(), a.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	aData := m.toFloat64Slice(a)
	bData := m.toFloat64Slice(b)
	out := make([]float64, a.NumElements())
	for i := range out {
		out[i] = op(aData[i], bData[i])
	}
	m.fromFloat64Slice(out, result)
	return result
}

// toFloat64Slice converts tensor data to float64 for generic processing.
func (m *MockBackend) toFloat64Slice(t *RawTensor) []float64 {
	n := t.NumElements()
	out := make([]float64, n)
	switch t.DType() {
	case Float32:
		for i, v := range t.AsFloat32() {
			out[i] = float64(v)
		}
	case Float64:
		copy(out, t.AsFloat64())
	case Int32:
		for i, v := range t.AsInt32() {
			out[i] = float64(v)
		}
	case Int64:
		for i, v := range t.AsInt64() {
			out[i] = float64(v)
		}
	default:
		panic(fmt.Sprintf("mock: unsupported dtype %s", t.DType()))
	}
	return out
}

// fromFloat64Slice writes float64 values back into a tensor.
func (m *MockBackend) fromFloat64Slice(data []float64, t *RawTensor) {
	switch t.DType() {
	case Float32:
		dst := t.AsFloat32()
		for i, v := range data {
			dst[i] = float32(v)
		}
	case Float64:
		copy(t.AsFloat64(), data)
	case Int32:
		dst := t.AsInt32()
		for i, v := range data {
			dst[i] = int32(v)
		}
	case Int64:
		dst := t.AsInt64()
		for i, v := range data {
			dst[i] = int64(v)
		}
	default:
		panic(fmt.Sprintf("mock: unsupported dtype %s", t.DType()))
	}
}
