package tensor

import (
	"math"
	"testing"
)

// Test helpers

func assertEqualFloat32(t *testing.T, expected, actual float32, msg string) {
	t.Helper()
	if math.Abs(float64(expected-actual)) > 1e-6 {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

func assertEqualShape(t *testing.T, expected, actual Shape, msg string) {
	t.Helper()
	if !expected.Equal(actual) {
		t.Errorf("%s: expected shape %v, got %v", msg, expected, actual)
	}
}

// DType Tests

func TestDataTypeSize(t *testing.T) {
	tests := []struct {
		dtype DataType
		size  int
	}{
		{Float32, 4},
		{Float64, 8},
		{Int32, 4},
		{Int64, 8},
	}

	for _, tt := range tests {
		if got := tt.dtype.Size(); got != tt.size {
			t.Errorf("%s.Size() = %d, want %d", tt.dtype, got, tt.size)
		}
	}
}

func TestDataTypeString(t *testing.T) {
	tests := []struct {
		dtype DataType
		str   string
	}{
		{Float32, "float32"},
		{Float64, "float64"},
		{Int32, "int32"},
		{Int64, "int64"},
	}

	for _, tt := range tests {
		if got := tt.dtype.String(); got != tt.str {
			t.Errorf("%s.String() = %q, want %q", tt.dtype, got, tt.str)
		}
	}
}

func TestDataTypeIsFloat(t *testing.T) {
	if !Float32.IsFloat() || !Float64.IsFloat() {
		t.Error("float types must report IsFloat")
	}
	if Int32.IsFloat() || Int64.IsFloat() {
		t.Error("integer types must not report IsFloat")
	}
}

// Shape Tests

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape    Shape
		expected int
	}{
		{Shape{}, 1},         // Scalar
		{Shape{5}, 5},        // 1D
		{Shape{3, 4}, 12},    // 2D
		{Shape{2, 3, 4}, 24}, // 3D
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.expected {
			t.Errorf("Shape%v.NumElements() = %d, want %d", tt.shape, got, tt.expected)
		}
	}
}

func TestShapeValidate(t *testing.T) {
	for _, s := range []Shape{{1}, {3, 4}, {2, 3, 4}} {
		if err := s.Validate(); err != nil {
			t.Errorf("Shape%v.Validate() failed: %v", s, err)
		}
	}

	for _, s := range []Shape{{0}, {3, 0}, {-1}, {3, -4}} {
		if err := s.Validate(); err == nil {
			t.Errorf("Shape%v.Validate() should fail", s)
		}
	}
}

func TestShapeComputeStrides(t *testing.T) {
	strides := Shape{2, 3, 4}.ComputeStrides()
	want := []int{12, 4, 1}
	for i := range want {
		if strides[i] != want[i] {
			t.Errorf("strides = %v, want %v", strides, want)
			break
		}
	}
}

// RawTensor Tests

func TestNewRaw(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3}, Float32, CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}

	assertEqualShape(t, Shape{2, 3}, raw.Shape(), "NewRaw shape")
	if raw.DType() != Float32 {
		t.Errorf("DType = %v, want Float32", raw.DType())
	}
	if raw.Device() != CPU {
		t.Errorf("Device = %v, want CPU", raw.Device())
	}
	if raw.ByteSize() != 24 {
		t.Errorf("ByteSize = %d, want 24", raw.ByteSize())
	}

	// Zero-initialized
	for i, v := range raw.AsFloat32() {
		if v != 0 {
			t.Errorf("element %d = %v, want 0", i, v)
		}
	}
}

func TestNewRawInvalidShape(t *testing.T) {
	if _, err := NewRaw(Shape{2, -1}, Float32, CPU); err == nil {
		t.Error("NewRaw with negative dimension should fail")
	}
}

func TestFromBytes(t *testing.T) {
	raw, err := NewRaw(Shape{2, 2}, Float64, CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	data := raw.AsFloat64()
	data[0], data[3] = 1.5, -2.5

	wrapped, err := FromBytes(raw.Data(), Shape{2, 2}, Float64, CPU)
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	got := wrapped.AsFloat64()
	if got[0] != 1.5 || got[3] != -2.5 {
		t.Errorf("FromBytes values = %v, want [1.5 0 0 -2.5]", got)
	}

	if _, err := FromBytes(raw.Data(), Shape{3, 3}, Float64, CPU); err == nil {
		t.Error("FromBytes with mismatched size should fail")
	}
}

func TestRawTensorCopy(t *testing.T) {
	raw, err := NewRaw(Shape{4}, Float32, CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	raw.AsFloat32()[0] = 42

	dup := raw.Copy()
	dup.AsFloat32()[0] = 7

	if raw.AsFloat32()[0] != 42 {
		t.Error("Copy must not alias the original buffer")
	}
	if dup.Device() != raw.Device() {
		t.Error("Copy must preserve the device")
	}
}

// Tensor Tests

func TestFromSlice(t *testing.T) {
	backend := NewMockBackend()

	x, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	assertEqualShape(t, Shape{2, 3}, x.Shape(), "FromSlice shape")
	assertEqualFloat32(t, 6, x.At(1, 2), "FromSlice At(1,2)")

	if _, err := FromSlice([]float32{1, 2}, Shape{2, 3}, backend); err == nil {
		t.Error("FromSlice with wrong element count should fail")
	}
}

func TestTensorSet(t *testing.T) {
	backend := NewMockBackend()
	x := Zeros[float64](Shape{2, 2}, backend)
	x.Set(3.5, 1, 0)
	if x.At(1, 0) != 3.5 {
		t.Errorf("At(1,0) = %v, want 3.5", x.At(1, 0))
	}
}

func TestTensorAdd(t *testing.T) {
	backend := NewMockBackend()
	a := Full[float32](Shape{2, 2}, 2, backend)
	b := Full[float32](Shape{2, 2}, 3, backend)

	c := a.Add(b)
	for i, v := range c.Data() {
		if v != 5 {
			t.Errorf("Add element %d = %v, want 5", i, v)
		}
	}
}

func TestTensorMatMulIdentity(t *testing.T) {
	backend := NewMockBackend()
	eye := Eye[float64](3, backend)
	x, err := FromSlice([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, Shape{3, 3}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	y := eye.MatMul(x)
	for i, v := range y.Data() {
		if v != x.Data()[i] {
			t.Errorf("I@X element %d = %v, want %v", i, v, x.Data()[i])
		}
	}
}

func TestTensorTranspose2D(t *testing.T) {
	backend := NewMockBackend()
	x, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	y := x.T()
	assertEqualShape(t, Shape{3, 2}, y.Shape(), "transpose shape")
	assertEqualFloat32(t, 2, y.At(1, 0), "transpose [1,0]")
	assertEqualFloat32(t, 6, y.At(2, 1), "transpose [2,1]")
}

func TestTensorReshape(t *testing.T) {
	backend := NewMockBackend()
	x, err := FromSlice([]int32{0, 1, 2, 3, 4, 5}, Shape{6}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	y := x.Reshape(2, 3)
	assertEqualShape(t, Shape{2, 3}, y.Shape(), "reshape shape")
	if y.At(1, 1) != 4 {
		t.Errorf("reshape At(1,1) = %v, want 4", y.At(1, 1))
	}
}

func TestEye(t *testing.T) {
	backend := NewMockBackend()
	eye := Eye[float32](3, backend)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := float32(0)
			if i == j {
				want = 1
			}
			assertEqualFloat32(t, want, eye.At(i, j), "Eye element")
		}
	}
}
