//go:build windows

package webgpu

import (
	"math"
	"testing"

	"github.com/flint-ml/flint/internal/tensor"
)

// newTestBackend skips the test when no GPU adapter is available.
func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	backend, err := New()
	if err != nil {
		t.Skipf("WebGPU not available: %v", err)
	}
	t.Cleanup(backend.Release)
	return backend
}

func gpuTensor(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.WebGPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	copy(raw.AsFloat32(), data)
	return raw
}

func TestGPUAdd(t *testing.T) {
	backend := newTestBackend(t)

	a := gpuTensor(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := gpuTensor(t, []float32{5, 6, 7, 8}, tensor.Shape{2, 2})

	c := backend.Add(a, b)
	want := []float32{6, 8, 10, 12}
	for i, v := range c.AsFloat32() {
		if v != want[i] {
			t.Errorf("add element %d = %v, want %v", i, v, want[i])
		}
	}
}

func TestGPUMatMul(t *testing.T) {
	backend := newTestBackend(t)

	a := gpuTensor(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := gpuTensor(t, []float32{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2})

	c := backend.MatMul(a, b)
	want := []float32{58, 64, 139, 154}
	for i, v := range c.AsFloat32() {
		if math.Abs(float64(v-want[i])) > 1e-4 {
			t.Errorf("matmul element %d = %v, want %v", i, v, want[i])
		}
	}
}

func TestGPUTranspose(t *testing.T) {
	backend := newTestBackend(t)

	a := gpuTensor(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	at := backend.Transpose(a)

	if !at.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("transpose shape = %v, want [3 2]", at.Shape())
	}
	want := []float32{1, 4, 2, 5, 3, 6}
	for i, v := range at.AsFloat32() {
		if v != want[i] {
			t.Errorf("transpose element %d = %v, want %v", i, v, want[i])
		}
	}
}

func TestGPUGesvIdentity(t *testing.T) {
	backend := newTestBackend(t)

	// Identity is its own column-major layout.
	a := gpuTensor(t, []float32{1, 0, 0, 0, 1, 0, 0, 0, 1}, tensor.Shape{3, 3})
	b := gpuTensor(t, []float32{1, 2, 3}, tensor.Shape{3, 1})
	ipiv := make([]int32, 3)

	if err := backend.Gesv(tensor.Float32, a, b, ipiv, 3, 1); err != nil {
		t.Fatalf("Gesv failed: %v", err)
	}
	want := []float32{1, 2, 3}
	for i, v := range b.AsFloat32() {
		if math.Abs(float64(v-want[i])) > 1e-5 {
			t.Errorf("solution element %d = %v, want %v", i, v, want[i])
		}
	}
}

func TestGPUGesvPivoting(t *testing.T) {
	backend := newTestBackend(t)

	// Column-major [[0,1],[1,0]]: forces an interchange at step 0.
	a := gpuTensor(t, []float32{0, 1, 1, 0}, tensor.Shape{2, 2})
	b := gpuTensor(t, []float32{3, 5}, tensor.Shape{2, 1})
	ipiv := make([]int32, 2)

	if err := backend.Gesv(tensor.Float32, a, b, ipiv, 2, 1); err != nil {
		t.Fatalf("Gesv failed: %v", err)
	}
	got := b.AsFloat32()
	if math.Abs(float64(got[0]-5)) > 1e-5 || math.Abs(float64(got[1]-3)) > 1e-5 {
		t.Errorf("solution = %v, want [5 3]", got)
	}
	if ipiv[0] != 1 {
		t.Errorf("ipiv[0] = %d, want 1", ipiv[0])
	}
}

func TestGPUGesvSingular(t *testing.T) {
	backend := newTestBackend(t)

	a := gpuTensor(t, []float32{0, 0, 0, 0}, tensor.Shape{2, 2})
	b := gpuTensor(t, []float32{1, 2}, tensor.Shape{2, 1})
	ipiv := make([]int32, 2)

	if err := backend.Gesv(tensor.Float32, a, b, ipiv, 2, 1); err == nil {
		t.Error("Gesv on singular matrix should fail")
	}
}

func TestGPUGesvRejectsFloat64(t *testing.T) {
	backend := newTestBackend(t)

	a, err := tensor.NewRaw(tensor.Shape{2, 2}, tensor.Float64, tensor.WebGPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	b, err := tensor.NewRaw(tensor.Shape{2, 1}, tensor.Float64, tensor.WebGPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}

	if err := backend.Gesv(tensor.Float64, a, b, make([]int32, 2), 2, 1); err == nil {
		t.Error("Gesv must reject float64 instead of downcasting")
	}
}
