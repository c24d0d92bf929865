package cpu

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/flint-ml/flint/internal/tensor"
)

// colMajor64 builds a column-major RawTensor from row-major 2D values.
func colMajor64(t *testing.T, rows, cols int, rowMajor []float64) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(tensor.Shape{cols, rows}, tensor.Float64, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	data := raw.AsFloat64()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data[i+j*rows] = rowMajor[i*cols+j]
		}
	}
	return raw
}

func TestGesvDiagonal(t *testing.T) {
	a := colMajor64(t, 2, 2, []float64{2, 0, 0, 2})
	b := colMajor64(t, 2, 1, []float64{4, 8})
	ipiv := make([]int32, 2)

	if err := Gesv(tensor.Float64, a, b, ipiv, 2, 1); err != nil {
		t.Fatalf("Gesv failed: %v", err)
	}

	got := b.AsFloat64()
	if got[0] != 2 || got[1] != 4 {
		t.Errorf("solution = %v, want [2 4]", got)
	}
}

func TestGesvRequiresPivoting(t *testing.T) {
	// Zero in the (0,0) position forces a row interchange up front.
	a := colMajor64(t, 2, 2, []float64{
		0, 1,
		1, 0,
	})
	b := colMajor64(t, 2, 1, []float64{3, 5})
	ipiv := make([]int32, 2)

	if err := Gesv(tensor.Float64, a, b, ipiv, 2, 1); err != nil {
		t.Fatalf("Gesv failed: %v", err)
	}

	got := b.AsFloat64()
	if got[0] != 5 || got[1] != 3 {
		t.Errorf("solution = %v, want [5 3]", got)
	}
	if ipiv[0] != 1 {
		t.Errorf("ipiv[0] = %d, want 1 (rows 0 and 1 interchanged)", ipiv[0])
	}
}

func TestGesvMultipleRHS(t *testing.T) {
	a := colMajor64(t, 3, 3, []float64{
		2, 1, 1,
		1, 3, 2,
		1, 0, 0,
	})
	// Columns: [4 5 6] and the first column of A (giving a unit solution column).
	b := colMajor64(t, 3, 2, []float64{
		4, 2,
		5, 1,
		6, 1,
	})
	ipiv := make([]int32, 3)

	if err := Gesv(tensor.Float64, a, b, ipiv, 3, 2); err != nil {
		t.Fatalf("Gesv failed: %v", err)
	}

	got := b.AsFloat64()
	// Hand-checked: A·[6 15 -23]ᵀ = [4 5 6]ᵀ, A·[1 0 0]ᵀ = first column.
	want := []float64{6, 15, -23, 1, 0, 0}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("solution element %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestGesvSingular(t *testing.T) {
	a := colMajor64(t, 2, 2, []float64{0, 0, 0, 0})
	b := colMajor64(t, 2, 1, []float64{1, 2})
	ipiv := make([]int32, 2)

	err := Gesv(tensor.Float64, a, b, ipiv, 2, 1)
	if !errors.Is(err, ErrSingular) {
		t.Errorf("Gesv on singular matrix: err = %v, want ErrSingular", err)
	}
}

func TestGesvFloat32(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{3, 3}, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	// Identity is its own column-major layout.
	a := raw.AsFloat32()
	a[0], a[4], a[8] = 1, 1, 1

	b, err := tensor.NewRaw(tensor.Shape{1, 3}, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	copy(b.AsFloat32(), []float32{1, 2, 3})
	ipiv := make([]int32, 3)

	if err := Gesv(tensor.Float32, raw, b, ipiv, 3, 1); err != nil {
		t.Fatalf("Gesv failed: %v", err)
	}
	got := b.AsFloat32()
	if got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("solution = %v, want [1 2 3]", got)
	}
}

func TestGesvResidualRandom(t *testing.T) {
	const n, m = 12, 3
	rng := rand.New(rand.NewSource(42))

	aVals := make([]float64, n*n)
	for i := range aVals {
		aVals[i] = rng.Float64()*2 - 1
	}
	// Diagonal dominance keeps the random system comfortably nonsingular.
	for i := 0; i < n; i++ {
		aVals[i+i*n] += float64(n)
	}
	bVals := make([]float64, n*m)
	for i := range bVals {
		bVals[i] = rng.Float64()*2 - 1
	}

	a, err := tensor.NewRaw(tensor.Shape{n, n}, tensor.Float64, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	copy(a.AsFloat64(), aVals)
	b, err := tensor.NewRaw(tensor.Shape{m, n}, tensor.Float64, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	copy(b.AsFloat64(), bVals)
	ipiv := make([]int32, n)

	if err := Gesv(tensor.Float64, a, b, ipiv, n, m); err != nil {
		t.Fatalf("Gesv failed: %v", err)
	}

	// Residual check against the untouched copies of A and B.
	x := b.AsFloat64()
	for j := 0; j < m; j++ {
		for i := 0; i < n; i++ {
			sum := 0.0
			for k := 0; k < n; k++ {
				sum += aVals[i+k*n] * x[k+j*n]
			}
			if math.Abs(sum-bVals[i+j*n]) > 1e-10*float64(n) {
				t.Fatalf("residual too large at (%d,%d): %v", i, j, sum-bVals[i+j*n])
			}
		}
	}
}
