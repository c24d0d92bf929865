package cpu

import (
	"errors"
	"fmt"
	"math"

	"github.com/flint-ml/flint/internal/tensor"
)

// ErrSingular is returned when factorization meets an exactly zero pivot.
var ErrSingular = errors.New("cpu: matrix is singular")

// lapackFloat restricts gesv kernels to the precisions classical dense
// solvers define.
type lapackFloat interface {
	~float32 | ~float64
}

// Gesv solves A·X = B in place, following the xGESV convention: a and b
// are column-major buffers (a is n×n, b is n×m), a is overwritten with
// its LU factors, b is overwritten with the solution X, and ipiv records
// the row interchange chosen at each elimination step (0-based).
func Gesv(dtype tensor.DataType, a, b *tensor.RawTensor, ipiv []int32, n, m int) error {
	if len(ipiv) != n {
		return fmt.Errorf("cpu: pivot buffer length %d, want %d", len(ipiv), n)
	}
	if a.NumElements() != n*n || b.NumElements() != n*m {
		return fmt.Errorf("cpu: buffer sizes %d/%d do not match n=%d m=%d", a.NumElements(), b.NumElements(), n, m)
	}

	switch dtype {
	case tensor.Float32:
		return gesvTyped(a.AsFloat32(), b.AsFloat32(), ipiv, n, m)
	case tensor.Float64:
		return gesvTyped(a.AsFloat64(), b.AsFloat64(), ipiv, n, m)
	default:
		return fmt.Errorf("cpu: unsupported dtype %s", dtype)
	}
}

// gesvTyped performs LU factorization with partial pivoting followed by
// forward and back substitution over all m right-hand sides.
// Buffers are column-major: a[i + j*n], b[i + j*n].
func gesvTyped[T lapackFloat](a, b []T, ipiv []int32, n, m int) error {
	for k := 0; k < n; k++ {
		// Pivot search: largest magnitude in column k at or below the diagonal.
		p := k
		pmag := math.Abs(float64(a[k+k*n]))
		for i := k + 1; i < n; i++ {
			if mag := math.Abs(float64(a[i+k*n])); mag > pmag {
				p, pmag = i, mag
			}
		}
		if pmag == 0 {
			return fmt.Errorf("%w: zero pivot at column %d", ErrSingular, k)
		}
		ipiv[k] = int32(p)

		if p != k {
			for j := 0; j < n; j++ {
				a[k+j*n], a[p+j*n] = a[p+j*n], a[k+j*n]
			}
			for j := 0; j < m; j++ {
				b[k+j*n], b[p+j*n] = b[p+j*n], b[k+j*n]
			}
		}

		// Eliminate below the pivot, storing multipliers in place.
		pivot := a[k+k*n]
		for i := k + 1; i < n; i++ {
			a[i+k*n] /= pivot
			l := a[i+k*n]
			if l == 0 {
				continue
			}
			for j := k + 1; j < n; j++ {
				a[i+j*n] -= l * a[k+j*n]
			}
		}
	}

	// B rows were interchanged alongside A, so L·y = P·b is solved directly.
	for j := 0; j < m; j++ {
		col := b[j*n : (j+1)*n]

		// Forward substitution with the unit-diagonal L factor.
		for k := 0; k < n; k++ {
			v := col[k]
			if v == 0 {
				continue
			}
			for i := k + 1; i < n; i++ {
				col[i] -= a[i+k*n] * v
			}
		}

		// Back substitution with the U factor.
		for k := n - 1; k >= 0; k-- {
			col[k] /= a[k+k*n]
			v := col[k]
			for i := 0; i < k; i++ {
				col[i] -= a[i+k*n] * v
			}
		}
	}

	return nil
}
