package linalg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flint-ml/flint/internal/tensor"
)

func rawFromFloat64(t *testing.T, data []float64, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float64, tensor.CPU)
	require.NoError(t, err)
	copy(raw.AsFloat64(), data)
	return raw
}

func rawFromFloat32(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	copy(raw.AsFloat32(), data)
	return raw
}

func TestToColumnMajor(t *testing.T) {
	// 2×3 row-major [[1,2,3],[4,5,6]] → column-major 1,4,2,5,3,6.
	src := rawFromFloat64(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	cm, err := toColumnMajor(src)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, cm.AsFloat64())
	assert.Equal(t, tensor.CPU, cm.Device())
}

func TestToColumnMajorVector(t *testing.T) {
	src := rawFromFloat32(t, []float32{1, 2, 3}, tensor.Shape{3})

	cm, err := toColumnMajor(src)
	require.NoError(t, err)

	// An n-vector viewed as n×1 is its own column-major layout, but the
	// buffer must still be a copy.
	assert.Equal(t, []float32{1, 2, 3}, cm.AsFloat32())
	cm.AsFloat32()[0] = 99
	assert.Equal(t, float32(1), src.AsFloat32()[0], "forward transform must not alias the operand")
}

func TestLayoutRoundTrip(t *testing.T) {
	shapes := []tensor.Shape{{1, 1}, {2, 2}, {3, 5}, {4, 1}, {7}}

	for _, shape := range shapes {
		n := shape.NumElements()
		data := make([]float64, n)
		for i := range data {
			data[i] = float64(i)*1.25 - 3
		}
		src := rawFromFloat64(t, data, shape)

		cm, err := toColumnMajor(src)
		require.NoError(t, err)
		back, err := fromColumnMajor(cm, shape)
		require.NoError(t, err)

		assert.Equal(t, src.AsFloat64(), back.AsFloat64(), "round trip for shape %v", shape)
		assert.True(t, back.Shape().Equal(shape))
	}
}

func TestLayoutCopiesNeverAlias(t *testing.T) {
	src := rawFromFloat64(t, []float64{1, 2, 3, 4}, tensor.Shape{2, 2})

	cm, err := toColumnMajor(src)
	require.NoError(t, err)
	cm.AsFloat64()[0] = -1

	assert.Equal(t, float64(1), src.AsFloat64()[0])
}
