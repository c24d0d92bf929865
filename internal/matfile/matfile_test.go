package matfile

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flint-ml/flint/internal/tensor"
)

func writeMatrix(t *testing.T, shape tensor.Shape, values []float64) string {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float64, tensor.CPU)
	require.NoError(t, err)
	copy(raw.AsFloat64(), values)
	path := filepath.Join(t.TempDir(), "m.fmat")
	require.NoError(t, Write(path, raw))
	return path
}

func TestWriteOpenRoundTrip(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6}
	path := writeMatrix(t, tensor.Shape{2, 3}, values)

	m, err := Open(path)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, tensor.Shape{2, 3}, m.Tensor.Shape())
	assert.Equal(t, tensor.Float64, m.Tensor.DType())
	assert.Equal(t, tensor.CPU, m.Tensor.Device())
	assert.Equal(t, values, m.Tensor.AsFloat64())
}

func TestVectorRoundTrip(t *testing.T) {
	path := writeMatrix(t, tensor.Shape{4}, []float64{9, 8, 7, 6})

	m, err := Open(path)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, tensor.Shape{4}, m.Tensor.Shape())
	assert.Equal(t, []float64{9, 8, 7, 6}, m.Tensor.AsFloat64())
}

func TestWriteRejectsHigherRank(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 2, 2}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	err = Write(filepath.Join(t.TempDir(), "bad.fmat"), raw)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestOpenRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.fmat")
	require.NoError(t, os.WriteFile(path, make([]byte, 64), 0o644))

	_, err := Open(path)
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestOpenRejectsShortFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.fmat")
	require.NoError(t, os.WriteFile(path, []byte{0x46, 0x4D}, 0o644))

	_, err := Open(path)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestOpenRejectsTruncatedPayload(t *testing.T) {
	path := writeMatrix(t, tensor.Shape{3, 3}, make([]float64, 9))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data[:len(data)-8], 0o644))

	_, err = Open(path)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestOpenRejectsUnknownVersion(t *testing.T) {
	path := writeMatrix(t, tensor.Shape{2}, []float64{1, 2})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	binary.LittleEndian.PutUint32(data[4:8], 99)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err = Open(path)
	assert.ErrorIs(t, err, ErrBadVersion)
}

func TestOpenRejectsBadDtypeTag(t *testing.T) {
	path := writeMatrix(t, tensor.Shape{2}, []float64{1, 2})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	binary.LittleEndian.PutUint32(data[8:12], 42)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err = Open(path)
	assert.ErrorIs(t, err, ErrCorrupt)
}
