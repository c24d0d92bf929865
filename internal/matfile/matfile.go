// Package matfile implements a small binary container for dense
// matrices: a fixed header (magic, version, dtype, dimensions) followed
// by the row-major payload, little-endian. Readers memory-map the file
// and expose the payload as a RawTensor without copying.
package matfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/flint-ml/flint/internal/tensor"
)

const (
	// magic identifies a Flint matrix file ("FMAT" little-endian).
	magic uint32 = 0x54414D46

	// version of the on-disk format.
	version uint32 = 1

	// headerSize is the fixed byte length of the header block.
	headerSize = 32
)

// Format errors.
var (
	ErrBadMagic    = errors.New("matfile: not a matrix file")
	ErrBadVersion  = errors.New("matfile: unsupported format version")
	ErrCorrupt     = errors.New("matfile: corrupt header")
	ErrUnsupported = errors.New("matfile: unsupported tensor")
)

// Write stores a 1D or 2D tensor at path, replacing any existing file.
func Write(path string, t *tensor.RawTensor) error {
	rank := len(t.Shape())
	if rank != 1 && rank != 2 {
		return fmt.Errorf("%w: rank %d (only vectors and matrices)", ErrUnsupported, rank)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(header[0:4], magic)
	binary.LittleEndian.PutUint32(header[4:8], version)
	binary.LittleEndian.PutUint32(header[8:12], uint32(t.DType())) //nolint:gosec // G115: dtype tags are small positive constants
	binary.LittleEndian.PutUint32(header[12:16], uint32(rank))     //nolint:gosec // G115: rank is 1 or 2
	binary.LittleEndian.PutUint64(header[16:24], uint64(t.Shape()[0]))
	if rank == 2 {
		binary.LittleEndian.PutUint64(header[24:32], uint64(t.Shape()[1]))
	}

	if _, err := f.Write(header); err != nil {
		return err
	}
	if _, err := f.Write(t.Data()); err != nil {
		return err
	}
	return f.Sync()
}

// Matrix is a read-only, memory-mapped matrix file. The embedded tensor
// aliases the mapping directly; it stays valid until Close.
type Matrix struct {
	Tensor *tensor.RawTensor

	file *os.File
	data mmap.MMap
}

// Open memory-maps the matrix file at path read-only and validates its
// header. The returned Matrix must be closed when no longer needed.
func Open(path string) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.Size() < headerSize {
		f.Close()
		return nil, fmt.Errorf("%w: file shorter than header", ErrCorrupt)
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("matfile: mmap: %w", err)
	}

	raw, err := parse(data)
	if err != nil {
		data.Unmap()
		f.Close()
		return nil, err
	}

	return &Matrix{Tensor: raw, file: f, data: data}, nil
}

// Close unmaps the file. The Tensor must not be used afterward.
func (m *Matrix) Close() error {
	err := m.data.Unmap()
	if cerr := m.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// parse validates the header and wraps the payload as a RawTensor.
func parse(data []byte) (*tensor.RawTensor, error) {
	if binary.LittleEndian.Uint32(data[0:4]) != magic {
		return nil, ErrBadMagic
	}
	if v := binary.LittleEndian.Uint32(data[4:8]); v != version {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, v)
	}

	dtype := tensor.DataType(binary.LittleEndian.Uint32(data[8:12]))
	switch dtype {
	case tensor.Float32, tensor.Float64, tensor.Int32, tensor.Int64:
	default:
		return nil, fmt.Errorf("%w: dtype tag %d", ErrCorrupt, dtype)
	}

	rank := binary.LittleEndian.Uint32(data[12:16])
	if rank != 1 && rank != 2 {
		return nil, fmt.Errorf("%w: rank %d", ErrCorrupt, rank)
	}

	rows := binary.LittleEndian.Uint64(data[16:24])
	cols := binary.LittleEndian.Uint64(data[24:32])

	shape := tensor.Shape{int(rows)}
	if rank == 2 {
		shape = append(shape, int(cols))
	}
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	want := shape.NumElements() * dtype.Size()
	payload := data[headerSize:]
	if len(payload) != want {
		return nil, fmt.Errorf("%w: payload is %d bytes, header implies %d", ErrCorrupt, len(payload), want)
	}

	return tensor.FromBytes(payload, shape, dtype, tensor.CPU)
}
