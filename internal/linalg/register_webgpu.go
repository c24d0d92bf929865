//go:build windows

package linalg

import (
	"fmt"
	"sync"

	"github.com/flint-ml/flint/internal/backend/webgpu"
	"github.com/flint-ml/flint/internal/tensor"
)

// The WebGPU entry is compiled in on the platforms the backend supports.
// The backend itself is created lazily on the first accelerator solve;
// if no adapter is available the solve fails, it is never retried on the
// host.
func init() {
	var (
		once    sync.Once
		backend *webgpu.Backend
		initErr error
	)

	extraBackends[tensor.WebGPU] = func(dtype tensor.DataType, a, b *tensor.RawTensor, ipiv []int32, n, m int) error {
		once.Do(func() {
			backend, initErr = webgpu.New()
		})
		if initErr != nil {
			return fmt.Errorf("webgpu: backend unavailable: %w", initErr)
		}
		return backend.Gesv(dtype, a, b, ipiv, n, m)
	}
}
