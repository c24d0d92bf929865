package linalg

import (
	"sync"

	"github.com/flint-ml/flint/internal/backend/cpu"
	"github.com/flint-ml/flint/internal/tensor"
)

// Gesv is the contract every solver backend implements. a and b are
// column-major working copies resident on the backend's device (a is
// n×n, b is n×m); ipiv is host memory of length n recording the row
// interchange chosen at each factorization step. On success b holds the
// solution X in place of B, and a holds factorization remnants that must
// never be read as A again. Any internal failure is returned as an error.
type Gesv func(dtype tensor.DataType, a, b *tensor.RawTensor, ipiv []int32, n, m int) error

// Registry is an immutable device→backend table. It is populated at
// construction and read-only afterward, so a single Registry is safe to
// share across arbitrary concurrent Solve calls without locking.
type Registry struct {
	entries map[tensor.Device]Gesv
}

// NewRegistry builds a registry from explicit entries. Tests use this to
// inject fake backends; production code uses Default.
func NewRegistry(entries map[tensor.Device]Gesv) *Registry {
	copied := make(map[tensor.Device]Gesv, len(entries))
	for d, fn := range entries {
		copied[d] = fn
	}
	return &Registry{entries: copied}
}

// Lookup returns the backend entry for a device category. Matching is
// exact: an accelerator-resident operand is never silently solved on the
// host.
func (r *Registry) Lookup(device tensor.Device) (Gesv, bool) {
	fn, ok := r.entries[device]
	return fn, ok
}

// Devices returns the device categories with a registered backend.
func (r *Registry) Devices() []tensor.Device {
	devices := make([]tensor.Device, 0, len(r.entries))
	for d := range r.entries {
		devices = append(devices, d)
	}
	return devices
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry

	// extraBackends collects compile-time-enabled accelerator entries.
	// Build-tagged files append to it from init; Default snapshots it
	// exactly once, so the table is immutable for the process lifetime.
	extraBackends = map[tensor.Device]Gesv{}
)

// Default returns the process-wide registry of compiled-in backends.
// The host CPU backend is always present; accelerator entries are added
// per build configuration. The table is built on first use and never
// mutated afterward.
func Default() *Registry {
	defaultOnce.Do(func() {
		entries := map[tensor.Device]Gesv{
			tensor.CPU: cpu.Gesv,
		}
		for d, fn := range extraBackends {
			entries[d] = fn
		}
		defaultRegistry = NewRegistry(entries)
	})
	return defaultRegistry
}
