package cpu

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Features reports the SIMD capabilities of the current host.
// The matmul path is chosen from these at backend construction.
type Features struct {
	HasAVX2      bool
	HasAVX512    bool
	HasSSE2      bool
	HasNEON      bool
	Architecture string
}

// DetectFeatures reports the available CPU features for the current process.
func DetectFeatures() Features {
	return Features{
		HasAVX2:      cpu.X86.HasAVX2,
		HasAVX512:    cpu.X86.HasAVX512,
		HasSSE2:      cpu.X86.HasSSE2,
		HasNEON:      cpu.ARM64.HasASIMD,
		Architecture: runtime.GOARCH,
	}
}

// wide reports whether the host has vector units wide enough to make
// the cache-blocked matmul kernel worthwhile.
func (f Features) wide() bool {
	return f.HasAVX2 || f.HasAVX512 || f.HasNEON
}
