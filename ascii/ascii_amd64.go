//go:build !noasm && amd64

package ascii

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

var (
	hasSSE41 = cpu.X86.HasSSE41
	hasAVX2  = cpu.X86.HasAVX2
)

// archDefault swaps in the assembly kernels the CPU can run and returns the
// widest of them. SSE2 is part of the amd64 baseline.
func archDefault() *Backend {
	sse2Backend.kernel = kernel{
		width:      16,
		asm:        true,
		accumulate: func(p unsafe.Pointer, n int) uint64 { return uint64(orMaskSSE2((*byte)(p), n)) },
		locate:     func(p unsafe.Pointer, n int) int { return locateSSE2((*byte)(p), n) },
	}
	best := sse2Backend

	if hasSSE41 {
		sse41Backend.kernel = kernel{
			width: 16,
			asm:   true,
			accumulate: func(p unsafe.Pointer, n int) uint64 {
				if testZeroSSE41((*byte)(p), n) {
					return 0
				}
				return 1
			},
			locate: func(p unsafe.Pointer, n int) int { return locateSSE41((*byte)(p), n) },
		}
		best = sse41Backend
	}

	if hasAVX2 {
		avx2Backend.kernel = kernel{
			width:      32,
			asm:        true,
			accumulate: func(p unsafe.Pointer, n int) uint64 { return uint64(orMaskAVX2((*byte)(p), n)) },
			locate:     func(p unsafe.Pointer, n int) int { return locateAVX2((*byte)(p), n) },
		}
		best = avx2Backend
	}

	return best
}
