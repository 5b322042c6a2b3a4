package ascii

// Strategy is how a backend reduces a chunk to a single
// "holds a non-ASCII byte" signal.
type Strategy uint8

const (
	// WordOr ORs machine words together and tests the high bits at the end.
	WordOr Strategy = iota
	// MaskExtract ORs vector chunks together and extracts a per-byte mask of
	// the high bits (PMOVMSKB and friends).
	MaskExtract
	// ZeroTest ANDs each chunk with the high-bit mask and checks the result
	// for all-zero (PTEST). It may stop at the first dirty chunk.
	ZeroTest
)

func (s Strategy) String() string {
	switch s {
	case WordOr:
		return "word-or"
	case MaskExtract:
		return "mask-extract"
	case ZeroTest:
		return "zero-test"
	}
	return "unknown"
}

// Backend is one concrete implementation of the scan. All backends return
// identical results; they differ in chunk width and reduction strategy.
// Backends are safe for concurrent use.
type Backend struct {
	name     string
	strategy Strategy
	kernel   kernel
}

var (
	scalarBackend = &Backend{
		name:     "scalar",
		strategy: WordOr,
		kernel:   kernel{width: 8, accumulate: orWordsGo, locate: locateWordGo},
	}
	sse2Backend = &Backend{
		name:     "sse2",
		strategy: MaskExtract,
		kernel:   kernel{width: 16, accumulate: orMask16Go, locate: locateMask16Go},
	}
	sse41Backend = &Backend{
		name:     "sse41",
		strategy: ZeroTest,
		kernel:   kernel{width: 16, accumulate: testZero16Go, locate: locateZero16Go},
	}
	avx2Backend = &Backend{
		name:     "avx2",
		strategy: MaskExtract,
		kernel:   kernel{width: 32, accumulate: orMask32Go, locate: locateMask32Go},
	}

	backends = []*Backend{scalarBackend, sse2Backend, sse41Backend, avx2Backend}

	defaultBackend = archDefault()
)

// Backends returns every backend, narrowest first. Each one is usable on any
// machine: when the CPU lacks the instructions a backend is named after, it
// runs a portable kernel of the same width and strategy.
func Backends() []*Backend {
	return append([]*Backend(nil), backends...)
}

// Lookup returns the backend with the given name.
func Lookup(name string) (*Backend, bool) {
	for _, b := range backends {
		if b.name == name {
			return b, true
		}
	}
	return nil, false
}

// Default returns the backend used by the package-level functions. It is
// chosen once, at init, from the CPU features of the host.
func Default() *Backend {
	return defaultBackend
}

func (b *Backend) Name() string { return b.name }

// Width is the chunk width in bytes.
func (b *Backend) Width() int { return b.kernel.width }

func (b *Backend) Strategy() Strategy { return b.strategy }

// Accelerated reports whether the backend runs an assembly kernel on this
// machine.
func (b *Backend) Accelerated() bool { return b.kernel.asm }

func (b *Backend) String() string { return b.name }

func (b *Backend) Valid(p []byte) bool {
	return b.kernel.valid(bytesView(p))
}

func (b *Backend) ValidString(s string) bool {
	return b.kernel.valid(stringView(s))
}

func (b *Backend) IndexNonASCII(p []byte) int {
	return b.kernel.index(bytesView(p))
}

func (b *Backend) IndexNonASCIIString(s string) int {
	return b.kernel.index(stringView(s))
}
