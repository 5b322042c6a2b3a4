// Package ascii finds out whether byte buffers are pure ASCII and, if not,
// where the first byte with the high bit set sits.
//
// Every scan walks the buffer once in three phases: single bytes up to the
// first chunk-aligned address, whole aligned chunks, then the leftover bytes.
// Valid never branches on the data inside the chunk loop; it folds all
// chunks together and tests the high bits once. IndexNonASCII stops at the
// first chunk holding a high bit and finds the exact byte inside it.
//
// The package-level functions use Default. Specific implementations are
// reachable through Backends and Lookup.
package ascii

// Valid reports whether every byte of p is below 0x80. It is true for an
// empty slice.
func Valid(p []byte) bool {
	return defaultBackend.kernel.valid(bytesView(p))
}

// ValidString is like Valid for strings.
func ValidString(s string) bool {
	return defaultBackend.kernel.valid(stringView(s))
}

// IndexNonASCII returns the index of the first byte of p that is 0x80 or
// above, or -1 if there is none.
func IndexNonASCII(p []byte) int {
	return defaultBackend.kernel.index(bytesView(p))
}

// IndexNonASCIIString is like IndexNonASCII for strings.
func IndexNonASCIIString(s string) int {
	return defaultBackend.kernel.index(stringView(s))
}
