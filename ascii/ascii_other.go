//go:build !amd64 || noasm

package ascii

// archDefault keeps the portable kernels everywhere. The word-sized scalar
// backend has the lowest per-call overhead of them.
func archDefault() *Backend {
	return scalarBackend
}
