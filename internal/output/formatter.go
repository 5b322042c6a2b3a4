package output

// Formatter formats a Result into bytes for output.
// Implementations append to buf and return it; callers pass buf[:0] to
// reuse the backing array across results.
type Formatter interface {
	Format(buf []byte, r Result) []byte
}
