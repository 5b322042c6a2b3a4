package input

import "io"

// Source is the content of one input. Exactly one of Data and Stream is set:
// Data when the whole file sits in memory (mapped or read), Stream for
// stdin and decompressed input.
type Source struct {
	Data   []byte
	Stream io.Reader
	// Size is the input size in bytes, or -1 when it is not known up front.
	Size   int64
	Closer func() error
}

// Close releases whatever backs the source. Data must not be used after.
func (s Source) Close() error {
	if s.Closer == nil {
		return nil
	}
	return s.Closer()
}

// noopCloser is a package-level no-op closer to avoid allocating a func literal per file.
func noopCloser() error { return nil }

// Reader opens an input by path.
type Reader interface {
	Read(path string) (Source, error)
}
