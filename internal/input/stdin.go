package input

import (
	"io"
	"os"
)

// StdinReader streams standard input. The path argument is ignored.
type StdinReader struct {
	r io.Reader
}

// NewStdinReader creates a StdinReader over r, or os.Stdin if r is nil.
func NewStdinReader(r io.Reader) *StdinReader {
	if r == nil {
		r = os.Stdin
	}
	return &StdinReader{r: r}
}

func (r *StdinReader) Read(_ string) (Source, error) {
	return Source{Stream: r.r, Size: -1, Closer: noopCloser}, nil
}
