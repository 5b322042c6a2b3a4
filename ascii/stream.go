package ascii

import (
	"errors"
	"io"
)

// DefaultBlockSize is the read size IndexReader callers use when they have
// no better figure.
const DefaultBlockSize = 128 << 10

// ErrEmptyBuffer is returned by IndexReader when handed a zero-length buffer.
var ErrEmptyBuffer = errors.New("ascii: empty read buffer")

// Checker is an io.Writer that scans everything written to it and keeps the
// absolute offset of the first non-ASCII byte. Once that byte is found,
// later writes are only counted. A Checker is not safe for concurrent use.
type Checker struct {
	b     *Backend
	size  int64
	first int64
}

// NewChecker returns a Checker scanning with b, or with Default if b is nil.
func NewChecker(b *Backend) *Checker {
	if b == nil {
		b = defaultBackend
	}
	return &Checker{b: b, first: -1}
}

func (c *Checker) Write(p []byte) (int, error) {
	if c.first < 0 {
		if i := c.b.IndexNonASCII(p); i >= 0 {
			c.first = c.size + int64(i)
		}
	}
	c.size += int64(len(p))
	return len(p), nil
}

// WriteString is like Write for strings and does not copy s.
func (c *Checker) WriteString(s string) (int, error) {
	if c.first < 0 {
		if i := c.b.IndexNonASCIIString(s); i >= 0 {
			c.first = c.size + int64(i)
		}
	}
	c.size += int64(len(s))
	return len(s), nil
}

// Valid reports whether everything written so far is ASCII.
func (c *Checker) Valid() bool { return c.first < 0 }

// Index returns the offset of the first non-ASCII byte written, or -1.
func (c *Checker) Index() int64 { return c.first }

// Size returns the number of bytes written.
func (c *Checker) Size() int64 { return c.size }

// Reset clears the Checker so it can be reused with the same backend.
func (c *Checker) Reset() {
	c.size = 0
	c.first = -1
}

// IndexReader reads r in len(buf)-sized blocks and returns the absolute
// offset of the first non-ASCII byte, or -1 once r is drained. Reading stops
// as soon as the byte is found. The returned error is never io.EOF.
func IndexReader(r io.Reader, buf []byte) (int64, error) {
	return defaultBackend.IndexReader(r, buf)
}

// IndexReader is like the package-level IndexReader using b.
func (b *Backend) IndexReader(r io.Reader, buf []byte) (int64, error) {
	if len(buf) == 0 {
		return -1, ErrEmptyBuffer
	}

	var off int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if i := b.IndexNonASCII(buf[:n]); i >= 0 {
				return off + int64(i), nil
			}
			off += int64(n)
		}
		if err == io.EOF {
			return -1, nil
		}
		if err != nil {
			return -1, err
		}
	}
}
