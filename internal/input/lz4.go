package input

import (
	"fmt"
	"os"
	"strings"

	"github.com/pierrec/lz4/v4"
)

// LZ4Ext is the suffix of files NewLZ4Reader decompresses.
const LZ4Ext = ".lz4"

// NewLZ4Reader returns a Reader that streams the decompressed content of
// *.lz4 files and hands every other path to next.
func NewLZ4Reader(next Reader) Reader {
	return &lz4Reader{next: next}
}

type lz4Reader struct {
	next Reader
}

func (r *lz4Reader) Read(path string) (Source, error) {
	if !strings.HasSuffix(path, LZ4Ext) {
		return r.next.Read(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return Source{}, fmt.Errorf("open %s: %w", path, err)
	}
	return Source{
		Stream: lz4.NewReader(f),
		Size:   -1,
		Closer: f.Close,
	}, nil
}
