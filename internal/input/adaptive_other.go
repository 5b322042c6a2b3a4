//go:build !linux

package input

import (
	"fmt"
	"io"
	"os"
)

// NewAdaptiveReader returns a Reader that loads files below mmapThreshold
// into memory and streams larger ones.
func NewAdaptiveReader(mmapThreshold int64) Reader {
	return &adaptiveReader{threshold: mmapThreshold}
}

type adaptiveReader struct {
	threshold int64
}

func (r *adaptiveReader) Read(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return Source{}, fmt.Errorf("open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return Source{}, fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.Mode().IsRegular() || info.Size() == 0 {
		return Source{Stream: f, Size: -1, Closer: f.Close}, nil
	}
	if info.Size() >= r.threshold {
		return Source{Stream: f, Size: info.Size(), Closer: f.Close}, nil
	}

	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return Source{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Source{Data: data, Size: int64(len(data)), Closer: noopCloser}, nil
}
