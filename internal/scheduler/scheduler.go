package scheduler

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mhr3/asciicheck/ascii"
	"github.com/mhr3/asciicheck/internal/input"
	"github.com/mhr3/asciicheck/internal/output"
	"github.com/mhr3/asciicheck/internal/walker"
)

// Scheduler checks files concurrently with a bounded number of workers.
type Scheduler struct {
	workers   int
	backend   *ascii.Backend
	reader    input.Reader
	blockSize int
	bufs      sync.Pool
}

// New creates a Scheduler. workers <= 0 means NumCPU*2, a nil backend means
// ascii.Default, and blockSize <= 0 means ascii.DefaultBlockSize. blockSize
// is the read size for inputs that arrive as a stream.
func New(workers int, b *ascii.Backend, r input.Reader, blockSize int) *Scheduler {
	if workers <= 0 {
		workers = runtime.NumCPU() * 2
	}
	if b == nil {
		b = ascii.Default()
	}
	if blockSize <= 0 {
		blockSize = ascii.DefaultBlockSize
	}
	s := &Scheduler{
		workers:   workers,
		backend:   b,
		reader:    r,
		blockSize: blockSize,
	}
	s.bufs.New = func() any {
		buf := make([]byte, s.blockSize)
		return &buf
	}
	return s
}

// Run checks every file received on files and returns the results. Results
// are numbered from 1 in the order files arrive, but may be delivered out of
// order. The channel is closed once files is drained or ctx is cancelled;
// after cancellation no new file is started.
func (s *Scheduler) Run(ctx context.Context, files <-chan walker.FileEntry) <-chan output.Result {
	resultCh := make(chan output.Result, s.workers*2)

	go func() {
		defer close(resultCh)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.workers)

		seq := 0
	dispatch:
		for {
			var entry walker.FileEntry
			var ok bool
			select {
			case entry, ok = <-files:
				if !ok {
					break dispatch
				}
			case <-gctx.Done():
				break dispatch
			}

			seq++
			n := seq
			g.Go(func() error {
				r := s.Check(entry.Path)
				r.Seq = n
				select {
				case resultCh <- r:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			})
		}

		// the only errors are cancellations, which callers see through ctx
		_ = g.Wait()
	}()

	return resultCh
}

// Check reads path through the scheduler's reader and scans it. The result's
// Seq is left zero.
func (s *Scheduler) Check(path string) output.Result {
	r := output.Result{Path: path, Size: -1, Index: -1}

	src, err := s.reader.Read(path)
	if err != nil {
		r.Err = err
		return r
	}
	r.Size = src.Size

	if src.Stream == nil {
		r.Index = int64(s.backend.IndexNonASCII(src.Data))
	} else {
		buf := s.bufs.Get().(*[]byte)
		r.Index, err = s.backend.IndexReader(src.Stream, *buf)
		s.bufs.Put(buf)
		if err != nil {
			r.Err = fmt.Errorf("read %s: %w", r.Name(), err)
		}
	}

	if err := src.Close(); err != nil && r.Err == nil {
		r.Err = fmt.Errorf("close %s: %w", r.Name(), err)
	}
	return r
}
