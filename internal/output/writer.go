package output

import "io"

// Summary counts what an OrderedWriter has seen.
type Summary struct {
	Files    int
	NonASCII int
	Errors   int
}

// OrderedWriter formats results onto an io.Writer in sequence order, so the
// report is deterministic even with parallel workers.
type OrderedWriter struct {
	w         io.Writer
	formatter Formatter
	buf       []byte
	summary   Summary
	err       error
}

// NewOrderedWriter creates an OrderedWriter. A nil formatter writes nothing
// but still counts.
func NewOrderedWriter(w io.Writer, f Formatter) *OrderedWriter {
	return &OrderedWriter{w: w, formatter: f}
}

// WriteOrdered consumes results until the channel closes, holding back
// out-of-order results until their predecessors arrive. onResult, if set,
// is called for every result in the same order it is written.
func (ow *OrderedWriter) WriteOrdered(results <-chan Result, onResult func(Result)) (Summary, error) {
	next := 1
	pending := make(map[int]Result)

	for r := range results {
		if r.Seq != next {
			pending[r.Seq] = r
			continue
		}
		ow.emit(r, onResult)
		next++
		for {
			p, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			ow.emit(p, onResult)
			next++
		}
	}

	return ow.summary, ow.err
}

// Write formats and writes a single result immediately.
func (ow *OrderedWriter) Write(r Result) error {
	ow.emit(r, nil)
	return ow.err
}

// Summary returns the counts so far.
func (ow *OrderedWriter) Summary() Summary { return ow.summary }

func (ow *OrderedWriter) emit(r Result, onResult func(Result)) {
	ow.summary.Files++
	switch {
	case r.Err != nil:
		ow.summary.Errors++
	case r.Index >= 0:
		ow.summary.NonASCII++
	}
	if onResult != nil {
		onResult(r)
	}

	// keep draining after a write error so senders never block
	if ow.formatter == nil || ow.err != nil {
		return
	}
	ow.buf = ow.formatter.Format(ow.buf[:0], r)
	if len(ow.buf) == 0 {
		return
	}
	_, ow.err = ow.w.Write(ow.buf)
}
