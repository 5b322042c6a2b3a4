package ascii

import "unsafe"

// view is a borrowed, read-only window onto a caller's bytes. It never
// outlives the call that built it.
type view struct {
	p unsafe.Pointer
	n int
}

func bytesView(b []byte) view {
	return view{p: unsafe.Pointer(unsafe.SliceData(b)), n: len(b)}
}

func stringView(s string) view {
	return view{p: unsafe.Pointer(unsafe.StringData(s)), n: len(s)}
}

// gap returns how many bytes separate the start of v from the next multiple
// of w (a power of two), clipped to the length of v.
func (v view) gap(w int) int {
	if v.n == 0 {
		return 0
	}
	d := int(-uintptr(v.p) & uintptr(w-1))
	return min(d, v.n)
}

// phases splits v for chunk width w. The body starts w-aligned and its
// length is a multiple of w; head+body+tail == v.n.
func (v view) phases(w int) (head, body, tail int) {
	head = v.gap(w)
	body = (v.n - head) &^ (w - 1)
	tail = v.n - head - body
	return head, body, tail
}

func (v view) at(i int) byte {
	return *(*byte)(unsafe.Add(v.p, i))
}

func (v view) from(i int) unsafe.Pointer {
	return unsafe.Add(v.p, i)
}
