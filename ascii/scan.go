package ascii

import "unsafe"

const (
	hiBit  = 0x80
	hiWord = 0x8080808080808080
)

// kernel handles the body phase of a scan for one backend. Both funcs get a
// pointer aligned to width and a length that is a non-zero multiple of width.
type kernel struct {
	width int
	asm   bool

	// accumulate folds the whole run into a summary that is zero iff no
	// byte in it has the high bit set. It need not stop early.
	accumulate func(p unsafe.Pointer, n int) uint64

	// locate returns the offset of the first chunk that holds a byte with
	// the high bit set, or n.
	locate func(p unsafe.Pointer, n int) int
}

// valid reports whether every byte of v is ASCII. Head and tail bytes are
// OR-ed into acc, the body is summarised by the kernel, and the high bit is
// tested once at the end.
func (k *kernel) valid(v view) bool {
	head, body, _ := v.phases(k.width)

	var acc byte
	for i := 0; i < head; i++ {
		acc |= v.at(i)
	}

	var sum uint64
	if body > 0 {
		sum = k.accumulate(v.from(head), body)
	}

	for i := head + body; i < v.n; i++ {
		acc |= v.at(i)
	}

	return uint64(acc&hiBit)|sum == 0
}

// index returns the offset of the first non-ASCII byte of v, or -1. A body
// chunk that trips locate is rescanned bytewise, which then runs on into
// the tail.
func (k *kernel) index(v view) int {
	head, body, _ := v.phases(k.width)

	for i := 0; i < head; i++ {
		if v.at(i)&hiBit != 0 {
			return i
		}
	}

	i := head
	if body > 0 {
		i += k.locate(v.from(head), body)
	}

	for ; i < v.n; i++ {
		if v.at(i)&hiBit != 0 {
			return i
		}
	}
	return -1
}
