package ascii

import "unsafe"

// Portable body kernels. Loads are aligned (the scanner guarantees it), so
// plain word loads through unsafe are fine on every GOARCH.

func load64(p unsafe.Pointer, i int) uint64 {
	return *(*uint64)(unsafe.Add(p, i))
}

// movemask8 gathers the high bit of each byte of x into the low 8 bits of
// the result, byte i landing in bit i on little-endian machines.
func movemask8(x uint64) uint64 {
	return (x & hiWord) * 0x02040810204081 >> 56
}

// scalar: one machine word per chunk.

func orWordsGo(p unsafe.Pointer, n int) uint64 {
	var acc uint64
	for i := 0; i < n; i += 8 {
		acc |= load64(p, i)
	}
	return acc & hiWord
}

func locateWordGo(p unsafe.Pointer, n int) int {
	for i := 0; i < n; i += 8 {
		if load64(p, i)&hiWord != 0 {
			return i
		}
	}
	return n
}

// OR + mask extraction over 16 and 32 byte chunks, emulated with 64-bit lanes.

func orMask16Go(p unsafe.Pointer, n int) uint64 {
	var a0, a1 uint64
	for i := 0; i < n; i += 16 {
		a0 |= load64(p, i)
		a1 |= load64(p, i+8)
	}
	return movemask8(a0) | movemask8(a1)<<8
}

func locateMask16Go(p unsafe.Pointer, n int) int {
	for i := 0; i < n; i += 16 {
		if movemask8(load64(p, i))|movemask8(load64(p, i+8)) != 0 {
			return i
		}
	}
	return n
}

func orMask32Go(p unsafe.Pointer, n int) uint64 {
	var a0, a1, a2, a3 uint64
	for i := 0; i < n; i += 32 {
		a0 |= load64(p, i)
		a1 |= load64(p, i+8)
		a2 |= load64(p, i+16)
		a3 |= load64(p, i+24)
	}
	return movemask8(a0) | movemask8(a1)<<8 | movemask8(a2)<<16 | movemask8(a3)<<24
}

func locateMask32Go(p unsafe.Pointer, n int) int {
	for i := 0; i < n; i += 32 {
		m := movemask8(load64(p, i)) | movemask8(load64(p, i+8)) |
			movemask8(load64(p, i+16)) | movemask8(load64(p, i+24))
		if m != 0 {
			return i
		}
	}
	return n
}

// AND against the high-bit mask and test for zero, 16 bytes at a time.
// Exits on the first dirty chunk.

func testZero16Go(p unsafe.Pointer, n int) uint64 {
	for i := 0; i < n; i += 16 {
		if (load64(p, i)|load64(p, i+8))&hiWord != 0 {
			return 1
		}
	}
	return 0
}

func locateZero16Go(p unsafe.Pointer, n int) int {
	for i := 0; i < n; i += 16 {
		if (load64(p, i)|load64(p, i+8))&hiWord != 0 {
			return i
		}
	}
	return n
}
