package main

import (
	. "github.com/mmcloughlin/avo/build"
	. "github.com/mmcloughlin/avo/operand"
	. "github.com/mmcloughlin/avo/reg"
)

//go:generate go run . -out ../ascii/kernel_amd64.s -stubs ../ascii/kernel_amd64.go -pkg ascii

var highbits Mem

func main() {
	Package("github.com/mhr3/asciicheck/ascii")
	ConstraintExpr("!noasm && amd64")

	highbits = GLOBL("highbits", RODATA|NOPTR)
	DATA(0, U64(0x8080808080808080))
	DATA(8, U64(0x8080808080808080))

	orMaskSSE2()
	locateSSE2()
	testZeroSSE41()
	locateSSE41()
	orMaskAVX2()
	locateAVX2()

	Generate()
}

func orMaskSSE2() {
	TEXT("orMaskSSE2", NOSPLIT, "func(p *byte, n int) uint32")
	Pragma("noescape")
	Doc("orMaskSSE2 ORs the 16-byte chunks of p[:n] together and returns the PMOVMSKB mask of the result.")

	Load(Param("p"), RSI)
	Load(Param("n"), RCX)
	PXOR(X0, X0)
	PXOR(X1, X1)
	CMPQ(RCX, U8(64))
	JB(LabelRef("sse2_or_tail"))

	Label("sse2_or_loop64")
	POR(Mem{Base: RSI}, X0)
	POR(Mem{Base: RSI, Disp: 16}, X1)
	POR(Mem{Base: RSI, Disp: 32}, X0)
	POR(Mem{Base: RSI, Disp: 48}, X1)
	ADDQ(U8(64), RSI)
	SUBQ(U8(64), RCX)
	CMPQ(RCX, U8(64))
	JAE(LabelRef("sse2_or_loop64"))

	Label("sse2_or_tail")
	TESTQ(RCX, RCX)
	JZ(LabelRef("sse2_or_done"))

	Label("sse2_or_loop16")
	POR(Mem{Base: RSI}, X0)
	ADDQ(U8(16), RSI)
	SUBQ(U8(16), RCX)
	JNZ(LabelRef("sse2_or_loop16"))

	Label("sse2_or_done")
	POR(X1, X0)
	PMOVMSKB(X0, EAX)
	Store(EAX, ReturnIndex(0))
	RET()
}

// locate emits the shared loop of the locate kernels: walk the run one chunk
// at a time and stop at the first chunk for which test leaves ZF clear.
func locate(prefix string, width int, load func(Mem), test func()) {
	loop := prefix + "_locate_loop"
	done := prefix + "_locate_done"

	XORQ(RDX, RDX)
	Label(loop)
	CMPQ(RDX, RCX)
	JAE(LabelRef(done))
	load(Mem{Base: RSI, Index: RDX, Scale: 1})
	test()
	JNZ(LabelRef(done))
	ADDQ(U8(width), RDX)
	JMP(LabelRef(loop))

	Label(done)
}

func locateSSE2() {
	TEXT("locateSSE2", NOSPLIT, "func(p *byte, n int) int")
	Pragma("noescape")
	Doc("locateSSE2 returns the offset of the first 16-byte chunk of p[:n] with a non-zero PMOVMSKB mask, or n.")

	Load(Param("p"), RSI)
	Load(Param("n"), RCX)
	locate("sse2", 16,
		func(m Mem) { MOVOU(m, X0) },
		func() {
			PMOVMSKB(X0, EAX)
			TESTL(EAX, EAX)
		})
	Store(RDX, ReturnIndex(0))
	RET()
}

func testZeroSSE41() {
	TEXT("testZeroSSE41", NOSPLIT, "func(p *byte, n int) bool")
	Pragma("noescape")
	Doc("testZeroSSE41 reports whether every 16-byte chunk of p[:n] ANDed with the high-bit mask is zero.")

	Load(Param("p"), RSI)
	Load(Param("n"), RCX)
	MOVOU(highbits, X1)

	Label("sse41_test_loop")
	TESTQ(RCX, RCX)
	JZ(LabelRef("sse41_test_clean"))
	MOVOU(Mem{Base: RSI}, X0)
	PTEST(X1, X0)
	JNZ(LabelRef("sse41_test_dirty"))
	ADDQ(U8(16), RSI)
	SUBQ(U8(16), RCX)
	JMP(LabelRef("sse41_test_loop"))

	Label("sse41_test_clean")
	MOVB(U8(1), AL)
	Store(AL, ReturnIndex(0))
	RET()

	Label("sse41_test_dirty")
	XORB(AL, AL)
	Store(AL, ReturnIndex(0))
	RET()
}

func locateSSE41() {
	TEXT("locateSSE41", NOSPLIT, "func(p *byte, n int) int")
	Pragma("noescape")
	Doc("locateSSE41 returns the offset of the first 16-byte chunk of p[:n] that fails PTEST against the high-bit mask, or n.")

	Load(Param("p"), RSI)
	Load(Param("n"), RCX)
	MOVOU(highbits, X1)
	locate("sse41", 16,
		func(m Mem) { MOVOU(m, X0) },
		func() { PTEST(X1, X0) })
	Store(RDX, ReturnIndex(0))
	RET()
}

func orMaskAVX2() {
	TEXT("orMaskAVX2", NOSPLIT, "func(p *byte, n int) uint32")
	Pragma("noescape")
	Doc("orMaskAVX2 ORs the 32-byte chunks of p[:n] together and returns the VPMOVMSKB mask of the result.")

	Load(Param("p"), RSI)
	Load(Param("n"), RCX)
	VPXOR(Y0, Y0, Y0)
	VPXOR(Y1, Y1, Y1)
	CMPQ(RCX, U8(128))
	JB(LabelRef("avx2_or_tail"))

	Label("avx2_or_loop128")
	VPOR(Mem{Base: RSI}, Y0, Y0)
	VPOR(Mem{Base: RSI, Disp: 32}, Y1, Y1)
	VPOR(Mem{Base: RSI, Disp: 64}, Y0, Y0)
	VPOR(Mem{Base: RSI, Disp: 96}, Y1, Y1)
	ADDQ(U8(128), RSI)
	SUBQ(U8(128), RCX)
	CMPQ(RCX, U8(128))
	JAE(LabelRef("avx2_or_loop128"))

	Label("avx2_or_tail")
	TESTQ(RCX, RCX)
	JZ(LabelRef("avx2_or_done"))

	Label("avx2_or_loop32")
	VPOR(Mem{Base: RSI}, Y0, Y0)
	ADDQ(U8(32), RSI)
	SUBQ(U8(32), RCX)
	JNZ(LabelRef("avx2_or_loop32"))

	Label("avx2_or_done")
	VPOR(Y1, Y0, Y0)
	VPMOVMSKB(Y0, EAX)
	VZEROUPPER()
	Store(EAX, ReturnIndex(0))
	RET()
}

func locateAVX2() {
	TEXT("locateAVX2", NOSPLIT, "func(p *byte, n int) int")
	Pragma("noescape")
	Doc("locateAVX2 returns the offset of the first 32-byte chunk of p[:n] with a non-zero VPMOVMSKB mask, or n.")

	Load(Param("p"), RSI)
	Load(Param("n"), RCX)
	locate("avx2", 32,
		func(m Mem) { VMOVDQU(m, Y0) },
		func() {
			VPMOVMSKB(Y0, EAX)
			TESTL(EAX, EAX)
		})
	VZEROUPPER()
	Store(RDX, ReturnIndex(0))
	RET()
}
