package jbig2

// ArithEncoder is the MQ context-adaptive binary arithmetic encoder used by
// every coding procedure in this package: generic regions, symbol
// dictionaries and text regions all drive the same encoder against
// different ArithContext slices. It mirrors the decoder's register layout
// (A, C, CT) but runs the ENCODE/CODEMPS/CODELPS/BYTEOUT side of Annex E.
type ArithEncoder struct {
	a  uint32
	c  uint32
	ct int

	sink *bitSink
}

// NewArithEncoder returns an encoder ready to accept Encode calls. It
// implements INITENC (Annex E.2.4).
func NewArithEncoder() *ArithEncoder {
	enc := &ArithEncoder{sink: newBitSink()}
	enc.Reset()
	return enc
}

// Reset reinitialises the coding registers without touching any
// ArithContext slices the caller holds, mirroring jbig2enc_reset in the
// original encoder, which resets the coder between symbol/text/generic
// passes while keeping context state intact across calls that need it.
func (enc *ArithEncoder) Reset() {
	enc.a = 0x8000
	enc.c = 0
	enc.ct = 12
	enc.sink.Reset()
}

// Encode codes one bit under the given context, per the ENCODE procedure.
func (enc *ArithEncoder) Encode(ctx *ArithContext, bit int) {
	qe := arithQeTable[ctx.i]
	if bit == ctx.MPS() {
		enc.codeMPS(ctx, qe)
	} else {
		enc.codeLPS(ctx, qe)
	}
}

func (enc *ArithEncoder) codeMPS(ctx *ArithContext, qe arithQe) {
	enc.a -= qe.qe
	if enc.a&0x8000 != 0 {
		enc.c += qe.qe
		return
	}
	if enc.a < qe.qe {
		enc.a = qe.qe
	} else {
		enc.c += qe.qe
	}
	ctx.i = qe.nmps
	enc.renorm()
}

func (enc *ArithEncoder) codeLPS(ctx *ArithContext, qe arithQe) {
	enc.a -= qe.qe
	if enc.a < qe.qe {
		enc.c += qe.qe
	} else {
		enc.a = qe.qe
	}
	if qe.switchM {
		ctx.mps = !ctx.mps
	}
	ctx.i = qe.nlps
	enc.renorm()
}

func (enc *ArithEncoder) renorm() {
	for {
		enc.a <<= 1
		enc.c <<= 1
		enc.ct--
		if enc.ct == 0 {
			enc.byteOut()
		}
		if enc.a&0x8000 != 0 {
			return
		}
	}
}

// byteOut implements BYTEOUT (Annex E.2.4), including the stuff-byte rule
// after an emitted 0xFF. A carry out of c is added to the last emitted byte
// only (which is never 0xFF at that point); when the carry turns it into
// 0xFF, the next byte is written as a 7-bit stuffed byte.
func (enc *ArithEncoder) byteOut() {
	if enc.sink.bp < 0 {
		enc.sink.emit(byte(enc.c >> 19))
		enc.c &= 0x7FFFF
		enc.ct = 8
		return
	}

	if enc.sink.last() == 0xFF {
		enc.sink.emit(byte(enc.c >> 20))
		enc.c &= 0xFFFFF
		enc.ct = 7
		return
	}

	if enc.c&0x8000000 != 0 {
		enc.sink.carry()
		if enc.sink.last() == 0xFF {
			enc.c &= 0x7FFFFFF
			enc.sink.emit(byte(enc.c >> 20))
			enc.c &= 0xFFFFF
			enc.ct = 7
			return
		}
	}

	enc.sink.emit(byte(enc.c >> 19))
	enc.c &= 0x7FFFF
	enc.ct = 8
}

// Final runs FLUSH (Annex E.2.4) and returns the terminated byte stream. A
// trailing 0xFF produced by FLUSH's SETBITS step is dropped, the usual
// JBIG2 convention for terminating an arithmetic-coded stream.
func (enc *ArithEncoder) Final() []byte {
	out := enc.Flush()
	if len(out) > 0 && out[len(out)-1] == 0xFF {
		out = out[:len(out)-1]
	}
	return out
}

// DataSize reports how many bytes have been emitted so far, not counting
// whatever Final still has buffered in the coding registers.
func (enc *ArithEncoder) DataSize() int { return enc.sink.Len() }

// Flush is Final without the trailing-0xFF trim, matching jbig2enc_flush's
// role of terminating the coder without yet deciding how the caller wants
// the last byte presented.
func (enc *ArithEncoder) Flush() []byte {
	temp := enc.c + enc.a
	enc.c |= 0xFFFF
	if enc.c >= temp {
		enc.c -= 0x8000
	}
	enc.c <<= uint(enc.ct)
	enc.byteOut()
	enc.c <<= uint(enc.ct)
	enc.byteOut()
	return enc.sink.Bytes()
}

// ToBuffer appends the bytes emitted so far to dst, matching
// jbig2enc_tobuffer's role of copying out a coder's accumulated output
// without terminating it.
func (enc *ArithEncoder) ToBuffer(dst []byte) []byte {
	return append(dst, enc.sink.Bytes()...)
}
