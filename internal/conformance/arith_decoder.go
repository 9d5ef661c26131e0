// Package conformance is a minimal, test-only JBIG2 decoder: just enough
// MQ arithmetic decoding and template-0 generic-region decoding to verify
// that internal/jbig2's encoder output round-trips to the bitmap it was
// given. It has no symbol-dictionary or text-region path and is never
// imported outside _test.go files.
package conformance

import "errors"

const defaultAValue = 0x8000

var errDecoderExhausted = errors.New("conformance: arithmetic decoder exhausted")

type arithQe struct {
	qe      uint16
	nmps    uint8
	nlps    uint8
	switchM bool
}

var arithQeTable = [...]arithQe{
	{0x5601, 1, 1, true}, {0x3401, 2, 6, false}, {0x1801, 3, 9, false},
	{0x0AC1, 4, 12, false}, {0x0521, 5, 29, false}, {0x0221, 38, 33, false},
	{0x5601, 7, 6, true}, {0x5401, 8, 14, false}, {0x4801, 9, 14, false},
	{0x3801, 10, 14, false}, {0x3001, 11, 17, false}, {0x2401, 12, 18, false},
	{0x1C01, 13, 20, false}, {0x1601, 29, 21, false}, {0x5601, 15, 14, true},
	{0x5401, 16, 14, false}, {0x5101, 17, 15, false}, {0x4801, 18, 16, false},
	{0x3801, 19, 17, false}, {0x3401, 20, 18, false}, {0x3001, 21, 19, false},
	{0x2801, 22, 19, false}, {0x2401, 23, 20, false}, {0x2201, 24, 21, false},
	{0x1C01, 25, 22, false}, {0x1801, 26, 23, false}, {0x1601, 27, 24, false},
	{0x1401, 28, 25, false}, {0x1201, 29, 26, false}, {0x1101, 30, 27, false},
	{0x0AC1, 31, 28, false}, {0x09C1, 32, 29, false}, {0x08A1, 33, 30, false},
	{0x0521, 34, 31, false}, {0x0441, 35, 32, false}, {0x02A1, 36, 33, false},
	{0x0221, 37, 34, false}, {0x0141, 38, 35, false}, {0x0111, 39, 36, false},
	{0x0085, 40, 37, false}, {0x0049, 41, 38, false}, {0x0025, 42, 39, false},
	{0x0015, 43, 40, false}, {0x0009, 44, 41, false}, {0x0005, 45, 42, false},
	{0x0001, 45, 43, false}, {0x5601, 46, 46, false},
}

// arithContext is the decode-side twin of internal/jbig2's ArithContext.
type arithContext struct {
	mps bool
	i   uint8
}

func (ctx *arithContext) MPS() int {
	if ctx.mps {
		return 1
	}
	return 0
}

func (ctx *arithContext) decodeNLPS(qe arithQe) int {
	d := 1
	if ctx.mps {
		d = 0
	}
	if qe.switchM {
		ctx.mps = !ctx.mps
	}
	ctx.i = qe.nlps
	return d
}

func (ctx *arithContext) decodeNMPS(qe arithQe) int {
	ctx.i = qe.nmps
	return ctx.MPS()
}

type arithStreamState uint8

const (
	streamDataAvailable arithStreamState = iota
	streamDecodingFinished
	streamLooping
)

// arithDecoder implements the DECODE procedure of Annex E.3 over a plain
// byte slice, in the same complement-of-current-byte register convention
// as the teacher's decode-direction implementation.
type arithDecoder struct {
	data     []byte
	pos      int
	complete bool
	state    arithStreamState
	b        uint8
	c        uint32
	a        uint32
	ct       uint32
}

func newArithDecoder(data []byte) *arithDecoder {
	dec := &arithDecoder{data: data}
	dec.b = dec.curByte()
	dec.c = uint32(dec.b^0xFF) << 16
	dec.byteIn()
	dec.c <<= 7
	if dec.ct >= 7 {
		dec.ct -= 7
	} else {
		dec.ct = 0
	}
	dec.a = defaultAValue
	return dec
}

func (dec *arithDecoder) curByte() byte {
	if dec.pos < len(dec.data) {
		return dec.data[dec.pos]
	}
	return 0xFF
}

func (dec *arithDecoder) nextByte() byte {
	if dec.pos+1 < len(dec.data) {
		return dec.data[dec.pos+1]
	}
	return 0xFF
}

func (dec *arithDecoder) inBounds() bool { return dec.pos < len(dec.data) }

func (dec *arithDecoder) decode(ctx *arithContext) (int, error) {
	if dec.complete {
		return 0, errDecoderExhausted
	}

	qe := arithQeTable[ctx.i]
	dec.a -= uint32(qe.qe)

	if (dec.c >> 16) < dec.a {
		if dec.a&defaultAValue != 0 {
			return ctx.MPS(), nil
		}
		var d int
		if dec.a < uint32(qe.qe) {
			d = ctx.decodeNLPS(qe)
		} else {
			d = ctx.decodeNMPS(qe)
		}
		dec.readValueA()
		return d, nil
	}

	dec.c -= dec.a << 16
	var d int
	if dec.a < uint32(qe.qe) {
		d = ctx.decodeNMPS(qe)
	} else {
		d = ctx.decodeNLPS(qe)
	}
	dec.a = uint32(qe.qe)
	dec.readValueA()
	return d, nil
}

func (dec *arithDecoder) byteIn() {
	if dec.b == 0xFF {
		b1 := dec.nextByte()
		if b1 > 0x8F {
			dec.ct = 8
			switch dec.state {
			case streamDataAvailable:
				dec.state = streamDecodingFinished
			case streamDecodingFinished:
				dec.state = streamLooping
			case streamLooping:
				dec.complete = true
			}
		} else {
			dec.pos++
			dec.b = b1
			dec.c = dec.c + 0xFE00 - (uint32(dec.b) << 9)
			dec.ct = 7
		}
	} else {
		dec.pos++
		dec.b = dec.curByte()
		dec.c = dec.c + 0xFF00 - (uint32(dec.b) << 8)
		dec.ct = 8
	}
}

func (dec *arithDecoder) readValueA() {
	for {
		if dec.ct == 0 {
			dec.byteIn()
		}
		dec.a <<= 1
		dec.c <<= 1
		dec.ct--
		if dec.a&defaultAValue != 0 {
			return
		}
	}
}
