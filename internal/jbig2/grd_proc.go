package jbig2

// defaultGBAt are the AT pixel offsets every generic region this encoder
// produces uses: (3,-1), (-3,-1), (2,-2), (-2,-2), the values the original
// encoder hardcodes at every call site rather than searching for better
// ones.
var defaultGBAt = [8]int32{3, -1, -3, -1, 2, -2, -2, -2}

// gbTypicalPredictionContext is the fixed context value at which the SLTP
// (typical prediction) decision bit is coded for template 0.
const gbTypicalPredictionContext = 0x9b25

// GRDProc encodes a generic region bitmap using template 0 arithmetic
// coding, the mirror image of the reference decoder's
// decodeArithTemplateUnopt(unopt=0): it builds the same 16-bit context from
// already-known pixels and feeds a bit into ArithEncoder instead of
// reading one out of ArithDecoder.
type GRDProc struct {
	TPGDON bool
	GBAt   [8]int32
}

// NewGRDProc returns a template-0 encoder configured with the standard AT
// pixel offsets and typical prediction enabled. Callers set TPGDON
// themselves: EncodeGeneric takes it from its options and EncodeSymbolDict
// turns it off.
func NewGRDProc() *GRDProc {
	return &GRDProc{TPGDON: true, GBAt: defaultGBAt}
}

// EncodeArith codes img's pixels into contexts via enc, returning the
// number of rows skipped by typical prediction (useful for duplicate-line
// statistics, not required for correctness).
func (p *GRDProc) EncodeArith(enc *ArithEncoder, contexts []ArithContext, img *Image) int {
	ltp := 0
	skipped := 0
	w, h := img.width, img.height

	for y := 0; y < h; y++ {
		if p.TPGDON {
			dup := 0
			if y > 0 && rowsEqual(img, y, y-1) {
				dup = 1
			}
			enc.Encode(&contexts[gbTypicalPredictionContext], dup^ltp)
			ltp = dup
		}

		if ltp != 0 {
			skipped++
			continue
		}

		line1 := uint32(img.GetPixel(1, int32(y-2)))
		line1 |= uint32(img.GetPixel(0, int32(y-2))) << 1
		line2 := uint32(img.GetPixel(2, int32(y-1)))
		line2 |= uint32(img.GetPixel(1, int32(y-1))) << 1
		line2 |= uint32(img.GetPixel(0, int32(y-1))) << 2
		line3 := uint32(0)

		for x := 0; x < w; x++ {
			bit := img.GetPixel(int32(x), int32(y))

			ctxVal := line3
			ctxVal |= uint32(img.GetPixel(int32(x)+p.GBAt[0], int32(y)+p.GBAt[1])) << 4
			ctxVal |= line2 << 5
			ctxVal |= line1 << 12
			ctxVal |= uint32(img.GetPixel(int32(x)+p.GBAt[2], int32(y)+p.GBAt[3])) << 10
			ctxVal |= uint32(img.GetPixel(int32(x)+p.GBAt[4], int32(y)+p.GBAt[5])) << 11
			ctxVal |= uint32(img.GetPixel(int32(x)+p.GBAt[6], int32(y)+p.GBAt[7])) << 15

			enc.Encode(&contexts[ctxVal], bit)

			line1 = ((line1 << 1) | uint32(img.GetPixel(int32(x)+2, int32(y-2)))) & 0x0007
			line2 = ((line2 << 1) | uint32(img.GetPixel(int32(x)+3, int32(y-1)))) & 0x001f
			line3 = ((line3 << 1) | uint32(bit)) & 0x000f
		}
	}
	return skipped
}

func rowsEqual(img *Image, y1, y2 int) bool {
	l1 := img.line(y1)
	l2 := img.line(y2)
	if l1 == nil || l2 == nil {
		return l1 == nil && l2 == nil
	}
	for i := range l1 {
		if l1[i] != l2[i] {
			return false
		}
	}
	return true
}
