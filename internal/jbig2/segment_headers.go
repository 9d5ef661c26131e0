package jbig2

// defaultATBytes holds the four (x,y) AT pixel pairs every generic-region
// related segment header (symbol dictionary, generic region) in this
// encoder uses, as the signed bytes Annex 7.4.3.1.2 / 7.4.6.1.2 specify.
var defaultATBytes = [8]int8{3, -1, -3, -1, 2, -2, -2, -2}

func appendATBytes(dst []byte) []byte {
	for _, v := range defaultATBytes {
		dst = append(dst, byte(v))
	}
	return dst
}

// WritePageInfoHeader appends a page information segment's data (Annex
// 7.4.8.1): width, height, X and Y resolution, a flags byte and a
// striping field. This encoder never splits a page into stripes; the
// striping field is always written as 0x8000, i.e. the "striped" bit set
// with a maximum stripe size of 0.
func WritePageInfoHeader(dst []byte, width, height, xres, yres int, defaultPixelValue bool) []byte {
	dst = appendUint32(dst, uint32(width))
	dst = appendUint32(dst, uint32(height))
	dst = appendUint32(dst, uint32(xres))
	dst = appendUint32(dst, uint32(yres))

	var flags byte
	if defaultPixelValue {
		flags |= 0x04
	}
	dst = append(dst, flags)
	dst = appendUint16(dst, 0x8000)
	return dst
}

// WriteSymbolDictHeader appends a symbol dictionary segment's data header
// (Annex 7.4.3.1): a flags field selecting arithmetic coding with
// template 0 and no refinement, the four AT pixel pairs template 0 needs,
// and the exported/new symbol counts. The coded symbol data (from
// EncodeSymbolDict) follows immediately after.
func WriteSymbolDictHeader(dst []byte, exSyms, newSyms uint32) []byte {
	dst = appendUint16(dst, 0)
	dst = appendATBytes(dst)
	dst = appendUint32(dst, exSyms)
	dst = appendUint32(dst, newSyms)
	return dst
}

// WriteGenericRegionHeader appends a generic region segment's data header
// (Annex 7.4.6.1): the region's RegionInfo, a flags byte selecting
// template 0 and the TPGDON setting used to code it, and its AT pixels.
func WriteGenericRegionHeader(dst []byte, region RegionInfo, tpgdon bool) []byte {
	dst = WriteRegionInfo(dst, region)
	var flags byte
	if tpgdon {
		flags |= 0x08
	}
	dst = append(dst, flags)
	dst = appendATBytes(dst)
	return dst
}

// textRegionFlags is the fixed flags value every text region this encoder
// produces uses: arithmetic coding (SBHUFF=0), no refinement, strip size
// one row (LOGSBSTRIPS=0), bottom-left reference corner, OR combination.
const textRegionFlags uint16 = 0

// WriteTextRegionHeader appends a text region segment's data header
// (Annex 7.4.3/7.4.3.1.1): the region's RegionInfo, the text region flags,
// and the number of symbol instances it places. The coded symbol-instance
// data (from EncodeTextRegion) follows immediately after.
func WriteTextRegionHeader(dst []byte, region RegionInfo, numInstances uint32) []byte {
	dst = WriteRegionInfo(dst, region)
	dst = appendUint16(dst, textRegionFlags)
	dst = appendUint32(dst, numInstances)
	return dst
}
