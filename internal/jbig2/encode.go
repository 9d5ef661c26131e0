package jbig2

// EncodeGenericOptions configures EncodeGeneric.
type EncodeGenericOptions struct {
	FullHeaders bool
	XRes, YRes  int
	// TPGDON enables typical prediction (duplicate-line removal), matching
	// jbig2_encode_generic's duplicate_line_removal parameter.
	TPGDON bool
}

// EncodeGeneric codes a single bitmap as a standalone generic-region
// document: a page information segment, one immediate generic region
// segment holding the whole page, and (when FullHeaders is set) a file
// header plus end-of-page/end-of-file segments. It is the direct mirror
// of jbig2_encode_generic, used for pages the caller chooses not to run
// through symbol classification at all.
func EncodeGeneric(img *Image, opts EncodeGenericOptions) (out []byte, err error) {
	defer recoverCoding(&err)

	if img == nil {
		return nil, newError(InvalidInput, "EncodeGeneric", errNilImage)
	}

	if opts.FullHeaders {
		out = WriteFileHeader(out, 1)
	}

	pageInfoSeg := NewSegment(0, segmentTypePageInfo, 1)
	pageInfoSeg.Data = WritePageInfoHeader(nil, img.Width(), img.Height(), opts.XRes, opts.YRes, false)
	out = pageInfoSeg.Write(out)

	grd := NewGRDProc()
	grd.TPGDON = opts.TPGDON
	contexts := make([]ArithContext, 1<<16)
	arith := NewArithEncoder()
	grd.EncodeArith(arith, contexts, img)

	genSeg := NewSegment(1, segmentTypeGenericRegionImm, 1)
	region := RegionInfo{Width: int32(img.Width()), Height: int32(img.Height())}
	genSeg.Data = WriteGenericRegionHeader(nil, region, opts.TPGDON)
	genSeg.Data = append(genSeg.Data, arith.Final()...)
	out = genSeg.Write(out)

	if opts.FullHeaders {
		endPageSeg := NewSegment(2, segmentTypeEndOfPage, 1)
		out = endPageSeg.Write(out)
		endFileSeg := NewSegment(3, segmentTypeEndOfFile, 0)
		out = endFileSeg.Write(out)
	}

	return out, nil
}
