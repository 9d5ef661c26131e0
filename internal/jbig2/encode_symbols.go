package jbig2

import "errors"

// EncodeSymbolsOptions configures EncodeSymbols.
type EncodeSymbolsOptions struct {
	FullHeaders   bool
	Width, Height int
	XRes, YRes    int
}

// EncodeSymbols codes a single page as a standalone symbol-mode document: a
// symbol dictionary holding every template the page's components were
// classified against, a page information segment, and one immediate text
// region instancing them. It is the direct counterpart of EncodeGeneric for
// a page that goes through symbol classification instead of straight
// generic-region coding, used by callers that only ever have one page and
// so don't need MultiPage's global/per-page dictionary split.
func EncodeSymbols(components []*ConnectedComponent, assignment []int, templates []*Template, opts EncodeSymbolsOptions) (out []byte, err error) {
	defer recoverCoding(&err)

	if len(components) != len(assignment) {
		return nil, newError(InvalidInput, "EncodeSymbols", errors.New("components and assignment length mismatch"))
	}
	for _, idx := range assignment {
		if idx < 0 || idx >= len(templates) {
			return nil, newError(InvalidInput, "EncodeSymbols", errors.New("assignment references a template index out of range"))
		}
	}

	if opts.FullHeaders {
		out = WriteFileHeader(out, 1)
	}

	dictResult := EncodeSymbolDict(templates)

	dictSeg := NewSegment(0, segmentTypeSymbolDict, 0)
	dictSeg.Data = WriteSymbolDictHeader(nil, uint32(len(templates)), uint32(len(templates)))
	dictSeg.Data = append(dictSeg.Data, dictResult.Data...)
	out = dictSeg.Write(out)

	pageInfoSeg := NewSegment(1, segmentTypePageInfo, 1)
	pageInfoSeg.Data = WritePageInfoHeader(nil, opts.Width, opts.Height, opts.XRes, opts.YRes, false)
	out = pageInfoSeg.Write(out)

	textResult := EncodeTextRegion(components, assignment, templates, dictResult.SymMap, dictResult.SymCodeLen, 1)
	region := RegionInfo{Width: int32(opts.Width), Height: int32(opts.Height)}

	textSeg := NewSegment(2, segmentTypeTextRegionImmediate, 1)
	textSeg.Referred = []uint32{dictSeg.Number}
	textSeg.Data = WriteTextRegionHeader(nil, region, uint32(len(components)))
	textSeg.Data = append(textSeg.Data, textResult.Data...)
	out = textSeg.Write(out)

	if opts.FullHeaders {
		endPageSeg := NewSegment(3, segmentTypeEndOfPage, 1)
		out = endPageSeg.Write(out)
		endFileSeg := NewSegment(4, segmentTypeEndOfFile, 0)
		out = endFileSeg.Write(out)
	}

	return out, nil
}
