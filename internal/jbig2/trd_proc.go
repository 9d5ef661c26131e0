package jbig2

import "sort"

// textRegionBottom returns BY(box): the y coordinate of the box's
// bottom-left corner, the value every strip and cursor computation in a
// text region is keyed on.
func textRegionBottom(box Rect) int {
	return box.Top + box.Height() - 1
}

// TextRegionResult is the coded data of one text region segment plus the
// bounding box it covers, needed to fill in the region's RegionInfo.
type TextRegionResult struct {
	Data   []byte
	Region Rect
}

// alignBox corrects a component's recorded bounding box against the
// exemplar bitmap it was matched to, per the box-alignment step: since the
// classifier records the source component's bounding box rather than the
// exemplar's, a text region placing the exemplar at that box verbatim can
// be off by a pixel or two. The nine positions of the 3x3 neighborhood
// around the nominal box are tried and the one minimizing the Hamming
// distance between the component's own bitmap and the exemplar is kept.
// Boxes are left untouched when the two bitmaps aren't the same size,
// since the offsets aren't comparable pixel-for-pixel in that case.
func alignBox(box Rect, ccBitmap, tmplBitmap *Image) Rect {
	if ccBitmap == nil || tmplBitmap == nil {
		return box
	}
	if ccBitmap.Width() != tmplBitmap.Width() || ccBitmap.Height() != tmplBitmap.Height() {
		return box
	}

	bestDX, bestDY := 0, 0
	best := hammingDistance(ccBitmap, tmplBitmap, 0, 0)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if d := hammingDistance(ccBitmap, tmplBitmap, dx, dy); d < best {
				best, bestDX, bestDY = d, dx, dy
			}
		}
	}

	// hammingDistance pairs component pixel (x,y) with exemplar pixel
	// (x+dx, y+dy), so the exemplar lines up with the component when it is
	// placed at (-dx, -dy) from the nominal box.
	out := box
	out.Left -= bestDX
	out.Right -= bestDX
	out.Top -= bestDY
	out.Bottom -= bestDY
	return out
}

// hammingDistance counts differing pixels between a and b when b is
// sampled offset by (dx, dy) from a, out-of-bounds samples reading as 0.
func hammingDistance(a, b *Image, dx, dy int) int {
	count := 0
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			if a.GetPixel(int32(x), int32(y)) != b.GetPixel(int32(x+dx), int32(y+dy)) {
				count++
			}
		}
	}
	return count
}

// EncodeTextRegion writes one text region segment placing components at
// their recorded positions, each referencing a symbol from a dictionary
// already encoded with EncodeSymbolDict. It mirrors jbig2enc_textregion:
// components are grouped into horizontal strips of height stripWidth (one
// of 1, 2, 4, 8), each strip sorted left to right, and symbol placement is
// coded as a chain of small deltas off a running cursor rather than
// absolute coordinates. Each component's box is first corrected against
// its matched template with alignBox.
//
// assignment[i] gives the template index chosen for components[i];
// symMap translates a template index into the symbol ID the region codes
// for it: its position in the concatenation of the dictionaries the region
// refers to.
func EncodeTextRegion(components []*ConnectedComponent, assignment []int, templates []*Template, symMap []int, symCodeLen uint8, stripWidth int) *TextRegionResult {
	n := len(components)
	boxes := make([]Rect, n)
	for i, cc := range components {
		boxes[i] = alignBox(cc.Box, cc.Bitmap, templates[assignment[i]].Bitmap)
	}

	syms := make([]int, n)
	for i := range syms {
		syms[i] = i
	}
	sort.Slice(syms, func(a, b int) bool {
		return textRegionBottom(boxes[syms[a]]) < textRegionBottom(boxes[syms[b]])
	})

	arith := NewArithEncoder()
	iadt := NewArithIntEncoder()
	iafs := NewArithIntEncoder()
	iads := NewArithIntEncoder()
	iait := NewArithIntEncoder()
	iaid := NewArithIaidEncoder(symCodeLen)

	region := Rect{}
	if n > 0 {
		region = boxes[syms[0]]
	}

	stript := 0
	firsts := 0
	iadt.Encode(arith, 0)

	var strip []int
	for i := 0; i < n; {
		height := (textRegionBottom(boxes[syms[i]]) / stripWidth) * stripWidth
		strip = strip[:0]
		strip = append(strip, syms[i])

		j := i + 1
		for ; j < n; j++ {
			by := textRegionBottom(boxes[syms[j]])
			if by >= height+stripWidth {
				break
			}
			strip = append(strip, syms[j])
		}

		sort.Slice(strip, func(a, b int) bool {
			return boxes[strip[a]].Left < boxes[strip[b]].Left
		})

		deltat := height - stript
		iadt.Encode(arith, deltat/stripWidth)
		stript = height

		curs := 0
		for k, sym := range strip {
			box := boxes[sym]
			region = unionRect(region, box)

			if k == 0 {
				deltafs := box.Left - firsts
				iafs.Encode(arith, deltafs)
				firsts += deltafs
				curs = firsts
			} else {
				deltas := box.Left - curs
				iads.Encode(arith, deltas)
				curs += deltas
			}

			if stripWidth > 1 {
				deltat := textRegionBottom(box) - stript
				iait.Encode(arith, deltat)
			}

			tmplIdx := assignment[sym]
			symid := symMap[tmplIdx]
			iaid.Encode(arith, uint32(symid))

			curs += templates[tmplIdx].Bitmap.Width() - 1
		}

		iads.EncodeOOB(arith)
		i = j
	}

	return &TextRegionResult{
		Data:   arith.Final(),
		Region: region,
	}
}

func unionRect(a, b Rect) Rect {
	if a == (Rect{}) {
		return b
	}
	out := a
	if b.Left < out.Left {
		out.Left = b.Left
	}
	if b.Top < out.Top {
		out.Top = b.Top
	}
	if b.Right > out.Right {
		out.Right = b.Right
	}
	if b.Bottom > out.Bottom {
		out.Bottom = b.Bottom
	}
	return out
}
