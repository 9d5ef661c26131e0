package imaging

import (
	"errors"

	"github.com/jdeng/jbig2enc/internal/jbig2"
)

// MorphologySequence runs program's steps in order over src, used only by
// the external text/graphics segmentation path this encoder never drives
// itself (spec §6). Each step uses a rectangular structuring element of
// the given width and height, matching Leptonica's separable box
// morphology (pixErode/pixDilate/pixOpen/pixClose with a rectangle Sel).
func (a *Adapter) MorphologySequence(src *jbig2.Image, program []jbig2.MorphologyOp) (*jbig2.Image, error) {
	if src == nil {
		return nil, errors.New("imaging: nil source image")
	}
	cur := src
	for _, op := range program {
		if op.Width <= 0 || op.Height <= 0 {
			return nil, errors.New("imaging: morphology structuring element must be positive")
		}
		switch op.Op {
		case "erode":
			cur = erode(cur, op.Width, op.Height)
		case "dilate":
			cur = dilate(cur, op.Width, op.Height)
		case "open":
			cur = dilate(erode(cur, op.Width, op.Height), op.Width, op.Height)
		case "close":
			cur = erode(dilate(cur, op.Width, op.Height), op.Width, op.Height)
		default:
			return nil, errors.New("imaging: unknown morphology op " + op.Op)
		}
	}
	return cur, nil
}

// erode keeps a pixel set only when every pixel in its w x h neighborhood
// (anchored at its top-left corner) is also set.
func erode(src *jbig2.Image, w, h int) *jbig2.Image {
	out := jbig2.NewImage(int32(src.Width()), int32(src.Height()))
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			all := true
			for dy := 0; dy < h && all; dy++ {
				for dx := 0; dx < w; dx++ {
					if src.GetPixel(int32(x+dx), int32(y+dy)) == 0 {
						all = false
						break
					}
				}
			}
			if all {
				out.SetPixel(int32(x), int32(y), 1)
			}
		}
	}
	return out
}

// dilate sets a pixel when any pixel in the w x h block ending at it
// (the pixel is the block's bottom-right corner) is set, so set pixels
// spread right and down.
func dilate(src *jbig2.Image, w, h int) *jbig2.Image {
	out := jbig2.NewImage(int32(src.Width()), int32(src.Height()))
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			any := false
			for dy := 0; dy < h && !any; dy++ {
				for dx := 0; dx < w; dx++ {
					if src.GetPixel(int32(x-dx), int32(y-dy)) != 0 {
						any = true
						break
					}
				}
			}
			if any {
				out.SetPixel(int32(x), int32(y), 1)
			}
		}
	}
	return out
}
