package imaging

import (
	"image"
	"image/color"

	"github.com/jdeng/jbig2enc/internal/jbig2"
)

// ToStdImage renders a binary Image as a standard library grayscale image,
// black where the bit is set, white otherwise, for the CLI's -O dump and
// -j graphics output.
func ToStdImage(img *jbig2.Image) image.Image {
	w, h := img.Width(), img.Height()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := byte(255)
			if img.GetPixel(int32(x), int32(y)) == 1 {
				v = 0
			}
			out.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return out
}

// minGraphicsPixels is the pixel-count floor below which a candidate
// graphics or text portion is treated as empty, matching the pixCountPixels
// check the reference segmenter runs before deciding a page has a graphics
// portion worth pulling out.
const minGraphicsPixels = 100

// SegmentGraphics separates a thresholded page into a text portion and a
// graphics portion: two dilation passes over bw build a mask over the
// page's dense, non-text regions (halftones, photos, line art), which is
// then subtracted from bw so only text remains. It mirrors segment_image's
// mask/seed/dilate/subtract pipeline, approximated with the two
// morphological primitives this package exposes rather than the rank
// filters the original composes. A nil graphics return means no graphics
// portion was found; a nil text return means the whole page was graphics.
func SegmentGraphics(a *Adapter, bw *jbig2.Image) (text, graphics *jbig2.Image, err error) {
	seed, err := a.MorphologySequence(bw, []jbig2.MorphologyOp{{Op: "dilate", Width: 6, Height: 6}})
	if err != nil {
		return nil, nil, err
	}
	mask, err := a.MorphologySequence(seed, []jbig2.MorphologyOp{{Op: "dilate", Width: 8, Height: 8}})
	if err != nil {
		return nil, nil, err
	}

	if mask.PopCount() < minGraphicsPixels {
		return bw, nil, nil
	}

	w, h := bw.Width(), bw.Height()
	textOut := jbig2.NewImage(int32(w), int32(h))
	graphicsOut := jbig2.NewImage(int32(w), int32(h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if bw.GetPixel(int32(x), int32(y)) != 1 {
				continue
			}
			if mask.GetPixel(int32(x), int32(y)) == 1 {
				graphicsOut.SetPixel(int32(x), int32(y), 1)
			} else {
				textOut.SetPixel(int32(x), int32(y), 1)
			}
		}
	}

	if graphicsOut.PopCount() < minGraphicsPixels {
		return bw, nil, nil
	}
	if textOut.PopCount() < minGraphicsPixels {
		textOut = nil
	}
	return textOut, graphicsOut, nil
}
