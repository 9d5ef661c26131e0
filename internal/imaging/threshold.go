package imaging

import (
	"errors"
	"image"

	"golang.org/x/image/draw"

	"github.com/jdeng/jbig2enc/internal/jbig2"
)

// Threshold binarizes an 8-bpp RawImage at a fixed cut point: a pixel
// darker than t becomes foreground (bit 1), matching the JBIG2 convention
// that a set bit is ink. t is expected in [0,255]; the caller (the CLI's
// -T/-G flags) is responsible for validating that range before calling in.
func (a *Adapter) Threshold(src *jbig2.RawImage, t int) (*jbig2.Image, error) {
	if src == nil {
		return nil, errors.New("imaging: nil source image")
	}
	if src.Depth != 8 {
		return nil, errors.New("imaging: threshold requires an 8-bpp raster")
	}

	out := jbig2.NewImage(int32(src.Width), int32(src.Height))
	for y := 0; y < src.Height; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+src.Width]
		for x := 0; x < src.Width; x++ {
			if int(row[x]) < t {
				out.SetPixel(int32(x), int32(y), 1)
			}
		}
	}
	return out, nil
}

// ScaleThenThreshold upsamples an 8-bpp RawImage by factor (2 or 4) with a
// Catmull-Rom resampler before thresholding, matching the CLI's -2/-4
// flags, which trade file size for smoother edges on low-resolution scans.
func (a *Adapter) ScaleThenThreshold(src *jbig2.RawImage, factor int, t int) (*jbig2.Image, error) {
	if src == nil {
		return nil, errors.New("imaging: nil source image")
	}
	if src.Depth != 8 {
		return nil, errors.New("imaging: scale-then-threshold requires an 8-bpp raster")
	}
	if factor != 2 && factor != 4 {
		return nil, errors.New("imaging: scale factor must be 2 or 4")
	}

	srcImg := image.NewGray(image.Rect(0, 0, src.Width, src.Height))
	for y := 0; y < src.Height; y++ {
		copy(srcImg.Pix[y*srcImg.Stride:y*srcImg.Stride+src.Width], src.Pix[y*src.Stride:y*src.Stride+src.Width])
	}

	dstW, dstH := src.Width*factor, src.Height*factor
	dstImg := image.NewGray(image.Rect(0, 0, dstW, dstH))
	draw.CatmullRom.Scale(dstImg, dstImg.Bounds(), srcImg, srcImg.Bounds(), draw.Src, nil)

	scaled := &jbig2.RawImage{Width: dstW, Height: dstH, Depth: 8, Stride: dstImg.Stride}
	scaled.Pix = make([]byte, len(dstImg.Pix))
	copy(scaled.Pix, dstImg.Pix)

	return (&Adapter{}).Threshold(scaled, t)
}
