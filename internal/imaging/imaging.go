// Package imaging is the one concrete, swappable implementation of
// internal/jbig2's ImageSource and Classifier interfaces shipped with this
// module, so the CLI and tests can run end to end without an external
// collaborator. Nothing in internal/jbig2 imports this package; the
// dependency runs the other way, through cmd/jbig2enc wiring an Adapter
// into the core.
package imaging

import (
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/jdeng/jbig2enc/internal/jbig2"
)

// Adapter is the default ImageSource and Classifier implementation. It
// carries no state of its own; every method is a pure function of its
// arguments.
type Adapter struct{}

// New returns a ready-to-use Adapter.
func New() *Adapter { return &Adapter{} }

// ReadImage decodes path with the standard library's image package,
// registering PNG, JPEG and GIF decoders (the formats a scanning pipeline
// is likely to hand this encoder), and flattens the result into a RawImage
// at 8 bits per pixel gray or 24 bits per pixel RGB depending on the
// source's color model.
func (a *Adapter) ReadImage(path string) (*jbig2.RawImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return fromStdImage(img), nil
}

// fromStdImage converts a decoded image.Image into a RawImage, preserving
// grayscale sources at 8 bpp and flattening anything else to 24 bpp RGB.
func fromStdImage(img image.Image) *jbig2.RawImage {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if gray, ok := img.(*image.Gray); ok {
		out := &jbig2.RawImage{Width: w, Height: h, Depth: 8, Stride: w}
		out.Pix = make([]byte, w*h)
		for y := 0; y < h; y++ {
			copy(out.Pix[y*w:(y+1)*w], gray.Pix[y*gray.Stride:y*gray.Stride+w])
		}
		return out
	}

	out := &jbig2.RawImage{Width: w, Height: h, Depth: 24, Stride: w * 3}
	out.Pix = make([]byte, out.Stride*h)
	for y := 0; y < h; y++ {
		row := out.Pix[y*out.Stride : (y+1)*out.Stride]
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			row[x*3] = byte(r >> 8)
			row[x*3+1] = byte(g >> 8)
			row[x*3+2] = byte(b >> 8)
		}
	}
	return out
}

// ToGray converts a depth-24 RawImage to 8 bits per pixel using the
// standard ITU-R BT.601 luma weights; a raster already at depth 8 is
// copied unchanged, and any other depth is rejected with an error.
func (a *Adapter) ToGray(src *jbig2.RawImage) (*jbig2.RawImage, error) {
	if src == nil {
		return nil, errors.New("imaging: nil source image")
	}
	if src.Depth == 8 {
		out := &jbig2.RawImage{Width: src.Width, Height: src.Height, Depth: 8, Stride: src.Width}
		out.Pix = make([]byte, len(src.Pix))
		copy(out.Pix, src.Pix)
		return out, nil
	}
	if src.Depth != 24 {
		return nil, errors.New("imaging: unsupported source depth")
	}

	out := &jbig2.RawImage{Width: src.Width, Height: src.Height, Depth: 8, Stride: src.Width}
	out.Pix = make([]byte, src.Width*src.Height)
	for y := 0; y < src.Height; y++ {
		srcRow := src.Pix[y*src.Stride : (y+1)*src.Stride]
		dstRow := out.Pix[y*out.Stride : (y+1)*out.Stride]
		for x := 0; x < src.Width; x++ {
			r, g, b := srcRow[x*3], srcRow[x*3+1], srcRow[x*3+2]
			dstRow[x] = byte((299*int(r) + 587*int(g) + 114*int(b)) / 1000)
		}
	}
	return out, nil
}
