package imaging

import (
	"testing"

	"github.com/jdeng/jbig2enc/internal/jbig2"
)

// filledBlock returns a bw image that is all-set within [x0,y0)-[x1,y1).
func filledBlock(w, h int, x0, y0, x1, y1 int) *jbig2.Image {
	img := jbig2.NewImage(int32(w), int32(h))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetPixel(int32(x), int32(y), 1)
		}
	}
	return img
}

func TestSegmentGraphicsSeparatesDenseBlockFromText(t *testing.T) {
	a := New()
	w, h := 80, 80

	img := jbig2.NewImage(int32(w), int32(h))
	// a dense graphics block, large enough to survive two dilation passes
	// and the pixel-count floor.
	for y := 10; y < 40; y++ {
		for x := 10; x < 40; x++ {
			img.SetPixel(int32(x), int32(y), 1)
		}
	}
	// a sparse scattering of isolated text-like marks far from the block.
	for i := 0; i < 20; i++ {
		img.SetPixel(int32(50+i), int32(60), 1)
		img.SetPixel(int32(50+i), int32(70), 1)
	}

	text, graphics, err := SegmentGraphics(a, img)
	if err != nil {
		t.Fatalf("SegmentGraphics: %v", err)
	}
	if graphics == nil {
		t.Fatal("expected a non-nil graphics portion")
	}
	if graphics.PopCount() < minGraphicsPixels {
		t.Fatalf("graphics.PopCount() = %d, want >= %d", graphics.PopCount(), minGraphicsPixels)
	}
	if text != nil && text.PopCount() >= img.PopCount() {
		t.Fatal("text portion should not retain the whole page once graphics were extracted")
	}
}

func TestSegmentGraphicsReturnsOriginalWhenNoGraphics(t *testing.T) {
	a := New()
	w, h := 40, 40

	img := jbig2.NewImage(int32(w), int32(h))
	for i := 0; i < 5; i++ {
		img.SetPixel(int32(5+i), int32(5), 1)
	}

	text, graphics, err := SegmentGraphics(a, img)
	if err != nil {
		t.Fatalf("SegmentGraphics: %v", err)
	}
	if graphics != nil {
		t.Fatalf("expected no graphics portion for a sparse page, got PopCount()=%d", graphics.PopCount())
	}
	if text != img {
		t.Fatal("expected the original image back when no graphics portion is found")
	}
}

func TestToStdImageMapsSetBitsToBlack(t *testing.T) {
	img := jbig2.NewImage(4, 4)
	img.SetPixel(1, 1, 1)

	std := ToStdImage(img)
	bounds := std.Bounds()
	if bounds.Dx() != 4 || bounds.Dy() != 4 {
		t.Fatalf("bounds = %v, want 4x4", bounds)
	}
	r, g, b, _ := std.At(1, 1).RGBA()
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("set pixel should render black, got (%d,%d,%d)", r, g, b)
	}
	r, g, b, _ = std.At(0, 0).RGBA()
	if r == 0 && g == 0 && b == 0 {
		t.Fatal("unset pixel should not render black")
	}
}
