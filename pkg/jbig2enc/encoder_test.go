package jbig2enc

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPage(t *testing.T, dir, name string, marks [][2]int) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	for _, m := range marks {
		for dy := 0; dy < 3; dy++ {
			for dx := 0; dx < 3; dx++ {
				img.SetGray(m[0]+dx, m[1]+dy, color.Gray{Y: 0})
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestEncoderSinglePageProducesNonEmptyOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPage(t, dir, "page0.png", [][2]int{{2, 2}, {10, 10}})

	enc := New(Options{})
	if err := enc.AddPage(path); err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	out, err := enc.Produce()
	if err != nil {
		t.Fatalf("Produce: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected non-empty encoded output")
	}
}

func TestEncoderProduceWithoutPagesFails(t *testing.T) {
	enc := New(Options{})
	if _, err := enc.Produce(); err == nil {
		t.Fatal("expected an error producing output with no pages added")
	}
}

func TestEncoderTwoPagesShareRepeatedSymbol(t *testing.T) {
	dir := t.TempDir()
	p0 := writeTestPage(t, dir, "page0.png", [][2]int{{2, 2}, {10, 10}})
	p1 := writeTestPage(t, dir, "page1.png", [][2]int{{2, 2}})

	enc := New(Options{FullHeaders: true})
	if err := enc.AddPage(p0); err != nil {
		t.Fatalf("AddPage(p0): %v", err)
	}
	if err := enc.AddPage(p1); err != nil {
		t.Fatalf("AddPage(p1): %v", err)
	}

	symtab, pages, err := enc.ProducePages()
	if err != nil {
		t.Fatalf("ProducePages: %v", err)
	}
	if len(symtab) == 0 {
		t.Fatal("expected non-empty symbol table segment")
	}
	if len(pages) != 2 {
		t.Fatalf("len(pages) = %d, want 2", len(pages))
	}
	for i, p := range pages {
		if len(p) == 0 {
			t.Fatalf("page %d produced no bytes", i)
		}
	}
}

func TestEncodeGenericFileLosslessRoundTripsSize(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPage(t, dir, "page.png", [][2]int{{5, 5}})

	out, err := EncodeGenericFile(path, GenericOptions{FullHeaders: true})
	if err != nil {
		t.Fatalf("EncodeGenericFile: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected non-empty output")
	}
	// The page information segment's data follows the 13-byte file header
	// and its own 11-byte segment header; it starts with width and height.
	if len(out) < 32 {
		t.Fatalf("output too short for a page information segment: %d bytes", len(out))
	}
	w := uint32(out[24])<<24 | uint32(out[25])<<16 | uint32(out[26])<<8 | uint32(out[27])
	h := uint32(out[28])<<24 | uint32(out[29])<<16 | uint32(out[30])<<8 | uint32(out[31])
	if w != 20 || h != 20 {
		t.Fatalf("page size = %dx%d, want 20x20", w, h)
	}
}
