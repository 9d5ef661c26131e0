package jbig2

import "testing"

func TestEquivalentIdenticalBitmaps(t *testing.T) {
	a := NewImage(30, 30)
	fillCheckerboard(a)
	b := NewImage(30, 30)
	fillCheckerboard(b)

	if !Equivalent(a, b) {
		t.Fatal("identical bitmaps should be equivalent")
	}
}

func TestEquivalentDifferentSizesRejected(t *testing.T) {
	a := NewImage(30, 30)
	b := NewImage(20, 30)
	if Equivalent(a, b) {
		t.Fatal("different sized bitmaps should never be equivalent")
	}
}

func TestEquivalentGrosslyDifferentRejected(t *testing.T) {
	a := NewImage(40, 40)
	b := NewImage(40, 40)
	a.Fill(true)
	// b stays blank: XOR count equals a's full ON count, far past the 25%
	// fast-reject threshold.
	if Equivalent(a, b) {
		t.Fatal("all-black vs all-white should not be equivalent")
	}
}

func TestEquivalentMinorNoiseAccepted(t *testing.T) {
	a := NewImage(30, 30)
	fillCheckerboard(a)
	b := NewImage(30, 30)
	fillCheckerboard(b)
	// Flip a single pixel, scattered noise within tolerance.
	b.SetPixel(5, 5, 1-b.GetPixel(5, 5))

	if !Equivalent(a, b) {
		t.Fatal("one flipped pixel out of 900 should still be equivalent")
	}
}

func TestXORCountMismatchSize(t *testing.T) {
	a := NewImage(10, 10)
	b := NewImage(5, 5)
	if XORCount(a, b) != -1 {
		t.Fatal("expected -1 for mismatched sizes")
	}
}

func TestPopCountAndCentroid(t *testing.T) {
	img := NewImage(4, 4)
	img.SetPixel(0, 0, 1)
	img.SetPixel(3, 3, 1)
	if got := img.PopCount(); got != 2 {
		t.Fatalf("PopCount() = %d, want 2", got)
	}
	c := img.Centroid()
	if c.X != 1 || c.Y != 1 {
		t.Fatalf("Centroid() = %+v, want {1 1}", c)
	}
}

func TestHoleCountRing(t *testing.T) {
	img := NewImage(5, 5)
	for x := 0; x < 5; x++ {
		img.SetPixel(int32(x), 0, 1)
		img.SetPixel(int32(x), 4, 1)
	}
	for y := 0; y < 5; y++ {
		img.SetPixel(0, int32(y), 1)
		img.SetPixel(4, int32(y), 1)
	}
	if got := img.HoleCount(); got != 1 {
		t.Fatalf("HoleCount() = %d, want 1", got)
	}
}
