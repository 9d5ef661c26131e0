package jbig2

import "testing"

func TestAlignBoxIdenticalBitmapKeepsBox(t *testing.T) {
	img := NewImage(10, 10)
	fillCheckerboard(img)
	box := Rect{Left: 5, Top: 5, Right: 15, Bottom: 15}
	if got := alignBox(box, img, img); got != box {
		t.Fatalf("alignBox() = %+v, want unchanged %+v", got, box)
	}
}

func TestAlignBoxMismatchedSizeKeepsBox(t *testing.T) {
	cc := NewImage(10, 10)
	tmpl := NewImage(12, 10)
	box := Rect{Left: 5, Top: 5, Right: 15, Bottom: 15}
	if got := alignBox(box, cc, tmpl); got != box {
		t.Fatalf("alignBox() with mismatched sizes = %+v, want unchanged %+v", got, box)
	}
}

func TestAlignBoxShiftsTowardBestMatch(t *testing.T) {
	// tmpl has a single marker pixel at (5,5); cc has the same marker one
	// column to the right, at (6,5). The exemplar therefore has to be placed
	// one column further right for its marker to land on the component's,
	// so the box moves from Left 5 to Left 6.
	tmpl := NewImage(10, 10)
	tmpl.SetPixel(5, 5, 1)
	cc := NewImage(10, 10)
	cc.SetPixel(6, 5, 1)

	box := Rect{Left: 5, Top: 5, Right: 15, Bottom: 15}
	got := alignBox(box, cc, tmpl)
	want := Rect{Left: 6, Top: 5, Right: 16, Bottom: 15}
	if got != want {
		t.Fatalf("alignBox() = %+v, want %+v", got, want)
	}
}

func TestEncodeTextRegionEmpty(t *testing.T) {
	result := EncodeTextRegion(nil, nil, nil, nil, 0, 1)
	if result.Region != (Rect{}) {
		t.Fatalf("Region = %+v, want zero value for no components", result.Region)
	}
	if len(result.Data) == 0 {
		t.Fatal("expected non-empty coded data even with no components (initial IADT still coded)")
	}
}

func TestEncodeTextRegionSingleComponent(t *testing.T) {
	box := Rect{Left: 5, Top: 10, Right: 15, Bottom: 20}
	cc := &ConnectedComponent{Box: box}
	templates := []*Template{newTestTemplate(10, 10)}
	symMap := []int{0}

	result := EncodeTextRegion([]*ConnectedComponent{cc}, []int{0}, templates, symMap, 1, 1)

	if result.Region != box {
		t.Fatalf("Region = %+v, want %+v", result.Region, box)
	}
	if len(result.Data) == 0 {
		t.Fatal("expected non-empty coded data")
	}
}

func TestEncodeTextRegionRegionBoundsUnionOfComponents(t *testing.T) {
	boxes := []Rect{
		{Left: 5, Top: 10, Right: 15, Bottom: 20},
		{Left: 0, Top: 30, Right: 8, Bottom: 42},
		{Left: 40, Top: 5, Right: 50, Bottom: 12},
	}
	components := make([]*ConnectedComponent, len(boxes))
	assignment := make([]int, len(boxes))
	for i, b := range boxes {
		components[i] = &ConnectedComponent{Box: b}
		assignment[i] = 0
	}
	templates := []*Template{newTestTemplate(10, 10)}
	symMap := []int{0}

	result := EncodeTextRegion(components, assignment, templates, symMap, 1, 1)

	want := Rect{Left: 0, Top: 5, Right: 50, Bottom: 42}
	if result.Region != want {
		t.Fatalf("Region = %+v, want %+v", result.Region, want)
	}
}

func TestEncodeTextRegionMultipleStripsDeterministic(t *testing.T) {
	build := func() ([]*ConnectedComponent, []int, []*Template, []int) {
		boxes := []Rect{
			{Left: 2, Top: 0, Right: 10, Bottom: 8},
			{Left: 12, Top: 1, Right: 20, Bottom: 9},
			{Left: 2, Top: 20, Right: 10, Bottom: 28},
		}
		templates := []*Template{newTestTemplate(8, 8)}
		components := make([]*ConnectedComponent, len(boxes))
		assignment := make([]int, len(boxes))
		for i, b := range boxes {
			components[i] = &ConnectedComponent{Box: b}
			assignment[i] = 0
		}
		return components, assignment, templates, []int{0}
	}

	c1, a1, t1, s1 := build()
	r1 := EncodeTextRegion(c1, a1, t1, s1, 1, 1)
	c2, a2, t2, s2 := build()
	r2 := EncodeTextRegion(c2, a2, t2, s2, 1, 1)

	if len(r1.Data) != len(r2.Data) {
		t.Fatalf("encoding is not deterministic: lengths %d vs %d", len(r1.Data), len(r2.Data))
	}
	for i := range r1.Data {
		if r1.Data[i] != r2.Data[i] {
			t.Fatalf("encoding is not deterministic: byte %d differs", i)
		}
	}
}

func TestTextRegionBottom(t *testing.T) {
	box := Rect{Left: 0, Top: 10, Right: 5, Bottom: 15}
	if got := textRegionBottom(box); got != 14 {
		t.Fatalf("textRegionBottom() = %d, want 14", got)
	}
}

func TestUnionRect(t *testing.T) {
	a := Rect{Left: 1, Top: 1, Right: 5, Bottom: 5}
	b := Rect{Left: 3, Top: 0, Right: 8, Bottom: 4}
	got := unionRect(a, b)
	want := Rect{Left: 1, Top: 0, Right: 8, Bottom: 5}
	if got != want {
		t.Fatalf("unionRect() = %+v, want %+v", got, want)
	}

	if got := unionRect(Rect{}, b); got != b {
		t.Fatalf("unionRect(zero, b) = %+v, want %+v", got, b)
	}
}
