package jbig2

import "testing"

func newTestTemplate(w, h int) *Template {
	img := NewImage(int32(w), int32(h))
	fillCheckerboard(img)
	return &Template{Bitmap: img}
}

func TestEncodeSymbolDictEmpty(t *testing.T) {
	result := EncodeSymbolDict(nil)
	if len(result.SymMap) != 0 {
		t.Fatalf("SymMap length = %d, want 0", len(result.SymMap))
	}
	if result.SymCodeLen != 0 {
		t.Fatalf("SymCodeLen = %d, want 0", result.SymCodeLen)
	}
	if len(result.Data) == 0 {
		t.Fatal("expected non-empty coded data even for an empty dictionary (IAEX terminators still coded)")
	}
}

func TestEncodeSymbolDictSymMapIsPermutation(t *testing.T) {
	templates := []*Template{
		newTestTemplate(5, 10),
		newTestTemplate(3, 4),
		newTestTemplate(8, 4),
		newTestTemplate(2, 10),
	}
	result := EncodeSymbolDict(templates)

	if len(result.SymMap) != len(templates) {
		t.Fatalf("SymMap length = %d, want %d", len(result.SymMap), len(templates))
	}
	seen := make(map[int]bool)
	for _, pos := range result.SymMap {
		if pos < 0 || pos >= len(templates) {
			t.Fatalf("SymMap entry %d out of range", pos)
		}
		if seen[pos] {
			t.Fatalf("SymMap position %d assigned twice", pos)
		}
		seen[pos] = true
	}
}

func TestEncodeSymbolDictSymCodeLen(t *testing.T) {
	cases := []struct {
		n    int
		want uint8
	}{
		{1, 0}, {2, 1}, {3, 2}, {4, 2}, {5, 3},
	}
	for _, c := range cases {
		templates := make([]*Template, c.n)
		for i := range templates {
			templates[i] = newTestTemplate(4, 4)
		}
		result := EncodeSymbolDict(templates)
		if result.SymCodeLen != c.want {
			t.Errorf("n=%d: SymCodeLen = %d, want %d", c.n, result.SymCodeLen, c.want)
		}
	}
}

func TestEncodeSymbolDictHeightOrderingGroupsEqualHeights(t *testing.T) {
	// Two symbols share height 4 with different widths; one symbol has a
	// distinct height. Sorting by height then width puts 2x4 first, 9x4
	// second and 5x7 last.
	templates := []*Template{
		newTestTemplate(9, 4),
		newTestTemplate(2, 4),
		newTestTemplate(5, 7),
	}
	result := EncodeSymbolDict(templates)
	positions := map[int]bool{}
	for _, pos := range result.SymMap {
		positions[pos] = true
	}
	if len(positions) != 3 {
		t.Fatalf("expected 3 distinct positions, got %d", len(positions))
	}
	want := []int{1, 0, 2}
	for i, pos := range result.SymMap {
		if pos != want[i] {
			t.Fatalf("SymMap = %v, want %v", result.SymMap, want)
		}
	}
}

func TestEncodeSymbolDictDeterministic(t *testing.T) {
	build := func() []*Template {
		return []*Template{
			newTestTemplate(5, 10),
			newTestTemplate(3, 4),
		}
	}
	r1 := EncodeSymbolDict(build())
	r2 := EncodeSymbolDict(build())
	if len(r1.Data) != len(r2.Data) {
		t.Fatalf("encoding is not deterministic: lengths %d vs %d", len(r1.Data), len(r2.Data))
	}
	for i := range r1.Data {
		if r1.Data[i] != r2.Data[i] {
			t.Fatalf("encoding is not deterministic: byte %d differs", i)
		}
	}
}

func TestEncodeSymbolDictPanicsOverMaxExportSymbols(t *testing.T) {
	templates := make([]*Template, JBig2MaxExportSymbols+1)
	oneByOne := newTestTemplate(1, 1)
	for i := range templates {
		templates[i] = oneByOne
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic for exceeding JBig2MaxExportSymbols")
		}
		e, ok := r.(*Error)
		if !ok || e.Kind != CodingError {
			t.Fatalf("panic value = %#v, want a *Error with Kind CodingError", r)
		}
	}()
	EncodeSymbolDict(templates)
}
