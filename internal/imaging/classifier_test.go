package imaging

import (
	"testing"

	"github.com/jdeng/jbig2enc/internal/jbig2"
)

func filledComponent(w, h int) *jbig2.ConnectedComponent {
	img := jbig2.NewImage(int32(w), int32(h))
	img.Fill(true)
	return &jbig2.ConnectedComponent{
		Box:      jbig2.Rect{Left: 0, Top: 0, Right: w, Bottom: h},
		Bitmap:   img,
		Centroid: img.Centroid(),
	}
}

func TestClassifyByCorrelationRejectsOutOfRangeThresh(t *testing.T) {
	a := New()
	state := jbig2.NewClassifierState()
	if _, err := a.ClassifyByCorrelation(state, nil, 0.99, 0.5); err == nil {
		t.Fatal("expected error for threshold above 0.97")
	}
	if _, err := a.ClassifyByCorrelation(state, nil, 0.92, 0.05); err == nil {
		t.Fatal("expected error for weight below 0.1")
	}
}

func TestClassifyByCorrelationFirstComponentIsUnclassified(t *testing.T) {
	a := New()
	state := jbig2.NewClassifierState()
	cc := filledComponent(8, 8)

	assignment, err := a.ClassifyByCorrelation(state, []*jbig2.ConnectedComponent{cc}, 0.92, 0.5)
	if err != nil {
		t.Fatalf("ClassifyByCorrelation: %v", err)
	}
	if assignment[0] != unclassified {
		t.Fatalf("assignment[0] = %d, want unclassified with an empty template set", assignment[0])
	}
}

func TestClassifyByCorrelationMatchesIdenticalShape(t *testing.T) {
	a := New()
	state := jbig2.NewClassifierState()

	first := filledComponent(8, 8)
	state.BeginPage()
	tmplIdx := state.NewTemplate(first)
	state.AddComponent(first, tmplIdx)

	second := filledComponent(8, 8)
	assignment, err := a.ClassifyByCorrelation(state, []*jbig2.ConnectedComponent{second}, 0.92, 0.5)
	if err != nil {
		t.Fatalf("ClassifyByCorrelation: %v", err)
	}
	if assignment[0] != tmplIdx {
		t.Fatalf("assignment[0] = %d, want %d (identical shape should match the existing template)", assignment[0], tmplIdx)
	}
}

func TestAddPageCreatesTemplatesForUnclassifiedComponents(t *testing.T) {
	a := New()
	state := jbig2.NewClassifierState()
	cc := filledComponent(5, 5)

	if err := a.AddPage(state, []*jbig2.ConnectedComponent{cc}, []int{unclassified}); err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	if len(state.Templates) != 1 {
		t.Fatalf("len(Templates) = %d, want 1", len(state.Templates))
	}
	if state.Templates[0].RefCount != 1 {
		t.Fatalf("RefCount = %d, want 1", state.Templates[0].RefCount)
	}
}

func TestAddPageLengthMismatch(t *testing.T) {
	a := New()
	state := jbig2.NewClassifierState()
	cc := filledComponent(5, 5)
	if err := a.AddPage(state, []*jbig2.ConnectedComponent{cc}, nil); err == nil {
		t.Fatal("expected error for mismatched components/assignment lengths")
	}
}
