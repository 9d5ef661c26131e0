package imaging

import (
	"errors"
	"math"

	"github.com/jdeng/jbig2enc/internal/jbig2"
)

// unclassified marks a component ClassifyByCorrelation could not match to
// any existing template above thresh; AddPage turns it into a fresh
// template via ClassifierState.NewTemplate.
const unclassified = -1

// ClassifyByCorrelation matches each component against the classifier
// state's existing templates using normalized cross-correlation of their
// centroid-centered bitmaps, combined with how close the two centroids
// land relative to the component's own size — weight trades off the two
// the same way the original jbCorrelation classifier's rankhaus parameter
// does. A component that scores below thresh against every template is
// left unclassified for AddPage to turn into a new template.
func (a *Adapter) ClassifyByCorrelation(state *jbig2.ClassifierState, comps []*jbig2.ConnectedComponent, thresh, weight float64) ([]int, error) {
	if thresh < 0.4 || thresh > 0.97 {
		return nil, errors.New("imaging: correlation threshold out of range [0.4,0.97]")
	}
	if weight < 0.1 || weight > 0.9 {
		return nil, errors.New("imaging: correlation weight out of range [0.1,0.9]")
	}

	assignment := make([]int, len(comps))
	for i, cc := range comps {
		best := unclassified
		bestScore := 0.0
		for ti, tmpl := range state.Templates {
			score := combinedScore(cc, tmpl, weight)
			if score > bestScore {
				bestScore = score
				best = ti
			}
		}
		if best != unclassified && bestScore >= thresh {
			assignment[i] = best
		} else {
			assignment[i] = unclassified
		}
	}
	return assignment, nil
}

// AddPage folds one page's components into state: each component with an
// existing template match is recorded against it, and every unclassified
// component becomes the exemplar of a fresh template, exactly the
// first-example-is-exemplar rule spec.md §3 describes.
func (a *Adapter) AddPage(state *jbig2.ClassifierState, comps []*jbig2.ConnectedComponent, assignment []int) error {
	if len(comps) != len(assignment) {
		return errors.New("imaging: components and assignment length mismatch")
	}
	state.BeginPage()
	for i, cc := range comps {
		idx := assignment[i]
		if idx == unclassified {
			idx = state.NewTemplate(cc)
		}
		state.AddComponent(cc, idx)
	}
	return nil
}

// combinedScore blends bitmap correlation with centroid proximity.
func combinedScore(cc *jbig2.ConnectedComponent, tmpl *jbig2.Template, weight float64) float64 {
	corr := correlationScore(cc.Bitmap, tmpl.Bitmap)

	dx := float64(cc.Centroid.X - tmpl.Centroid.X)
	dy := float64(cc.Centroid.Y - tmpl.Centroid.Y)
	dist := math.Sqrt(dx*dx + dy*dy)
	maxDim := float64(intMax(cc.Bitmap.Width(), cc.Bitmap.Height()))
	if maxDim == 0 {
		maxDim = 1
	}
	closeness := 1 - math.Min(dist/maxDim, 1)

	return weight*corr + (1-weight)*closeness
}

// correlationScore is the normalized cross-correlation of two bitmaps
// centered on their own centroids: (AND count)^2 / (popcount A * popcount
// B), the same score jbCorrelation uses to decide template membership. It
// tolerates bitmaps of different sizes (a glyph's bounding box can vary by
// a pixel or two between instances) by overlaying both on a canvas sized
// to the larger of the two and aligning centroids rather than corners.
func correlationScore(a, b *jbig2.Image) float64 {
	if a == nil || b == nil {
		return 0
	}
	na, nb := a.PopCount(), b.PopCount()
	if na == 0 || nb == 0 {
		return 0
	}

	w := intMax(a.Width(), b.Width())
	h := intMax(a.Height(), b.Height())
	ca, cb := a.Centroid(), b.Centroid()
	offAx, offAy := w/2-ca.X, h/2-ca.Y
	offBx, offBy := w/2-cb.X, h/2-cb.Y

	and := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if a.GetPixel(int32(x-offAx), int32(y-offAy)) == 1 && b.GetPixel(int32(x-offBx), int32(y-offBy)) == 1 {
				and++
			}
		}
	}
	return float64(and*and) / (float64(na) * float64(nb))
}

func intMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}
