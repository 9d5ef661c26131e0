package imaging

import (
	"errors"
	"sort"

	"github.com/jdeng/jbig2enc/internal/jbig2"
)

// unionFind is a small disjoint-set structure over provisional component
// labels, used by the two-pass connected-components scan below.
type unionFind struct {
	parent []int
}

func newUnionFind() *unionFind {
	return &unionFind{parent: []int{0}} // label 0 is reserved for "background"
}

func (u *unionFind) newLabel() int {
	u.parent = append(u.parent, len(u.parent))
	return len(u.parent) - 1
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[rb] = ra
	}
}

// ConnectedComponents extracts every 8-connected foreground component from
// src using a two-pass union-find labeling scan, then crops each
// component's bitmap and computes its centroid, mirroring the
// boxa/pixa/centroid triple Leptonica's pixConnComp returns.
func (a *Adapter) ConnectedComponents(src *jbig2.Image) ([]*jbig2.ConnectedComponent, error) {
	if src == nil {
		return nil, errors.New("imaging: nil source image")
	}
	w, h := src.Width(), src.Height()
	if w == 0 || h == 0 {
		return nil, nil
	}

	labels := make([]int, w*h)
	uf := newUnionFind()

	neighbors := [][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if src.GetPixel(int32(x), int32(y)) == 0 {
				continue
			}
			var found []int
			for _, d := range neighbors {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				if l := labels[ny*w+nx]; l != 0 {
					found = append(found, l)
				}
			}
			if len(found) == 0 {
				labels[y*w+x] = uf.newLabel()
				continue
			}
			label := found[0]
			for _, l := range found[1:] {
				uf.union(label, l)
			}
			labels[y*w+x] = label
		}
	}

	type box struct{ left, top, right, bottom int }
	boxes := make(map[int]*box)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			l := labels[y*w+x]
			if l == 0 {
				continue
			}
			root := uf.find(l)
			b, ok := boxes[root]
			if !ok {
				boxes[root] = &box{left: x, top: y, right: x + 1, bottom: y + 1}
				continue
			}
			if x < b.left {
				b.left = x
			}
			if x+1 > b.right {
				b.right = x + 1
			}
			if y < b.top {
				b.top = y
			}
			if y+1 > b.bottom {
				b.bottom = y + 1
			}
		}
	}

	var out []*jbig2.ConnectedComponent
	for root, b := range boxes {
		cw, ch := b.right-b.left, b.bottom-b.top
		bmp := jbig2.NewImage(int32(cw), int32(ch))
		for y := b.top; y < b.bottom; y++ {
			for x := b.left; x < b.right; x++ {
				if labels[y*w+x] != 0 && uf.find(labels[y*w+x]) == root {
					bmp.SetPixel(int32(x-b.left), int32(y-b.top), 1)
				}
			}
		}
		out = append(out, &jbig2.ConnectedComponent{
			Box:      jbig2.Rect{Left: b.left, Top: b.top, Right: b.right, Bottom: b.bottom},
			Bitmap:   bmp,
			Centroid: bmp.Centroid(),
		})
	}

	// Map iteration order is randomized; sort into a deterministic,
	// reading-order sequence so that encoding the same page twice (the
	// bit-equality invariant, spec §8) never depends on map hash seeding.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Box.Top != out[j].Box.Top {
			return out[i].Box.Top < out[j].Box.Top
		}
		return out[i].Box.Left < out[j].Box.Left
	})
	return out, nil
}
