package jbig2

// PopCount returns the number of set (ON) pixels in the image, used by
// the symbol comparator's fast-reject check.
func (img *Image) PopCount() int {
	if img == nil || img.data == nil {
		return 0
	}
	count := 0
	for y := 0; y < img.height; y++ {
		line := img.lineUnsafe(y)
		for x := 0; x < img.width; x++ {
			if readBit(line, x) != 0 {
				count++
			}
		}
	}
	return count
}

// XORCount returns the number of differing pixels between two same-size
// images, or -1 if the sizes differ. Equivalent does not call it; the
// comparator builds its own XOR image instead.
func XORCount(a, b *Image) int {
	if a == nil || b == nil || a.width != b.width || a.height != b.height {
		return -1
	}
	count := 0
	for y := 0; y < a.height; y++ {
		la := a.lineUnsafe(y)
		lb := b.lineUnsafe(y)
		for x := 0; x < a.width; x++ {
			if readBit(la, x) != readBit(lb, x) {
				count++
			}
		}
	}
	return count
}

// Centroid returns the center of mass of the ON pixels, falling back to
// the geometric center when the image is blank.
func (img *Image) Centroid() Point {
	if img == nil || img.data == nil || img.width == 0 || img.height == 0 {
		return Point{}
	}
	sumX, sumY, n := 0, 0, 0
	for y := 0; y < img.height; y++ {
		line := img.lineUnsafe(y)
		for x := 0; x < img.width; x++ {
			if readBit(line, x) != 0 {
				sumX += x
				sumY += y
				n++
			}
		}
	}
	if n == 0 {
		return Point{X: img.width / 2, Y: img.height / 2}
	}
	return Point{X: sumX / n, Y: sumY / n}
}

// HoleCount returns the number of 4-connected background components
// strictly enclosed by foreground pixels, matching the "holes" term of the
// original encoder's connected-component hash (pixCountConnComp run on the
// inverted image, restricted to the components that do not touch the
// border).
func (img *Image) HoleCount() int {
	if img == nil || img.data == nil || img.width == 0 || img.height == 0 {
		return 0
	}
	visited := make([]bool, img.width*img.height)
	holes := 0
	var stack []Point

	at := func(p Point) bool { return readBit(img.lineUnsafe(p.Y), p.X) == 0 }

	for y := 0; y < img.height; y++ {
		for x := 0; x < img.width; x++ {
			idx := y*img.width + x
			if visited[idx] || !at(Point{X: x, Y: y}) {
				continue
			}
			touchesBorder := false
			stack = append(stack[:0], Point{X: x, Y: y})
			visited[idx] = true
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if p.X == 0 || p.Y == 0 || p.X == img.width-1 || p.Y == img.height-1 {
					touchesBorder = true
				}
				for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
					nx, ny := p.X+d[0], p.Y+d[1]
					if nx < 0 || ny < 0 || nx >= img.width || ny >= img.height {
						continue
					}
					nidx := ny*img.width + nx
					if visited[nidx] || !at(Point{X: nx, Y: ny}) {
						continue
					}
					visited[nidx] = true
					stack = append(stack, Point{X: nx, Y: ny})
				}
			}
			if !touchesBorder {
				holes++
			}
		}
	}
	return holes
}
