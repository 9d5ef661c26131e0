package jbig2

import "math"

const comparatorDivider = 9

// Equivalent decides whether two same-size symbol bitmaps are visually
// close enough to be merged into one template. It looks for local
// accumulations of XOR difference rather than a raw pixel count: a few
// pixels of antialiasing noise spread evenly is fine, a difference
// concentrated into a line or blob across one region is not.
func Equivalent(a, b *Image) bool {
	if a == nil || b == nil || a.width != b.width || a.height != b.height {
		return false
	}
	w, h := a.width, a.height
	if w == 0 || h == 0 {
		return true
	}

	onCount := a.PopCount()
	diff := newXorImage(a, b)

	// Fast reject: if more than a quarter of the first symbol's ON pixels
	// differ, don't bother with the grid analysis.
	thresh := onCount / 4
	if diff.PopCount() > thresh {
		return false
	}

	verticalPart := h / comparatorDivider
	horizontalPart := w / comparatorDivider
	if verticalPart == 0 || horizontalPart == 0 {
		return true
	}

	var a2, b2 int
	if verticalPart < horizontalPart {
		a2 = horizontalPart / 2
		b2 = verticalPart / 2
	} else {
		a2 = verticalPart / 2
		b2 = horizontalPart / 2
	}
	pointThresh := float64(a2*b2) * math.Pi
	vlineThresh := float64(verticalPart*(horizontalPart/2)) * 0.9
	hlineThresh := float64(horizontalPart*(verticalPart/2)) * 0.9

	var parsed [comparatorDivider][comparatorDivider]int
	var horizontalParsed [comparatorDivider * 2][comparatorDivider]int
	var verticalParsed [comparatorDivider][comparatorDivider * 2]int

	hMod, vMod := 0, 0
	for hi := 0; hi < comparatorDivider; hi++ {
		hStart := horizontalPart*hi + hMod
		var hEnd int
		if hi == comparatorDivider-1 {
			hMod = 0
			hEnd = w
		} else if (w-hMod)%comparatorDivider > 0 {
			hEnd = hStart + horizontalPart + 1
			hMod++
		} else {
			hEnd = hStart + horizontalPart
		}

		for vi := 0; vi < comparatorDivider; vi++ {
			vStart := verticalPart*vi + vMod
			var vEnd int
			if vi == comparatorDivider-1 {
				vMod = 0
				vEnd = h
			} else if (h-vMod)%comparatorDivider > 0 {
				vEnd = vStart + verticalPart + 1
				vMod++
			} else {
				vEnd = vStart + verticalPart
			}

			var left, right, up, down int
			midH := (hStart + hEnd) / 2
			midV := (vStart + vEnd) / 2
			for x := hStart; x < hEnd; x++ {
				for y := vStart; y < vEnd; y++ {
					if diff.GetPixel(int32(x), int32(y)) != 1 {
						continue
					}
					if x < midH {
						left++
					} else {
						right++
					}
					if y < midV {
						up++
					} else {
						down++
					}
				}
			}
			parsed[hi][vi] = left + right
			horizontalParsed[hi*2][vi] = left
			horizontalParsed[hi*2+1][vi] = right
			verticalParsed[hi][vi*2] = up
			verticalParsed[hi][vi*2+1] = down
		}
	}

	for i := 0; i < comparatorDivider*2-1; i++ {
		for j := 0; j < comparatorDivider-1; j++ {
			sum := 0
			for x := 0; x < 2; x++ {
				for y := 0; y < 2; y++ {
					sum += horizontalParsed[i+x][j+y]
				}
			}
			if float64(sum) > hlineThresh {
				return false
			}
		}
	}

	for i := 0; i < comparatorDivider-1; i++ {
		for j := 0; j < comparatorDivider*2-1; j++ {
			sum := 0
			for x := 0; x < 2; x++ {
				for y := 0; y < 2; y++ {
					sum += verticalParsed[i+x][j+y]
				}
			}
			if float64(sum) > vlineThresh {
				return false
			}
		}
	}

	for i := 0; i < comparatorDivider-2; i++ {
		for j := 0; j < comparatorDivider-2; j++ {
			var leftCross, rightCross int
			for x := 0; x < 3; x++ {
				for y := 0; y < 3; y++ {
					if x == y {
						leftCross += parsed[i+x][j+y]
					}
					if 2-x == y {
						rightCross += parsed[i+x][j+y]
					}
				}
			}
			if float64(leftCross) > hlineThresh || float64(rightCross) > hlineThresh {
				return false
			}
		}
	}

	for i := 0; i < comparatorDivider-1; i++ {
		for j := 0; j < comparatorDivider-1; j++ {
			sum := 0
			for x := 0; x < 2; x++ {
				for y := 0; y < 2; y++ {
					sum += parsed[i+x][j+y]
				}
			}
			if float64(sum) > pointThresh {
				return false
			}
		}
	}

	return true
}

func newXorImage(a, b *Image) *Image {
	out := NewImage(int32(a.width), int32(a.height))
	for y := 0; y < a.height; y++ {
		la := a.lineUnsafe(y)
		lb := b.lineUnsafe(y)
		lo := out.lineUnsafe(y)
		n := len(la)
		if len(lb) < n {
			n = len(lb)
		}
		for i := 0; i < n; i++ {
			lo[i] = la[i] ^ lb[i]
		}
	}
	return out
}
