package jbig2

// templateHash buckets a template the same way the original auto-threshold
// pass does: (holes + 10*height + 10000*width) mod 10,000,000. Two
// templates that hash differently are never compared, which is what makes
// the hashed pass fast on large symbol sets at the cost of occasionally
// missing a true match.
func templateHash(img *Image) int {
	if img == nil {
		return 0
	}
	holes := img.HoleCount()
	return (holes + 10*img.height + 10000*img.width) % 10000000
}

// UnifyExhaustive compares every pair of templates in the classifier state
// with Equivalent and merges matches, repeating from the top each time a
// merge changes the template count (mirroring unite_templates_with_indexes
// being called in a loop until a full pass finds nothing left to merge).
func (c *ClassifierState) UnifyExhaustive() {
	for {
		merged := false
		for i := 0; i < len(c.Templates); i++ {
			for j := i + 1; j < len(c.Templates); j++ {
				if !sameSize(c.Templates[i].Bitmap, c.Templates[j].Bitmap) {
					continue
				}
				if Equivalent(c.Templates[i].Bitmap, c.Templates[j].Bitmap) {
					c.MergeTemplates(i, j)
					merged = true
					break
				}
			}
			if merged {
				break
			}
		}
		if !merged {
			return
		}
	}
}

// UnifyHashed buckets templates by templateHash and only compares
// templates that land in the same bucket, trading a small chance of
// missing a genuine match for not having to run an O(n^2) comparator pass
// over large symbol sets.
func (c *ClassifierState) UnifyHashed() {
	for {
		buckets := make(map[int][]int)
		for i, t := range c.Templates {
			h := templateHash(t.Bitmap)
			buckets[h] = append(buckets[h], i)
		}

		merged := false
		for _, idxs := range buckets {
			if len(idxs) < 2 {
				continue
			}
			for a := 0; a < len(idxs) && !merged; a++ {
				for b := a + 1; b < len(idxs); b++ {
					i, j := idxs[a], idxs[b]
					if !sameSize(c.Templates[i].Bitmap, c.Templates[j].Bitmap) {
						continue
					}
					if Equivalent(c.Templates[i].Bitmap, c.Templates[j].Bitmap) {
						c.MergeTemplates(i, j)
						merged = true
						break
					}
				}
			}
			if merged {
				break
			}
		}
		if !merged {
			return
		}
	}
}

func sameSize(a, b *Image) bool {
	return a != nil && b != nil && a.width == b.width && a.height == b.height
}
