package jbig2

// Point is a pixel coordinate pair, used for component and template centroids.
type Point struct {
	X, Y int
}

// ConnectedComponent is one classified glyph lifted out of a page raster: its
// bounding box on the page, the cropped bitmap, and the page it came from.
// It mirrors the BOXA/PIXA/NUMA triple the original classer keeps per page,
// flattened into a single slice-of-structs.
type ConnectedComponent struct {
	Page     int
	Box      Rect
	Bitmap   *Image
	Centroid Point
}

// Width returns the bounding box width, i.e. the glyph's pixel width.
func (c *ConnectedComponent) Width() int { return c.Box.Width() }

// Height returns the bounding box height.
func (c *ConnectedComponent) Height() int { return c.Box.Height() }

// Template is a canonical symbol shape retained by the classifier. RefCount
// counts how many connected components across all pages were assigned to it;
// a RefCount of 1 marks a single-use symbol, eligible for a per-page symbol
// dictionary instead of the global one.
type Template struct {
	Bitmap   *Image
	Centroid Point
	RefCount int
}

// ClassifierState accumulates every connected component seen across AddPage
// calls along with the running set of canonical templates they were matched
// against. It is the Go counterpart of the original classer: Templates plays
// the role of pixat, Assignment of naclass, PageOf of napage.
type ClassifierState struct {
	Templates []*Template

	Components []*ConnectedComponent
	Assignment []int // index into Templates, one entry per Components entry
	PageOf     []int // page number, one entry per Components entry

	// BaseIndex records len(Components) at the start of each AddPage call,
	// so a page's components can be recovered as Components[BaseIndex[p]:BaseIndex[p+1]].
	BaseIndex []int

	NumPages int
}

// NewClassifierState returns an empty classifier ready for AddPage calls.
func NewClassifierState() *ClassifierState {
	return &ClassifierState{}
}

// BeginPage records the current component count as the new page's base
// index and bumps NumPages. It must be called once per page before any
// components belonging to that page are classified.
func (c *ClassifierState) BeginPage() int {
	page := c.NumPages
	c.BaseIndex = append(c.BaseIndex, len(c.Components))
	c.NumPages++
	return page
}

// AddComponent records a component already matched (or newly assigned) to a
// template. templateIndex is an index into c.Templates.
func (c *ClassifierState) AddComponent(cc *ConnectedComponent, templateIndex int) {
	c.Components = append(c.Components, cc)
	c.Assignment = append(c.Assignment, templateIndex)
	c.PageOf = append(c.PageOf, cc.Page)
	c.Templates[templateIndex].RefCount++
}

// NewTemplate appends a fresh template seeded from the given component's
// bitmap and returns its index.
func (c *ClassifierState) NewTemplate(cc *ConnectedComponent) int {
	c.Templates = append(c.Templates, &Template{
		Bitmap:   cc.Bitmap,
		Centroid: cc.Centroid,
	})
	return len(c.Templates) - 1
}

// PageComponents returns the slice of components belonging to page p.
func (c *ClassifierState) PageComponents(p int) []*ConnectedComponent {
	start := c.BaseIndex[p]
	end := len(c.Components)
	if p+1 < len(c.BaseIndex) {
		end = c.BaseIndex[p+1]
	}
	return c.Components[start:end]
}

// PageAssignment returns the Templates indices assigned to page p's
// components, in the same order as PageComponents(p).
func (c *ClassifierState) PageAssignment(p int) []int {
	start := c.BaseIndex[p]
	end := len(c.Assignment)
	if p+1 < len(c.BaseIndex) {
		end = c.BaseIndex[p+1]
	}
	return c.Assignment[start:end]
}

// UsedBy returns, per template, the distinct pages whose components
// reference it, in order of first use. PagesComplete does not call it: its
// global-vs-per-page dictionary split counts components (Template.RefCount),
// not pages.
func (c *ClassifierState) UsedBy() (pagesOf [][]int) {
	pagesOf = make([][]int, len(c.Templates))
	seen := make([]map[int]bool, len(c.Templates))
	for i, t := range c.Assignment {
		p := c.PageOf[i]
		if seen[t] == nil {
			seen[t] = make(map[int]bool)
		}
		if !seen[t][p] {
			seen[t][p] = true
			pagesOf[t] = append(pagesOf[t], p)
		}
	}
	return pagesOf
}

// MergeTemplates folds template src into dst: every component assigned to
// src is reassigned to dst, dst's RefCount absorbs src's, and src is removed
// from Templates by swapping the last template into its slot (mirroring
// unite_templates_with_indexes, which reindexes naclass the same way rather
// than leaving a hole).
func (c *ClassifierState) MergeTemplates(dst, src int) {
	if dst == src {
		return
	}
	for i, t := range c.Assignment {
		if t == src {
			c.Assignment[i] = dst
		}
	}
	c.Templates[dst].RefCount += c.Templates[src].RefCount

	last := len(c.Templates) - 1
	if src != last {
		c.Templates[src] = c.Templates[last]
		for i, t := range c.Assignment {
			if t == last {
				c.Assignment[i] = src
			}
		}
	}
	c.Templates = c.Templates[:last]
}
