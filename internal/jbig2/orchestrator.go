package jbig2

// MultiPage orchestrates a whole document: it owns the running classifier
// state across every page, decides which templates are common enough to
// belong in one global symbol dictionary versus which are single-use and
// belong in a page-local one, and assembles the segment stream for the
// symbol-table segment and for each page. It is the Go counterpart of
// jbig2ctx from the reference encoder.
type MultiPage struct {
	FullHeaders      bool
	PDFPageNumbering bool

	classifier *ClassifierState
	pages      []Page

	segNum        uint32
	symtabSegment uint32

	numGlobalSymbols int
	globalSymMap     map[int]int // Templates index -> sequential symtab position
	singleUseSymbols map[int][]int // page -> Templates indices used by exactly one component, on exactly one page
}

// NewMultiPage returns an orchestrator over a fresh classifier state.
// PDFPageNumbering mirrors the reference encoder's behaviour of stamping
// every region with page 1 when full JBIG2 file headers are not wanted,
// since a PDF's own page tree supplies the numbering instead.
func NewMultiPage(fullHeaders bool) *MultiPage {
	return &MultiPage{
		FullHeaders:      fullHeaders,
		PDFPageNumbering: !fullHeaders,
		classifier:       NewClassifierState(),
		symtabSegment:    ^uint32(0),
	}
}

// Classifier exposes the running classifier state so a caller can extract
// connected components from a raster, match them against existing
// templates with Equivalent, and register the result with AddComponent or
// NewTemplate before calling AddPage.
func (m *MultiPage) Classifier() *ClassifierState { return m.classifier }

// AddPage records one page's geometry. The page's components must already
// have been registered with m.Classifier() via BeginPage/AddComponent/
// NewTemplate before this is called.
func (m *MultiPage) AddPage(p Page) int {
	p.Index = len(m.pages)
	m.pages = append(m.pages, p)
	return p.Index
}

func (m *MultiPage) nextSegNum() uint32 {
	n := m.segNum
	m.segNum++
	return n
}

// PagesComplete finalizes the symbol classification: every template used
// by more than one component (or the document's only page) goes into one
// global symbol dictionary; templates used exactly once, on a document
// with more than one page, are deferred to that page's own dictionary so
// readers that materialize the global dictionary for every page don't pay
// for symbols only one page needs. It returns the global symbol
// dictionary's segment bytes (and the file header, if FullHeaders is
// set), ready to prepend to every page's ProducePage output.
func (m *MultiPage) PagesComplete() []byte {
	templates := m.classifier.Templates
	singlePage := m.classifier.NumPages == 1

	var multiuse []int
	for i, t := range templates {
		if t.RefCount > 1 || singlePage {
			multiuse = append(multiuse, i)
		}
	}
	m.numGlobalSymbols = len(multiuse)

	m.singleUseSymbols = make(map[int][]int)
	if !singlePage {
		for i, tmplIdx := range m.classifier.Assignment {
			if templates[tmplIdx].RefCount == 1 {
				page := m.classifier.PageOf[i]
				m.singleUseSymbols[page] = append(m.singleUseSymbols[page], tmplIdx)
			}
		}
	}

	multiuseTemplates := make([]*Template, len(multiuse))
	for k, idx := range multiuse {
		multiuseTemplates[k] = templates[idx]
	}
	result := EncodeSymbolDict(multiuseTemplates)

	m.globalSymMap = make(map[int]int, len(multiuse))
	for k, idx := range multiuse {
		m.globalSymMap[idx] = result.SymMap[k]
	}

	var out []byte
	if m.FullHeaders {
		out = WriteFileHeader(out, uint32(len(m.pages)))
	}

	symtabSeg := NewSegment(m.nextSegNum(), segmentTypeSymbolDict, 0)
	m.symtabSegment = symtabSeg.Number
	symtabSeg.Data = WriteSymbolDictHeader(nil, uint32(len(multiuse)), uint32(len(multiuse)))
	symtabSeg.Data = append(symtabSeg.Data, result.Data...)
	out = symtabSeg.Write(out)

	return out
}

// ProducePage assembles one page's segments: a page information segment,
// an optional per-page symbol dictionary for that page's single-use
// symbols, the text region instancing every component on the page, and,
// when FullHeaders is set, an end-of-page segment (followed by the
// end-of-file segment on the document's final page). PagesComplete must
// already have been called.
func (m *MultiPage) ProducePage(page int) []byte {
	geom := m.pages[page]
	lastPage := page == len(m.pages)-1

	pageNumber := uint32(page + 1)
	if m.PDFPageNumbering {
		pageNumber = 1
	}

	var out []byte

	pageInfoSeg := NewSegment(m.nextSegNum(), segmentTypePageInfo, pageNumber)
	pageInfoSeg.Data = WritePageInfoHeader(nil, geom.Width, geom.Height, geom.ResolutionX, geom.ResolutionY, geom.DefaultPixelValue)
	out = pageInfoSeg.Write(out)

	components := m.classifier.PageComponents(page)
	assignment := m.classifier.PageAssignment(page)

	symMap := m.globalSymMap
	referred := []uint32{m.symtabSegment}

	if single := m.singleUseSymbols[page]; len(single) > 0 {
		pageTemplates := make([]*Template, len(single))
		for k, idx := range single {
			pageTemplates[k] = m.classifier.Templates[idx]
		}
		pageResult := EncodeSymbolDict(pageTemplates)

		merged := make(map[int]int, len(symMap)+len(single))
		for k, v := range symMap {
			merged[k] = v
		}
		for k, idx := range single {
			merged[idx] = m.numGlobalSymbols + pageResult.SymMap[k]
		}
		symMap = merged

		symtabSeg := NewSegment(m.nextSegNum(), segmentTypeSymbolDict, pageNumber)
		symtabSeg.Data = WriteSymbolDictHeader(nil, uint32(len(single)), uint32(len(single)))
		symtabSeg.Data = append(symtabSeg.Data, pageResult.Data...)
		out = symtabSeg.Write(out)
		referred = append(referred, symtabSeg.Number)
	}

	numSyms := m.numGlobalSymbols + len(m.singleUseSymbols[page])
	symCodeLen := log2up(numSyms)

	flatSymMap := make([]int, len(m.classifier.Templates))
	for idx, pos := range symMap {
		flatSymMap[idx] = pos
	}

	textResult := EncodeTextRegion(components, assignment, m.classifier.Templates, flatSymMap, symCodeLen, 1)
	region := RegionInfo{
		Width:  int32(geom.Width),
		Height: int32(geom.Height),
	}

	textSeg := NewSegment(m.nextSegNum(), segmentTypeTextRegionImmediate, pageNumber)
	textSeg.Referred = referred
	textSeg.Data = WriteTextRegionHeader(nil, region, uint32(len(components)))
	textSeg.Data = append(textSeg.Data, textResult.Data...)
	out = textSeg.Write(out)

	if m.FullHeaders {
		endPageSeg := NewSegment(m.nextSegNum(), segmentTypeEndOfPage, pageNumber)
		out = endPageSeg.Write(out)

		if lastPage {
			endFileSeg := NewSegment(m.nextSegNum(), segmentTypeEndOfFile, 0)
			out = endFileSeg.Write(out)
		}
	}

	return out
}
