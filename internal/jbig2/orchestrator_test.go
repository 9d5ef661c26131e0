package jbig2

import "testing"

func TestMultiPageSinglePageAllSymbolsGoGlobal(t *testing.T) {
	m := NewMultiPage(false)
	c := m.Classifier()

	c.BeginPage()
	cc := newTestComponent(0, 5, 5)
	tmpl := c.NewTemplate(cc)
	c.AddComponent(cc, tmpl)

	m.AddPage(Page{Width: 100, Height: 100, ResolutionX: 300, ResolutionY: 300})

	header := m.PagesComplete()
	if len(header) == 0 {
		t.Fatal("expected non-empty symbol table segment bytes")
	}
	if m.numGlobalSymbols != 1 {
		t.Fatalf("numGlobalSymbols = %d, want 1 (single-page documents always go global)", m.numGlobalSymbols)
	}
	if len(m.singleUseSymbols) != 0 {
		t.Fatalf("singleUseSymbols = %v, want empty on a single-page document", m.singleUseSymbols)
	}

	page := m.ProducePage(0)
	if len(page) == 0 {
		t.Fatal("expected non-empty page segment bytes")
	}
}

func TestMultiPageTwoPagesSplitsSingleUseSymbols(t *testing.T) {
	m := NewMultiPage(false)
	c := m.Classifier()

	c.BeginPage()
	cc0 := newTestComponent(0, 5, 5)
	sharedTmpl := c.NewTemplate(cc0)
	c.AddComponent(cc0, sharedTmpl)

	cc1 := newTestComponent(0, 6, 6)
	onlyPage0Tmpl := c.NewTemplate(cc1)
	c.AddComponent(cc1, onlyPage0Tmpl)

	c.BeginPage()
	cc2 := newTestComponent(1, 5, 5)
	c.AddComponent(cc2, sharedTmpl)

	cc3 := newTestComponent(1, 7, 7)
	onlyPage1Tmpl := c.NewTemplate(cc3)
	c.AddComponent(cc3, onlyPage1Tmpl)

	m.AddPage(Page{Width: 100, Height: 100, ResolutionX: 300, ResolutionY: 300})
	m.AddPage(Page{Width: 100, Height: 100, ResolutionX: 300, ResolutionY: 300})

	m.PagesComplete()

	if m.numGlobalSymbols != 1 {
		t.Fatalf("numGlobalSymbols = %d, want 1 (only the shared template qualifies)", m.numGlobalSymbols)
	}
	if len(m.singleUseSymbols[0]) != 1 || m.singleUseSymbols[0][0] != onlyPage0Tmpl {
		t.Fatalf("singleUseSymbols[0] = %v, want [%d]", m.singleUseSymbols[0], onlyPage0Tmpl)
	}
	if len(m.singleUseSymbols[1]) != 1 || m.singleUseSymbols[1][0] != onlyPage1Tmpl {
		t.Fatalf("singleUseSymbols[1] = %v, want [%d]", m.singleUseSymbols[1], onlyPage1Tmpl)
	}

	page0 := m.ProducePage(0)
	page1 := m.ProducePage(1)
	if len(page0) == 0 || len(page1) == 0 {
		t.Fatal("expected non-empty segment bytes for both pages")
	}
}

func TestMultiPageSegmentNumbersIncreaseMonotonically(t *testing.T) {
	m := NewMultiPage(true)
	c := m.Classifier()

	c.BeginPage()
	cc := newTestComponent(0, 5, 5)
	tmpl := c.NewTemplate(cc)
	c.AddComponent(cc, tmpl)

	m.AddPage(Page{Width: 50, Height: 50, ResolutionX: 300, ResolutionY: 300})
	m.PagesComplete()

	firstSegNum := m.segNum
	m.ProducePage(0)
	if m.segNum <= firstSegNum {
		t.Fatalf("segNum did not advance across ProducePage: before %d, after %d", firstSegNum, m.segNum)
	}
}

func TestMultiPagePDFPageNumberingPinsToPageOne(t *testing.T) {
	m := NewMultiPage(false)
	if !m.PDFPageNumbering {
		t.Fatal("PDFPageNumbering should default true when FullHeaders is false")
	}

	c := m.Classifier()
	c.BeginPage()
	cc := newTestComponent(0, 5, 5)
	tmpl := c.NewTemplate(cc)
	c.AddComponent(cc, tmpl)
	c.BeginPage()
	cc2 := newTestComponent(1, 5, 5)
	c.AddComponent(cc2, tmpl)

	m.AddPage(Page{Width: 50, Height: 50})
	m.AddPage(Page{Width: 50, Height: 50})
	m.PagesComplete()

	// Both pages' segments should carry page association 1, not 1 and 2,
	// since PDFPageNumbering overrides the natural page index.
	page1 := m.ProducePage(1)
	// The first segment in page1's output is its page information segment:
	// bytes 0..3 are the segment number, byte 4 the flags, byte 5 the
	// (empty) referred-to count, and byte 6 the one-byte page association.
	if len(page1) < 7 {
		t.Fatal("expected a full segment header for second page under PDF numbering")
	}
	if page1[6] != 1 {
		t.Fatalf("page association = %d, want 1 under PDF numbering", page1[6])
	}
}
