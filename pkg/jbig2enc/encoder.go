// Package jbig2enc is the public entry point for encoding scanned page
// images into a JBIG2 byte stream. It wires internal/jbig2's arithmetic
// coder and segment framer to internal/imaging's default ImageSource and
// Classifier implementation, so a caller only needs a file path and a
// handful of options rather than the full classifier/orchestrator plumbing.
package jbig2enc

import (
	"errors"
	"fmt"

	"github.com/jdeng/jbig2enc/internal/imaging"
	"github.com/jdeng/jbig2enc/internal/jbig2"
)

// Options configures a new Encoder. The zero value is not usable directly;
// pass it through New, which fills in every unset field with the reference
// encoder's defaults.
type Options struct {
	// FullHeaders wraps the output in a standalone JBIG2 file header plus
	// end-of-page/end-of-file segments, for a reader that consumes .jb2
	// files directly rather than embedding the segments in a PDF.
	FullHeaders bool

	// Threshold is the gray-to-black-and-white cut point in [0,255].
	// Pixels darker than Threshold are foreground. Zero means 188, the
	// reference encoder's default.
	Threshold int

	// MatchThreshold is the minimum correlation score, in [0.4,0.97], for a
	// connected component to be assigned to an existing symbol template
	// rather than becoming a new one. Zero means 0.92.
	MatchThreshold float64

	// Weight trades off correlation strength against centroid distance
	// when scoring a candidate template match, in [0.1,0.9]. Zero means
	// 0.5.
	Weight float64

	// UpsampleFactor is 0 (no upsampling), 2, or 4; it scales a page before
	// thresholding, matching the CLI's -2/-4 flags.
	UpsampleFactor int

	// UseHashedUnify selects UnifyHashed over UnifyExhaustive when Unify is
	// called, trading a small chance of missing a genuine symbol merge for
	// not paying an O(n^2) comparator pass on large documents.
	UseHashedUnify bool

	// AutoThreshold runs Unify automatically inside Produce/ProducePages,
	// merging visually equivalent templates across every page added so
	// far before the symbol dictionary is written.
	AutoThreshold bool

	// DPI stamps every page's resolution fields; zero leaves them unset.
	DPI int
}

func (o Options) withDefaults() Options {
	if o.Threshold == 0 {
		o.Threshold = 188
	}
	if o.MatchThreshold == 0 {
		o.MatchThreshold = 0.92
	}
	if o.Weight == 0 {
		o.Weight = 0.5
	}
	return o
}

// Encoder drives symbol-mode encoding across one or more pages. It owns a
// MultiPage orchestrator and the default imaging.Adapter, so AddPage only
// needs a file path.
type Encoder struct {
	opts Options
	src  jbig2.ImageSource
	cls  jbig2.Classifier
	mp   *jbig2.MultiPage

	numPages int
}

// New returns an Encoder ready for AddPage calls.
func New(opts Options) *Encoder {
	opts = opts.withDefaults()
	a := imaging.New()
	return &Encoder{
		opts: opts,
		src:  a,
		cls:  a,
		mp:   jbig2.NewMultiPage(opts.FullHeaders),
	}
}

// AddPage reads path, converts it to a binary raster (thresholding it, and
// upsampling first if UpsampleFactor is set), and passes it to AddImage.
func (e *Encoder) AddPage(path string) error {
	raw, err := e.src.ReadImage(path)
	if err != nil {
		return fmt.Errorf("jbig2enc: read %s: %w", path, err)
	}

	gray, err := e.src.ToGray(raw)
	if err != nil {
		return fmt.Errorf("jbig2enc: convert %s to grayscale: %w", path, err)
	}

	var bw *jbig2.Image
	if e.opts.UpsampleFactor > 1 {
		bw, err = e.src.ScaleThenThreshold(gray, e.opts.UpsampleFactor, e.opts.Threshold)
	} else {
		bw, err = e.src.Threshold(gray, e.opts.Threshold)
	}
	if err != nil {
		return fmt.Errorf("jbig2enc: threshold %s: %w", path, err)
	}

	if err := e.AddImage(bw); err != nil {
		return fmt.Errorf("jbig2enc: %s: %w", path, err)
	}
	return nil
}

// AddImage extracts bw's connected components, classifies them against the
// templates accumulated from earlier pages, and records the result as the
// next page in the document. It is the entry point for a caller that has
// already binarized (and possibly segmented) a page itself, e.g. the CLI's
// -S graphics segmentation, which must not feed a page's graphics portion
// through symbol classification.
func (e *Encoder) AddImage(bw *jbig2.Image) error {
	comps, err := e.src.ConnectedComponents(bw)
	if err != nil {
		return fmt.Errorf("extract components: %w", err)
	}

	page := e.numPages
	for _, cc := range comps {
		cc.Page = page
	}

	state := e.mp.Classifier()
	assignment, err := e.cls.ClassifyByCorrelation(state, comps, e.opts.MatchThreshold, e.opts.Weight)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}
	if err := e.cls.AddPage(state, comps, assignment); err != nil {
		return fmt.Errorf("register page: %w", err)
	}

	e.mp.AddPage(jbig2.Page{
		Width:       bw.Width(),
		Height:      bw.Height(),
		ResolutionX: e.opts.DPI,
		ResolutionY: e.opts.DPI,
	})
	e.numPages++
	return nil
}

// Unify merges visually equivalent templates accumulated so far, using the
// hashed comparator when Options.UseHashedUnify is set and the exhaustive
// one otherwise. It corresponds to the reference encoder's auto-threshold
// pass; callers that want it run automatically before Produce should set
// Options.AutoThreshold instead of calling this directly.
func (e *Encoder) Unify() {
	if e.opts.UseHashedUnify {
		e.mp.Classifier().UnifyHashed()
	} else {
		e.mp.Classifier().UnifyExhaustive()
	}
}

// ProducePages finalizes symbol classification and returns the global
// symbol dictionary segment bytes (prefixed with a file header when
// FullHeaders is set) separately from each page's own segment bytes, for a
// caller that wants to write them to separate files (the CLI's PDF mode
// writes basename.sym and basename.NNNN). No further AddPage calls are
// valid after this.
func (e *Encoder) ProducePages() (symtab []byte, pages [][]byte, err error) {
	if e.numPages == 0 {
		return nil, nil, errors.New("jbig2enc: no pages added")
	}
	if e.opts.AutoThreshold {
		e.Unify()
	}

	// MultiPage.PagesComplete/ProducePage panic (via panicCoding) on an
	// internal invariant violation, e.g. a symbol dictionary that would
	// exceed JBig2MaxExportSymbols. Recover it here, at the entry point a
	// caller actually calls, rather than leaving it to crash the process.
	defer jbig2.RecoverCodingError(&err)

	symtab = e.mp.PagesComplete()
	pages = make([][]byte, e.numPages)
	for p := 0; p < e.numPages; p++ {
		pages[p] = e.mp.ProducePage(p)
	}
	return symtab, pages, nil
}

// Produce finalizes symbol classification and returns the encoded byte
// stream for every page added so far, in order: the global symbol
// dictionary (and file header, if FullHeaders is set) followed by each
// page's own segments. No further AddPage calls are valid after this.
func (e *Encoder) Produce() ([]byte, error) {
	symtab, pages, err := e.ProducePages()
	if err != nil {
		return nil, err
	}
	out := symtab
	for _, p := range pages {
		out = append(out, p...)
	}
	return out, nil
}

// GenericOptions configures EncodeGenericFile.
type GenericOptions struct {
	FullHeaders bool
	XRes, YRes  int
	// Threshold is the gray-to-black-and-white cut point in [0,255]. Zero
	// means 188.
	Threshold int
	// TPGDON enables typical prediction: a row identical to the one above
	// it is coded as a single flag bit instead of pixel by pixel.
	TPGDON bool
}

func (o GenericOptions) withDefaults() GenericOptions {
	if o.Threshold == 0 {
		o.Threshold = 188
	}
	return o
}

// EncodeGenericFile reads path, binarizes it, and encodes it losslessly as
// a single generic region, bypassing symbol classification entirely. It is
// the entry point for pages the caller chooses not to run through the
// symbol-matching pipeline at all, e.g. photographs or halftones that
// would not compress well as glyphs.
func EncodeGenericFile(path string, opts GenericOptions) ([]byte, error) {
	opts = opts.withDefaults()
	a := imaging.New()

	raw, err := a.ReadImage(path)
	if err != nil {
		return nil, fmt.Errorf("jbig2enc: read %s: %w", path, err)
	}
	gray, err := a.ToGray(raw)
	if err != nil {
		return nil, fmt.Errorf("jbig2enc: convert %s to grayscale: %w", path, err)
	}
	bw, err := a.Threshold(gray, opts.Threshold)
	if err != nil {
		return nil, fmt.Errorf("jbig2enc: threshold %s: %w", path, err)
	}

	out, err := jbig2.EncodeGeneric(bw, jbig2.EncodeGenericOptions{
		FullHeaders: opts.FullHeaders,
		XRes:        opts.XRes,
		YRes:        opts.YRes,
		TPGDON:      opts.TPGDON,
	})
	if err != nil {
		return nil, fmt.Errorf("jbig2enc: encode %s: %w", path, err)
	}
	return out, nil
}
