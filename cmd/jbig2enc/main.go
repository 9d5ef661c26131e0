// Command jbig2enc converts scanned page images into a JBIG2 byte stream,
// mirroring the reference jbig2enc tool's flag surface: symbol-mode
// documents get a shared symbol dictionary and one text region per page,
// while plain generic-region mode losslessly codes each page as a raw
// bitmap with no symbol matching at all.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jdeng/jbig2enc/internal/imaging"
	"github.com/jdeng/jbig2enc/internal/jbig2"
	"github.com/jdeng/jbig2enc/pkg/jbig2enc"
)

const (
	exitOK              = 0
	exitUsage           = 1
	exitReadFailure     = 3
	exitNoInput         = 4
	exitConflictingFlag = 5
	exitInvalidNumber   = 10
	exitInvalidBWThresh = 11
	exitCodingError     = 12
)

func usage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, "Usage: %s [options] <input filenames...>\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "Options:")
	fs.PrintDefaults()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// cliOptions holds every flag value, parsed and validated by parseFlags.
type cliOptions struct {
	basename       string
	tpgd           bool
	pdfMode        bool
	symbolMode     bool
	threshold      float64
	weight         float64
	bwThreshold    int
	refine         bool
	outThreshImage string
	upsample       int
	segment        bool
	jpegOutput     bool
	autoThresh     bool
	useHash        bool
	dpi            int
	verbose        bool
	inputs         []string
}

func parseFlags(args []string, logger *log.Logger) (cliOptions, int) {
	fs := flag.NewFlagSet("jbig2enc", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	basename := fs.String("b", "output", "output file root name when using symbol coding")
	tpgd := fs.Bool("d", false, "use TPGD (duplicate-line removal) in the generic region coder")
	pdfMode := fs.Bool("p", false, "produce PDF-ready data (no file header, split .sym/.NNNN files)")
	symbolMode := fs.Bool("s", false, "use text region symbol coding instead of the generic coder")
	threshold := fs.Float64("t", 0.92, "classification threshold for the symbol coder, in [0.4,0.97]")
	weight := fs.Float64("w", 0.5, "classification weight for the symbol coder, in [0.1,0.9]")
	bwThreshold := fs.Int("T", 200, "1bpp threshold, in [0,255]")
	global := fs.Bool("G", false, "use the global BW threshold 128 in place of -T; both are a single fixed cut")
	refine := fs.Bool("r", false, "use refinement (unsupported)")
	outThreshImage := fs.String("O", "", "dump the thresholded page as a PNG here")
	up2 := fs.Bool("2", false, "upsample 2x before thresholding")
	up4 := fs.Bool("4", false, "upsample 4x before thresholding")
	segment := fs.Bool("S", false, "remove graphics from mixed input and save separately")
	jpegOutput := fs.Bool("j", false, "write segmented graphics as JPEG instead of PNG")
	autoThresh := fs.Bool("a", false, "unify visually equivalent symbol templates before producing output")
	noHash := fs.Bool("no-hash", false, "use the exhaustive comparator pass instead of the hashed one with -a")
	dpi := fs.Int("D", 0, "force a resolution in pixels per inch, in [1,9600]")
	verbose := fs.Bool("v", false, "be verbose")
	version := fs.Bool("V", false, "print version info and exit")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, exitUsage
	}
	if *version {
		fmt.Fprintln(os.Stderr, "jbig2enc (Go)")
		return cliOptions{}, exitOK
	}

	if *refine {
		logger.Println("refinement is not implemented; rerun without -r")
		return cliOptions{}, exitUsage
	}
	if *up2 && *up4 {
		logger.Println("can't have both -2 and -4")
		return cliOptions{}, exitConflictingFlag
	}
	if *threshold < 0.4 || *threshold > 0.97 {
		logger.Println("invalid value for -t (must be between 0.40 and 0.97)")
		return cliOptions{}, exitInvalidNumber
	}
	if *weight < 0.1 || *weight > 0.9 {
		logger.Println("invalid value for -w (must be between 0.10 and 0.90)")
		return cliOptions{}, exitInvalidNumber
	}
	if *global {
		*bwThreshold = 128
	}
	if *bwThreshold < 0 || *bwThreshold > 255 {
		logger.Println("invalid bw threshold (must be between 0 and 255)")
		return cliOptions{}, exitInvalidBWThresh
	}
	if *dpi < 0 || *dpi > 9600 {
		logger.Println("invalid dpi (must be between 1 and 9600)")
		return cliOptions{}, exitInvalidNumber
	}

	inputs := fs.Args()
	if len(inputs) == 0 {
		logger.Println("no filename given")
		usage(fs)
		return cliOptions{}, exitNoInput
	}

	upsample := 0
	switch {
	case *up2:
		upsample = 2
	case *up4:
		upsample = 4
	}

	return cliOptions{
		basename:       *basename,
		tpgd:           *tpgd,
		pdfMode:        *pdfMode,
		symbolMode:     *symbolMode,
		threshold:      *threshold,
		weight:         *weight,
		bwThreshold:    *bwThreshold,
		outThreshImage: *outThreshImage,
		upsample:       upsample,
		segment:        *segment,
		jpegOutput:     *jpegOutput,
		autoThresh:     *autoThresh,
		useHash:        !*noHash,
		dpi:            *dpi,
		verbose:        *verbose,
		inputs:         inputs,
	}, exitOK
}

func run(args []string) int {
	logger := log.New(os.Stderr, "", 0)

	opts, code := parseFlags(args, logger)
	if code != exitOK || len(opts.inputs) == 0 {
		return code
	}

	a := imaging.New()

	if !opts.symbolMode {
		return runGeneric(a, opts, logger)
	}
	return runSymbolMode(a, opts, logger)
}

// preprocessPage reads path, converts it to grayscale, and thresholds
// (upsampling first if requested) into a binary page raster.
func preprocessPage(a *imaging.Adapter, path string, opts cliOptions) (*jbig2.Image, error) {
	raw, err := a.ReadImage(path)
	if err != nil {
		return nil, err
	}
	gray, err := a.ToGray(raw)
	if err != nil {
		return nil, err
	}
	if opts.upsample > 1 {
		return a.ScaleThenThreshold(gray, opts.upsample, opts.bwThreshold)
	}
	return a.Threshold(gray, opts.bwThreshold)
}

// applySegmentation runs -S's graphics extraction over bw, dumping the
// graphics portion (if any) to basename.NNNN.<ext> and returning the text
// portion that should actually be handed to the encoder.
func applySegmentation(a *imaging.Adapter, bw *jbig2.Image, opts cliOptions, pageNum int, logger *log.Logger) *jbig2.Image {
	if !opts.segment {
		return bw
	}
	text, graphics, err := imaging.SegmentGraphics(a, bw)
	if err != nil {
		logger.Printf("segmentation failed, keeping full page as text: %v", err)
		return bw
	}
	if graphics == nil {
		return bw
	}
	ext := "png"
	if opts.jpegOutput {
		ext = "jpg"
	}
	path := fmt.Sprintf("%s.%04d.%s", opts.basename, pageNum, ext)
	var writeErr error
	if opts.jpegOutput {
		writeErr = writeJPEG(path, graphics)
	} else {
		writeErr = writePNG(path, graphics)
	}
	if writeErr != nil {
		logger.Printf("writing graphics image %s: %v", path, writeErr)
	} else if opts.verbose {
		logger.Printf("wrote graphics portion to %s", path)
	}
	if text == nil {
		return jbig2.NewImage(int32(bw.Width()), int32(bw.Height()))
	}
	return text
}

func runGeneric(a *imaging.Adapter, opts cliOptions, logger *log.Logger) int {
	if len(opts.inputs) > 1 && opts.verbose {
		logger.Println("generic mode only encodes the first input; ignoring the rest")
	}

	bw, err := preprocessPage(a, opts.inputs[0], opts)
	if err != nil {
		logger.Println(err)
		return exitReadFailure
	}
	if opts.outThreshImage != "" {
		if err := writePNG(opts.outThreshImage, bw); err != nil {
			logger.Println(err)
		}
	}
	bw = applySegmentation(a, bw, opts, 0, logger)

	out, err := jbig2.EncodeGeneric(bw, jbig2.EncodeGenericOptions{
		FullHeaders: !opts.pdfMode,
		XRes:        opts.dpi,
		YRes:        opts.dpi,
		TPGDON:      opts.tpgd,
	})
	if err != nil {
		return reportEncodeError(logger, err)
	}
	os.Stdout.Write(out)
	return exitOK
}

func runSymbolMode(a *imaging.Adapter, opts cliOptions, logger *log.Logger) int {
	enc := jbig2enc.New(jbig2enc.Options{
		FullHeaders:    !opts.pdfMode,
		Threshold:      opts.bwThreshold,
		MatchThreshold: opts.threshold,
		Weight:         opts.weight,
		UpsampleFactor: opts.upsample,
		UseHashedUnify: opts.useHash,
		AutoThreshold:  opts.autoThresh,
		DPI:            opts.dpi,
	})

	for i, path := range opts.inputs {
		if opts.verbose {
			logger.Printf("processing %q...", path)
		}
		bw, err := preprocessPage(a, path, opts)
		if err != nil {
			logger.Printf("%s: %v", path, err)
			return exitReadFailure
		}
		if i == 0 && opts.outThreshImage != "" {
			if err := writePNG(opts.outThreshImage, bw); err != nil {
				logger.Println(err)
			}
		}
		bw = applySegmentation(a, bw, opts, i, logger)

		if err := enc.AddImage(bw); err != nil {
			logger.Printf("%s: %v", path, err)
			return exitCodingErrorOr(err)
		}
	}

	if opts.pdfMode {
		symtab, pages, err := enc.ProducePages()
		if err != nil {
			return reportEncodeError(logger, err)
		}
		if err := writeFile(opts.basename+".sym", symtab); err != nil {
			logger.Println(err)
			return exitReadFailure
		}
		for i, page := range pages {
			path := fmt.Sprintf("%s.%04d", opts.basename, i)
			if err := writeFile(path, page); err != nil {
				logger.Println(err)
				return exitReadFailure
			}
		}
		return exitOK
	}

	out, err := enc.Produce()
	if err != nil {
		return reportEncodeError(logger, err)
	}
	os.Stdout.Write(out)
	return exitOK
}

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

// reportEncodeError maps a jbig2enc/jbig2 error to the CLI's documented
// exit codes: a CodingError recovered at an entry point becomes exit 12,
// anything else is treated as a plain failure to read or convert input.
func reportEncodeError(logger *log.Logger, err error) int {
	logger.Println(err)
	return exitCodingErrorOr(err)
}

func exitCodingErrorOr(err error) int {
	if e, ok := asJBig2Error(err); ok && e.Kind == jbig2.CodingError {
		return exitCodingError
	}
	return exitReadFailure
}

func asJBig2Error(err error) (*jbig2.Error, bool) {
	for err != nil {
		if e, ok := err.(*jbig2.Error); ok {
			return e, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}
