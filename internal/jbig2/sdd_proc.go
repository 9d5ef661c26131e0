package jbig2

import (
	"fmt"
	"sort"
)

// SymbolDictResult is the output of encoding one symbol dictionary segment:
// the coded data, the symbol code length every referencing text region
// needs to size its IAID context tree, and the mapping from a template's
// position in the classifier's slice to its sequential position inside the
// dictionary (the value a text region's IAID codes).
type SymbolDictResult struct {
	Data       []byte
	SymCodeLen uint8
	SymMap     []int
}

// EncodeSymbolDict writes one symbol dictionary segment holding the given
// templates. It mirrors jbig2enc_symboltable: symbols are grouped into
// height classes by ascending height, sorted by ascending width within
// each class, and every class is terminated by an out-of-band delta-width.
// The dictionary always exports every symbol it defines.
func EncodeSymbolDict(templates []*Template) *SymbolDictResult {
	n := len(templates)
	if uint32(n) > JBig2MaxExportSymbols {
		panicCoding("EncodeSymbolDict", fmt.Errorf("%d symbols exceeds JBig2MaxExportSymbols (%d)", n, JBig2MaxExportSymbols))
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := templates[order[i]].Bitmap, templates[order[j]].Bitmap
		if a.Height() != b.Height() {
			return a.Height() < b.Height()
		}
		return a.Width() < b.Width()
	})

	symMap := make([]int, n)
	arith := NewArithEncoder()
	iadh := NewArithIntEncoder()
	iadw := NewArithIntEncoder()
	iaex := NewArithIntEncoder()
	gbContexts := make([]ArithContext, 1<<16)
	grd := NewGRDProc()
	grd.TPGDON = false

	prevHeight := 0
	pos := 0
	for i := 0; i < n; {
		height := templates[order[i]].Bitmap.Height()
		iadh.Encode(arith, height-prevHeight)
		prevHeight = height

		prevWidth := 0
		j := i
		for j < n && templates[order[j]].Bitmap.Height() == height {
			bmp := templates[order[j]].Bitmap
			width := bmp.Width()
			iadw.Encode(arith, width-prevWidth)
			prevWidth = width

			grd.EncodeArith(arith, gbContexts, bmp)

			symMap[order[j]] = pos
			pos++
			j++
		}
		iadw.EncodeOOB(arith)
		i = j
	}

	iaex.Encode(arith, 0)
	iaex.Encode(arith, n)

	return &SymbolDictResult{
		Data:       arith.Final(),
		SymCodeLen: log2up(n),
		SymMap:     symMap,
	}
}
