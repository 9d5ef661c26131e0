package main

import (
	"image/jpeg"
	"image/png"
	"os"

	"github.com/jdeng/jbig2enc/internal/imaging"
	"github.com/jdeng/jbig2enc/internal/jbig2"
)

func writePNG(path string, img *jbig2.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, imaging.ToStdImage(img))
}

func writeJPEG(path string, img *jbig2.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, imaging.ToStdImage(img), nil)
}
