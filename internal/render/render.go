// SPDX-License-Identifier: MIT
// Package render turns a spectrogram matrix into a heatmap image. It is a
// consumer of the pipeline's output, not part of the core: the core only
// hands over magnitudes and axis metadata.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"sdrspect/internal/dsp"
)

// gradient defines the heatmap colors from coldest to warmest.
var gradient = []color.RGBA{
	{0, 0, 0, 255},       // black
	{0, 0, 255, 255},     // blue
	{0, 255, 255, 255},   // cyan
	{0, 255, 0, 255},     // green
	{255, 255, 0, 255},   // yellow
	{255, 0, 0, 255},     // red
	{255, 255, 255, 255}, // white
}

// colorAt interpolates the gradient at a level in [0, 1].
func colorAt(lvl float64) color.RGBA {
	if math.IsNaN(lvl) || lvl <= 0 {
		return gradient[0]
	}
	if lvl >= 1 {
		return gradient[len(gradient)-1]
	}
	pos := lvl * float64(len(gradient)-1)
	i := int(pos)
	fract := pos - float64(i)
	lo, hi := gradient[i], gradient[i+1]
	return color.RGBA{
		uint8(float64(lo.R) + fract*(float64(hi.R)-float64(lo.R))),
		uint8(float64(lo.G) + fract*(float64(hi.G)-float64(lo.G))),
		uint8(float64(lo.B) + fract*(float64(hi.B)-float64(lo.B))),
		255,
	}
}

// Heatmap renders the matrix one pixel per cell: columns along x (time),
// bins along y with low frequencies at the bottom. Levels are normalized
// over the matrix's own dB range, so the hottest cell is always white and
// the coldest black.
func Heatmap(spec *dsp.Spectrogram) *image.RGBA {
	minDB, maxDB := math.Inf(1), math.Inf(-1)
	for _, row := range spec.DB {
		for _, v := range row {
			if v < minDB {
				minDB = v
			}
			if v > maxDB {
				maxDB = v
			}
		}
	}
	dbRange := maxDB - minDB

	img := image.NewRGBA(image.Rect(0, 0, spec.Frames, spec.NFFT))
	for r := 0; r < spec.NFFT; r++ {
		y := spec.NFFT - 1 - r // row 0 is the lowest frequency
		for c := 0; c < spec.Frames; c++ {
			lvl := 0.0
			if dbRange > 0 {
				lvl = (spec.DB[r][c] - minDB) / dbRange
			}
			img.SetRGBA(c, y, colorAt(lvl))
		}
	}
	return img
}

// WritePNG renders the spectrogram and writes it to path.
func WritePNG(path string, spec *dsp.Spectrogram) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %q: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, Heatmap(spec)); err != nil {
		return fmt.Errorf("render: encode %q: %w", path, err)
	}
	return nil
}
