package text

import (
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// LoadFace loads the TrueType font at path, rendered at the given point size.
// If the file is missing or unparseable it silently falls back to the bundled
// Go Regular face at the same size, so the returned face is always usable.
func LoadFace(path string, points float64) font.Face {
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if f, err := truetype.Parse(data); err == nil {
				return truetype.NewFace(f, &truetype.Options{Size: points})
			}
		}
	}
	return fallbackFace(points)
}

func fallbackFace(points float64) font.Face {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		// goregular ships with the toolchain and always parses
		panic(err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: points})
}

// Measure returns the rendered width and height of s using face.
func Measure(s string, face font.Face) (width, height float64) {
	// Use a temporary context for measurement
	dc := gg.NewContext(1, 1)
	dc.SetFontFace(face)
	return dc.MeasureString(s)
}
