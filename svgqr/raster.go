package svgqr

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// rasterSize is the approximate edge length of the rasterized canvas.
// QR SVGs are typically authored at a few units per module, which is far too
// small for barcode detection, so the image is scaled up (aspect preserved)
// to roughly this size.
const rasterSize = 512.0

// Rasterize renders SVG markup onto an RGBA canvas and returns the image.
// The canvas is filled white first so codes drawn over a transparent
// background still present black-on-white modules to the decoder.
func Rasterize(svg string) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(strings.NewReader(svg), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		return nil, fmt.Errorf("svg has an empty viewbox")
	}

	// The scale factor must be an integer so module edges stay
	// pixel-aligned: fractional factors leave aliasing seams between
	// adjacent rects that defeat QR finder-pattern detection.
	scale := math.Round(rasterSize / math.Max(vw, vh))
	if scale < 1 {
		scale = 1
	}
	w := int(math.Ceil(vw * scale))
	h := int(math.Ceil(vh * scale))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)

	return img, nil
}
