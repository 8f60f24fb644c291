package svgqr

import (
	"fmt"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
)

// DecodeText locates the SVG markup in s, rasterizes it and decodes the
// first QR code found in the image. It returns an empty string when s holds
// no SVG, the SVG cannot be rendered, or no QR code is decodable. Failures
// are deliberately silent: callers fold them into scoring.
func DecodeText(s string) string {
	svg, ok := Extract(s)
	if !ok {
		return ""
	}

	text, err := decodeSVG(svg)
	if err != nil {
		return ""
	}
	return text
}

func decodeSVG(svg string) (text string, err error) {
	// oksvg can panic on pathological path data; model output is untrusted.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rasterize: %v", r)
		}
	}()

	img, err := Rasterize(svg)
	if err != nil {
		return "", err
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("binarize: %w", err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	result, err := zxqrcode.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		return "", fmt.Errorf("decode qr: %w", err)
	}

	return result.GetText(), nil
}
