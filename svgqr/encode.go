package svgqr

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yeqown/go-qrcode/v2"
)

// Encoder defaults. Four modules of quiet zone is the QR spec minimum.
const (
	defaultModuleSize = 4
	defaultQuietZone  = 4
)

// Encode renders text as an SVG image containing a real QR code: black
// module rects over a white background, with a quiet zone. It is the
// reference output for the benchmark and the fixture generator for tests.
func Encode(text string) (string, error) {
	qrc, err := qrcode.NewWith(text,
		qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart),
	)
	if err != nil {
		return "", fmt.Errorf("build qr matrix: %w", err)
	}

	var buf bytes.Buffer
	w := &svgWriter{
		out:        &buf,
		moduleSize: defaultModuleSize,
		quietZone:  defaultQuietZone,
	}
	if err := qrc.Save(w); err != nil {
		return "", fmt.Errorf("write qr svg: %w", err)
	}

	return buf.String(), nil
}

// svgWriter implements qrcode.Writer, emitting one <rect> per dark module.
type svgWriter struct {
	out        io.Writer
	moduleSize int
	quietZone  int
}

func (w *svgWriter) Write(mat qrcode.Matrix) error {
	size := (mat.Width() + 2*w.quietZone) * w.moduleSize

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		size, size, size, size)
	b.WriteString("\n")
	fmt.Fprintf(&b, `  <rect width="%d" height="%d" fill="#FFFFFF"/>`, size, size)
	b.WriteString("\n")

	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		if !v.IsSet() {
			return
		}
		px := (x + w.quietZone) * w.moduleSize
		py := (y + w.quietZone) * w.moduleSize
		fmt.Fprintf(&b, `  <rect x="%d" y="%d" width="%d" height="%d" fill="#000000"/>`,
			px, py, w.moduleSize, w.moduleSize)
		b.WriteString("\n")
	})

	b.WriteString("</svg>\n")
	_, err := io.WriteString(w.out, b.String())
	return err
}

func (w *svgWriter) Close() error { return nil }
