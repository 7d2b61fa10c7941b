package pdfsurface

import (
	"github.com/boombuler/barcode/qr"
	"github.com/jung-kurt/gofpdf/contrib/barcode"

	"github.com/lvillar/bookletgen/surface"
)

// QRCode draws a QR code for the content scaled into r. Used for the
// template video links.
func (s *PDFSurface) QRCode(content string, r surface.Rect) {
	key := barcode.RegisterQR(s.pdf, content, qr.M, qr.Unicode)
	barcode.Barcode(s.pdf, key, r.X, r.Y, r.W, r.H, false)
}

// PDF417 draws a PDF417 code for the content scaled into r. Used for
// the machine-readable answer key.
func (s *PDFSurface) PDF417(content string, r surface.Rect) {
	key := barcode.RegisterPdf417(s.pdf, content, 4, 2)
	barcode.Barcode(s.pdf, key, r.X, r.Y, r.W, r.H, false)
}
