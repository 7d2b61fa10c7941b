package pdfsurface

import (
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf/contrib/gofpdi"
)

// ImportCover adds the first page of an existing PDF as a page of the
// output, scaled to the full page. Call it before the walker emits
// content so the cover becomes page 1.
func (s *PDFSurface) ImportCover(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("pdfsurface: cover %s: %w", path, err)
	}
	imp := gofpdi.NewImporter()
	tpl := imp.ImportPage(s.pdf, path, 1, "/MediaBox")
	s.pdf.AddPage()
	imp.UseImportedTemplate(s.pdf, tpl, 0, 0, s.w, s.h)
	if err := s.pdf.Error(); err != nil {
		return fmt.Errorf("pdfsurface: import cover %s: %w", path, err)
	}
	return nil
}
