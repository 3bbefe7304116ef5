package internal

import (
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/sirupsen/logrus"
)

const (
	fontFamily   = "NotoSansSC"
	coreFamily   = "Helvetica"
	bottomMargin = 15
	lineHeight   = 4
)

// PDFWriter renders the report with fpdf. A4 portrait, millimetres.
type PDFWriter struct {
	pdf    *fpdf.Fpdf
	family string
	tr     func(string) string
}

// NewPDFWriter registers the TrueType font at fontPath and the title header.
// When the font cannot be read the writer falls back to core Helvetica, which
// only covers cp1252.
func NewPDFWriter(title, fontPath string) *PDFWriter {
	pdf := fpdf.New("P", "mm", "A4", "")
	w := &PDFWriter{pdf: pdf, family: fontFamily, tr: func(s string) string { return s }}

	if data, err := os.ReadFile(fontPath); err == nil {
		pdf.AddUTF8FontFromBytes(fontFamily, "", data)
	} else {
		logrus.WithError(err).Warnf("Font %s unavailable, falling back to %s", fontPath, coreFamily)
		w.family = coreFamily
		w.tr = pdf.UnicodeTranslatorFromDescriptor("")
	}

	pdf.SetTitle(title, true)
	pdf.SetCreator(ReportBaseName, true)
	pdf.SetAutoPageBreak(true, bottomMargin)
	pdf.SetHeaderFunc(func() {
		pdf.SetFont(w.family, "", 12)
		pdf.CellFormat(0, 10, w.tr(title), "", 1, "C", false, 0, "")
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-bottomMargin)
		pdf.SetFont(w.family, "", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	return w
}

func (w *PDFWriter) AddPage() { w.pdf.AddPage() }

func (w *PDFWriter) Title(text string) {
	w.pdf.SetFont(w.family, "", 12)
	w.pdf.CellFormat(0, 10, w.tr(text), "", 1, "L", false, 0, "")
	w.pdf.Ln(5)
}

func (w *PDFWriter) Info(text string) {
	w.pdf.SetFont(w.family, "", 10)
	w.pdf.CellFormat(0, 10, w.tr(text), "", 1, "L", false, 0, "")
}

func (w *PDFWriter) Gap(h float64) { w.pdf.Ln(h) }

func (w *PDFWriter) Body(text string) {
	w.pdf.SetFont(w.family, "", 10)
	w.pdf.MultiCell(0, lineHeight, w.tr(expandText(text)), "", "L", false)
	w.pdf.Ln(-1)
}

func (w *PDFWriter) PageCount() int { return w.pdf.PageCount() }

// Save writes the document to path and closes it.
func (w *PDFWriter) Save(path string) error {
	if err := w.pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return w.pdf.OutputFileAndClose(path)
}
