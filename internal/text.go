package internal

import (
	"bytes"
	"os"
	"strings"
)

// TextWriter renders the report as plain text. Pages are separated by a form
// feed and start with the centred title, mirroring the PDF layout.
type TextWriter struct {
	title string
	width int
	buf   bytes.Buffer
	pages int
}

func NewTextWriter(title string) *TextWriter {
	return &TextWriter{title: title, width: 80}
}

func (w *TextWriter) AddPage() {
	if w.pages > 0 {
		w.buf.WriteString("\f\n")
	}
	w.pages++
	pad := (w.width - len([]rune(w.title))) / 2
	if pad < 0 {
		pad = 0
	}
	w.buf.WriteString(strings.Repeat(" ", pad) + w.title + "\n\n")
}

func (w *TextWriter) Title(text string) {
	w.buf.WriteString(text + "\n")
	w.buf.WriteString(strings.Repeat("=", len([]rune(text))) + "\n\n")
}

func (w *TextWriter) Info(text string) { w.buf.WriteString(text + "\n") }

func (w *TextWriter) Gap(float64) { w.buf.WriteString("\n") }

func (w *TextWriter) Body(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	w.buf.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		w.buf.WriteString("\n")
	}
	w.buf.WriteString("\n")
}

func (w *TextWriter) PageCount() int { return w.pages }

func (w *TextWriter) String() string { return w.buf.String() }

func (w *TextWriter) Save(path string) error {
	return os.WriteFile(path, w.buf.Bytes(), 0644)
}
