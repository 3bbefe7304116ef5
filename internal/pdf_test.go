package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFont = "testdata/DejaVuSansCondensed.ttf"

func TestPDFWriter_TrueTypeFont(t *testing.T) {
	dir := t.TempDir()
	w := NewPDFWriter("Отчёт 项目报告", testFont)

	w.AddPage()
	w.Title("File: app/src/main/res/values-zh/strings.xml")
	w.Body("<string name=\"hello\">你好，世界</string>\n<string name=\"ru\">Привет, мир</string>\nΕλληνικά")
	require.NoError(t, w.pdf.Error())

	out := filepath.Join(dir, "report.pdf")
	require.NoError(t, w.Save(out))
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "%PDF-"))
	assert.Contains(t, string(b), "/Subtype /Type0", "text is set with a composite unicode font")
	assert.Contains(t, string(b), "/FontFile2", "the TrueType program is embedded")
}

func TestPDFWriter_CorruptFont(t *testing.T) {
	dir := t.TempDir()
	font := filepath.Join(dir, "broken.ttf")
	require.NoError(t, os.WriteFile(font, []byte("this is not a font file"), 0644))

	w := NewPDFWriter(DefaultTitle, font)
	w.AddPage()
	w.Body("x")

	out := filepath.Join(dir, "report.pdf")
	require.Error(t, w.Save(out))
	assert.NoFileExists(t, out)
}

func TestPDFWriter_FallbackFontAndPageBreaks(t *testing.T) {
	dir := t.TempDir()
	w := NewPDFWriter(DefaultTitle, filepath.Join(dir, "missing.ttf"))

	w.AddPage()
	w.Info("Project Path: " + dir)
	w.Gap(10)
	w.Title(StructureTitle)
	w.Body(strings.Repeat("line\tof text\r\n", 300))
	w.AddPage()
	w.Title(ContentTitle)
	w.Body("café")
	require.Greater(t, w.PageCount(), 2, "long bodies break onto new pages")

	out := filepath.Join(dir, "report.pdf")
	require.NoError(t, w.Save(out))
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "%PDF-"))
}

func TestPDFWriter_SaveError(t *testing.T) {
	dir := t.TempDir()
	w := NewPDFWriter(DefaultTitle, "")
	w.AddPage()
	w.Body("x")
	require.Error(t, w.Save(filepath.Join(dir, "no", "such", "dir", "report.pdf")))
}
