package extraction

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOCR struct {
	byImage map[string]string
	text    string
}

func (f *fakeOCR) Name() string { return "fake" }

func (f *fakeOCR) Recognize(ctx context.Context, image []byte) (string, error) {
	if f.byImage != nil {
		if text, ok := f.byImage[string(image)]; ok {
			return text, nil
		}
	}
	return f.text, nil
}

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func buildZip(t *testing.T, name string, entries map[string]string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for entry, body := range entries {
		w, err := zw.Create(entry)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return writeTempFile(t, name, buf.Bytes())
}

func TestValidate_RejectsMissingFile(t *testing.T) {
	err := Validate(filepath.Join(t.TempDir(), "nope.pdf"), 50)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestValidate_RejectsUnsupportedExtension(t *testing.T) {
	path := writeTempFile(t, "notes.xlsx", []byte("data"))

	err := Validate(path, 50)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type: .xlsx")
}

func TestValidate_RejectsOversizedFile(t *testing.T) {
	path := writeTempFile(t, "big.txt", bytes.Repeat([]byte("a"), 2*1024*1024))

	err := Validate(path, 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds limit")
}

func TestValidate_AcceptsSupportedFile(t *testing.T) {
	path := writeTempFile(t, "notes.txt", []byte("hello"))

	assert.NoError(t, Validate(path, 50))
}

func TestExtract_TxtUTF8(t *testing.T) {
	path := writeTempFile(t, "notes.txt", []byte("plain text with https://example.com/a link"))

	content, err := New(&fakeOCR{}, 50).Extract(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "plain text with https://example.com/a link", content.Text)
	assert.Equal(t, []string{"https://example.com/a"}, content.Links)
	assert.Empty(t, content.Images)
}

func TestExtract_TxtLatin1Fallback(t *testing.T) {
	// 0xE9 is 'é' in Latin-1 and invalid on its own in UTF-8.
	path := writeTempFile(t, "legacy.txt", []byte{'c', 'a', 'f', 0xE9})

	content, err := New(&fakeOCR{}, 50).Extract(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "café", content.Text)
}

func TestExtract_ImageWholeFileOCR(t *testing.T) {
	path := writeTempFile(t, "scan.png", []byte("png-bytes"))
	engine := &fakeOCR{text: "recognized words"}

	content, err := New(engine, 50).Extract(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "recognized words", content.Text)
	require.Len(t, content.Images, 1)
	assert.Equal(t, "scan", content.Images[0].Name)
	assert.Equal(t, "recognized words", content.Images[0].OCRText)
}

func TestExtract_RejectsInvalidFile(t *testing.T) {
	_, err := New(&fakeOCR{}, 50).Extract(context.Background(), "missing.pdf")

	assert.Error(t, err)
}

const slideXMLTemplate = `<?xml version="1.0"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
       xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:txBody><a:p><a:r><a:t>%s</a:t></a:r></a:p></p:txBody>
</p:sld>`

func slideXML(text string) string {
	return strings.Replace(slideXMLTemplate, "%s", text, 1)
}

func TestExtract_PptxSlidesInOrderWithMarkers(t *testing.T) {
	path := buildZip(t, "deck.pptx", map[string]string{
		"ppt/slides/slide2.xml": slideXML("Second slide"),
		"ppt/slides/slide1.xml": slideXML("First slide"),
	})

	content, err := New(&fakeOCR{}, 50).Extract(context.Background(), path)

	require.NoError(t, err)
	first := strings.Index(content.Text, "--- Slide 1 ---")
	second := strings.Index(content.Text, "--- Slide 2 ---")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first)
	assert.Contains(t, content.Text, "First slide")
	assert.Contains(t, content.Text, "Second slide")
}

func TestExtract_PptxImagesAndLinks(t *testing.T) {
	rels := `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/image1.png"/>
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="https://example.com/deck" TargetMode="External"/>
</Relationships>`
	path := buildZip(t, "deck.pptx", map[string]string{
		"ppt/slides/slide1.xml":            slideXML("Chart slide"),
		"ppt/slides/_rels/slide1.xml.rels": rels,
		"ppt/media/image1.png":             "chart-bytes",
	})
	engine := &fakeOCR{byImage: map[string]string{"chart-bytes": "Q3 revenue"}}

	content, err := New(engine, 50).Extract(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, content.Images, 1)
	assert.Equal(t, "deck_slide1_img1", content.Images[0].Name)
	assert.Equal(t, "Q3 revenue", content.Images[0].OCRText)
	require.Len(t, content.Files, 1)
	assert.Equal(t, "deck_slide1_img1", content.Files[0].Name)
	assert.Equal(t, []byte("chart-bytes"), content.Files[0].Data)
	assert.Contains(t, content.Text, "[Image OCR - deck_slide1_img1]: Q3 revenue")
	assert.Contains(t, content.Links, "https://example.com/deck")
}

func TestRelationshipTargets_FiltersByType(t *testing.T) {
	rels := `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="https://example.com" TargetMode="External"/>
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/image1.png"/>
</Relationships>`
	path := buildZip(t, "doc.docx", map[string]string{
		"word/_rels/document.xml.rels": rels,
	})
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	links := relationshipTargets(&zr.Reader, "word/_rels/document.xml.rels", "/hyperlink")
	media := relationshipTargets(&zr.Reader, "word/_rels/document.xml.rels", "/image")

	assert.Equal(t, []string{"https://example.com"}, links)
	assert.Equal(t, []string{"media/image1.png"}, media)
}

func TestRelationshipTargets_SkipsInternalHyperlinks(t *testing.T) {
	rels := `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="https://example.com/out" TargetMode="External"/>
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="#Section2"/>
</Relationships>`
	path := buildZip(t, "doc.docx", map[string]string{
		"word/_rels/document.xml.rels": rels,
	})
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	links := relationshipTargets(&zr.Reader, "word/_rels/document.xml.rels", relTypeHyperlink)

	assert.Equal(t, []string{"https://example.com/out"}, links)
}

func TestDrawingText_CollectsRuns(t *testing.T) {
	text := drawingText([]byte(slideXML("Hello world")))

	assert.Equal(t, "Hello world\n", text)
}

func TestPdfImagePage(t *testing.T) {
	assert.Equal(t, 2, pdfImagePage("report_2_Im0.png"))
	assert.Equal(t, 14, pdfImagePage("report_14_Im3.jpg"))
	assert.Equal(t, 0, pdfImagePage("unparseable.png"))
}

func TestResolveSlideTarget(t *testing.T) {
	assert.Equal(t, "ppt/media/image1.png", resolveSlideTarget("../media/image1.png"))
	assert.Equal(t, "ppt/slides/media/pic.png", resolveSlideTarget("media/pic.png"))
}

func TestScanLinks_Dedupes(t *testing.T) {
	links := scanLinks("see https://a.test/x and http://b.test then https://a.test/x again")

	assert.Equal(t, []string{"https://a.test/x", "http://b.test"}, links)
}
