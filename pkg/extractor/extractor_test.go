package extractor

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRasterizer returns a fixed page sequence or error.
type stubRasterizer struct {
	pages [][]byte
	err   error
}

func (s *stubRasterizer) Rasterize(ctx context.Context, pdfBytes []byte, dpi int) ([][]byte, error) {
	return s.pages, s.err
}

// stubRecognizer returns queued results, one per call.
type stubRecognizer struct {
	results []string
	err     error
	calls   int
}

func (s *stubRecognizer) Recognize(ctx context.Context, imageBytes []byte, languageCode string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.calls >= len(s.results) {
		return "", nil
	}
	text := s.results[s.calls]
	s.calls++
	return text, nil
}

// fakePDF has the PDF magic but no parseable structure, so the embedded
// text-layer fast path yields nothing and extraction falls through to the
// rasterizer stub.
var fakePDF = []byte("%PDF-1.4 not really a pdf")

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(1, 1, color.Black)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestExtractPDFJoinsNonEmptyPages(t *testing.T) {
	rasterizer := &stubRasterizer{pages: [][]byte{{1}, {2}, {3}}}
	recognizer := &stubRecognizer{results: []string{"", "Hello", "   "}}
	engine := NewEngine(rasterizer, recognizer, 300)

	text := engine.ExtractPDF(context.Background(), fakePDF, "eng")
	assert.Equal(t, "Hello", text)
	assert.Equal(t, 3, recognizer.calls)
}

func TestExtractPDFMultiplePagesWithText(t *testing.T) {
	rasterizer := &stubRasterizer{pages: [][]byte{{1}, {2}}}
	recognizer := &stubRecognizer{results: []string{"page one", "page two"}}
	engine := NewEngine(rasterizer, recognizer, 300)

	text := engine.ExtractPDF(context.Background(), fakePDF, "eng")
	assert.Equal(t, "page one\npage two", text)
}

func TestExtractPDFNoPages(t *testing.T) {
	engine := NewEngine(&stubRasterizer{pages: nil}, &stubRecognizer{}, 300)

	text := engine.ExtractPDF(context.Background(), fakePDF, "eng")
	assert.Equal(t, NoPagesSentinel, text)
}

func TestExtractPDFNoTextDetected(t *testing.T) {
	rasterizer := &stubRasterizer{pages: [][]byte{{1}, {2}}}
	recognizer := &stubRecognizer{results: []string{"", "  \n "}}
	engine := NewEngine(rasterizer, recognizer, 300)

	text := engine.ExtractPDF(context.Background(), fakePDF, "eng")
	assert.Equal(t, NoTextSentinel, text)
}

func TestExtractPDFRasterizationFailureIsFolded(t *testing.T) {
	rasterizer := &stubRasterizer{err: &RasterizationError{Message: "pdftoppm failed"}}
	engine := NewEngine(rasterizer, &stubRecognizer{}, 300)

	text := engine.ExtractPDF(context.Background(), fakePDF, "eng")
	assert.Contains(t, text, "Error processing PDF:")
	assert.Contains(t, text, "pdftoppm failed")
}

func TestExtractPDFRecognitionFailureIsFolded(t *testing.T) {
	rasterizer := &stubRasterizer{pages: [][]byte{{1}}}
	recognizer := &stubRecognizer{err: &RecognitionError{Message: "language pack missing"}}
	engine := NewEngine(rasterizer, recognizer, 300)

	text := engine.ExtractPDF(context.Background(), fakePDF, "eng")
	assert.Contains(t, text, "Error processing PDF:")
}

func TestExtractImage(t *testing.T) {
	recognizer := &stubRecognizer{results: []string{"  TEST 123  "}}
	engine := NewEngine(&stubRasterizer{}, recognizer, 300)

	text := engine.ExtractImage(context.Background(), pngBytes(t), "eng")
	assert.Equal(t, "TEST 123", text)
}

func TestExtractImageNoText(t *testing.T) {
	recognizer := &stubRecognizer{results: []string{"   "}}
	engine := NewEngine(&stubRasterizer{}, recognizer, 300)

	text := engine.ExtractImage(context.Background(), pngBytes(t), "eng")
	assert.Equal(t, NoTextSentinel, text)
}

func TestExtractImageUndecodableBytes(t *testing.T) {
	engine := NewEngine(&stubRasterizer{}, &stubRecognizer{}, 300)

	text := engine.ExtractImage(context.Background(), []byte("definitely not an image"), "eng")
	assert.Contains(t, text, "Error processing image:")
}

func TestExtractImageRecognitionFailureIsFolded(t *testing.T) {
	recognizer := &stubRecognizer{err: &RecognitionError{Message: "engine unavailable"}}
	engine := NewEngine(&stubRasterizer{}, recognizer, 300)

	text := engine.ExtractImage(context.Background(), pngBytes(t), "eng")
	assert.Contains(t, text, "Error processing image:")
	assert.Contains(t, text, "engine unavailable")
}

func TestTextLayerRejectsNonPDF(t *testing.T) {
	assert.Empty(t, textLayer([]byte("not a pdf at all")))
	assert.Empty(t, textLayer(nil))
	assert.Empty(t, textLayer(fakePDF))
}

func TestErrorTypes(t *testing.T) {
	assert.Equal(t, "render failed", (&RasterizationError{Message: "render failed"}).Error())
	assert.Equal(t, "ocr failed", (&RecognitionError{Message: "ocr failed"}).Error())
}
