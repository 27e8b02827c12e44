// Package extractor turns uploaded PDF and image bytes into text.
//
// The heavy lifting is delegated to two capability ports: a Rasterizer
// that renders PDF pages to images and a Recognizer that runs OCR on a
// single image. Both are injected so tests can substitute deterministic
// stubs for the real poppler/tesseract backends.
package extractor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Shravanisawant28/PDF/pkg/logging"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Sentinel results substituted for empty or failed extractions. These are
// part of the response contract, not internal errors.
const (
	NoTextSentinel  = "No text detected."
	NoPagesSentinel = "PDF conversion failed. No images extracted."
)

// Rasterizer renders a PDF into an ordered sequence of page images.
type Rasterizer interface {
	Rasterize(ctx context.Context, pdfBytes []byte, dpi int) ([][]byte, error)
}

// Recognizer extracts text from a single image.
type Recognizer interface {
	Recognize(ctx context.Context, imageBytes []byte, languageCode string) (string, error)
}

// RasterizationError represents a failure to render PDF pages
type RasterizationError struct {
	Message string
}

func (e *RasterizationError) Error() string {
	return e.Message
}

// RecognitionError represents an OCR engine failure
type RecognitionError struct {
	Message string
}

func (e *RecognitionError) Error() string {
	return e.Message
}

// Engine orchestrates text extraction for both document kinds.
type Engine struct {
	rasterizer Rasterizer
	recognizer Recognizer
	dpi        int
	logger     zerolog.Logger
}

// NewEngine creates an extraction engine with the given capability ports.
func NewEngine(rasterizer Rasterizer, recognizer Recognizer, dpi int) *Engine {
	return &Engine{
		rasterizer: rasterizer,
		recognizer: recognizer,
		dpi:        dpi,
		logger:     logging.GetLogger("extractor"),
	}
}

// ExtractPDF extracts text from a PDF. Failures are folded into the result
// string rather than returned: the HTTP contract reports extraction problems
// in-band with status 200.
func (e *Engine) ExtractPDF(ctx context.Context, content []byte, languageCode string) string {
	// Fast path: PDFs with a real text layer don't need OCR at all.
	if text := textLayer(content); text != "" {
		e.logger.Debug().Int("bytes", len(text)).Msg("Extracted embedded text layer")
		return text
	}

	pages, err := e.rasterizer.Rasterize(ctx, content, e.dpi)
	if err != nil {
		e.logger.Error().Err(err).Msg("Error processing PDF")
		return fmt.Sprintf("Error processing PDF: %v", err)
	}
	if len(pages) == 0 {
		return NoPagesSentinel
	}

	var results []string
	for i, page := range pages {
		text, err := e.recognizer.Recognize(ctx, page, languageCode)
		if err != nil {
			e.logger.Error().Err(err).Int("page", i+1).Msg("Error processing PDF")
			return fmt.Sprintf("Error processing PDF: %v", err)
		}
		if text = strings.TrimSpace(text); text != "" {
			results = append(results, text)
		}
	}

	joined := strings.Join(results, "\n")
	if joined == "" {
		return NoTextSentinel
	}
	return joined
}

// ExtractImage extracts text from a single image upload.
func (e *Engine) ExtractImage(ctx context.Context, content []byte, languageCode string) string {
	if _, _, err := image.DecodeConfig(bytes.NewReader(content)); err != nil {
		e.logger.Error().Err(err).Msg("Error processing image")
		return fmt.Sprintf("Error processing image: %v", err)
	}

	text, err := e.recognizer.Recognize(ctx, content, languageCode)
	if err != nil {
		e.logger.Error().Err(err).Msg("Error processing image")
		return fmt.Sprintf("Error processing image: %v", err)
	}

	if text = strings.TrimSpace(text); text == "" {
		return NoTextSentinel
	}
	return text
}
