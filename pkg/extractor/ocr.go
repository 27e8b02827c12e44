//go:build ocr
// +build ocr

package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractRecognizer performs OCR through the tesseract C API.
type TesseractRecognizer struct {
	// TessdataPrefix overrides the language-pack directory when non-empty.
	TessdataPrefix string
}

// NewTesseractRecognizer creates a recognizer backed by tesseract.
func NewTesseractRecognizer(tessdataPrefix string) *TesseractRecognizer {
	return &TesseractRecognizer{TessdataPrefix: tessdataPrefix}
}

// Recognize runs OCR on a single image with the given tesseract language code.
func (t *TesseractRecognizer) Recognize(ctx context.Context, imageBytes []byte, languageCode string) (string, error) {
	if len(imageBytes) == 0 {
		return "", &RecognitionError{Message: "no image content provided for OCR"}
	}
	if err := ctx.Err(); err != nil {
		return "", &RecognitionError{Message: fmt.Sprintf("recognition cancelled: %v", err)}
	}

	client := gosseract.NewClient()
	defer client.Close()

	if t.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(t.TessdataPrefix); err != nil {
			return "", &RecognitionError{Message: fmt.Sprintf("failed to set tessdata prefix: %v", err)}
		}
	}
	if err := client.SetLanguage(languageCode); err != nil {
		return "", &RecognitionError{Message: fmt.Sprintf("failed to set OCR language %q: %v", languageCode, err)}
	}
	if err := client.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		return "", &RecognitionError{Message: fmt.Sprintf("failed to set page segmentation mode: %v", err)}
	}
	if err := client.SetImageFromBytes(imageBytes); err != nil {
		return "", &RecognitionError{Message: fmt.Sprintf("failed to set OCR image data: %v", err)}
	}

	text, err := client.Text()
	if err != nil {
		return "", &RecognitionError{Message: fmt.Sprintf("OCR text extraction failed: %v", err)}
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.TrimSpace(text), nil
}
