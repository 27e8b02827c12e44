//go:build !ocr
// +build !ocr

package extractor

import "context"

// TesseractRecognizer is the fallback used when the binary is built without
// the ocr tag; it reports that tesseract support is unavailable.
type TesseractRecognizer struct {
	TessdataPrefix string
}

// NewTesseractRecognizer creates the fallback recognizer.
func NewTesseractRecognizer(tessdataPrefix string) *TesseractRecognizer {
	return &TesseractRecognizer{TessdataPrefix: tessdataPrefix}
}

// Recognize always fails: OCR requires building with -tags ocr and a local
// tesseract installation (brew install tesseract / apt install tesseract-ocr).
func (t *TesseractRecognizer) Recognize(ctx context.Context, imageBytes []byte, languageCode string) (string, error) {
	return "", &RecognitionError{
		Message: "OCR support not compiled in; rebuild with -tags ocr and install tesseract",
	}
}
