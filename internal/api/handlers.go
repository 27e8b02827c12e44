// Package api contains the HTTP handlers that orchestrate extraction and
// speech synthesis for each upload.
package api

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Shravanisawant28/PDF/pkg/extractor"
	"github.com/Shravanisawant28/PDF/pkg/language"
	"github.com/Shravanisawant28/PDF/pkg/logging"
	"github.com/Shravanisawant28/PDF/pkg/speech"
)

// Handlers contains the HTTP handlers for the API
type Handlers struct {
	engine            *extractor.Engine
	store             *speech.Store
	maxUploadSize     int64
	extractionTimeout time.Duration
	synthesisTimeout  time.Duration
}

// NewHandlers creates a new handlers instance
func NewHandlers(engine *extractor.Engine, store *speech.Store, maxUploadSize int64, extractionTimeout, synthesisTimeout time.Duration) *Handlers {
	return &Handlers{
		engine:            engine,
		store:             store,
		maxUploadSize:     maxUploadSize,
		extractionTimeout: extractionTimeout,
		synthesisTimeout:  synthesisTimeout,
	}
}

// Health returns the service health status
func (h *Handlers) Health(c *fiber.Ctx) error {
	codes := make([]string, 0, len(language.Supported()))
	for _, loc := range language.Supported() {
		codes = append(codes, loc.Code)
	}
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"languages": codes,
		"timestamp": time.Now().UTC(),
	})
}

// ExtractResponse is the body returned for a processed upload.
// Language carries the recognition-engine code, matching the contract the
// front end was written against.
type ExtractResponse struct {
	Language      string  `json:"language"`
	ExtractedText string  `json:"extracted_text"`
	AudioURL      *string `json:"audio_url"`
}

// ExtractText handles POST /extract-text: it validates the multipart
// upload, extracts text from the PDF or image, synthesizes speech, and
// returns both. Extraction failures are reported in-band with status 200;
// only upload validation produces a 400.
func (h *Handlers) ExtractText(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	if file.Filename == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No selected file",
		})
	}

	if h.maxUploadSize > 0 && file.Size > h.maxUploadSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File too large",
		})
	}

	loc := language.Normalize(c.FormValue("language", "en"))
	logger := logging.GetRequestLogger(file.Filename, loc.Recognition)

	src, err := file.Open()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open uploaded file")
		return internalError(c)
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to read uploaded file")
		return internalError(c)
	}

	if len(content) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Empty file uploaded",
		})
	}

	extractCtx, cancel := context.WithTimeout(c.Context(), h.extractionTimeout)
	defer cancel()

	var text string
	if strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		text = h.engine.ExtractPDF(extractCtx, content, loc.Recognition)
	} else {
		text = h.engine.ExtractImage(extractCtx, content, loc.Recognition)
	}

	synthCtx, cancel := context.WithTimeout(c.Context(), h.synthesisTimeout)
	defer cancel()

	resp := ExtractResponse{
		Language:      loc.Recognition,
		ExtractedText: text,
	}
	if url := h.store.Save(synthCtx, text, loc.Synthesis); url != "" {
		resp.AudioURL = &url
	}

	logger.Info().
		Int("text_length", len(text)).
		Bool("audio", resp.AudioURL != nil).
		Msg("Processed upload")

	return c.JSON(resp)
}

// internalError hides failure detail from the client; it has already been
// logged server-side.
func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal Server Error",
	})
}
