package extractor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
)

// textLayer pulls the embedded text out of a PDF, if it has any. Scanned
// documents produce an empty string and fall through to rasterization.
// The pdf parser panics on some malformed inputs, so the probe recovers
// and reports no text instead.
func textLayer(content []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	if len(content) < 4 || string(content[:4]) != "%PDF" {
		return ""
	}

	doc, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return ""
	}

	var builder strings.Builder
	for i := 1; i <= doc.NumPage(); i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if pageText = strings.TrimSpace(pageText); pageText != "" {
			builder.WriteString(pageText)
			builder.WriteString("\n")
		}
	}

	return strings.TrimSpace(builder.String())
}

// PopplerRasterizer renders PDF pages to PNG images via pdftoppm.
type PopplerRasterizer struct {
	// BinDir is the directory holding the poppler binaries.
	// Empty means resolve pdftoppm on $PATH.
	BinDir string
}

// NewPopplerRasterizer creates a rasterizer using the given poppler directory.
func NewPopplerRasterizer(binDir string) *PopplerRasterizer {
	return &PopplerRasterizer{BinDir: binDir}
}

// Rasterize renders each page of the PDF to a PNG at the given DPI and
// returns the images in page order.
func (p *PopplerRasterizer) Rasterize(ctx context.Context, pdfBytes []byte, dpi int) ([][]byte, error) {
	workDir, err := os.MkdirTemp("", "pdf-raster-*")
	if err != nil {
		return nil, &RasterizationError{Message: fmt.Sprintf("failed to create work directory: %v", err)}
	}
	defer os.RemoveAll(workDir)

	inputPath := filepath.Join(workDir, "input.pdf")
	if err := os.WriteFile(inputPath, pdfBytes, 0644); err != nil {
		return nil, &RasterizationError{Message: fmt.Sprintf("failed to stage PDF: %v", err)}
	}

	bin := "pdftoppm"
	if p.BinDir != "" {
		bin = filepath.Join(p.BinDir, "pdftoppm")
	}

	cmd := exec.CommandContext(ctx, bin,
		"-r", strconv.Itoa(dpi),
		"-png",
		inputPath,
		filepath.Join(workDir, "page"),
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, &RasterizationError{
			Message: fmt.Sprintf("pdftoppm failed: %v: %s", err, strings.TrimSpace(string(output))),
		}
	}

	matches, err := filepath.Glob(filepath.Join(workDir, "page-*.png"))
	if err != nil {
		return nil, &RasterizationError{Message: fmt.Sprintf("failed to list rendered pages: %v", err)}
	}
	// pdftoppm zero-pads page numbers, so lexical order is page order.
	sort.Strings(matches)

	pages := make([][]byte, 0, len(matches))
	for _, match := range matches {
		data, err := os.ReadFile(match)
		if err != nil {
			return nil, &RasterizationError{Message: fmt.Sprintf("failed to read rendered page %s: %v", filepath.Base(match), err)}
		}
		pages = append(pages, data)
	}

	return pages, nil
}
