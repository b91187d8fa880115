// Package extract pulls plain text out of uploaded reference documents.
//
// Extraction is best effort: a parse failure yields whatever partial text was
// recovered so far, never an escaping error. The "no content found" path is a
// first-class Result value, not a swallowed exception.
package extract

import (
	"context"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Result is the outcome of extracting one document. Text holds the best text
// recovered (possibly empty); Err records why extraction stopped early and is
// informational only.
type Result struct {
	Text string
	Err  error
}

// OK reports whether any usable text was recovered.
func (r Result) OK() bool {
	return strings.TrimSpace(r.Text) != ""
}

// Extractor dispatches on filename extension and extracts sequential text.
// No OCR, no layout preservation.
type Extractor struct {
	pdfToTextPath string
}

// New creates an Extractor. If pdfToTextPath is empty, "pdftotext" is used.
func New(pdfToTextPath string) *Extractor {
	if pdfToTextPath == "" {
		pdfToTextPath = "pdftotext"
	}
	return &Extractor{pdfToTextPath: pdfToTextPath}
}

// Extract returns the visible text of a document given its filename (for
// extension-based dispatch on the lowercased name) and raw bytes.
func (e *Extractor) Extract(ctx context.Context, name string, data []byte) Result {
	var res Result
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md":
		res = Result{Text: decodeUTF8(data)}
	case ".pdf":
		res = e.extractPDF(ctx, data)
	case ".docx":
		res = extractDOCX(data)
	case ".pptx":
		res = extractPPTX(data)
	case ".xlsx":
		res = extractXLSX(data)
	default:
		res = Result{Err: eris.Errorf("extract: unsupported file type %q", filepath.Ext(name))}
	}

	res.Text = strings.TrimSpace(res.Text)
	if res.Err != nil {
		zap.L().Debug("extract: partial or failed extraction",
			zap.String("file", name),
			zap.Int("chars", len(res.Text)),
			zap.Error(res.Err),
		)
	}
	return res
}

// decodeUTF8 keeps valid UTF-8 and drops invalid bytes.
func decodeUTF8(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "")
}
