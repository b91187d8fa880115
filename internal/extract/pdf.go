package extract

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// extractPDF writes the document to a temp file and runs pdftotext -layout
// over it. The uploaded handle only guarantees readable bytes, so the bytes
// are staged on disk for the tool.
func (e *Extractor) extractPDF(ctx context.Context, data []byte) Result {
	dir, err := os.MkdirTemp("", "contenthub-pdf-*")
	if err != nil {
		return Result{Err: eris.Wrap(err, "extract: create temp dir")}
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "upload.pdf")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return Result{Err: eris.Wrap(err, "extract: stage pdf")}
	}

	cmd := exec.CommandContext(ctx, e.pdfToTextPath, "-layout", path, "-")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Keep whatever the tool wrote before failing.
		return Result{
			Text: stdout.String(),
			Err:  eris.Wrapf(err, "extract: pdftotext failed: %s", stderr.String()),
		}
	}

	return Result{Text: stdout.String()}
}
