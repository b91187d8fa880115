// Package render prepares model output for display: strips the code fences
// models sometimes wrap answers in despite instructions, and converts
// markdown to HTML.
package render

import (
	"bytes"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// StripFences removes a leading ``` or ```markdown fence line and a trailing
// ``` fence line. Fences inside the body stay put.
func StripFences(s string) string {
	out := strings.TrimSpace(s)
	if strings.HasPrefix(out, "```") {
		if idx := strings.IndexByte(out, '\n'); idx >= 0 {
			out = out[idx+1:]
		} else {
			out = strings.TrimPrefix(out, "```markdown")
			out = strings.TrimPrefix(out, "```")
		}
	}
	out = strings.TrimSpace(out)
	if strings.HasSuffix(out, "```") {
		out = strings.TrimSpace(strings.TrimSuffix(out, "```"))
	}
	return out
}

// HTML converts markdown to HTML.
func HTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", eris.Wrap(err, "render: convert markdown")
	}
	return buf.String(), nil
}
