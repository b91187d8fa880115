package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"
)

// extractDOCX reads word/document.xml and concatenates the text runs in
// document order, with a newline per paragraph.
func extractDOCX(data []byte) Result {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{Err: eris.Wrap(err, "extract: open docx archive")}
	}

	for _, f := range r.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return Result{Err: eris.Wrap(err, "extract: open document.xml")}
		}
		defer rc.Close()
		return collectRuns(rc, "t", "p")
	}

	return Result{Err: eris.New("extract: docx has no word/document.xml")}
}

var slideRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// extractPPTX reads every ppt/slides/slideN.xml in slide order and
// concatenates the text runs of each slide's shapes.
func extractPPTX(data []byte) Result {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{Err: eris.Wrap(err, "extract: open pptx archive")}
	}

	type slide struct {
		n int
		f *zip.File
	}
	var slides []slide
	for _, f := range r.File {
		m := slideRe.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		slides = append(slides, slide{n: n, f: f})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].n < slides[j].n })

	var b strings.Builder
	var lastErr error
	for _, s := range slides {
		rc, err := s.f.Open()
		if err != nil {
			lastErr = eris.Wrapf(err, "extract: open slide %d", s.n)
			continue
		}
		res := collectRuns(rc, "t", "p")
		rc.Close()
		if res.Err != nil {
			lastErr = res.Err
		}
		if text := strings.TrimSpace(res.Text); text != "" {
			b.WriteString(text)
			b.WriteString("\n")
		}
	}

	return Result{Text: b.String(), Err: lastErr}
}

// collectRuns walks an Office XML stream gathering the character data of
// every <runElem> element and emitting a newline at the end of each
// <breakElem> element. Namespaces are ignored; only local names matter.
// A decode error stops the walk but keeps the text gathered so far.
func collectRuns(r io.Reader, runElem, breakElem string) Result {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, eris.Wrapf(err, "extract: unsupported charset %q", charset)
		}
		return enc.NewDecoder().Reader(input), nil
	}

	var b strings.Builder
	inRun := 0
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			return Result{Text: b.String()}
		}
		if err != nil {
			return Result{Text: b.String(), Err: eris.Wrap(err, "extract: read token")}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == runElem {
				inRun++
			}
		case xml.EndElement:
			switch t.Name.Local {
			case runElem:
				if inRun > 0 {
					inRun--
				}
			case breakElem:
				b.WriteString("\n")
			}
		case xml.CharData:
			if inRun > 0 {
				b.Write(t)
			}
		}
	}
}
